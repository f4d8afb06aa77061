// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to function:
//
//   - DocumentSource: Loads a document from a path, URI, or stdin
//   - PostProcessor / PostProcessorPipeline: Normalises and chunks text
//   - Embedder: Generates vector embeddings
//   - VectorIndex: Ranks chunk vectors by similarity
//   - Generator: Produces answers and summaries
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the pipeline works without them:
//
//   - EmbeddingCache: Content-addressed vector cache. Without it, every
//     build re-embeds every chunk.
//   - PromptStore: Customisable prompt templates. Without it, compiled-in
//     defaults are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
