package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummariseCmd_Use(t *testing.T) {
	assert.Equal(t, "summarise [source]", summariseCmd.Use)
	assert.Contains(t, summariseCmd.Aliases, "summarize")
}

func TestSummariseCmd_WordsFlagDefault(t *testing.T) {
	flag := summariseCmd.Flags().Lookup("words")
	require.NotNil(t, flag, "words flag should exist")
	assert.Equal(t, "w", flag.Shorthand)
	assert.Equal(t, "200", flag.DefValue)
}

func TestSummariseCmd_Executes(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"summarise", "test.txt"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "A document about France.")
}

func TestSummariseCmd_WordBudget(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"summarise", "--words", "50", "test.txt"})
	defer func() { summariseWords = 200 }()

	err := rootCmd.Execute()

	require.NoError(t, err)
	stub := answerService.(*stubAnswerService)
	assert.Equal(t, 50, stub.lastMaxWords)
}

func TestSummariseCmd_WritesToFile(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	outPath := filepath.Join(t.TempDir(), "summary.txt")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"summarise", "--out", outPath, "test.txt"})
	defer func() { summariseOut = "" }()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Summary written to")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "A document about France.")
}
