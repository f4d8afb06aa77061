// Package tui implements the interactive ask session.
//
// The session holds one indexed document and answers questions
// against it in a loop, showing the retrieved evidence alongside each
// answer. It follows the Elm architecture via Bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/askdoc-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driving"
)

// ReindexFunc reloads the session's document and builds a fresh index.
type ReindexFunc func(ctx context.Context) (driving.DocumentHandle, error)

// exchange is one answered question in the session history.
type exchange struct {
	question string
	answer   *domain.Answer
}

// Session is the interactive ask loop. It implements tea.Model.
type Session struct {
	answerSvc driving.AnswerService
	handle    driving.DocumentHandle
	reindex   ReindexFunc

	ctx     context.Context
	styles  *styles.Styles
	input   textinput.Model
	spinner spinner.Model

	history     []exchange
	busy        bool
	status      string
	showContext bool
	err         error

	width  int
	height int
}

// Ensure Session implements tea.Model.
var _ tea.Model = (*Session)(nil)

// Messages produced by session commands.
type (
	answeredMsg struct {
		question string
		answer   *domain.Answer
	}
	reindexedMsg struct {
		handle driving.DocumentHandle
	}
	sessionErrMsg struct {
		err error
	}
)

// NewSession creates an ask session over an already-indexed document.
// reindex may be nil; ctrl+r is then disabled.
func NewSession(answerSvc driving.AnswerService, handle driving.DocumentHandle, reindex ReindexFunc) *Session {
	s := styles.DefaultStyles()

	input := textinput.New()
	input.Placeholder = "Ask a question..."
	input.Prompt = "> "
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &Session{
		answerSvc: answerSvc,
		handle:    handle,
		reindex:   reindex,
		ctx:       context.Background(),
		styles:    s,
		input:     input,
		spinner:   spin,
	}
}

// WithContext sets the context used for answering and re-indexing.
func (s *Session) WithContext(ctx context.Context) {
	if ctx != nil {
		s.ctx = ctx
	}
}

// Handle returns the session's current document handle.
func (s *Session) Handle() driving.DocumentHandle {
	return s.handle
}

// Init implements tea.Model.
func (s *Session) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (s *Session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.input.Width = msg.Width - 4
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)

	case answeredMsg:
		s.busy = false
		s.status = ""
		s.history = append(s.history, exchange{question: msg.question, answer: msg.answer})
		return s, nil

	case reindexedMsg:
		s.busy = false
		s.status = "Re-indexed."
		if s.handle != nil {
			s.handle.Close() //nolint:errcheck
		}
		s.handle = msg.handle
		return s, nil

	case sessionErrMsg:
		s.busy = false
		s.status = ""
		s.err = msg.err
		return s, nil

	case spinner.TickMsg:
		if !s.busy {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Session) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return s, tea.Quit

	case "enter":
		question := strings.TrimSpace(s.input.Value())
		if s.busy || question == "" {
			return s, nil
		}
		s.busy = true
		s.err = nil
		s.status = "Thinking..."
		s.input.Reset()
		return s, tea.Batch(s.spinner.Tick, s.askCmd(question))

	case "ctrl+r":
		if s.busy || s.reindex == nil {
			return s, nil
		}
		s.busy = true
		s.err = nil
		s.status = "Re-indexing..."
		return s, tea.Batch(s.spinner.Tick, s.reindexCmd())

	case "ctrl+o":
		s.showContext = !s.showContext
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// askCmd answers the question against the current handle.
func (s *Session) askCmd(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := s.answerSvc.Answer(s.ctx, s.handle, question)
		if err != nil {
			return sessionErrMsg{err: err}
		}
		return answeredMsg{question: question, answer: answer}
	}
}

// reindexCmd rebuilds the index from the original source.
func (s *Session) reindexCmd() tea.Cmd {
	return func() tea.Msg {
		handle, err := s.reindex(s.ctx)
		if err != nil {
			return sessionErrMsg{err: err}
		}
		return reindexedMsg{handle: handle}
	}
}

// View implements tea.Model.
func (s *Session) View() string {
	var b strings.Builder

	b.WriteString(s.styles.Title.Render("Askdoc"))
	if s.handle != nil {
		doc := s.handle.Document()
		b.WriteString(s.styles.Muted.Render(fmt.Sprintf("  %s (%d chunks)", doc.Title, len(s.handle.Chunks()))))
	}
	b.WriteString("\n\n")

	if last := s.lastExchange(); last != nil {
		b.WriteString(s.styles.Subtitle.Render("Q: " + last.question))
		b.WriteString("\n")
		b.WriteString(s.styles.Normal.Render(last.answer.Text))
		b.WriteString("\n")

		if s.showContext {
			b.WriteString("\n")
			b.WriteString(s.styles.Muted.Render("Context:"))
			b.WriteString("\n")
			for _, sc := range last.answer.Retrieval.Chunks {
				header := fmt.Sprintf("  [chunk %d, chars %d-%d] (%.3f)", sc.Chunk.Ordinal, sc.Chunk.Start, sc.Chunk.End, sc.Score)
				b.WriteString(s.styles.Muted.Render(header))
				b.WriteString("\n")
				b.WriteString(s.styles.Normal.Render("  " + sc.Chunk.Text))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	if s.err != nil {
		b.WriteString(s.styles.Error.Render("Error: " + s.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(s.styles.InputField.Render(s.input.View()))
	b.WriteString("\n")

	if s.busy {
		b.WriteString(s.spinner.View())
		b.WriteString(s.styles.Muted.Render(" " + s.status))
	} else if s.status != "" {
		b.WriteString(s.styles.Success.Render(s.status))
	}
	b.WriteString("\n")

	help := "enter: ask • ctrl+o: toggle context • esc: quit"
	if s.reindex != nil {
		help = "enter: ask • ctrl+r: re-index • ctrl+o: toggle context • esc: quit"
	}
	b.WriteString(s.styles.Help.Render(help))

	return b.String()
}

func (s *Session) lastExchange() *exchange {
	if len(s.history) == 0 {
		return nil
	}
	return &s.history[len(s.history)-1]
}
