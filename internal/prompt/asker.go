package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	questionStyle = lipgloss.NewStyle().Bold(true)
	hintStyle     = lipgloss.NewStyle().Faint(true)
)

// TerminalAsker prompts on the controlling terminal using a text input
// with autocompletion. When stdin is not a TTY it degrades to a plain
// line read so the CLI stays usable in pipes and scripts.
type TerminalAsker struct {
	In  io.Reader
	Out io.Writer

	// reader buffers In across questions. Plain-mode reads must share
	// one buffer, or each read's look-ahead would swallow the piped
	// answers to the questions that follow.
	reader *bufio.Reader
}

// NewTerminalAsker creates an asker bound to stdin/stdout.
func NewTerminalAsker() *TerminalAsker {
	return &TerminalAsker{In: os.Stdin, Out: os.Stdout}
}

// Ask implements Asker.
func (a *TerminalAsker) Ask(question string, suggestions []string, defaultValue string) (string, error) {
	if !a.interactive() {
		return a.askPlain(question, defaultValue)
	}

	model := newAskModel(question, suggestions, defaultValue)
	program := tea.NewProgram(model, tea.WithInput(a.In), tea.WithOutput(a.Out))

	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	result, ok := final.(askModel)
	if !ok || result.canceled {
		return "", ErrAborted
	}
	return result.input.Value(), nil
}

// interactive reports whether stdin is a terminal.
func (a *TerminalAsker) interactive() bool {
	f, ok := a.In.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Buffered returns the asker's buffered view of its input. Anything
// else reading answers from the same stream (the confirmation gate)
// must read through it, or buffered-but-unread lines would be lost.
func (a *TerminalAsker) Buffered() io.Reader {
	return a.buffered()
}

func (a *TerminalAsker) buffered() *bufio.Reader {
	if a.reader == nil {
		if br, ok := a.In.(*bufio.Reader); ok {
			a.reader = br
		} else {
			a.reader = bufio.NewReader(a.In)
		}
	}
	return a.reader
}

// askPlain reads one line without any terminal control.
func (a *TerminalAsker) askPlain(question, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(a.Out, "%s [%s]: ", question, defaultValue)
	} else {
		fmt.Fprintf(a.Out, "%s: ", question)
	}
	line, err := a.buffered().ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// askModel is the Bubble Tea model behind one interactive question.
type askModel struct {
	question string
	input    textinput.Model
	done     bool
	canceled bool
}

func newAskModel(question string, suggestions []string, defaultValue string) askModel {
	input := textinput.New()
	input.Placeholder = defaultValue
	input.Focus()
	if len(suggestions) > 0 {
		input.ShowSuggestions = true
		input.SetSuggestions(suggestions)
	}
	return askModel{question: question, input: input}
}

// Init implements the Bubble Tea init method.
func (m askModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements the Bubble Tea update method.
func (m askModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.canceled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements the Bubble Tea view method.
func (m askModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	view := questionStyle.Render(m.question) + "\n" + m.input.View()
	if m.input.ShowSuggestions {
		view += "\n" + hintStyle.Render("tab to complete, ctrl+n/ctrl+p to cycle suggestions")
	}
	return view + "\n"
}
