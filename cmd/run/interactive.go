package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skifflang/wasm-host/bridge"
	"github.com/skifflang/wasm-host/engine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	streamStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateConfigure modelState = iota
	stateShowOutput
)

type interactiveModel struct {
	err      error
	filename string
	inputs   []textinput.Model
	focusIdx int
	state    modelState
	stdout   string
	stderr   string
}

const (
	inputArgv = iota
	inputStdin
)

func newInteractiveModel(filename string) *interactiveModel {
	argv := textinput.New()
	argv.Prompt = "arguments: "
	argv.Placeholder = "comma-separated"
	argv.Width = 40
	argv.Focus()

	stdin := textinput.New()
	stdin.Prompt = "stdin: "
	stdin.Placeholder = "use \\n for line breaks"
	stdin.Width = 40

	return &interactiveModel{
		filename: filename,
		inputs:   []textinput.Model{argv, stdin},
		state:    stateConfigure,
	}
}

type runDoneMsg struct {
	err    error
	stdout string
	stderr string
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) runProgram() tea.Msg {
	ctx := context.Background()

	data, err := os.ReadFile(m.filename)
	if err != nil {
		return runDoneMsg{err: err}
	}

	eng := engine.New(ctx, nil)
	defer eng.Close(ctx)

	var out, errOut bytes.Buffer
	stdinData := strings.ReplaceAll(m.inputs[inputStdin].Value(), "\\n", "\n")
	br := bridge.New(
		bridge.WithStdin(strings.NewReader(stdinData)),
		bridge.WithStdout(&out),
		bridge.WithStderr(&errOut),
	)
	if err := bridge.BindHostModule(ctx, eng.Runtime(), br); err != nil {
		return runDoneMsg{err: err}
	}

	mod, err := eng.Load(ctx, data)
	if err != nil {
		return runDoneMsg{err: err}
	}
	inst, err := mod.Instantiate(ctx)
	if err != nil {
		return runDoneMsg{err: err}
	}
	defer inst.Close(ctx)

	if err := br.BindInstance(inst); err != nil {
		return runDoneMsg{err: err}
	}

	args := []string{m.filename}
	if argvStr := m.inputs[inputArgv].Value(); argvStr != "" {
		args = append(args, strings.Split(argvStr, ",")...)
	}
	err = br.Start(ctx, args)
	return runDoneMsg{err: err, stdout: out.String(), stderr: errOut.String()}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			switch m.state {
			case stateConfigure:
				return m, m.runProgram
			case stateShowOutput:
				m.state = stateConfigure
				m.stdout = ""
				m.stderr = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateConfigure {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}
		}

	case runDoneMsg:
		m.stdout = msg.stdout
		m.stderr = msg.stderr
		m.err = msg.err
		m.state = stateShowOutput
	}

	if m.state == stateConfigure {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Skiff Runner"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateConfigure:
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter run • esc quit"))

	case stateShowOutput:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n\n")
		}
		if m.stdout != "" {
			b.WriteString("stdout:\n")
			b.WriteString(streamStyle.Render(m.stdout))
			b.WriteString("\n")
		}
		if m.stderr != "" {
			b.WriteString("stderr:\n")
			b.WriteString(errorStyle.Render(m.stderr))
			b.WriteString("\n")
		}
		if m.err == nil && m.stdout == "" && m.stderr == "" {
			b.WriteString("(no output)\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter run again • esc quit"))
	}

	return b.String()
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newInteractiveModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
