// Package prompt interactively fills in missing configuration values.
//
// It is deliberately outside the core pipeline: the pipeline only ever
// receives a fully populated Config, and this adapter is one way of
// building it when stdin is a terminal.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrAborted is returned when the user cancels the prompt.
var ErrAborted = errors.New("prompt aborted")

// Field is one value to ask for.
type Field struct {
	Key   string
	Label string
}

type model struct {
	fields  []Field
	idx     int
	input   string
	answers map[string]string
	aborted bool
	done    bool
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.aborted = true
		return m, tea.Quit
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input)
		if value == "" {
			return m, nil
		}
		m.answers[m.fields[m.idx].Key] = value
		m.input = ""
		m.idx++
		if m.idx >= len(m.fields) {
			m.done = true
			return m, tea.Quit
		}
	case tea.KeyBackspace:
		if runes := []rune(m.input); len(runes) > 0 {
			m.input = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(key.Runes)
	}
	return m, nil
}

func (m model) View() string {
	if m.done || m.aborted {
		return ""
	}
	f := m.fields[m.idx]
	return fmt.Sprintf("%s (%d/%d)\n> %s\n\n(enter to confirm, esc to abort)\n",
		f.Label, m.idx+1, len(m.fields), m.input)
}

// Missing runs the prompt loop for the given fields and returns the entered
// values keyed by Field.Key.
func Missing(fields []Field) (map[string]string, error) {
	if len(fields) == 0 {
		return map[string]string{}, nil
	}

	final, err := tea.NewProgram(model{
		fields:  fields,
		answers: make(map[string]string),
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("running prompt: %w", err)
	}

	m := final.(model)
	if m.aborted {
		return nil, ErrAborted
	}
	return m.answers, nil
}
