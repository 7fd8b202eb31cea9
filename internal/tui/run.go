package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/terraincognita07/parentsphere/internal/i18n"
)

type Options struct {
	I18n     *i18n.Manager
	Language string
	Submit   SubmitFunc
	Input    io.Reader
	Output   io.Writer
}

// Run drives the wizard until the user finishes or quits.
func Run(ctx context.Context, options Options) (Result, error) {
	model := NewModel(options.I18n, options.Language, options.Submit)

	programOptions := []tea.ProgramOption{tea.WithContext(ctx)}
	if options.Input != nil {
		programOptions = append(programOptions, tea.WithInput(options.Input))
	}
	if options.Output != nil {
		programOptions = append(programOptions, tea.WithOutput(options.Output))
	}

	final, err := tea.NewProgram(model, programOptions...).Run()
	if err != nil {
		return Result{}, fmt.Errorf("run onboarding ui: %w", err)
	}
	finished, ok := final.(Model)
	if !ok {
		return Result{}, fmt.Errorf("run onboarding ui: unexpected model %T", final)
	}
	return finished.Result(), nil
}
