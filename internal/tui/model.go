// Package tui runs the onboarding wizard as a terminal program.
package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/terraincognita07/parentsphere/internal/i18n"
	"github.com/terraincognita07/parentsphere/internal/onboarding"
)

const (
	celebrationFrames   = 12
	celebrationInterval = 120 * time.Millisecond
)

// SubmitFunc stores a finished record and returns its public id.
type SubmitFunc func(record onboarding.Record) (string, error)

type Result struct {
	Completed    bool
	Cancelled    bool
	Record       onboarding.Record
	SubmissionID string
	Err          error
}

type submittedMsg struct {
	id  string
	err error
}

type celebrationTickMsg struct{}

// session is shared by every copy of the model bubbletea makes.
type session struct {
	pending *onboarding.Record
	result  Result
}

type Model struct {
	wizard   *onboarding.Wizard
	session  *session
	submit   SubmitFunc
	i18n     *i18n.Manager
	language string

	input      textinput.Model
	focus      int
	notice     string
	submitting bool
	frame      int
	width      int
}

func NewModel(manager *i18n.Manager, language string, submit SubmitFunc) Model {
	state := &session{}
	wizard := onboarding.New(onboarding.WithSubmit(func(record onboarding.Record) {
		state.pending = &record
	}))

	input := textinput.New()
	input.CharLimit = 120
	input.Width = 40
	input.Prompt = "› "

	if manager != nil {
		language = manager.NormalizeLanguage(language)
	}

	m := Model{
		wizard:   wizard,
		session:  state,
		submit:   submit,
		i18n:     manager,
		language: language,
		input:    input,
	}
	m.syncInput()
	return m
}

func (m Model) Result() Result {
	return m.session.result
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case submittedMsg:
		return m.handleSubmitted(msg)
	case celebrationTickMsg:
		if m.frame >= celebrationFrames {
			return m, nil
		}
		m.frame++
		return m, celebrate()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	if f, ok := m.focused(); ok && f.kind == fieldText {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	if msg.String() == "ctrl+c" {
		m.session.result.Cancelled = true
		m.input.Blur()
		return m, tea.Quit
	}
	if m.wizard.Step().Terminal() {
		return m.handleDoneKey(msg)
	}

	switch msg.String() {
	case "tab", "down":
		m.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil
	case "enter":
		return m.advance()
	case "esc":
		m.wizard.Retreat()
		m.focus = 0
		m.syncInput()
		return m, nil
	case "ctrl+a":
		return m.addBaby()
	case "ctrl+d":
		return m.removeBaby()
	}

	f, ok := m.focused()
	if !ok {
		return m, nil
	}

	switch f.kind {
	case fieldChoice:
		switch msg.String() {
		case " ", "right", "l":
			m.cycle(f, 1)
		case "left", "h":
			m.cycle(f, -1)
		}
		return m, nil
	case fieldToggle:
		if msg.String() == " " {
			m.toggle(f)
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.commit(f, m.input.Value())
		return m, cmd
	}
}

func (m Model) handleDoneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.session.pending != nil && !m.submitting {
			return m.startSubmit()
		}
		return m, tea.Quit
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	err := m.wizard.Advance()

	var validation *onboarding.ValidationErrors
	switch {
	case errors.As(err, &validation):
		m.focusFirstError()
		return m, nil
	case err != nil:
		m.notice = err.Error()
		return m, nil
	}

	m.focus = 0
	m.syncInput()
	if m.wizard.Step().Terminal() {
		m.session.result.Completed = true
		m.session.result.Record = m.wizard.Record()
		return m.startSubmit()
	}
	return m, nil
}

func (m Model) startSubmit() (tea.Model, tea.Cmd) {
	if m.session.pending == nil {
		return m, celebrate()
	}
	if m.submit == nil {
		m.session.pending = nil
		return m, celebrate()
	}

	record := m.session.pending.Clone()
	submit := m.submit
	m.submitting = true
	m.session.result.Err = nil
	return m, func() tea.Msg {
		id, err := submit(record)
		return submittedMsg{id: id, err: err}
	}
}

func (m Model) handleSubmitted(msg submittedMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	if msg.err != nil {
		m.session.result.Err = msg.err
		return m, nil
	}

	m.session.pending = nil
	m.session.result.SubmissionID = msg.id
	m.frame = 0
	return m, celebrate()
}

func (m Model) addBaby() (tea.Model, tea.Cmd) {
	if m.wizard.Step() != onboarding.StepBabyInfo {
		return m, nil
	}
	if err := m.wizard.AddBaby(); err != nil {
		m.notice = err.Error()
		return m, nil
	}

	last := len(m.wizard.Record().Babies) - 1
	for index, f := range m.fields() {
		if f.name == fieldBabyName && f.baby == last {
			m.focus = index
			break
		}
	}
	m.syncInput()
	return m, nil
}

func (m Model) removeBaby() (tea.Model, tea.Cmd) {
	f, ok := m.focused()
	if !ok || !f.isBaby() {
		return m, nil
	}

	err := m.wizard.RemoveBaby(f.baby)
	switch {
	case errors.Is(err, onboarding.ErrMinimumViolation):
		m.notice = m.t("onboarding.error.minimum_babies")
	case err != nil:
		m.notice = err.Error()
	}

	if fields := m.fields(); m.focus >= len(fields) {
		m.focus = len(fields) - 1
	}
	m.syncInput()
	return m, nil
}

func (m *Model) cycle(f field, delta int) {
	record := m.wizard.Record()
	switch f.name {
	case fieldParentLevel:
		level := nextParentLevel(record.ParentLevel, delta)
		_ = m.wizard.Update(onboarding.Patch{ParentLevel: &level})
	case fieldBabyGender:
		if f.baby < len(record.Babies) {
			gender := nextGender(record.Babies[f.baby].Gender, delta)
			_ = m.wizard.UpdateBaby(f.baby, onboarding.BabyPatch{Gender: &gender})
		}
	}
}

func (m *Model) toggle(f field) {
	record := m.wizard.Record()
	switch f.name {
	case fieldConcern:
		_ = m.wizard.ToggleConcern(f.concern)
	case fieldEmailNotifications:
		value := !record.EmailNotifications
		_ = m.wizard.Update(onboarding.Patch{EmailNotifications: &value})
	case fieldPushNotifications:
		value := !record.PushNotifications
		_ = m.wizard.Update(onboarding.Patch{PushNotifications: &value})
	}
}

// commit writes the text input back into the record on every keystroke.
func (m *Model) commit(f field, value string) {
	switch f.name {
	case fieldFullName:
		_ = m.wizard.Update(onboarding.Patch{FullName: &value})
	case fieldDateOfBirth:
		_ = m.wizard.Update(onboarding.Patch{DateOfBirth: &value})
	case fieldCheckInTime:
		_ = m.wizard.Update(onboarding.Patch{CheckInTime: &value})
	case fieldBabyName:
		_ = m.wizard.UpdateBaby(f.baby, onboarding.BabyPatch{Name: &value})
	case fieldBabyBirthdate:
		_ = m.wizard.UpdateBaby(f.baby, onboarding.BabyPatch{Birthdate: &value})
	case fieldBabyWeight:
		_ = m.wizard.UpdateBaby(f.baby, onboarding.BabyPatch{Weight: &value})
	case fieldBabyHeight:
		_ = m.wizard.UpdateBaby(f.baby, onboarding.BabyPatch{Height: &value})
	}
}

func (m Model) fields() []field {
	return fieldsFor(m.wizard.Snapshot())
}

func (m Model) focused() (field, bool) {
	fields := m.fields()
	if m.focus < 0 || m.focus >= len(fields) {
		return field{}, false
	}
	return fields[m.focus], true
}

func (m *Model) moveFocus(delta int) {
	fields := m.fields()
	if len(fields) == 0 {
		return
	}
	m.focus = cycleIndex(m.focus, delta, len(fields))
	m.syncInput()
}

func (m *Model) focusFirstError() {
	snapshot := m.wizard.Snapshot()
	for index, f := range fieldsFor(snapshot) {
		if _, ok := snapshot.Errors[f.errorKey()]; ok {
			m.focus = index
			break
		}
	}
	m.syncInput()
}

// syncInput loads the focused text field into the shared input.
func (m *Model) syncInput() {
	f, ok := m.focused()
	if !ok || f.kind != fieldText {
		m.input.Blur()
		return
	}
	m.input.SetValue(textValue(f, m.wizard.Record()))
	m.input.Placeholder = f.placeholder
	m.input.CursorEnd()
	m.input.Focus()
}

func (m Model) t(key string) string {
	if m.i18n == nil {
		return key
	}
	return m.i18n.Translate(m.language, key)
}

func (m Model) errorText(errorKey string, problem string) string {
	field := errorKey
	if bracket := strings.Index(field, "["); bracket >= 0 {
		field = field[:bracket]
	}
	key := "onboarding.error." + field + "." + problem
	if message := m.t(key); message != key {
		return message
	}
	return problem
}

func celebrate() tea.Cmd {
	return tea.Tick(celebrationInterval, func(time.Time) tea.Msg {
		return celebrationTickMsg{}
	})
}
