package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/parentsphere/internal/i18n"
	"github.com/terraincognita07/parentsphere/internal/onboarding"
)

type recordingSubmitter struct {
	records []onboarding.Record
	err     error
}

func (r *recordingSubmitter) submit(record onboarding.Record) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.records = append(r.records, record)
	return "sub-1", nil
}

func newTestModel(t *testing.T, language string, submit SubmitFunc) Model {
	t.Helper()

	manager, err := i18n.NewEmbeddedManager("en")
	require.NoError(t, err)
	return NewModel(manager, language, submit)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()

	var cmd tea.Cmd
	for _, key := range keys {
		var updated tea.Model
		updated, cmd = m.Update(key)
		var ok bool
		m, ok = updated.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

var (
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace    = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyRight    = tea.KeyMsg{Type: tea.KeyRight}
	keyCtrlA    = tea.KeyMsg{Type: tea.KeyCtrlA}
	keyCtrlD    = tea.KeyMsg{Type: tea.KeyCtrlD}
	keyCtrlC    = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func fillIdentity(t *testing.T, m Model) Model {
	t.Helper()

	m = typeText(t, m, "Jane Doe")
	m, _ = press(t, m, keyTab)
	m = typeText(t, m, "1990-05-01")
	m, _ = press(t, m, keyEnter)
	require.Equal(t, onboarding.StepBabyInfo, m.wizard.Step())
	return m
}

func fillBaby(t *testing.T, m Model) Model {
	t.Helper()

	m = typeText(t, m, "Max")
	m, _ = press(t, m, keyEnter)
	require.Equal(t, onboarding.StepPreferences, m.wizard.Step())
	return m
}

func TestNewModelStartsOnIdentity(t *testing.T) {
	m := newTestModel(t, "en", nil)

	assert.Equal(t, onboarding.StepIdentity, m.wizard.Step())
	assert.Equal(t, 0, m.focus)
	assert.True(t, m.input.Focused())
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Tell us about yourself")
}

func TestTypingUpdatesRecord(t *testing.T) {
	m := newTestModel(t, "en", nil)

	m = typeText(t, m, "Jane")
	assert.Equal(t, "Jane", m.wizard.Record().FullName)

	m, _ = press(t, m, keyTab)
	m = typeText(t, m, "1990-05-01")
	assert.Equal(t, "1990-05-01", m.wizard.Record().DateOfBirth)

	m, _ = press(t, m, keyShiftTab)
	assert.Equal(t, "Jane", m.input.Value())
}

func TestEnterShowsValidationErrors(t *testing.T) {
	m := newTestModel(t, "en", nil)

	m, _ = press(t, m, keyTab, keyEnter)

	assert.Equal(t, onboarding.StepIdentity, m.wizard.Step())
	assert.Equal(t, 0, m.focus, "focus should jump to the first invalid field")
	view := m.View()
	assert.Contains(t, view, "Full name is required")
	assert.Contains(t, view, "Date of birth is required")
}

func TestParentLevelCycles(t *testing.T) {
	m := newTestModel(t, "en", nil)

	m, _ = press(t, m, keyTab, keyTab, keyRight)
	assert.Equal(t, onboarding.ParentLevelNewParent, m.wizard.Record().ParentLevel)

	m, _ = press(t, m, keySpace, keySpace)
	assert.Equal(t, onboarding.ParentLevelExpecting, m.wizard.Record().ParentLevel)
}

func TestBabyKeys(t *testing.T) {
	m := fillIdentity(t, newTestModel(t, "en", nil))

	m, _ = press(t, m, keyCtrlD)
	assert.Len(t, m.wizard.Record().Babies, 1)
	assert.Contains(t, m.View(), "At least one baby is required")

	m, _ = press(t, m, keyCtrlA)
	require.Len(t, m.wizard.Record().Babies, 2)
	f, ok := m.focused()
	require.True(t, ok)
	assert.Equal(t, fieldBabyName, f.name)
	assert.Equal(t, 1, f.baby)

	m = typeText(t, m, "Second")
	assert.Equal(t, "Second", m.wizard.Record().Babies[1].Name)

	m, _ = press(t, m, keyCtrlD)
	require.Len(t, m.wizard.Record().Babies, 1)
	assert.Equal(t, "", m.wizard.Record().Babies[0].Name)
}

func TestEscRetreatsKeepingRecord(t *testing.T) {
	m := fillIdentity(t, newTestModel(t, "en", nil))

	m, _ = press(t, m, keyEsc)

	assert.Equal(t, onboarding.StepIdentity, m.wizard.Step())
	assert.Equal(t, "Jane Doe", m.input.Value())
}

func TestCompletingSubmitsAndCelebrates(t *testing.T) {
	submitter := &recordingSubmitter{}
	m := fillBaby(t, fillIdentity(t, newTestModel(t, "en", submitter.submit)))

	m, _ = press(t, m, keyEnter)
	assert.Contains(t, m.View(), "Please select at least one concern")

	m, _ = press(t, m, keySpace)
	assert.Equal(t, []string{"Sleep"}, m.wizard.Record().Concerns)

	m, cmd := press(t, m, keyEnter)
	require.True(t, m.wizard.Step().Terminal())
	require.NotNil(t, cmd)
	assert.True(t, m.Result().Completed)

	updated, cmd := m.Update(cmd())
	m = updated.(Model)
	require.NotNil(t, cmd, "expected celebration tick")
	require.Len(t, submitter.records, 1)
	assert.Equal(t, "Jane Doe", submitter.records[0].FullName)
	assert.Equal(t, "sub-1", m.Result().SubmissionID)
	assert.Contains(t, m.View(), "Thank you, Jane Doe!")

	updated, cmd = m.Update(celebrationTickMsg{})
	m = updated.(Model)
	assert.Equal(t, 1, m.frame)
	assert.NotNil(t, cmd)

	_, cmd = press(t, m, keyEnter)
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
	assert.Len(t, submitter.records, 1)
}

func TestCelebrationStops(t *testing.T) {
	m := newTestModel(t, "en", nil)
	m.frame = celebrationFrames

	_, cmd := m.Update(celebrationTickMsg{})
	assert.Nil(t, cmd)
}

func TestFailedSubmissionRetriesOnEnter(t *testing.T) {
	submitter := &recordingSubmitter{err: errors.New("disk full")}
	m := fillBaby(t, fillIdentity(t, newTestModel(t, "en", submitter.submit)))
	m, _ = press(t, m, keySpace)

	m, cmd := press(t, m, keyEnter)
	require.NotNil(t, cmd)
	updated, _ := m.Update(cmd())
	m = updated.(Model)
	require.Error(t, m.Result().Err)
	assert.Contains(t, m.View(), "Something went wrong")

	submitter.err = nil
	m, cmd = press(t, m, keyEnter)
	require.NotNil(t, cmd)
	updated, _ = m.Update(cmd())
	m = updated.(Model)
	assert.NoError(t, m.Result().Err)
	assert.Equal(t, "sub-1", m.Result().SubmissionID)
	assert.Len(t, submitter.records, 1)
}

func TestCtrlCCancels(t *testing.T) {
	m := newTestModel(t, "en", nil)

	m, cmd := press(t, m, keyCtrlC)
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
	assert.True(t, m.Result().Cancelled)
	assert.False(t, m.Result().Completed)
}

func TestSpanishView(t *testing.T) {
	m := newTestModel(t, "es", nil)

	view := m.View()
	assert.Contains(t, view, "Cuéntanos sobre ti")
	assert.Contains(t, view, "Esperando")
}

func TestNotificationToggles(t *testing.T) {
	m := fillBaby(t, fillIdentity(t, newTestModel(t, "en", nil)))

	concerns := len(onboarding.ConcernCatalog())
	for i := 0; i < concerns+1; i++ {
		m, _ = press(t, m, keyTab)
	}
	f, ok := m.focused()
	require.True(t, ok)
	require.Equal(t, fieldEmailNotifications, f.name)

	m, _ = press(t, m, keySpace)
	assert.False(t, m.wizard.Record().EmailNotifications)
}
