package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/terraincognita07/parentsphere/internal/onboarding"
)

var celebrationSprites = []string{"🎉", "✨", "👶", "🍼", "💖", "🌟"}

func (m Model) View() string {
	snapshot := m.wizard.Snapshot()
	if snapshot.Completed {
		return m.viewDone(snapshot)
	}

	var b strings.Builder
	b.WriteString(brandStyle.Render("ParentSphere"))
	b.WriteString("  ")
	b.WriteString(progressBar(int(snapshot.Step), snapshot.TotalSteps))
	b.WriteString(labelStyle.Render(fmt.Sprintf("  %d/%d", snapshot.Step, snapshot.TotalSteps)))
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render(m.t("onboarding.step." + snapshot.StepName)))
	b.WriteString("\n")

	switch snapshot.Step {
	case onboarding.StepBabyInfo:
		b.WriteString(m.viewBabies(snapshot))
	case onboarding.StepPreferences:
		b.WriteString(m.viewPreferences(snapshot))
	default:
		for index, f := range fieldsFor(snapshot) {
			b.WriteString(m.viewField(f, index, snapshot))
		}
	}

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	if len(snapshot.Errors) > 0 {
		b.WriteString(errorStyle.Render(m.t("onboarding.error.validation")))
		b.WriteString("\n")
	}

	help := m.t("onboarding.hint.keys")
	switch snapshot.Step {
	case onboarding.StepBabyInfo:
		help += "\n" + m.t("onboarding.hint.babies")
	case onboarding.StepPreferences:
		help += "\n" + m.t("onboarding.hint.concerns")
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (m Model) viewBabies(snapshot onboarding.Snapshot) string {
	fields := fieldsFor(snapshot)
	cards := make([]string, 0, len(snapshot.Record.Babies))
	for baby := range snapshot.Record.Babies {
		var card strings.Builder
		card.WriteString(labelStyle.Render(fmt.Sprintf("#%d", baby+1)))
		card.WriteString("\n")
		for index, f := range fields {
			if f.baby == baby {
				card.WriteString(m.viewField(f, index, snapshot))
			}
		}
		cards = append(cards, babyCardStyle.Render(strings.TrimRight(card.String(), "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...) + "\n"
}

func (m Model) viewPreferences(snapshot onboarding.Snapshot) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(m.t("onboarding.field.concerns")))
	b.WriteString("\n")

	hints := map[string]string{}
	for _, concern := range onboarding.ConcernCatalog() {
		hints[concern.Tag] = concern.Hint
	}

	fields := fieldsFor(snapshot)
	for index, f := range fields {
		if f.name != fieldConcern {
			continue
		}
		line := fmt.Sprintf("%s %s %s", checkbox(toggled(f, snapshot.Record)), hints[f.concern], f.concern)
		b.WriteString(m.decorate(line, index))
		b.WriteString("\n")
	}
	if problem, ok := snapshot.Errors[fieldConcern]; ok {
		b.WriteString(errorStyle.Render(m.errorText(fieldConcern, problem)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for index, f := range fields {
		if f.name != fieldConcern {
			b.WriteString(m.viewField(f, index, snapshot))
		}
	}
	return b.String()
}

func (m Model) viewField(f field, index int, snapshot onboarding.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.decorate(m.t(f.label), index))
	b.WriteString("\n")

	switch f.kind {
	case fieldText:
		if index == m.focus {
			b.WriteString(m.input.View())
		} else {
			value := textValue(f, snapshot.Record)
			if value == "" {
				value = labelStyle.Render(f.placeholder)
			}
			b.WriteString("  " + valueStyle.Render(value))
		}
	case fieldChoice:
		b.WriteString("  " + valueStyle.Render("‹ "+m.choiceLabel(f, snapshot.Record)+" ›"))
	case fieldToggle:
		b.WriteString("  " + checkbox(toggled(f, snapshot.Record)))
	}
	b.WriteString("\n")

	if problem, ok := snapshot.Errors[f.errorKey()]; ok {
		b.WriteString("  " + errorStyle.Render(m.errorText(f.errorKey(), problem)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) choiceLabel(f field, record onboarding.Record) string {
	switch f.name {
	case fieldParentLevel:
		return m.t(parentLevelLabels[record.ParentLevel])
	case fieldBabyGender:
		if f.baby < len(record.Babies) {
			return m.t(genderLabels[record.Babies[f.baby].Gender])
		}
	}
	return ""
}

func (m Model) decorate(text string, index int) string {
	if index == m.focus {
		return focusedStyle.Render("▸ " + text)
	}
	return labelStyle.Render("  " + text)
}

func (m Model) viewDone(snapshot onboarding.Snapshot) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(celebrationLine(m.frame) + "  " + m.t("onboarding.step.done")))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf(m.t("onboarding.done.thanks"), strings.TrimSpace(snapshot.Record.FullName)))
	b.WriteString("\n\n")
	b.WriteString(m.t("onboarding.done.dashboard"))

	switch {
	case m.submitting:
		b.WriteString("\n\n" + labelStyle.Render("…"))
	case m.session.result.Err != nil:
		b.WriteString("\n\n" + errorStyle.Render(m.t("onboarding.error.generic")))
	case m.session.result.SubmissionID != "":
		b.WriteString("\n\n" + labelStyle.Render("id: "+m.session.result.SubmissionID))
	}
	return doneStyle.Render(b.String()) + "\n"
}

func celebrationLine(frame int) string {
	sprites := make([]string, 0, 3)
	for offset := 0; offset < 3; offset++ {
		sprites = append(sprites, celebrationSprites[(frame+offset*2)%len(celebrationSprites)])
	}
	return strings.Join(sprites, " ")
}

func progressBar(step int, total int) string {
	if step > total {
		step = total
	}
	return progressOn.Render(strings.Repeat("━━━", step)) + progressOff.Render(strings.Repeat("━━━", total-step))
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}
