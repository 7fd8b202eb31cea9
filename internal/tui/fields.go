package tui

import (
	"fmt"

	"github.com/terraincognita07/parentsphere/internal/onboarding"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldChoice
	fieldToggle
)

const (
	fieldFullName           = "fullName"
	fieldDateOfBirth        = "dateOfBirth"
	fieldParentLevel        = "parentLevel"
	fieldBabyName           = "name"
	fieldBabyGender         = "gender"
	fieldBabyBirthdate      = "birthdate"
	fieldBabyWeight         = "weight"
	fieldBabyHeight         = "height"
	fieldConcern            = "concerns"
	fieldCheckInTime        = "checkInTime"
	fieldEmailNotifications = "emailNotifications"
	fieldPushNotifications  = "pushNotifications"
)

// field is one focusable control on the current screen.
type field struct {
	kind        fieldKind
	name        string
	label       string
	placeholder string
	baby        int
	concern     string
}

func (f field) isBaby() bool {
	switch f.name {
	case fieldBabyName, fieldBabyGender, fieldBabyBirthdate, fieldBabyWeight, fieldBabyHeight:
		return true
	default:
		return false
	}
}

// errorKey matches the keys in onboarding.Snapshot.Errors.
func (f field) errorKey() string {
	if f.isBaby() {
		return fmt.Sprintf("%s[%d]", f.name, f.baby)
	}
	return f.name
}

func fieldsFor(snapshot onboarding.Snapshot) []field {
	switch snapshot.Step {
	case onboarding.StepIdentity:
		return []field{
			{kind: fieldText, name: fieldFullName, label: "onboarding.field.full_name", placeholder: "Jane Doe"},
			{kind: fieldText, name: fieldDateOfBirth, label: "onboarding.field.date_of_birth", placeholder: "YYYY-MM-DD"},
			{kind: fieldChoice, name: fieldParentLevel, label: "onboarding.field.parent_level"},
		}
	case onboarding.StepBabyInfo:
		birthdateLabel := "onboarding.field.due_date"
		if snapshot.BirthdateRequired {
			birthdateLabel = "onboarding.field.birthdate"
		}
		fields := make([]field, 0, len(snapshot.Record.Babies)*5)
		for index := range snapshot.Record.Babies {
			fields = append(fields,
				field{kind: fieldText, name: fieldBabyName, label: "onboarding.field.baby_name", baby: index},
				field{kind: fieldChoice, name: fieldBabyGender, label: "onboarding.field.gender", baby: index},
				field{kind: fieldText, name: fieldBabyBirthdate, label: birthdateLabel, placeholder: "YYYY-MM-DD", baby: index},
				field{kind: fieldText, name: fieldBabyWeight, label: "onboarding.field.weight", placeholder: "3.4 kg", baby: index},
				field{kind: fieldText, name: fieldBabyHeight, label: "onboarding.field.height", placeholder: "50 cm", baby: index},
			)
		}
		return fields
	case onboarding.StepPreferences:
		catalog := onboarding.ConcernCatalog()
		fields := make([]field, 0, len(catalog)+3)
		for _, concern := range catalog {
			fields = append(fields, field{kind: fieldToggle, name: fieldConcern, concern: concern.Tag})
		}
		return append(fields,
			field{kind: fieldText, name: fieldCheckInTime, label: "onboarding.field.check_in_time", placeholder: "HH:MM"},
			field{kind: fieldToggle, name: fieldEmailNotifications, label: "onboarding.field.email_notifications"},
			field{kind: fieldToggle, name: fieldPushNotifications, label: "onboarding.field.push_notifications"},
		)
	default:
		return nil
	}
}

func textValue(f field, record onboarding.Record) string {
	switch f.name {
	case fieldFullName:
		return record.FullName
	case fieldDateOfBirth:
		return record.DateOfBirth
	case fieldCheckInTime:
		return record.CheckInTime
	}
	if !f.isBaby() || f.baby >= len(record.Babies) {
		return ""
	}
	baby := record.Babies[f.baby]
	switch f.name {
	case fieldBabyName:
		return baby.Name
	case fieldBabyBirthdate:
		return baby.Birthdate
	case fieldBabyWeight:
		return baby.Weight
	case fieldBabyHeight:
		return baby.Height
	default:
		return ""
	}
}

func toggled(f field, record onboarding.Record) bool {
	switch f.name {
	case fieldConcern:
		return record.HasConcern(f.concern)
	case fieldEmailNotifications:
		return record.EmailNotifications
	case fieldPushNotifications:
		return record.PushNotifications
	default:
		return false
	}
}

func nextParentLevel(current onboarding.ParentLevel, delta int) onboarding.ParentLevel {
	levels := onboarding.ParentLevels()
	return levels[cycleIndex(indexOf(levels, current), delta, len(levels))]
}

func nextGender(current onboarding.Gender, delta int) onboarding.Gender {
	genders := onboarding.Genders()
	return genders[cycleIndex(indexOf(genders, current), delta, len(genders))]
}

func indexOf[T comparable](values []T, target T) int {
	for index, value := range values {
		if value == target {
			return index
		}
	}
	return 0
}

func cycleIndex(index int, delta int, size int) int {
	return ((index+delta)%size + size) % size
}

var parentLevelLabels = map[onboarding.ParentLevel]string{
	onboarding.ParentLevelExpecting:   "onboarding.parent_level.expecting",
	onboarding.ParentLevelNewParent:   "onboarding.parent_level.new_parent",
	onboarding.ParentLevelExperienced: "onboarding.parent_level.experienced_parent",
}

var genderLabels = map[onboarding.Gender]string{
	onboarding.GenderBoy:   "onboarding.gender.boy",
	onboarding.GenderGirl:  "onboarding.gender.girl",
	onboarding.GenderOther: "onboarding.gender.other",
}
