// Package onboarding implements the parent onboarding wizard: a linear state
// machine over a partially filled profile record with per-step validation.
package onboarding

import "strings"

type ParentLevel string

const (
	ParentLevelExpecting   ParentLevel = "Expecting"
	ParentLevelNewParent   ParentLevel = "New Parent"
	ParentLevelExperienced ParentLevel = "Experienced Parent"
)

func (level ParentLevel) Valid() bool {
	switch level {
	case ParentLevelExpecting, ParentLevelNewParent, ParentLevelExperienced:
		return true
	default:
		return false
	}
}

func ParentLevels() []ParentLevel {
	return []ParentLevel{ParentLevelExpecting, ParentLevelNewParent, ParentLevelExperienced}
}

type Gender string

const (
	GenderBoy   Gender = "Boy"
	GenderGirl  Gender = "Girl"
	GenderOther Gender = "Other/Prefer not to say"
)

func (gender Gender) Valid() bool {
	switch gender {
	case GenderBoy, GenderGirl, GenderOther:
		return true
	default:
		return false
	}
}

func Genders() []Gender {
	return []Gender{GenderBoy, GenderGirl, GenderOther}
}

const DefaultCheckInTime = "09:00"

// Baby is one child entry of the record. ID is assigned by the wizard and
// stays stable while babies are added or removed around it.
type Baby struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Gender    Gender `json:"gender"`
	Birthdate string `json:"birthdate"`
	Weight    string `json:"weight"`
	Height    string `json:"height"`
}

func newBaby(id uint64) Baby {
	return Baby{ID: id, Gender: GenderBoy}
}

type Record struct {
	FullName           string      `json:"fullName"`
	DateOfBirth        string      `json:"dateOfBirth"`
	ParentLevel        ParentLevel `json:"parentLevel"`
	Babies             []Baby      `json:"babies"`
	Concerns           []string    `json:"concerns"`
	CheckInTime        string      `json:"checkInTime"`
	EmailNotifications bool        `json:"emailNotifications"`
	PushNotifications  bool        `json:"pushNotifications"`
}

// NewRecord returns the record a fresh wizard starts from.
func NewRecord() Record {
	return Record{
		ParentLevel:        ParentLevelExpecting,
		Babies:             []Baby{newBaby(1)},
		Concerns:           []string{},
		CheckInTime:        DefaultCheckInTime,
		EmailNotifications: true,
		PushNotifications:  true,
	}
}

// Clone returns a deep copy so callers never share slices with the wizard.
func (record Record) Clone() Record {
	cloned := record
	cloned.Babies = append([]Baby(nil), record.Babies...)
	cloned.Concerns = append([]string{}, record.Concerns...)
	return cloned
}

func (record Record) HasConcern(tag string) bool {
	for _, concern := range record.Concerns {
		if concern == tag {
			return true
		}
	}
	return false
}

// BirthdateRequired reports whether every baby needs a birthdate. Expecting
// parents enter an optional due date instead.
func (record Record) BirthdateRequired() bool {
	return record.ParentLevel != ParentLevelExpecting
}

func (record Record) babyIndex(id uint64) int {
	for index, baby := range record.Babies {
		if baby.ID == id {
			return index
		}
	}
	return -1
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
