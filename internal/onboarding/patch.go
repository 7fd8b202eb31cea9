package onboarding

// Patch is a shallow update of the record. Nil fields are left untouched;
// non-nil slices replace the stored value entirely.
type Patch struct {
	FullName           *string      `json:"fullName,omitempty"`
	DateOfBirth        *string      `json:"dateOfBirth,omitempty"`
	ParentLevel        *ParentLevel `json:"parentLevel,omitempty"`
	Babies             []Baby       `json:"babies,omitempty"`
	Concerns           []string     `json:"concerns,omitempty"`
	CheckInTime        *string      `json:"checkInTime,omitempty"`
	EmailNotifications *bool        `json:"emailNotifications,omitempty"`
	PushNotifications  *bool        `json:"pushNotifications,omitempty"`
}

type BabyPatch struct {
	Name      *string `json:"name,omitempty"`
	Gender    *Gender `json:"gender,omitempty"`
	Birthdate *string `json:"birthdate,omitempty"`
	Weight    *string `json:"weight,omitempty"`
	Height    *string `json:"height,omitempty"`
}

func (patch BabyPatch) apply(baby Baby) Baby {
	if patch.Name != nil {
		baby.Name = *patch.Name
	}
	if patch.Gender != nil {
		baby.Gender = *patch.Gender
	}
	if patch.Birthdate != nil {
		baby.Birthdate = *patch.Birthdate
	}
	if patch.Weight != nil {
		baby.Weight = *patch.Weight
	}
	if patch.Height != nil {
		baby.Height = *patch.Height
	}
	return baby
}

// apply merges the patch into a cloned record. Baby IDs that are missing or
// clash are reassigned from nextID; the updated counter is returned.
// An empty babies list is ignored so the record always keeps one baby.
func (patch Patch) apply(record Record, nextID uint64) (Record, uint64) {
	updated := record.Clone()

	if patch.FullName != nil {
		updated.FullName = *patch.FullName
	}
	if patch.DateOfBirth != nil {
		updated.DateOfBirth = *patch.DateOfBirth
	}
	if patch.ParentLevel != nil {
		updated.ParentLevel = *patch.ParentLevel
	}
	if len(patch.Babies) > 0 {
		seen := make(map[uint64]struct{}, len(patch.Babies))
		babies := make([]Baby, 0, len(patch.Babies))
		for _, baby := range patch.Babies {
			if _, duplicate := seen[baby.ID]; baby.ID == 0 || baby.ID >= nextID || duplicate {
				baby.ID = nextID
				nextID++
			}
			seen[baby.ID] = struct{}{}
			babies = append(babies, baby)
		}
		updated.Babies = babies
	}
	if patch.Concerns != nil {
		updated.Concerns = dedupeConcerns(patch.Concerns)
	}
	if patch.CheckInTime != nil {
		updated.CheckInTime = *patch.CheckInTime
	}
	if patch.EmailNotifications != nil {
		updated.EmailNotifications = *patch.EmailNotifications
	}
	if patch.PushNotifications != nil {
		updated.PushNotifications = *patch.PushNotifications
	}

	return updated, nextID
}

func dedupeConcerns(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}
