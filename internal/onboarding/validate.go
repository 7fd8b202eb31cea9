package onboarding

import (
	"fmt"
	"sort"
)

type Field string

const (
	FieldFullName    Field = "fullName"
	FieldDateOfBirth Field = "dateOfBirth"
	FieldName        Field = "name"
	FieldBirthdate   Field = "birthdate"
	FieldConcerns    Field = "concerns"
)

const ProblemRequired = "required"

// ValidationErrors is the result of a failed step validation. Record-level
// problems live in Fields; per-baby problems are keyed by baby ID rather than
// position so that removing a baby never shifts errors onto its neighbours.
type ValidationErrors struct {
	Step   Step
	Fields map[Field]string
	Babies map[uint64]map[Field]string
}

func newValidationErrors(step Step) *ValidationErrors {
	return &ValidationErrors{
		Step:   step,
		Fields: map[Field]string{},
		Babies: map[uint64]map[Field]string{},
	}
}

func (errs *ValidationErrors) Error() string {
	return fmt.Sprintf("onboarding step %s: %d invalid field(s)", errs.Step, errs.count())
}

func (errs *ValidationErrors) Empty() bool {
	return errs == nil || errs.count() == 0
}

func (errs *ValidationErrors) count() int {
	total := len(errs.Fields)
	for _, fields := range errs.Babies {
		total += len(fields)
	}
	return total
}

func (errs *ValidationErrors) addField(field Field, problem string) {
	errs.Fields[field] = problem
}

func (errs *ValidationErrors) addBaby(id uint64, field Field, problem string) {
	fields, ok := errs.Babies[id]
	if !ok {
		fields = map[Field]string{}
		errs.Babies[id] = fields
	}
	fields[field] = problem
}

// Baby returns the problems recorded for the baby with the given ID.
func (errs *ValidationErrors) Baby(id uint64) map[Field]string {
	if errs == nil {
		return nil
	}
	return errs.Babies[id]
}

// Keys projects the errors onto the record's current baby order, producing
// keys such as "fullName" or "name[1]". Babies that no longer exist are skipped.
func (errs *ValidationErrors) Keys(record Record) map[string]string {
	if errs.Empty() {
		return nil
	}

	result := make(map[string]string, errs.count())
	for field, problem := range errs.Fields {
		result[string(field)] = problem
	}
	for id, fields := range errs.Babies {
		index := record.babyIndex(id)
		if index < 0 {
			continue
		}
		for field, problem := range fields {
			result[fmt.Sprintf("%s[%d]", field, index)] = problem
		}
	}
	return result
}

// SortedKeys is Keys in deterministic order, handy for logging.
func (errs *ValidationErrors) SortedKeys(record Record) []string {
	keys := errs.Keys(record)
	result := make([]string, 0, len(keys))
	for key := range keys {
		result = append(result, key)
	}
	sort.Strings(result)
	return result
}

func (errs *ValidationErrors) withoutBaby(id uint64) *ValidationErrors {
	if errs == nil {
		return nil
	}
	if _, ok := errs.Babies[id]; !ok {
		return errs
	}

	trimmed := newValidationErrors(errs.Step)
	for field, problem := range errs.Fields {
		trimmed.Fields[field] = problem
	}
	for babyID, fields := range errs.Babies {
		if babyID == id {
			continue
		}
		trimmed.Babies[babyID] = fields
	}
	if trimmed.Empty() {
		return nil
	}
	return trimmed
}

// Validator checks the subset of the record owned by one step and returns nil
// when the step may be left.
type Validator func(record Record) *ValidationErrors

type Validators map[Step]Validator

func DefaultValidators() Validators {
	return Validators{
		StepIdentity:    ValidateIdentity,
		StepBabyInfo:    ValidateBabyInfo,
		StepPreferences: ValidatePreferences,
	}
}

func ValidateIdentity(record Record) *ValidationErrors {
	errs := newValidationErrors(StepIdentity)
	if isBlank(record.FullName) {
		errs.addField(FieldFullName, ProblemRequired)
	}
	if record.DateOfBirth == "" {
		errs.addField(FieldDateOfBirth, ProblemRequired)
	}
	return nilIfEmpty(errs)
}

func ValidateBabyInfo(record Record) *ValidationErrors {
	errs := newValidationErrors(StepBabyInfo)
	birthdateRequired := record.BirthdateRequired()
	for _, baby := range record.Babies {
		if isBlank(baby.Name) {
			errs.addBaby(baby.ID, FieldName, ProblemRequired)
		}
		if birthdateRequired && baby.Birthdate == "" {
			errs.addBaby(baby.ID, FieldBirthdate, ProblemRequired)
		}
	}
	return nilIfEmpty(errs)
}

func ValidatePreferences(record Record) *ValidationErrors {
	errs := newValidationErrors(StepPreferences)
	if len(record.Concerns) == 0 {
		errs.addField(FieldConcerns, ProblemRequired)
	}
	return nilIfEmpty(errs)
}

func nilIfEmpty(errs *ValidationErrors) *ValidationErrors {
	if errs.Empty() {
		return nil
	}
	return errs
}
