package onboarding

type Step int

const (
	StepIdentity Step = iota + 1
	StepBabyInfo
	StepPreferences
	StepDone
)

// DataSteps is the number of steps that collect input.
const DataSteps = int(StepPreferences)

func (step Step) String() string {
	switch step {
	case StepIdentity:
		return "identity"
	case StepBabyInfo:
		return "baby_info"
	case StepPreferences:
		return "preferences"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

func (step Step) Terminal() bool {
	return step == StepDone
}
