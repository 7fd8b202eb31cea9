package onboarding

import "errors"

var (
	ErrMinimumViolation    = errors.New("at least one baby is required")
	ErrBabyIndexOutOfRange = errors.New("baby index out of range")
	ErrCompleted           = errors.New("onboarding already completed")
)

// Event is an intent dispatched to the wizard.
type Event interface {
	isEvent()
}

type (
	Advance       struct{}
	Retreat       struct{}
	AddBaby       struct{}
	Update        struct{ Patch Patch }
	RemoveBaby    struct{ Index int }
	ToggleConcern struct{ Tag string }
)

type UpdateBaby struct {
	Index int
	Patch BabyPatch
}

func (Advance) isEvent()       {}
func (Retreat) isEvent()       {}
func (AddBaby) isEvent()       {}
func (Update) isEvent()        {}
func (UpdateBaby) isEvent()    {}
func (RemoveBaby) isEvent()    {}
func (ToggleConcern) isEvent() {}

// State is the complete wizard state. Values are treated as immutable:
// Reduce always returns a fresh record and never touches its input.
type State struct {
	Step   Step
	Record Record
	// Errors holds the result of the last failed Advance on the current step.
	Errors     *ValidationErrors
	nextBabyID uint64
}

func NewState() State {
	return State{
		Step:       StepIdentity,
		Record:     NewRecord(),
		nextBabyID: 2,
	}
}

// Reduce applies event to state using the default validators.
func Reduce(state State, event Event) (State, error) {
	return DefaultValidators().Reduce(state, event)
}

// Reduce computes the next state. A failed Advance returns the unchanged step
// together with a *ValidationErrors; invariant violations return a sentinel
// error and the input state.
func (validators Validators) Reduce(state State, event Event) (State, error) {
	switch event.(type) {
	case Advance:
		return validators.advance(state)
	case Retreat:
		if state.Step.Terminal() {
			return state, nil
		}
		next := state
		if next.Step > StepIdentity {
			next.Step--
		}
		next.Errors = nil
		return next, nil
	}

	if state.Step.Terminal() {
		return state, ErrCompleted
	}

	next := state
	switch event := event.(type) {
	case Update:
		next.Record, next.nextBabyID = event.Patch.apply(state.Record, state.nextBabyID)
	case UpdateBaby:
		if event.Index < 0 || event.Index >= len(state.Record.Babies) {
			return state, ErrBabyIndexOutOfRange
		}
		next.Record = state.Record.Clone()
		next.Record.Babies[event.Index] = event.Patch.apply(next.Record.Babies[event.Index])
	case AddBaby:
		next.Record = state.Record.Clone()
		next.Record.Babies = append(next.Record.Babies, newBaby(state.nextBabyID))
		next.nextBabyID = state.nextBabyID + 1
	case RemoveBaby:
		if len(state.Record.Babies) <= 1 {
			return state, ErrMinimumViolation
		}
		if event.Index < 0 || event.Index >= len(state.Record.Babies) {
			return state, ErrBabyIndexOutOfRange
		}
		removed := state.Record.Babies[event.Index]
		next.Record = state.Record.Clone()
		next.Record.Babies = append(next.Record.Babies[:event.Index], next.Record.Babies[event.Index+1:]...)
		next.Errors = state.Errors.withoutBaby(removed.ID)
	case ToggleConcern:
		next.Record = state.Record.Clone()
		if next.Record.HasConcern(event.Tag) {
			concerns := make([]string, 0, len(next.Record.Concerns))
			for _, concern := range next.Record.Concerns {
				if concern != event.Tag {
					concerns = append(concerns, concern)
				}
			}
			next.Record.Concerns = concerns
		} else {
			next.Record.Concerns = append(next.Record.Concerns, event.Tag)
		}
	}
	return next, nil
}

func (validators Validators) advance(state State) (State, error) {
	if state.Step.Terminal() {
		return state, nil
	}

	next := state
	if validate := validators[state.Step]; validate != nil {
		if errs := validate(state.Record.Clone()); !errs.Empty() {
			next.Errors = errs
			return next, errs
		}
	}

	next.Errors = nil
	next.Step = state.Step + 1
	return next, nil
}
