package onboarding

// SubmitFunc receives the finished record once the preferences step passes.
type SubmitFunc func(record Record)

type Option func(*Wizard)

// WithSubmit sets the callback invoked exactly once on completion.
func WithSubmit(submit SubmitFunc) Option {
	return func(wizard *Wizard) {
		wizard.submit = submit
	}
}

// WithValidator replaces the validator for one step. A nil validator lets the
// step pass unconditionally.
func WithValidator(step Step, validator Validator) Option {
	return func(wizard *Wizard) {
		wizard.validators[step] = validator
	}
}

// Wizard owns the step cursor and the record. It is not safe for concurrent
// use; hosts that share a wizard must serialise calls.
type Wizard struct {
	state      State
	validators Validators
	submit     SubmitFunc
}

func New(options ...Option) *Wizard {
	wizard := &Wizard{
		state:      NewState(),
		validators: DefaultValidators(),
	}
	for _, option := range options {
		option(wizard)
	}
	return wizard
}

// Dispatch applies an event and fires the submit callback when the event
// moved the wizard into the terminal step.
func (wizard *Wizard) Dispatch(event Event) error {
	previous := wizard.state.Step
	next, err := wizard.validators.Reduce(wizard.state, event)
	wizard.state = next

	if !previous.Terminal() && next.Step.Terminal() && wizard.submit != nil {
		wizard.submit(next.Record.Clone())
	}
	return err
}

func (wizard *Wizard) Update(patch Patch) error {
	return wizard.Dispatch(Update{Patch: patch})
}

func (wizard *Wizard) UpdateBaby(index int, patch BabyPatch) error {
	return wizard.Dispatch(UpdateBaby{Index: index, Patch: patch})
}

func (wizard *Wizard) Advance() error {
	return wizard.Dispatch(Advance{})
}

func (wizard *Wizard) Retreat() {
	_ = wizard.Dispatch(Retreat{})
}

func (wizard *Wizard) AddBaby() error {
	return wizard.Dispatch(AddBaby{})
}

func (wizard *Wizard) RemoveBaby(index int) error {
	return wizard.Dispatch(RemoveBaby{Index: index})
}

func (wizard *Wizard) ToggleConcern(tag string) error {
	return wizard.Dispatch(ToggleConcern{Tag: tag})
}

func (wizard *Wizard) Step() Step {
	return wizard.state.Step
}

// Record returns a copy of the current record.
func (wizard *Wizard) Record() Record {
	return wizard.state.Record.Clone()
}

// Errors returns the problems from the last failed Advance, or nil.
func (wizard *Wizard) Errors() *ValidationErrors {
	return wizard.state.Errors
}

// Snapshot is the read-only view handed to presentation layers.
type Snapshot struct {
	Step              Step              `json:"step"`
	StepName          string            `json:"stepName"`
	TotalSteps        int               `json:"totalSteps"`
	Completed         bool              `json:"completed"`
	Record            Record            `json:"record"`
	Errors            map[string]string `json:"errors,omitempty"`
	CanRemoveBaby     bool              `json:"canRemoveBaby"`
	BirthdateRequired bool              `json:"birthdateRequired"`
}

func (wizard *Wizard) Snapshot() Snapshot {
	record := wizard.state.Record.Clone()
	return Snapshot{
		Step:              wizard.state.Step,
		StepName:          wizard.state.Step.String(),
		TotalSteps:        DataSteps,
		Completed:         wizard.state.Step.Terminal(),
		Record:            record,
		Errors:            wizard.state.Errors.Keys(record),
		CanRemoveBaby:     !wizard.state.Step.Terminal() && len(record.Babies) > 1,
		BirthdateRequired: record.BirthdateRequired(),
	}
}
