package wheel

// Command is one of the closed set of wizard mutations accepted by
// Controller.Dispatch.
type Command interface {
	Kind() string
	command()
}

type RenameDimension struct {
	Index int
	Label string
}

type AddDimension struct{}

type RemoveDimension struct {
	Index int
}

type SetCurrentScore struct {
	Index int
	Score int
}

type SetVisionScore struct {
	Index int
	Score int
}

type SetReflection struct {
	Slot ReflectionSlot
	Text string
}

// SetLeveragePoint selects the dimension at Index. Index -1 clears the choice.
type SetLeveragePoint struct {
	Index int
}

type MicroActionField int

const (
	MicroActionWhat MicroActionField = iota
	MicroActionWhen
	MicroActionCheck1
	MicroActionCheck2
)

func (f MicroActionField) String() string {
	switch f {
	case MicroActionWhat:
		return "what"
	case MicroActionWhen:
		return "when"
	case MicroActionCheck1:
		return "check1"
	case MicroActionCheck2:
		return "check2"
	default:
		return "unknown"
	}
}

func (f MicroActionField) IsText() bool {
	return f == MicroActionWhat || f == MicroActionWhen
}

// SetMicroActionField sets Text for the what/when fields and Checked for the
// two self-checks.
type SetMicroActionField struct {
	Field   MicroActionField
	Text    string
	Checked bool
}

type Advance struct{}

type Retreat struct{}

type Restart struct{}

// Patch is a shallow merge: every non-nil field replaces the state field.
// It performs no invariant checks.
type Patch struct {
	Step        *Step
	Dimensions  []Dimension
	Reflections *Reflections
	Leverage    *int
	MicroAction *MicroAction
}

func (RenameDimension) Kind() string     { return "rename_dimension" }
func (AddDimension) Kind() string        { return "add_dimension" }
func (RemoveDimension) Kind() string     { return "remove_dimension" }
func (SetCurrentScore) Kind() string     { return "set_current_score" }
func (SetVisionScore) Kind() string      { return "set_vision_score" }
func (SetReflection) Kind() string       { return "set_reflection" }
func (SetLeveragePoint) Kind() string    { return "set_leverage_point" }
func (SetMicroActionField) Kind() string { return "set_micro_action_field" }
func (Advance) Kind() string             { return "advance" }
func (Retreat) Kind() string             { return "retreat" }
func (Restart) Kind() string             { return "restart" }
func (Patch) Kind() string               { return "patch" }

func (RenameDimension) command()     {}
func (AddDimension) command()        {}
func (RemoveDimension) command()     {}
func (SetCurrentScore) command()     {}
func (SetVisionScore) command()      {}
func (SetReflection) command()       {}
func (SetLeveragePoint) command()    {}
func (SetMicroActionField) command() {}
func (Advance) command()             {}
func (Retreat) command()             {}
func (Restart) command()             {}
func (Patch) command()               {}
