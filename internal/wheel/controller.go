package wheel

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDimensionLimit  = errors.New("dimension count limit reached")
	ErrIndexOutOfRange = errors.New("dimension index out of range")
	ErrScoreOutOfRange = errors.New("score out of range")
	ErrStepIncomplete  = errors.New("step is not complete")
	ErrTerminalStep    = errors.New("already at the final step")
	ErrUnknownField    = errors.New("unknown field")
	ErrUnknownCommand  = errors.New("unknown command")
)

// errNoChange marks a command that was accepted but left state untouched.
var errNoChange = errors.New("no change")

// Observer is notified after every command that changed state.
type Observer interface {
	StateChanged(cmd Command, before, after State)
}

type ObserverFunc func(cmd Command, before, after State)

func (f ObserverFunc) StateChanged(cmd Command, before, after State) {
	f(cmd, before, after)
}

type Options struct {
	// DefaultLabels seeds the wheel on start and on restart. Falls back to
	// DefaultDimensionLabels when it does not hold 6 to 10 labels.
	DefaultLabels     []string
	MicroActionPolicy MicroActionPolicy
}

// Controller owns the wizard state. It is driven from a single event loop and
// is not safe for concurrent use.
type Controller struct {
	state     State
	labels    []string
	policy    MicroActionPolicy
	guards    GuardTable
	nextID    int
	observers []Observer
}

func NewController(opts Options) *Controller {
	labels, ok := NormalizeLabels(opts.DefaultLabels)
	if !ok {
		labels = append([]string(nil), DefaultDimensionLabels...)
	}
	policy := opts.MicroActionPolicy
	if policy == "" {
		policy = MicroActionStrict
	}
	c := &Controller{
		labels: labels,
		policy: policy,
		guards: NewGuardTable(policy),
	}
	c.reset()
	return c
}

func (c *Controller) reset() {
	c.state = NewState(c.labels)
	c.nextID = c.state.maxID() + 1
}

// InitialState returns the record the controller starts from and restarts to.
func (c *Controller) InitialState() State {
	return NewState(c.labels)
}

func (c *Controller) Snapshot() State {
	return c.state.Clone()
}

func (c *Controller) Step() Step {
	return c.state.Step
}

func (c *Controller) Policy() MicroActionPolicy {
	return c.policy
}

func (c *Controller) Guards() GuardTable {
	return c.guards
}

func (c *Controller) CanAdvance() bool {
	return c.state.Step < StepSummary && c.guards.Allows(c.state)
}

// View describes the active step for the current state.
func (c *Controller) View() StepView {
	return Describe(c.state.Clone(), c.policy)
}

func (c *Controller) Subscribe(observer Observer) {
	if observer == nil {
		return
	}
	c.observers = append(c.observers, observer)
}

// Update applies a shallow merge without checking invariants.
func (c *Controller) Update(patch Patch) {
	_ = c.Dispatch(patch)
}

func (c *Controller) Dispatch(cmd Command) error {
	before := c.state.Clone()
	var err error
	switch cmd := cmd.(type) {
	case RenameDimension:
		err = c.renameDimension(cmd)
	case AddDimension:
		err = c.addDimension()
	case RemoveDimension:
		err = c.removeDimension(cmd)
	case SetCurrentScore:
		err = c.setScore(cmd.Index, cmd.Score, func(d *Dimension, v int) { d.Current = v })
	case SetVisionScore:
		err = c.setScore(cmd.Index, cmd.Score, func(d *Dimension, v int) { d.Vision = v })
	case SetReflection:
		err = c.setReflection(cmd)
	case SetLeveragePoint:
		err = c.setLeveragePoint(cmd)
	case SetMicroActionField:
		err = c.setMicroActionField(cmd)
	case Advance:
		err = c.advance()
	case Retreat:
		err = c.retreat()
	case Restart:
		c.reset()
	case Patch:
		c.applyPatch(cmd)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
	if errors.Is(err, errNoChange) {
		return nil
	}
	if err != nil {
		return err
	}
	after := c.state.Clone()
	for _, observer := range c.observers {
		observer.StateChanged(cmd, before, after)
	}
	return nil
}

func (c *Controller) renameDimension(cmd RenameDimension) error {
	if !c.validIndex(cmd.Index) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, cmd.Index)
	}
	c.state.Dimensions[cmd.Index].Label = cmd.Label
	return nil
}

func (c *Controller) addDimension() error {
	if len(c.state.Dimensions) >= MaxDimensions {
		return fmt.Errorf("%w: at most %d", ErrDimensionLimit, MaxDimensions)
	}
	c.state.Dimensions = append(c.state.Dimensions, Dimension{
		ID:      c.nextID,
		Label:   placeholderLabel(c.state.Dimensions),
		Current: DefaultScore,
		Vision:  DefaultScore,
	})
	c.nextID++
	return nil
}

func (c *Controller) removeDimension(cmd RemoveDimension) error {
	if len(c.state.Dimensions) <= MinDimensions {
		return fmt.Errorf("%w: at least %d", ErrDimensionLimit, MinDimensions)
	}
	if !c.validIndex(cmd.Index) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, cmd.Index)
	}
	removed := c.state.Dimensions[cmd.Index]
	dims := make([]Dimension, 0, len(c.state.Dimensions)-1)
	dims = append(dims, c.state.Dimensions[:cmd.Index]...)
	dims = append(dims, c.state.Dimensions[cmd.Index+1:]...)
	c.state.Dimensions = dims
	if c.state.Leverage == removed.ID {
		c.state.Leverage = 0
	}
	return nil
}

func (c *Controller) setScore(index, score int, set func(*Dimension, int)) error {
	if !c.validIndex(index) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if !ValidScore(score) {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrScoreOutOfRange, score, MinScore, MaxScore)
	}
	set(&c.state.Dimensions[index], score)
	return nil
}

func (c *Controller) setReflection(cmd SetReflection) error {
	switch cmd.Slot {
	case ReflectionReality:
		c.state.Reflections.Reality = cmd.Text
	case ReflectionVision:
		c.state.Reflections.Vision = cmd.Text
	case ReflectionLeverage:
		c.state.Reflections.Leverage = cmd.Text
	default:
		return fmt.Errorf("%w: reflection %d", ErrUnknownField, cmd.Slot)
	}
	return nil
}

func (c *Controller) setLeveragePoint(cmd SetLeveragePoint) error {
	if cmd.Index == -1 {
		c.state.Leverage = 0
		return nil
	}
	if !c.validIndex(cmd.Index) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, cmd.Index)
	}
	c.state.Leverage = c.state.Dimensions[cmd.Index].ID
	return nil
}

func (c *Controller) setMicroActionField(cmd SetMicroActionField) error {
	action := &c.state.MicroAction
	switch cmd.Field {
	case MicroActionWhat:
		action.What = cmd.Text
	case MicroActionWhen:
		action.When = cmd.Text
	case MicroActionCheck1:
		action.Check1 = cmd.Checked
	case MicroActionCheck2:
		action.Check2 = cmd.Checked
	default:
		return fmt.Errorf("%w: micro action %d", ErrUnknownField, cmd.Field)
	}
	return nil
}

func (c *Controller) advance() error {
	from := c.state.Step
	if from >= StepSummary {
		return ErrTerminalStep
	}
	if !c.guards.Allows(c.state) {
		return fmt.Errorf("%w: %s", ErrStepIncomplete, from)
	}
	next := from + 1
	if from == StepReality && next == StepVision {
		// Vision starts from the current scores, once per forward transition.
		for i := range c.state.Dimensions {
			c.state.Dimensions[i].Vision = c.state.Dimensions[i].Current
		}
	}
	c.state.Step = next
	return nil
}

func (c *Controller) retreat() error {
	if c.state.Step <= StepSetup {
		c.state.Step = StepSetup
		return errNoChange
	}
	c.state.Step--
	return nil
}

func (c *Controller) applyPatch(patch Patch) {
	if patch.Step != nil {
		c.state.Step = *patch.Step
	}
	if patch.Dimensions != nil {
		dims := append([]Dimension(nil), patch.Dimensions...)
		c.state.Dimensions = dims
		next := c.state.maxID() + 1
		if next < c.nextID {
			next = c.nextID
		}
		for i := range c.state.Dimensions {
			if c.state.Dimensions[i].ID == 0 {
				c.state.Dimensions[i].ID = next
				next++
			}
		}
		c.nextID = next
	}
	if patch.Reflections != nil {
		c.state.Reflections = *patch.Reflections
	}
	if patch.Leverage != nil {
		c.state.Leverage = *patch.Leverage
	}
	if patch.MicroAction != nil {
		c.state.MicroAction = *patch.MicroAction
	}
}

func (c *Controller) validIndex(index int) bool {
	return index >= 0 && index < len(c.state.Dimensions)
}

func placeholderLabel(dims []Dimension) string {
	taken := make(map[string]struct{}, len(dims))
	for _, dim := range dims {
		taken[strings.TrimSpace(dim.Label)] = struct{}{}
	}
	for n := len(dims) + 1; ; n++ {
		label := fmt.Sprintf("New dimension %d", n)
		if _, ok := taken[label]; !ok {
			return label
		}
	}
}
