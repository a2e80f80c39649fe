package app

import (
	"lifewheel/internal/logging"
	"lifewheel/internal/wheel"
)

// logObserver records controller transitions. Step moves are logged at info,
// field edits at debug.
type logObserver struct {
	logger logging.Logger
}

func newLogObserver(logger logging.Logger) logObserver {
	if logger == nil {
		logger = logging.Nop()
	}
	return logObserver{logger: logger}
}

func (o logObserver) StateChanged(cmd wheel.Command, before, after wheel.State) {
	fields := []logging.Field{
		logging.F("command", cmd.Kind()),
		logging.F("step", after.Step),
	}
	switch cmd.(type) {
	case wheel.Advance, wheel.Retreat, wheel.Restart:
		fields = append(fields,
			logging.F("from", before.Step),
			logging.F("dimensions", len(after.Dimensions)),
			logging.F("leverage", after.LeveragePoint()),
		)
		o.logger.Info("step_changed", fields...)
	case wheel.AddDimension, wheel.RemoveDimension:
		fields = append(fields, logging.F("dimensions", len(after.Dimensions)))
		o.logger.Debug("dimensions_changed", fields...)
	default:
		if !o.logger.Enabled(logging.Debug) {
			return
		}
		o.logger.Debug("state_changed", fields...)
	}
}
