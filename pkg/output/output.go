package output

import (
	"fmt"

	"github.com/ericogr/tank-dashboard/pkg/config"
	"github.com/ericogr/tank-dashboard/pkg/sensor"
)

// Output receives every reading after it has been logged.
type Output interface {
	Publish(sensor.Reading) error
	Close() error
}

// Factory builds an output from its config entry.
type Factory func(config.OutputConfig) (Output, error)

// Build constructs one output per entry using the factory registered for
// its type.
func Build(cfgs []config.OutputConfig, factories map[string]Factory) ([]Output, error) {
	outs := make([]Output, 0, len(cfgs))
	for _, c := range cfgs {
		f, ok := factories[c.Type]
		if !ok {
			closeAll(outs)
			return nil, fmt.Errorf("unknown output type %q", c.Type)
		}
		o, err := f(c)
		if err != nil {
			closeAll(outs)
			return nil, fmt.Errorf("output %s: %w", c.Type, err)
		}
		outs = append(outs, o)
	}
	return outs, nil
}

func closeAll(outs []Output) {
	for _, o := range outs {
		_ = o.Close()
	}
}
