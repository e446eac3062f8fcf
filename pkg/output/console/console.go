package console

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ericogr/tank-dashboard/pkg/config"
	"github.com/ericogr/tank-dashboard/pkg/output"
	"github.com/ericogr/tank-dashboard/pkg/sensor"
)

type ConsoleOutput struct {
	w io.Writer
}

func NewConsole() output.Output { return &ConsoleOutput{w: os.Stdout} }

// Factory adapts NewConsole to output.Factory.
func Factory(config.OutputConfig) (output.Output, error) { return NewConsole(), nil }

func (c *ConsoleOutput) Publish(r sensor.Reading) error {
	_, err := fmt.Fprintf(c.w, "%s sensor=%s depth=%.3f volume=%.2f\n", r.Timestamp.Format(time.RFC3339), r.SensorID, r.Depth, r.Volume)
	return err
}

func (c *ConsoleOutput) Close() error { return nil }
