package dashboard

import (
	"errors"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/ericogr/tank-dashboard/pkg/output"
	"github.com/ericogr/tank-dashboard/pkg/render"
	"github.com/ericogr/tank-dashboard/pkg/sensor"
	"github.com/ericogr/tank-dashboard/pkg/store"
	"github.com/ericogr/tank-dashboard/pkg/volume"
)

// Log is the per-sensor measurement history the dashboard writes to and
// draws from.
type Log interface {
	Append(sensorID string, ts time.Time, depth, gallons float64) (float64, error)
	ReadAll(sensorID string) ([]store.Point, error)
}

// Surface displays the most recently rendered chart.
type Surface interface {
	Show(img image.Image)
}

type Options struct {
	TankDiameter  float64
	Interval      time.Duration
	HistoryPoints int
	ChartWidth    int
	ChartHeight   int
}

// Outcome reports how far a tick got.
type Outcome int

const (
	NoReading Outcome = iota
	AppendFailed
	HistoryFailed
	RenderFailed
	Drawn
	Panicked
)

func (o Outcome) String() string {
	switch o {
	case NoReading:
		return "no_reading"
	case AppendFailed:
		return "append_failed"
	case HistoryFailed:
		return "history_failed"
	case RenderFailed:
		return "render_failed"
	case Drawn:
		return "drawn"
	case Panicked:
		return "panicked"
	}
	return "unknown"
}

var (
	ErrAlreadyStarted = errors.New("dashboard already started")
	ErrStopped        = errors.New("dashboard stopped")
)

// Dashboard polls the sensor on a timer, logs each reading and redraws the
// chart. Ticks never overlap: the next one is armed only after the current
// one returns, whatever its outcome.
type Dashboard struct {
	sensor  sensor.Sensor
	log     Log
	outputs []output.Output
	surface Surface
	logger  *slog.Logger
	opts    Options

	mu      sync.Mutex
	timer   *time.Timer
	started bool
	stopped bool
	ticking sync.WaitGroup
}

func New(s sensor.Sensor, l Log, outs []output.Output, surface Surface, opts Options, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dashboard{sensor: s, log: l, outputs: outs, surface: surface, opts: opts, logger: logger}
}

// Start runs the first tick immediately in the background and re-arms the
// timer after every tick until Stop is called.
func (d *Dashboard) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return ErrStopped
	}
	if d.started {
		return ErrAlreadyStarted
	}
	d.started = true
	d.timer = time.AfterFunc(0, d.run)
	d.logger.Info("dashboard started", "interval", d.opts.Interval, "history_points", d.opts.HistoryPoints)
	return nil
}

// Stop prevents further ticks and waits for a running tick to return, so
// the sensor and outputs can be closed afterwards.
func (d *Dashboard) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	d.ticking.Wait()
	d.logger.Info("dashboard stopped")
}

func (d *Dashboard) run() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.ticking.Add(1)
	d.mu.Unlock()

	defer d.rearm()
	defer d.ticking.Done()
	d.safeTick()
}

func (d *Dashboard) rearm() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.stopped {
		d.timer = time.AfterFunc(d.opts.Interval, d.run)
	}
}

// safeTick keeps a panicking dependency from ending the timer loop.
func (d *Dashboard) safeTick() (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("tick panicked", "panic", r)
			out = Panicked
		}
	}()
	return d.Tick()
}

// Tick performs one poll, log and redraw cycle.
func (d *Dashboard) Tick() Outcome {
	r, ok := d.sensor.Read()
	if !ok {
		return NoReading
	}
	r.Volume = volume.Estimate(r.Depth, d.opts.TankDiameter)

	gallons, err := d.log.Append(r.SensorID, r.Timestamp, r.Depth, r.Volume)
	if err != nil {
		d.logger.Error("append reading", "sensor", r.SensorID, "error", err)
		return AppendFailed
	}
	r.Volume = gallons
	d.logger.Info("reading logged", "sensor", r.SensorID, "depth_in", r.Depth, "volume_gal", r.Volume)
	for _, o := range d.outputs {
		if err := o.Publish(r); err != nil {
			d.logger.Warn("output publish", "sensor", r.SensorID, "error", err)
		}
	}

	points, err := d.log.ReadAll(r.SensorID)
	if err != nil {
		d.logger.Error("read history", "sensor", r.SensorID, "error", err)
		return HistoryFailed
	}
	points = store.Tail(points, d.opts.HistoryPoints)

	img, err := render.DepthImage(r.SensorID, points, d.opts.ChartWidth, d.opts.ChartHeight)
	if err != nil {
		d.logger.Warn("render chart", "sensor", r.SensorID, "error", err)
		return RenderFailed
	}
	d.surface.Show(img)
	return Drawn
}
