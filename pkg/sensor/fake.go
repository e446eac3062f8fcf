package sensor

import (
	"math/rand"
	"sync"
	"time"
)

// FakeSensor produces a bounded random walk of depths for running the
// dashboard without hardware.
type FakeSensor struct {
	sensorID string
	depth    float64
	max      float64
	rnd      *rand.Rand
	mu       sync.Mutex
}

func NewFakeSensor(sensorID string, maxDepth float64, seed int64) *FakeSensor {
	return &FakeSensor{
		sensorID: sensorID,
		depth:    maxDepth / 2,
		max:      maxDepth,
		rnd:      rand.New(rand.NewSource(seed)),
	}
}

func (f *FakeSensor) Read() (Reading, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.depth += (f.rnd.Float64() - 0.5) * 2
	if f.depth < 0 {
		f.depth = 0
	}
	if f.depth > f.max {
		f.depth = f.max
	}
	return Reading{SensorID: f.sensorID, Timestamp: time.Now(), Depth: f.depth}, true
}

func (f *FakeSensor) Close() error { return nil }
