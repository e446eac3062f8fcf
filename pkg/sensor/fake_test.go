package sensor

import "testing"

func TestFakeSensorStaysInRange(t *testing.T) {
	f := NewFakeSensor("SIM_TANK", 10, 42)
	for i := 0; i < 500; i++ {
		r, ok := f.Read()
		if !ok {
			t.Fatalf("fake sensor returned no reading")
		}
		if r.SensorID != "SIM_TANK" {
			t.Fatalf("sensor id = %q", r.SensorID)
		}
		if r.Depth < 0 || r.Depth > 10 {
			t.Fatalf("depth %v out of range", r.Depth)
		}
	}
}
