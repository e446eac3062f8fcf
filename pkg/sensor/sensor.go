package sensor

import "time"

// Reading is one depth measurement. Volume is zero until the dashboard
// estimates it.
type Reading struct {
	SensorID  string    `json:"sensor_id"`
	Timestamp time.Time `json:"timestamp"`
	Depth     float64   `json:"depth_inches"`
	Volume    float64   `json:"volume_gallons"`
}

// Sensor yields at most one reading per call. A false result means no
// reading was available; the cause has already been logged.
type Sensor interface {
	Read() (Reading, bool)
	Close() error
}
