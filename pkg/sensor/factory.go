package sensor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ericogr/tank-dashboard/pkg/config"
)

// New builds the depth source selected by cfg.Source.
func New(cfg config.Config, logger *slog.Logger) (Sensor, error) {
	switch cfg.Source {
	case config.SourceSerial:
		return NewSerialSensor(cfg.Serial.Port, cfg.Serial.BaudRate, cfg.Serial.ReadTimeout, logger), nil
	case config.SourceADS1115:
		s, err := NewADS1115Sensor(cfg.SensorID, cfg.ADS1115, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.SourceSimulation:
		// a full tank is assumed to be as deep as it is wide
		return NewFakeSensor(cfg.SensorID, cfg.TankDiameter, time.Now().UnixNano()), nil
	}
	return nil, fmt.Errorf("unknown source %q", cfg.Source)
}
