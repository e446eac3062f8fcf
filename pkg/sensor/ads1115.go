package sensor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ericogr/tank-dashboard/pkg/config"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

const (
	pointerConv   = 0x00
	pointerConfig = 0x01
	pgaFullScale  = 4.096
)

// ADS1115Sensor reads a pressure transducer on one ADS1115 channel and
// converts the voltage to inches of water.
type ADS1115Sensor struct {
	dev        *i2c.Dev
	bus        i2c.BusCloser
	sensorID   string
	channel    int
	sampleRate int
	scale      float64
	offset     float64
	log        *slog.Logger
}

func NewADS1115Sensor(sensorID string, cfg config.ADS1115Config, logger *slog.Logger) (*ADS1115Sensor, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return nil, fmt.Errorf("open i2c: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	dev := &i2c.Dev{Addr: uint16(cfg.Address), Bus: bus}
	return &ADS1115Sensor{
		dev:        dev,
		bus:        bus,
		sensorID:   sensorID,
		channel:    cfg.Channel,
		sampleRate: cfg.SampleRate,
		scale:      cfg.CalibrationScale,
		offset:     cfg.CalibrationOffset,
		log:        logger,
	}, nil
}

func (s *ADS1115Sensor) Close() error {
	if s.bus != nil {
		return s.bus.Close()
	}
	return nil
}

func (s *ADS1115Sensor) Read() (Reading, bool) {
	raw, err := s.convert()
	if err != nil {
		s.log.Warn("ads1115 read error", "channel", s.channel, "error", err)
		return Reading{}, false
	}
	volts := rawToVolts(raw)
	depth := volts*s.scale + s.offset
	s.log.Debug("received", "channel", s.channel, "raw", raw, "volts", volts)
	return Reading{SensorID: s.sensorID, Timestamp: time.Now(), Depth: depth}, true
}

func (s *ADS1115Sensor) convert() (int16, error) {
	msb, lsb, err := configForChannel(s.channel, s.sampleRate)
	if err != nil {
		return 0, err
	}
	if err := s.dev.Tx([]byte{pointerConfig, msb, lsb}, nil); err != nil {
		return 0, fmt.Errorf("write config: %w", err)
	}
	// wait for the single-shot conversion
	delayMs := int(1000.0/float64(s.sampleRate)) + 2
	time.Sleep(time.Duration(delayMs) * time.Millisecond)
	readBuf := make([]byte, 2)
	if err := s.dev.Tx([]byte{pointerConv}, readBuf); err != nil {
		return 0, fmt.Errorf("read conv: %w", err)
	}
	return int16(readBuf[0])<<8 | int16(readBuf[1]), nil
}

func rawToVolts(raw int16) float64 {
	return float64(raw) * pgaFullScale / 32768.0
}

// configForChannel builds the single-shot config register for a channel
// measured against GND at the ±4.096V range.
func configForChannel(channel, sampleRate int) (byte, byte, error) {
	var mux byte
	switch channel {
	case 0:
		mux = 0x4
	case 1:
		mux = 0x5
	case 2:
		mux = 0x6
	case 3:
		mux = 0x7
	default:
		return 0, 0, fmt.Errorf("invalid channel %d", channel)
	}
	pga := byte(0x1)
	var dr byte
	switch sampleRate {
	case 8:
		dr = 0x0
	case 16:
		dr = 0x1
	case 32:
		dr = 0x2
	case 64:
		dr = 0x3
	case 128:
		dr = 0x4
	case 250:
		dr = 0x5
	case 475:
		dr = 0x6
	case 860:
		dr = 0x7
	default:
		dr = 0x4
	}
	var reg uint16 = 0x8000 // OS = 1 (start single conversion)
	reg |= uint16(mux) << 12
	reg |= uint16(pga) << 9
	reg |= 1 << 8 // single-shot mode
	reg |= uint16(dr) << 5
	reg |= 0x3 // comparator disabled
	return byte(reg >> 8), byte(reg & 0xFF), nil
}
