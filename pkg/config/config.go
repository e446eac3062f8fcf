package config

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	SourceSerial     = "serial"
	SourceADS1115    = "ads1115"
	SourceSimulation = "simulation"
)

type SerialConfig struct {
	Port        string
	BaudRate    int
	ReadTimeout time.Duration
}

// ADS1115Config describes an analog pressure transducer wired to one
// ADS1115 channel. Calibration converts volts to inches of water.
type ADS1115Config struct {
	Bus               string
	Address           int
	Channel           int
	SampleRate        int
	CalibrationScale  float64
	CalibrationOffset float64
}

type OutputConfig struct {
	Type string
}

type Config struct {
	Source        string
	SensorID      string
	Serial        SerialConfig
	ADS1115       ADS1115Config
	TankDiameter  float64
	Interval      time.Duration
	DataDir       string
	HistoryPoints int
	Outputs       []OutputConfig
	WindowTitle   string
	ChartWidth    int
	ChartHeight   int
	LogLevel      string
}

func DefaultConfig() Config {
	return Config{
		Source:   SourceSerial,
		SensorID: "DRY_CREEK",
		Serial: SerialConfig{
			Port:        "/dev/ttyACM0",
			BaudRate:    115200,
			ReadTimeout: 5 * time.Second,
		},
		ADS1115: ADS1115Config{
			Bus:              "2",
			Address:          0x48,
			Channel:          0,
			SampleRate:       128,
			CalibrationScale: 1.0,
		},
		TankDiameter:  96,
		Interval:      60 * time.Second,
		DataDir:       "tank_data",
		HistoryPoints: 144,
		WindowTitle:   "Tank Dashboard",
		ChartWidth:    800,
		ChartHeight:   400,
		LogLevel:      "info",
	}
}

// LoadFromFlags loads configuration from the process command line.
func LoadFromFlags() (Config, error) {
	return Load(os.Args[1:])
}

// Load parses args on top of DefaultConfig. Flags left unset keep their
// default value.
func Load(args []string) (Config, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet("tank-dashboard", flag.ContinueOnError)
	flagSource := fs.String("source", "", "depth source: serial|ads1115|simulation")
	flagSensorID := fs.String("sensor-id", "", "sensor id for ads1115 and simulation sources")
	flagPort := fs.String("serial-port", "", "serial device path")
	flagBaud := fs.Int("baud", -1, "serial baud rate")
	flagReadTimeout := fs.Duration("read-timeout", -1, "serial read timeout")
	flagI2CBus := fs.String("i2c-bus", "", "I2C bus (e.g., '2' -> /dev/i2c-2)")
	flagI2CAddStr := fs.String("i2c-address", "", "I2C address (decimal or 0x hex)")
	flagChannel := fs.Int("ads-channel", -1, "ADS1115 input channel 0-3")
	flagSampleRate := fs.Int("sample-rate", -1, "ADS1115 sample rate (SPS)")
	flagCalibration := fs.Float64("calibration", math.NaN(), "transducer scale in inches per volt")
	flagCalOffset := fs.Float64("calibration-offset", math.NaN(), "transducer offset in inches")
	flagDiameter := fs.Float64("tank-diameter", math.NaN(), "tank diameter in inches")
	flagInterval := fs.Duration("interval", -1, "poll interval")
	flagDataDir := fs.String("data-dir", "", "directory holding <sensor>_log.csv files")
	flagHistory := fs.Int("history-points", -1, "number of trailing points drawn")
	flagOutputs := fs.String("outputs", "", "Comma-separated outputs (console)")
	flagLogLevel := fs.String("log-level", "", "debug|info|warn|error")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *flagSource != "" {
		cfg.Source = strings.ToLower(*flagSource)
	}
	if *flagSensorID != "" {
		cfg.SensorID = *flagSensorID
	}
	if *flagPort != "" {
		cfg.Serial.Port = *flagPort
	}
	if *flagBaud != -1 {
		cfg.Serial.BaudRate = *flagBaud
	}
	if *flagReadTimeout != -1 {
		cfg.Serial.ReadTimeout = *flagReadTimeout
	}
	if *flagI2CBus != "" {
		cfg.ADS1115.Bus = *flagI2CBus
	}
	if *flagI2CAddStr != "" {
		v, err := parseIntOrHex(*flagI2CAddStr)
		if err != nil {
			return cfg, fmt.Errorf("i2c-address: %w", err)
		}
		cfg.ADS1115.Address = v
	}
	if *flagChannel != -1 {
		cfg.ADS1115.Channel = *flagChannel
	}
	if *flagSampleRate != -1 {
		cfg.ADS1115.SampleRate = *flagSampleRate
	}
	if !math.IsNaN(*flagCalibration) {
		cfg.ADS1115.CalibrationScale = *flagCalibration
	}
	if !math.IsNaN(*flagCalOffset) {
		cfg.ADS1115.CalibrationOffset = *flagCalOffset
	}
	if !math.IsNaN(*flagDiameter) {
		cfg.TankDiameter = *flagDiameter
	}
	if *flagInterval != -1 {
		cfg.Interval = *flagInterval
	}
	if *flagDataDir != "" {
		cfg.DataDir = *flagDataDir
	}
	if *flagHistory != -1 {
		cfg.HistoryPoints = *flagHistory
	}
	if *flagOutputs != "" {
		parts := parseCSV(*flagOutputs)
		outs := make([]OutputConfig, 0, len(parts))
		for _, p := range parts {
			outs = append(outs, OutputConfig{Type: strings.ToLower(p)})
		}
		cfg.Outputs = outs
	}
	if *flagLogLevel != "" {
		cfg.LogLevel = *flagLogLevel
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Source {
	case SourceSerial:
		if c.Serial.Port == "" {
			return errors.New("serial-port must be set")
		}
		if c.Serial.BaudRate <= 0 {
			return errors.New("baud must be > 0")
		}
		if c.Serial.ReadTimeout <= 0 {
			return errors.New("read-timeout must be > 0")
		}
	case SourceADS1115:
		if c.ADS1115.Channel < 0 || c.ADS1115.Channel > 3 {
			return fmt.Errorf("ads-channel %d out of range 0-3", c.ADS1115.Channel)
		}
		if c.ADS1115.SampleRate <= 0 {
			return errors.New("sample-rate must be > 0")
		}
	case SourceSimulation:
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}
	if c.SensorID == "" {
		return errors.New("sensor-id must be set")
	}
	if c.TankDiameter <= 0 {
		return errors.New("tank-diameter must be > 0")
	}
	if c.Interval <= 0 {
		return errors.New("interval must be > 0")
	}
	if c.HistoryPoints <= 0 {
		return errors.New("history-points must be > 0")
	}
	if c.DataDir == "" {
		return errors.New("data-dir must be set")
	}
	for _, o := range c.Outputs {
		if o.Type != "console" {
			return fmt.Errorf("unknown output %q", o.Type)
		}
	}
	return nil
}

func parseIntOrHex(s string) (int, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseInt(s[2:], 16, 0)
		return int(v), err
	}
	v, err := strconv.Atoi(s)
	return v, err
}

func parseCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
