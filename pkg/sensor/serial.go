package sensor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.bug.st/serial"
)

const (
	frameMarker  = "DRY CREEK"
	depthToken   = "CREEK"
	frameSensor  = "DRY_CREEK"
	maxFrameSize = 4096
)

// Port is the subset of serial.Port used to read one frame.
type Port interface {
	io.ReadCloser
	SetReadTimeout(t time.Duration) error
}

// PortOpener opens a serial device at the given baud rate.
type PortOpener func(name string, baud int) (Port, error)

func openSerialPort(name string, baud int) (Port, error) {
	p, err := serial.Open(name, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// SerialSensor opens the device on every Read, reads a single
// newline-terminated frame and closes it again.
type SerialSensor struct {
	port    string
	baud    int
	timeout time.Duration
	open    PortOpener
	log     *slog.Logger
}

func NewSerialSensor(port string, baud int, timeout time.Duration, logger *slog.Logger) *SerialSensor {
	return NewSerialSensorWithOpener(port, baud, timeout, openSerialPort, logger)
}

func NewSerialSensorWithOpener(port string, baud int, timeout time.Duration, open PortOpener, logger *slog.Logger) *SerialSensor {
	if logger == nil {
		logger = slog.Default()
	}
	return &SerialSensor{port: port, baud: baud, timeout: timeout, open: open, log: logger}
}

func (s *SerialSensor) Read() (Reading, bool) {
	line, err := s.readLine()
	if err != nil {
		s.log.Warn("serial read error", "port", s.port, "error", err)
		return Reading{}, false
	}
	s.log.Debug("received", "line", line)
	id, depth, ok := ParseFrame(line)
	if !ok {
		return Reading{}, false
	}
	return Reading{SensorID: id, Timestamp: time.Now(), Depth: depth}, true
}

func (s *SerialSensor) Close() error { return nil }

func (s *SerialSensor) readLine() (string, error) {
	p, err := s.open(s.port, s.baud)
	if err != nil {
		return "", fmt.Errorf("open serial: %w", err)
	}
	defer p.Close()
	if err := p.SetReadTimeout(s.timeout); err != nil {
		return "", fmt.Errorf("set read timeout: %w", err)
	}
	raw, err := readFrame(p)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", errors.New("decode frame: invalid utf-8")
	}
	return strings.TrimSpace(string(raw)), nil
}

// readFrame reads up to and including the first newline. A zero-length
// read is how the serial driver reports a timeout; whatever arrived
// before it is returned as the frame.
func readFrame(r io.Reader) ([]byte, error) {
	var line bytes.Buffer
	buf := make([]byte, 64)
	for line.Len() < maxFrameSize {
		n, err := r.Read(buf)
		if n > 0 {
			if i := bytes.IndexByte(buf[:n], '\n'); i >= 0 {
				line.Write(buf[:i+1])
				return line.Bytes(), nil
			}
			line.Write(buf[:n])
		}
		if err == io.EOF || (err == nil && n == 0) {
			return line.Bytes(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("read serial: %w", err)
		}
	}
	return line.Bytes(), nil
}

// ParseFrame extracts the sensor id and depth from a status line such as
// "STATUS DRY CREEK DEPTH CREEK 12.50". The depth is the first token after
// a "CREEK" token that parses as a float.
func ParseFrame(line string) (string, float64, bool) {
	if !strings.Contains(line, frameMarker) {
		return "", 0, false
	}
	parts := strings.Fields(line)
	for i, p := range parts {
		if p != depthToken || i+1 >= len(parts) {
			continue
		}
		depth, err := strconv.ParseFloat(parts[i+1], 64)
		if err != nil {
			continue
		}
		return frameSensor, depth, true
	}
	return "", 0, false
}
