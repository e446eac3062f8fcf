package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// TimeLayout is ISO-8601 local time without zone, with fractional seconds
// only when non-zero.
const TimeLayout = "2006-01-02T15:04:05.999999"

// ErrCorruptLog is returned by ReadAll when any row fails to parse.
var ErrCorruptLog = errors.New("corrupt measurement log")

// Point is one history entry as drawn by the chart.
type Point struct {
	Timestamp time.Time
	Depth     float64
}

// CSVLog keeps one append-only <sensor>_log.csv file per sensor in dir.
// Rows are "timestamp,depth,volume" without a header.
type CSVLog struct {
	dir string
}

func NewCSVLog(dir string) *CSVLog {
	return &CSVLog{dir: dir}
}

func (l *CSVLog) Path(sensorID string) string {
	return filepath.Join(l.dir, sensorID+"_log.csv")
}

// Append writes one row and returns gallons unchanged. The directory and
// file are created on first use.
func (l *CSVLog) Append(sensorID string, ts time.Time, depth, gallons float64) (float64, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return gallons, fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(l.Path(sensorID), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return gallons, fmt.Errorf("open log: %w", err)
	}
	w := csv.NewWriter(f)
	row := []string{
		ts.Format(TimeLayout),
		strconv.FormatFloat(depth, 'f', -1, 64),
		strconv.FormatFloat(gallons, 'f', -1, 64),
	}
	if err := w.Write(row); err != nil {
		f.Close()
		return gallons, fmt.Errorf("write log: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return gallons, fmt.Errorf("flush log: %w", err)
	}
	if err := f.Close(); err != nil {
		return gallons, fmt.Errorf("close log: %w", err)
	}
	return gallons, nil
}

// ReadAll returns every point in file order. A missing file is an empty
// history. One unparsable row fails the whole read with ErrCorruptLog and
// no points.
func (l *CSVLog) ReadAll(sensorID string) ([]Point, error) {
	f, err := os.Open(l.Path(sensorID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var points []Point
	for line := 1; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptLog, err)
		}
		p, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrCorruptLog, line, err)
		}
		points = append(points, p)
	}
	return points, nil
}

func parseRow(row []string) (Point, error) {
	if len(row) < 2 {
		return Point{}, fmt.Errorf("want at least 2 fields, got %d", len(row))
	}
	ts, err := parseTime(row[0])
	if err != nil {
		return Point{}, err
	}
	depth, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return Point{}, err
	}
	return Point{Timestamp: ts, Depth: depth}, nil
}

func parseTime(s string) (time.Time, error) {
	if ts, err := time.ParseInLocation(TimeLayout, s, time.Local); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// Tail returns the last n points, sharing the backing array.
func Tail(points []Point, n int) []Point {
	if n < 0 || len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}
