package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ericogr/tank-dashboard/pkg/store"
)

const DepthLabel = "Depth (inches)"

var ErrNoPoints = errors.New("no points to draw")

// Title is the chart heading for a sensor, e.g. "Water Level for DRY CREEK".
func Title(sensorID string) string {
	return "Water Level for " + strings.ReplaceAll(sensorID, "_", " ")
}

// DepthChart builds the depth-over-time line chart for points. Points
// with a NaN or infinite depth are left out.
func DepthChart(sensorID string, points []store.Point, width, height int) (chart.Chart, error) {
	xs := make([]time.Time, 0, len(points))
	ys := make([]float64, 0, len(points))
	for _, p := range points {
		if math.IsNaN(p.Depth) || math.IsInf(p.Depth, 0) {
			continue
		}
		xs = append(xs, p.Timestamp)
		ys = append(ys, p.Depth)
	}
	if len(xs) == 0 {
		return chart.Chart{}, ErrNoPoints
	}
	// go-chart needs a non-empty x range
	minX, maxX := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x.Before(minX) {
			minX = x
		}
		if x.After(maxX) {
			maxX = x
		}
	}
	if minX.Equal(maxX) {
		xs = append(xs, maxX.Add(time.Second))
		ys = append(ys, ys[len(ys)-1])
	}
	yAxis := chart.YAxis{Name: DepthLabel}
	minY, maxY := ys[0], ys[0]
	for _, y := range ys[1:] {
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	// and a non-empty y range when the level has not moved
	if minY == maxY {
		yAxis.Range = &chart.ContinuousRange{Min: minY - 1, Max: maxY + 1}
	}
	ch := chart.Chart{
		Title:      Title(sensorID),
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 12, Bottom: 48}},
		XAxis: chart.XAxis{
			Name:           "Time",
			ValueFormatter: chart.TimeValueFormatterWithFormat("01-02 15:04"),
		},
		YAxis: yAxis,
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    DepthLabel,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("1f77b4"),
					StrokeWidth: 2,
				},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch, nil
}

// DepthImage renders the depth chart to an image.
func DepthImage(sensorID string, points []store.Point, width, height int) (image.Image, error) {
	ch, err := DepthChart(sensorID, points, width, height)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	return img, nil
}

// Blank is the placeholder shown before the first successful draw.
func Blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, bg)
		}
	}
	return img
}
