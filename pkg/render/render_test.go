package render

import (
	"errors"
	"math"
	"testing"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/ericogr/tank-dashboard/pkg/store"
)

func points(n int) []store.Point {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	out := make([]store.Point, n)
	for i := range out {
		out[i] = store.Point{Timestamp: base.Add(time.Duration(i) * time.Minute), Depth: 10 + float64(i%7)}
	}
	return out
}

func TestTitle(t *testing.T) {
	if got := Title("DRY_CREEK"); got != "Water Level for DRY CREEK" {
		t.Fatalf("Title = %q", got)
	}
}

func TestDepthChartLabels(t *testing.T) {
	ch, err := DepthChart("DRY_CREEK", points(5), 800, 400)
	if err != nil {
		t.Fatalf("DepthChart: %v", err)
	}
	if ch.Title != "Water Level for DRY CREEK" {
		t.Fatalf("title = %q", ch.Title)
	}
	if ch.XAxis.Name != "Time" || ch.YAxis.Name != "Depth (inches)" {
		t.Fatalf("axis names = %q / %q", ch.XAxis.Name, ch.YAxis.Name)
	}
	if len(ch.Series) != 1 {
		t.Fatalf("series = %d", len(ch.Series))
	}
	ts, ok := ch.Series[0].(chart.TimeSeries)
	if !ok {
		t.Fatalf("series type %T", ch.Series[0])
	}
	if ts.Name != "Depth (inches)" || len(ts.XValues) != 5 || len(ts.YValues) != 5 {
		t.Fatalf("series = %s x=%d y=%d", ts.Name, len(ts.XValues), len(ts.YValues))
	}
	if len(ch.Elements) != 1 {
		t.Fatalf("legend missing")
	}
}

func TestDepthChartPadsSinglePoint(t *testing.T) {
	ch, err := DepthChart("DRY_CREEK", points(1), 800, 400)
	if err != nil {
		t.Fatalf("DepthChart: %v", err)
	}
	ts := ch.Series[0].(chart.TimeSeries)
	if len(ts.XValues) != 2 || ts.YValues[0] != ts.YValues[1] {
		t.Fatalf("single point not padded: %+v", ts)
	}
}

func TestDepthChartEmpty(t *testing.T) {
	if _, err := DepthChart("DRY_CREEK", nil, 800, 400); !errors.Is(err, ErrNoPoints) {
		t.Fatalf("err = %v; want ErrNoPoints", err)
	}
}

func TestDepthImage(t *testing.T) {
	img, err := DepthImage("DRY_CREEK", points(144), 800, 400)
	if err != nil {
		t.Fatalf("DepthImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 400 {
		t.Fatalf("image bounds = %v", b)
	}
}

func TestBlank(t *testing.T) {
	img := Blank(10, 4)
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 4 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestDepthChartSkipsNonFiniteDepths(t *testing.T) {
	pts := points(4)
	pts[1].Depth = math.NaN()
	pts[2].Depth = math.Inf(1)
	ch, err := DepthChart("DRY_CREEK", pts, 800, 400)
	if err != nil {
		t.Fatalf("DepthChart: %v", err)
	}
	ts := ch.Series[0].(chart.TimeSeries)
	if len(ts.XValues) != 2 || ts.YValues[0] != pts[0].Depth || ts.YValues[1] != pts[3].Depth {
		t.Fatalf("non-finite depths kept: %+v", ts.YValues)
	}
	if _, err := DepthImage("DRY_CREEK", pts, 400, 200); err != nil {
		t.Fatalf("DepthImage with NaN row: %v", err)
	}

	onlyNaN := []store.Point{{Timestamp: time.Now(), Depth: math.NaN()}}
	if _, err := DepthChart("DRY_CREEK", onlyNaN, 800, 400); !errors.Is(err, ErrNoPoints) {
		t.Fatalf("err = %v; want ErrNoPoints", err)
	}
}

func TestDepthImageSameTimestamps(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pts := []store.Point{{Timestamp: at, Depth: 10}, {Timestamp: at, Depth: 11}, {Timestamp: at, Depth: 12}}
	ch, err := DepthChart("DRY_CREEK", pts, 800, 400)
	if err != nil {
		t.Fatalf("DepthChart: %v", err)
	}
	if ts := ch.Series[0].(chart.TimeSeries); len(ts.XValues) != 4 {
		t.Fatalf("identical timestamps not padded: %d x values", len(ts.XValues))
	}
	if _, err := DepthImage("DRY_CREEK", pts, 400, 200); err != nil {
		t.Fatalf("DepthImage: %v", err)
	}
}

func TestDepthImageFlatLevel(t *testing.T) {
	pts := points(3)
	for i := range pts {
		pts[i].Depth = 20
	}
	if _, err := DepthImage("DRY_CREEK", pts, 400, 200); err != nil {
		t.Fatalf("DepthImage: %v", err)
	}
	if _, err := DepthImage("DRY_CREEK", pts[:1], 400, 200); err != nil {
		t.Fatalf("DepthImage single point: %v", err)
	}
}
