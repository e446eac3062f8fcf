package output

import (
	"errors"
	"testing"

	"github.com/ericogr/tank-dashboard/pkg/config"
	"github.com/ericogr/tank-dashboard/pkg/sensor"
)

type stubOutput struct{ closed bool }

func (s *stubOutput) Publish(sensor.Reading) error { return nil }
func (s *stubOutput) Close() error                 { s.closed = true; return nil }

func TestBuild(t *testing.T) {
	var built []*stubOutput
	factories := map[string]Factory{
		"stub": func(config.OutputConfig) (Output, error) {
			s := &stubOutput{}
			built = append(built, s)
			return s, nil
		},
		"broken": func(config.OutputConfig) (Output, error) { return nil, errors.New("boom") },
	}

	outs, err := Build([]config.OutputConfig{{Type: "stub"}, {Type: "stub"}}, factories)
	if err != nil || len(outs) != 2 {
		t.Fatalf("Build: outs=%d err=%v", len(outs), err)
	}

	built = nil
	if _, err := Build([]config.OutputConfig{{Type: "stub"}, {Type: "broken"}}, factories); err == nil {
		t.Fatalf("expected factory error")
	}
	if len(built) != 1 || !built[0].closed {
		t.Fatalf("earlier outputs not closed on failure")
	}

	if _, err := Build([]config.OutputConfig{{Type: "mqtt"}}, factories); err == nil {
		t.Fatalf("expected unknown type error")
	}
}
