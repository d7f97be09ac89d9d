package renderer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-raytracer/pkg/core"
)

func TestRenderStatsWriteTable(t *testing.T) {
	stats := RenderStats{
		Width:           400,
		Height:          225,
		TotalPixels:     90000,
		TotalSamples:    9000000,
		SamplesPerPixel: 100,
		RenderTime:      3 * time.Second,
		Workers: []WorkerStats{
			{ID: 0, Scanlines: 113, Samples: 4520000, BusyTime: 2900 * time.Millisecond},
			{ID: 1, Scanlines: 112, Samples: 4480000, BusyTime: 2800 * time.Millisecond},
		},
	}

	var buf bytes.Buffer
	stats.WriteTable(&buf)
	out := buf.String()

	for _, want := range []string{"Worker", "Scanlines", "% of frame", "4,520,000", "9,000,000", "400x225", "50.2 %", "3s", "samples/s"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected table to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderStatsSamplesPerSecond(t *testing.T) {
	stats := RenderStats{TotalSamples: 500, RenderTime: 2 * time.Second}
	if got := stats.SamplesPerSecond(); got != 250 {
		t.Errorf("Expected 250 samples/s, got %f", got)
	}
	if got := (RenderStats{TotalSamples: 10}).SamplesPerSecond(); got != 0 {
		t.Errorf("Expected 0 samples/s without a render time, got %f", got)
	}
}

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	if ps.GetColor() != (core.Vec3{}) {
		t.Errorf("Expected black before any sample, got %v", ps.GetColor())
	}

	ps.AddSample(core.NewVec3(1, 0, 0.5))
	ps.AddSample(core.NewVec3(0, 1, 0.5))
	if ps.SampleCount != 2 {
		t.Errorf("Expected 2 samples, got %d", ps.SampleCount)
	}
	if got := ps.GetColor(); got != core.NewVec3(0.5, 0.5, 0.5) {
		t.Errorf("Expected average (0.5,0.5,0.5), got %v", got)
	}
}
