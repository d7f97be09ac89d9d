package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/df07/go-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera samples taken
	SamplesPerPixel int           // Samples requested per pixel
	MaxDepth        int           // Ray segment budget per sample
	RenderTime      time.Duration // Wall-clock time of the whole render
	Workers         []WorkerStats // Per-worker breakdown
}

// WorkerStats tracks the share of the frame rendered by one worker
type WorkerStats struct {
	ID        int           // Worker index
	Scanlines int           // Scanlines completed
	Samples   int           // Camera samples taken
	BusyTime  time.Duration // Time spent rendering scanlines
}

// SamplesPerSecond returns the camera sample throughput of the render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.RenderTime <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.RenderTime.Seconds()
}

// WriteTable renders the per-worker breakdown with a totals footer
func (s RenderStats) WriteTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Scanlines", "Samples", "% of frame", "Busy time"})
	for _, worker := range s.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", worker.ID),
			fmt.Sprintf("%d", worker.Scanlines),
			humanize.Comma(int64(worker.Samples)),
			fmt.Sprintf("%02.1f %%", s.framePercent(worker)),
			worker.BusyTime.Round(time.Millisecond).String(),
		})
	}
	table.SetFooter([]string{
		fmt.Sprintf("%dx%d", s.Width, s.Height),
		fmt.Sprintf("%d", s.Height),
		humanize.Comma(int64(s.TotalSamples)),
		humanize.SIWithDigits(s.SamplesPerSecond(), 2, "samples/s"),
		s.RenderTime.Round(time.Millisecond).String(),
	})
	table.Render()
}

func (s RenderStats) framePercent(worker WorkerStats) float64 {
	if s.Height == 0 {
		return 0
	}
	return 100 * float64(worker.Scanlines) / float64(s.Height)
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}
