package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/olekukonko/tablewriter"
)

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum   core.Vec3 // RGB accumulator over finite samples
	SampleCount  int       // Number of finite samples taken
	DroppedCount int       // Samples discarded because they contained NaN or Inf
}

// AddSample adds a new color sample. Non-finite samples are counted and discarded.
func (ps *PixelStats) AddSample(color core.Vec3) {
	if !color.IsFinite() {
		ps.DroppedCount++
		return
	}
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// WorkerStats describes the work done by one render goroutine
type WorkerStats struct {
	ID             int
	Rows           int
	Samples        int
	DroppedSamples int
	BusyTime       time.Duration
}

// RenderStats contains statistics about a completed render
type RenderStats struct {
	Width           int
	Height          int
	SamplesPerPixel int
	TotalSamples    int
	DroppedSamples  int
	RenderTime      time.Duration
	Workers         []WorkerStats
}

// Table renders the per-worker statistics as a text table
func (s RenderStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Rows", "% of frame", "Samples", "Dropped", "Busy time"})
	for _, w := range s.Workers {
		percent := 0.0
		if s.Height > 0 {
			percent = 100 * float64(w.Rows) / float64(s.Height)
		}
		table.Append([]string{
			fmt.Sprintf("%d", w.ID),
			fmt.Sprintf("%d", w.Rows),
			fmt.Sprintf("%02.1f %%", percent),
			fmt.Sprintf("%d", w.Samples),
			fmt.Sprintf("%d", w.DroppedSamples),
			w.BusyTime.Round(time.Millisecond).String(),
		})
	}
	rows := 0
	for _, w := range s.Workers {
		rows += w.Rows
	}
	table.SetFooter([]string{
		"TOTAL",
		fmt.Sprintf("%d", rows),
		"",
		fmt.Sprintf("%d", s.TotalSamples),
		fmt.Sprintf("%d", s.DroppedSamples),
		s.RenderTime.Round(time.Millisecond).String(),
	})
	table.Render()
	return buf.String()
}
