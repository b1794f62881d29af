// Package chart renders the mode-distance summary as a faceted bar chart.
package chart

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"github.com/couchcryptid/survey-data-viz/internal/domain"
	"github.com/dustin/go-humanize"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// chartedModes are the mode series drawn in each panel, in legend order.
// ModeOther never reaches the renderer; the summarizer drops it.
var chartedModes = []string{domain.ModeActiveTransit, domain.ModeCarTruck}

// Style carries the fixed visual parameters for the chart. Styling is passed
// explicitly rather than held as ambient state so tests and callers render
// with a known configuration.
type Style struct {
	Width      vg.Length
	Height     vg.Length
	DPI        int
	BarWidth   vg.Length
	Background color.Color
	ModeColors map[string]color.Color
}

// DefaultStyle is the published chart look: a 4.8 inch square at 300 DPI on
// a white background, teal for active/transit and terracotta for car/truck.
func DefaultStyle() Style {
	return Style{
		Width:      4.8 * vg.Inch,
		Height:     4.8 * vg.Inch,
		DPI:        300,
		BarWidth:   vg.Points(12),
		Background: color.White,
		ModeColors: map[string]color.Color{
			domain.ModeActiveTransit: color.RGBA{R: 0x2a, G: 0x9d, B: 0x8f, A: 0xff},
			domain.ModeCarTruck:      color.RGBA{R: 0xe7, G: 0x6f, B: 0x51, A: 0xff},
		},
	}
}

// Renderer draws the summary table to a PNG file.
type Renderer struct {
	style  Style
	logger *slog.Logger
}

// NewRenderer creates a Renderer with the given style.
func NewRenderer(style Style, logger *slog.Logger) *Renderer {
	return &Renderer{style: style, logger: logger}
}

// Render writes the faceted chart to path, overwriting any existing file.
// One panel per income tier stacked top to bottom, density tiers along the
// X axis, and one dodged bar per charted mode.
func (r *Renderer) Render(summary domain.Summary, path string) error {
	plots, err := r.facetPlots(summary)
	if err != nil {
		return fmt.Errorf("build chart: %w", err)
	}

	canvas := vgimg.NewWith(
		vgimg.UseWH(r.style.Width, r.style.Height),
		vgimg.UseDPI(r.style.DPI),
		vgimg.UseBackgroundColor(r.style.Background),
	)

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadY:      vg.Points(6),
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(4),
	}

	grid := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		grid[i] = []*plot.Plot{p}
	}

	canvases := plot.Align(grid, tiles, draw.New(canvas))
	for i := range grid {
		grid[i][0].Draw(canvases[i][0])
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	png := vgimg.PngCanvas{Canvas: canvas}
	_, err = png.WriteTo(f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write chart: %w", err)
	}

	r.logger.Info("chart written", "path", path, "panels", len(plots), "cells", len(summary.Cells))
	return nil
}

// facetPlots builds one panel per income tier. Panels share a Y range so
// bar heights are comparable across facets.
func (r *Renderer) facetPlots(summary domain.Summary) ([]*plot.Plot, error) {
	var maxAvg float64
	for _, cell := range summary.Cells {
		if cell.AvgMiles > maxAvg {
			maxAvg = cell.AvgMiles
		}
	}

	plots := make([]*plot.Plot, 0, len(domain.IncomeTiers))
	for i, income := range domain.IncomeTiers {
		p := plot.New()
		p.Title.Text = income
		p.BackgroundColor = r.style.Background
		p.Y.Label.Text = "avg miles / household"
		p.Y.Min = 0
		if maxAvg > 0 {
			p.Y.Max = maxAvg * 1.05
		}
		p.Y.Tick.Marker = commaTicks{}

		for m, mode := range chartedModes {
			bars, err := plotter.NewBarChart(facetValues(summary, income, mode), r.style.BarWidth)
			if err != nil {
				return nil, fmt.Errorf("%s / %s bars: %w", income, mode, err)
			}
			bars.Color = r.style.ModeColors[mode]
			bars.LineStyle.Width = 0
			bars.Offset = vg.Length(float64(m)-float64(len(chartedModes)-1)/2) * r.style.BarWidth
			p.Add(bars)

			// Legend once, on the top panel.
			if i == 0 {
				p.Legend.Add(mode, bars)
			}
		}
		if i == 0 {
			p.Legend.Top = true
		}
		if i == len(domain.IncomeTiers)-1 {
			p.X.Label.Text = "population density of home tract"
		}
		p.NominalX(domain.DensityTiers...)

		plots = append(plots, p)
	}
	return plots, nil
}

// facetValues returns the bar heights for one income panel and mode series,
// one value per density position. Missing cells chart as zero-height bars so
// every panel keeps the full density axis.
func facetValues(summary domain.Summary, income, mode string) plotter.Values {
	vals := make(plotter.Values, len(domain.DensityTiers))
	for _, cell := range summary.Cells {
		if cell.IncomeTier != income || cell.ModeTier != mode {
			continue
		}
		for i, density := range domain.DensityTiers {
			if cell.DensityTier == density {
				vals[i] = cell.AvgMiles
			}
		}
	}
	return vals
}

// commaTicks formats Y tick labels with thousands separators, matching the
// comma-grouped tier labels on the X axis.
type commaTicks struct{}

func (commaTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, tick := range ticks {
		if tick.Label == "" {
			continue
		}
		ticks[i].Label = humanize.Commaf(tick.Value)
	}
	return ticks
}
