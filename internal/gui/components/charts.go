package components

import (
	"fmt"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Dashboard palette, shared by all charts.
var (
	ChartBlue   = color.NRGBA{R: 0x00, G: 0x85, B: 0xFF, A: 0xFF}
	ChartOrange = color.NRGBA{R: 0xFF, G: 0x7F, B: 0x50, A: 0xFF}
	ChartGreen  = color.NRGBA{R: 0x3C, G: 0xB3, B: 0x71, A: 0xFF}
	ChartPurple = color.NRGBA{R: 0x7B, G: 0x68, B: 0xEE, A: 0xFF}

	chartGrid = color.NRGBA{R: 0xDD, G: 0xDD, B: 0xDD, A: 0xFF}
	chartText = color.NRGBA{R: 0x0D, G: 0x0D, B: 0x0D, A: 0xFF}
)

const (
	chartWidth   float32 = 520
	chartHeight  float32 = 220
	chartLeft    float32 = 52
	chartBottom  float32 = 28
	chartTop     float32 = 16
	chartRight   float32 = 16
	maxTickCount         = 4
)

// NewLineChart draws a single-series line chart with point markers and
// value annotations. Empty input renders a "Sin datos" placeholder.
func NewLineChart(labels []string, values []float64) fyne.CanvasObject {
	if len(values) == 0 {
		return emptyChart()
	}

	content := container.NewWithoutLayout()
	plotW := chartWidth - chartLeft - chartRight
	plotH := chartHeight - chartTop - chartBottom
	maxVal := maxValue(values)

	drawGrid(content, maxVal)

	step := plotW
	if len(values) > 1 {
		step = plotW / float32(len(values)-1)
	}

	pointX := func(i int) float32 {
		if len(values) == 1 {
			return chartLeft + plotW/2
		}
		return chartLeft + float32(i)*step
	}
	pointY := func(v float64) float32 {
		return chartTop + plotH - float32(v/maxVal)*plotH
	}

	for i := 1; i < len(values); i++ {
		line := canvas.NewLine(ChartBlue)
		line.StrokeWidth = 2.5
		line.Position1 = fyne.NewPos(pointX(i-1), pointY(values[i-1]))
		line.Position2 = fyne.NewPos(pointX(i), pointY(values[i]))
		content.Add(line)
	}

	for i, v := range values {
		x, y := pointX(i), pointY(v)

		marker := canvas.NewCircle(ChartBlue)
		marker.Resize(fyne.NewSize(8, 8))
		marker.Move(fyne.NewPos(x-4, y-4))
		content.Add(marker)

		annotation := canvas.NewText(fmt.Sprintf("%.0f€", v), chartText)
		annotation.TextSize = 10
		annotation.Move(fyne.NewPos(x-12, y-18))
		content.Add(annotation)

		label := canvas.NewText(truncate(labels[i], 12), chartText)
		label.TextSize = 10
		label.Move(fyne.NewPos(x-20, chartTop+plotH+6))
		content.Add(label)
	}

	return sized(content)
}

// NewBarChart draws a vertical bar chart with value annotations.
func NewBarChart(labels []string, values []float64, barColor color.Color) fyne.CanvasObject {
	if len(values) == 0 {
		return emptyChart()
	}

	content := container.NewWithoutLayout()
	plotW := chartWidth - chartLeft - chartRight
	plotH := chartHeight - chartTop - chartBottom
	maxVal := maxValue(values)

	drawGrid(content, maxVal)

	slot := plotW / float32(len(values))
	barW := slot * 0.6

	for i, v := range values {
		height := float32(v/maxVal) * plotH
		x := chartLeft + float32(i)*slot + (slot-barW)/2
		y := chartTop + plotH - height

		bar := canvas.NewRectangle(barColor)
		bar.Resize(fyne.NewSize(barW, height))
		bar.Move(fyne.NewPos(x, y))
		content.Add(bar)

		annotation := canvas.NewText(fmt.Sprintf("%.0f", v), chartText)
		annotation.TextSize = 10
		annotation.Move(fyne.NewPos(x+barW/2-10, y-14))
		content.Add(annotation)

		label := canvas.NewText(truncate(labels[i], 10), chartText)
		label.TextSize = 10
		label.Move(fyne.NewPos(x-4, chartTop+plotH+6))
		content.Add(label)
	}

	return sized(content)
}

// DonutSegment is one slice of the status donut.
type DonutSegment struct {
	Label string
	Value int
	Color color.NRGBA
}

// NewDonutChart rasters a donut chart and pairs it with a legend. Zero
// totals render the placeholder.
func NewDonutChart(segments []DonutSegment) fyne.CanvasObject {
	total := 0
	for _, seg := range segments {
		total += seg.Value
	}
	if total == 0 {
		return emptyChart()
	}

	raster := canvas.NewRasterWithPixels(func(x, y, w, h int) color.Color {
		cx, cy := float64(w)/2, float64(h)/2
		dx, dy := float64(x)-cx, float64(y)-cy
		radius := math.Sqrt(dx*dx + dy*dy)
		outer := math.Min(cx, cy) * 0.95
		inner := outer * 0.62

		if radius > outer || radius < inner {
			return color.Transparent
		}

		// Angle measured clockwise from 12 o'clock, like the source
		// dashboard's start angle.
		angle := math.Atan2(dx, -dy)
		if angle < 0 {
			angle += 2 * math.Pi
		}

		cumulative := 0.0
		for _, seg := range segments {
			cumulative += float64(seg.Value) / float64(total) * 2 * math.Pi
			if angle <= cumulative {
				return seg.Color
			}
		}
		return segments[len(segments)-1].Color
	})
	raster.SetMinSize(fyne.NewSize(160, 160))

	legend := container.NewVBox()
	for _, seg := range segments {
		swatch := canvas.NewRectangle(seg.Color)
		swatch.SetMinSize(fyne.NewSize(12, 12))
		percentage := float64(seg.Value) / float64(total) * 100
		legend.Add(container.NewHBox(
			swatch,
			widget.NewLabel(fmt.Sprintf("%s: %d (%.1f%%)", seg.Label, seg.Value, percentage)),
		))
	}

	return container.NewHBox(raster, legend)
}

func drawGrid(content *fyne.Container, maxVal float64) {
	plotW := chartWidth - chartLeft - chartRight
	plotH := chartHeight - chartTop - chartBottom

	for i := 0; i <= maxTickCount; i++ {
		y := chartTop + plotH - float32(i)/float32(maxTickCount)*plotH

		grid := canvas.NewLine(chartGrid)
		grid.StrokeWidth = 1
		grid.Position1 = fyne.NewPos(chartLeft, y)
		grid.Position2 = fyne.NewPos(chartLeft+plotW, y)
		content.Add(grid)

		tick := canvas.NewText(fmt.Sprintf("%.0f", maxVal*float64(i)/maxTickCount), chartText)
		tick.TextSize = 10
		tick.Move(fyne.NewPos(4, y-7))
		content.Add(tick)
	}
}

func emptyChart() fyne.CanvasObject {
	placeholder := widget.NewLabel("Sin datos")
	placeholder.Alignment = fyne.TextAlignCenter
	return sized(container.NewCenter(placeholder))
}

func sized(content fyne.CanvasObject) fyne.CanvasObject {
	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(chartWidth, chartHeight))
	return container.NewStack(spacer, content)
}

func maxValue(values []float64) float64 {
	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return 1
	}
	return max
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
