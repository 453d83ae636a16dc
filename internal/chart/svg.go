package chart

import (
	"errors"
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/OldStager01/battery-health/pkg/models"
)

var ErrNothingToPlot = errors.New("prediction has no trajectory to plot")

const (
	marginLeft   = 60
	marginRight  = 20
	marginTop    = 40
	marginBottom = 50
	minWidth     = 200
	minHeight    = 150
)

type Labels struct {
	Title     string
	XAxis     string
	YAxis     string
	Series    string
	Threshold string
}

func DefaultLabels(thresholdPercent float64) Labels {
	return Labels{
		Title:     "SOH Prediction",
		XAxis:     "Cycles",
		YAxis:     "SOH (%)",
		Series:    "Predicted SOH",
		Threshold: fmt.Sprintf("EOL threshold (%.0f%%)", thresholdPercent),
	}
}

func Render(p *models.Prediction, width, height int) (string, error) {
	if p == nil {
		return "", ErrNothingToPlot
	}
	return RenderWithLabels(p, width, height, DefaultLabels(p.ThresholdPercent))
}

// RenderWithLabels draws the SOH series, a dashed threshold line, and a marker where the
// series crosses it. The marker is omitted when no crossing was found.
func RenderWithLabels(p *models.Prediction, width, height int, labels Labels) (string, error) {
	if p == nil || len(p.Trajectory) == 0 {
		return "", ErrNothingToPlot
	}
	if width < minWidth {
		width = minWidth
	}
	if height < minHeight {
		height = minHeight
	}

	s := newScale(p, width, height)
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif" font-size="12">`,
		width, height, width, height)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#ffffff"/>`, width, height)
	fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-size="16">%s</text>`,
		width/2, marginTop/2+5, html.EscapeString(labels.Title))

	writeGrid(&b, s)

	b.WriteString(`<polyline class="soh" fill="none" stroke="#1f77b4" stroke-width="2" points="`)
	for i, pt := range p.Trajectory {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.2f,%.2f", s.x(float64(pt.Cycle)), s.y(pt.SOH))
	}
	b.WriteString(`"/>`)

	ty := s.y(p.ThresholdValue)
	fmt.Fprintf(&b, `<line class="threshold" x1="%d" y1="%.2f" x2="%d" y2="%.2f" stroke="#d62728" stroke-dasharray="6,4"/>`,
		marginLeft, ty, width-marginRight, ty)

	if p.Result.Reached {
		fmt.Fprintf(&b, `<circle class="eol" cx="%.2f" cy="%.2f" r="6" fill="#d62728"/>`,
			s.x(float64(p.Result.CrossingCycle)), ty)
	}

	fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle">%s</text>`,
		marginLeft+s.plotW/2, height-10, html.EscapeString(labels.XAxis))
	fmt.Fprintf(&b, `<text x="15" y="%d" text-anchor="middle" transform="rotate(-90 15 %d)">%s</text>`,
		marginTop+s.plotH/2, marginTop+s.plotH/2, html.EscapeString(labels.YAxis))

	writeLegend(&b, width, labels)

	b.WriteString(`</svg>`)
	return b.String(), nil
}

type scale struct {
	minX, maxX float64
	minY, maxY float64
	plotW      int
	plotH      int
}

func newScale(p *models.Prediction, width, height int) scale {
	s := scale{
		minX:  float64(p.Trajectory[0].Cycle),
		maxX:  float64(p.Trajectory[len(p.Trajectory)-1].Cycle),
		minY:  p.ThresholdValue,
		maxY:  p.ThresholdValue,
		plotW: width - marginLeft - marginRight,
		plotH: height - marginTop - marginBottom,
	}
	for _, pt := range p.Trajectory {
		s.minY = math.Min(s.minY, pt.SOH)
		s.maxY = math.Max(s.maxY, pt.SOH)
	}
	if s.maxX == s.minX {
		s.maxX = s.minX + 1
	}
	pad := (s.maxY - s.minY) * 0.05
	if pad == 0 {
		pad = 1
	}
	s.minY -= pad
	s.maxY += pad
	return s
}

func (s scale) x(v float64) float64 {
	return float64(marginLeft) + (v-s.minX)/(s.maxX-s.minX)*float64(s.plotW)
}

func (s scale) y(v float64) float64 {
	return float64(marginTop) + (s.maxY-v)/(s.maxY-s.minY)*float64(s.plotH)
}

const gridLines = 5

func writeGrid(b *strings.Builder, s scale) {
	right := marginLeft + s.plotW
	bottom := marginTop + s.plotH
	fmt.Fprintf(b, `<rect x="%d" y="%d" width="%d" height="%d" fill="none" stroke="#333333"/>`,
		marginLeft, marginTop, s.plotW, s.plotH)

	for i := 0; i <= gridLines; i++ {
		frac := float64(i) / gridLines

		yv := s.minY + frac*(s.maxY-s.minY)
		y := s.y(yv)
		fmt.Fprintf(b, `<line x1="%d" y1="%.2f" x2="%d" y2="%.2f" stroke="#dddddd"/>`, marginLeft, y, right, y)
		fmt.Fprintf(b, `<text x="%d" y="%.2f" text-anchor="end">%.1f</text>`, marginLeft-5, y+4, yv)

		xv := s.minX + frac*(s.maxX-s.minX)
		x := s.x(xv)
		fmt.Fprintf(b, `<line x1="%.2f" y1="%d" x2="%.2f" y2="%d" stroke="#dddddd"/>`, x, marginTop, x, bottom)
		fmt.Fprintf(b, `<text x="%.2f" y="%d" text-anchor="middle">%.0f</text>`, x, bottom+15, xv)
	}
}

func writeLegend(b *strings.Builder, width int, labels Labels) {
	x := width - marginRight - 170
	y := marginTop + 10
	fmt.Fprintf(b, `<g class="legend"><rect x="%d" y="%d" width="165" height="40" fill="#ffffff" stroke="#cccccc"/>`, x, y)
	fmt.Fprintf(b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#1f77b4" stroke-width="2"/>`, x+5, y+12, x+25, y+12)
	fmt.Fprintf(b, `<text x="%d" y="%d">%s</text>`, x+30, y+16, html.EscapeString(labels.Series))
	fmt.Fprintf(b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#d62728" stroke-dasharray="6,4"/>`, x+5, y+30, x+25, y+30)
	fmt.Fprintf(b, `<text x="%d" y="%d">%s</text></g>`, x+30, y+34, html.EscapeString(labels.Threshold))
}
