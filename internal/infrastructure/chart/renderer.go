// Package chart renders planner views as PNG images.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"outpatient-planner/internal/domain/entity"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when a view has nothing to plot.
var ErrNoData = errors.New("no data to plot")

const (
	defaultWidth  = 800
	defaultHeight = 450
)

type Renderer struct {
	width  int
	height int
}

func NewRenderer() *Renderer {
	return &Renderer{width: defaultWidth, height: defaultHeight}
}

func lineStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    3,
	}
}

// Bars renders one bar per category.
func (r *Renderer) Bars(title string, values []entity.CategoryValue) ([]byte, error) {
	if len(values) == 0 {
		return nil, ErrNoData
	}

	bars := make([]gochart.Value, len(values))
	maxValue := 0.0
	for i, v := range values {
		bars[i] = gochart.Value{Label: v.Category, Value: v.Value}
		if v.Value > maxValue {
			maxValue = v.Value
		}
	}

	bc := gochart.BarChart{
		Title:      title,
		Width:      r.width,
		Height:     r.height,
		BarWidth:   120,
		Background: gochart.Style{Padding: gochart.Box{Top: 48}},
		Bars:       bars,
	}
	if maxValue == 0 {
		bc.YAxis.Range = &gochart.ContinuousRange{Min: 0, Max: 1}
	}

	return render(bc.Render)
}

// ReferralTrend renders referrals against date.
func (r *Renderer) ReferralTrend(points []entity.ReferralPoint) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}

	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Date
		ys[i] = p.Referrals
	}
	// go-chart needs two distinct x values to build a range.
	if xs[0].Equal(xs[len(xs)-1]) {
		xs = append(xs, xs[0].AddDate(0, 0, 1))
		ys = append(ys, ys[0])
	}

	ch := gochart.Chart{
		Title:      "Referrals Over Time",
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 48}},
		XAxis:      gochart.XAxis{Name: "date", ValueFormatter: gochart.TimeDateValueFormatter},
		YAxis:      gochart.YAxis{Name: "referrals", Range: paddedRange(ys)},
		Series: []gochart.Series{
			gochart.TimeSeries{Name: "referrals", XValues: xs, YValues: ys, Style: lineStyle(gochart.ColorBlue)},
		},
	}

	return render(ch.Render)
}

// AppointmentsVsDischarges renders a scatter of first appointments against
// discharges.
func (r *Renderer) AppointmentsVsDischarges(points []entity.AppointmentDischargePoint) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.FirstAppointments
		ys[i] = p.Discharges
	}

	ch := gochart.Chart{
		Title:      "First Appointments vs. Discharges",
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 48}},
		XAxis:      gochart.XAxis{Name: "first_appointments", Range: paddedRange(xs)},
		YAxis:      gochart.YAxis{Name: "discharges", Range: paddedRange(ys)},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "rows",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeWidth: gochart.Disabled,
					DotWidth:    5,
					DotColor:    gochart.ColorBlue,
				},
			},
		},
	}

	return render(ch.Render)
}

// Seasonality renders the monthly sums as three lines.
func (r *Renderer) Seasonality(months []entity.MonthlyActivity) ([]byte, error) {
	if len(months) == 0 {
		return nil, ErrNoData
	}

	xs := make([]float64, len(months))
	referrals := make([]float64, len(months))
	first := make([]float64, len(months))
	followUp := make([]float64, len(months))
	ticks := make([]gochart.Tick, len(months))
	for i, m := range months {
		xs[i] = float64(m.Month)
		referrals[i] = m.Referrals
		first[i] = m.FirstAppointments
		followUp[i] = m.FollowUpAppointments
		ticks[i] = gochart.Tick{Value: xs[i], Label: time.Month(m.Month).String()[:3]}
	}
	// Ticks fix the x range, so a single month needs blank ticks either side.
	if len(ticks) == 1 {
		ticks = []gochart.Tick{{Value: xs[0] - 1}, ticks[0], {Value: xs[0] + 1}}
	}

	all := append(append(append([]float64{}, referrals...), first...), followUp...)
	ch := gochart.Chart{
		Title:      "Seasonality Analysis of Referrals and Appointments",
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Left: 16}},
		XAxis:      gochart.XAxis{Name: "month", Range: paddedRange(xs), Ticks: ticks},
		YAxis:      gochart.YAxis{Range: paddedRange(all)},
		Series: []gochart.Series{
			gochart.ContinuousSeries{Name: "referrals", XValues: xs, YValues: referrals, Style: lineStyle(gochart.ColorBlue)},
			gochart.ContinuousSeries{Name: "first_appointments", XValues: xs, YValues: first, Style: lineStyle(gochart.ColorRed)},
			gochart.ContinuousSeries{Name: "follow_up_appointments", XValues: xs, YValues: followUp, Style: lineStyle(gochart.ColorGreen)},
		},
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	return render(ch.Render)
}

// paddedRange spans the values, widened when they are all equal so the axis
// never has zero extent.
func paddedRange(values []float64) *gochart.ContinuousRange {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return &gochart.ContinuousRange{Min: lo, Max: hi}
}

func render(fn func(gochart.RendererProvider, io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := fn(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}
