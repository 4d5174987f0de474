package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gppd-stats/domain/kpi"
	pp "gppd-stats/domain/powerplant"

	lo "github.com/samber/lo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var categoryColors = map[pp.FuelCategory]color.Color{
	pp.Renewable:    color.RGBA{R: 34, G: 139, B: 34, A: 255},
	pp.NonRenewable: color.RGBA{R: 105, G: 105, B: 105, A: 255},
	pp.Nuclear:      color.RGBA{R: 255, G: 165, B: 0, A: 255},
	pp.Other:        color.RGBA{R: 70, G: 130, B: 180, A: 255},
	pp.Unknown:      color.RGBA{R: 211, G: 211, B: 211, A: 255},
}

var categoryLabels = map[pp.FuelCategory]string{
	pp.Renewable:    "Renewable",
	pp.NonRenewable: "Non-Renewable",
	pp.Nuclear:      "Nuclear",
	pp.Other:        "Other",
	pp.Unknown:      "Unknown",
}

// FuelMix renders one stacked bar per country with the percentage of plants in each category.
func FuelMix(path string, mix []kpi.FuelMix) error {
	if len(mix) == 0 {
		return fmt.Errorf("fuel mix: no countries")
	}
	p := plot.New()
	p.Title.Text = "Primary Fuel Mix by Country (%)"
	p.X.Label.Text = "Country"
	p.Y.Label.Text = "%"
	p.Y.Min = 0
	p.Y.Max = 100
	p.Legend.Top = true

	var below *plotter.BarChart
	for _, cat := range pp.AllCategories {
		values := make(plotter.Values, len(mix))
		for i, m := range mix {
			values[i] = m.Percent(cat)
		}
		bars, err := plotter.NewBarChart(values, vg.Points(12))
		if err != nil {
			return err
		}
		bars.Color = categoryColors[cat]
		bars.LineStyle.Width = vg.Length(0)
		if below != nil {
			bars.StackOn(below)
		}
		p.Add(bars)
		p.Legend.Add(categoryLabels[cat], bars)
		below = bars
	}

	p.NominalX(lo.Map(mix, func(m kpi.FuelMix, _ int) string { return m.Country })...)
	rotateTicks(p)
	width := vg.Length(math.Max(8, float64(len(mix))*0.35)) * vg.Inch
	return save(p, width, 8*vg.Inch, path)
}

// SharePie renders the category shares of one aggregate as a pie chart.
func SharePie(path string, agg kpi.CountryAggregate) error {
	var slices []pieSlice
	for _, cat := range pp.AllCategories {
		s := agg.Share(cat)
		if s == nil || *s <= 0 {
			continue
		}
		slices = append(slices, pieSlice{
			label: fmt.Sprintf("%s %.2f%%", categoryLabels[cat], *s*100),
			value: *s,
			color: categoryColors[cat],
		})
	}
	if len(slices) == 0 {
		return fmt.Errorf("share pie %s: no generation", agg.Country)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Renewable vs Non-Renewable Energy Generation in %s", agg.Country)
	p.HideAxes()
	p.Legend.Top = true
	pie := &pieChart{slices: slices, start: 140 * math.Pi / 180}
	p.Add(pie)
	for i := range slices {
		p.Legend.Add(slices[i].label, colorBox{slices[i].color})
	}
	return save(p, 7*vg.Inch, 7*vg.Inch, path)
}

// ShareComparison renders the renewable share of the given countries side by side:
// over all years on the left, for the single year on the right.
func ShareComparison(path string, allYears, inYear []kpi.CountryAggregate, year int) error {
	left, err := shareBars("Renewable Share (All Years)", allYears, color.RGBA{G: 128, A: 255})
	if err != nil {
		return err
	}
	right, err := shareBars(fmt.Sprintf("Renewable Share (%d)", year), inYear, color.RGBA{B: 255, A: 255})
	if err != nil {
		return err
	}

	img := vgimg.New(14*vg.Inch, 6*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 1, Cols: 2, PadX: vg.Millimeter, PadY: vg.Millimeter, PadTop: vg.Points(2), PadBottom: vg.Points(2), PadLeft: vg.Points(2), PadRight: vg.Points(2)}
	canvases := plot.Align([][]*plot.Plot{{left, right}}, tiles, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		return err
	}
	return f.Close()
}

func shareBars(title string, aggs []kpi.CountryAggregate, c color.Color) (*plot.Plot, error) {
	aggs = lo.Filter(aggs, func(a kpi.CountryAggregate, _ int) bool { return a.RenewableShare != nil })
	if len(aggs) == 0 {
		return nil, fmt.Errorf("%s: no countries with a renewable share", title)
	}
	values := lo.Map(aggs, func(a kpi.CountryAggregate, _ int) float64 { return *a.RenewableShare * 100 })
	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(16))
	if err != nil {
		return nil, err
	}
	bars.Color = c
	bars.LineStyle.Width = vg.Length(0)

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "% Renewable Generation"
	p.Y.Min = 0
	p.Add(bars)
	p.NominalX(lo.Map(aggs, func(a kpi.CountryAggregate, _ int) string { return a.Country })...)
	rotateTicks(p)
	return p, nil
}

func rotateTicks(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

func save(p *plot.Plot, w, h vg.Length, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return p.Save(w, h, path)
}

// FileName turns a country name into a file-system friendly stem.
func FileName(country string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '_'
	}, country)
	return strings.Trim(s, "_")
}
