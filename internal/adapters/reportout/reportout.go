// Package reportout writes a report to a directory: legend, data, query and a png chart
package reportout

import (
	"bytes"
	"math"
	"os"
	"path/filepath"

	perr "confmatrix/internal/platform/errors"
	"confmatrix/internal/platform/logger"
	"confmatrix/internal/services/report/domain"

	"github.com/wcharczuk/go-chart/v2"
	"gopkg.in/yaml.v3"
)

// File names written by WriteDir
const (
	LegendFile = "legend.yaml"
	DataFile   = "fig_data.yaml"
	ConfigFile = "config.yaml"
	FigureFile = "figure.png"
)

// WriteDir creates dir and writes the report files into it, returning their paths
// the figure is skipped when no series has a numeric point
func WriteDir(dir string, q domain.Query, rep domain.Report) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "create %s", dir)
	}

	var written []string
	for _, f := range []struct {
		name string
		v    any
	}{
		{LegendFile, rep.Legend},
		{DataFile, rep.Series},
		{ConfigFile, q},
	} {
		p := filepath.Join(dir, f.name)
		if err := writeYAML(p, f.v); err != nil {
			return written, err
		}
		written = append(written, p)
	}

	png, err := Figure(q, rep)
	if err != nil {
		return written, err
	}
	if png == nil {
		logger.Named("reportout").Warn().Str("dir", dir).Msg("no numeric points, figure skipped")
		return written, nil
	}
	p := filepath.Join(dir, FigureFile)
	if err := os.WriteFile(p, png, 0o644); err != nil {
		return written, perr.Wrapf(err, perr.ErrorCodeUnknown, "write %s", p)
	}
	return append(written, p), nil
}

func writeYAML(path string, v any) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "encode %s", filepath.Base(path))
	}
	if err := enc.Close(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "encode %s", filepath.Base(path))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "write %s", path)
	}
	return nil
}

// Figure renders the series as a png line chart with a legend
// points whose x or y is not a number are left out; nil means nothing to draw
func Figure(q domain.Query, rep domain.Report) ([]byte, error) {
	var (
		series []chart.Series
		xr, yr = span(), span()
	)
	for _, s := range rep.Series {
		var xs, ys []float64
		for i := range s.X {
			x, okX := number(s.X[i])
			y, okY := number(s.Y[i])
			if !okX || !okY {
				continue
			}
			xs, ys = append(xs, x), append(ys, y)
			xr.add(x)
			yr.add(y)
		}
		if len(xs) == 0 {
			continue
		}
		series = append(series, chart.ContinuousSeries{Name: s.Label, XValues: xs, YValues: ys})
	}
	if len(series) == 0 {
		return nil, nil
	}

	graph := chart.Chart{
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      chart.XAxis{Name: q.XAxis, Range: xr.rng()},
		YAxis:      chart.YAxis{Name: q.YAxis, Range: yr.rng()},
		Series:     series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "render figure")
	}
	return buf.Bytes(), nil
}

type bounds struct{ min, max float64 }

func span() *bounds { return &bounds{min: math.Inf(1), max: math.Inf(-1)} }

func (b *bounds) add(v float64) {
	b.min = math.Min(b.min, v)
	b.max = math.Max(b.max, v)
}

// rng pads a degenerate range, go-chart refuses a zero width axis
func (b *bounds) rng() *chart.ContinuousRange {
	lo, hi := b.min, b.max
	if lo == hi {
		pad := math.Max(math.Abs(lo)*0.1, 1)
		lo, hi = lo-pad, hi+pad
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
