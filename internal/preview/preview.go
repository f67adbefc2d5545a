// Package preview renders extracted animation sets as interactive HTML line
// charts, one chart per joint channel. Debug tooling only; nothing here is
// consumed by extraction.
package preview

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ivlev/scene2anim/internal/skeleton"
	"github.com/ivlev/scene2anim/internal/track"
)

// Render writes one HTML page per animation set: a translation and a
// rotation chart for every joint with more than one key (single-key
// bind-pose tracks carry no curve worth plotting).
func Render(set track.AnimationSet, skel *skeleton.Skeleton, w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = "scene2anim preview"

	for _, anim := range set {
		for i, jt := range anim.Tracks {
			if len(jt.Translations) < 2 && len(jt.Rotations) < 2 && len(jt.Scales) < 2 {
				continue
			}
			name := fmt.Sprintf("%s / %s", anim.Name, skel.JointName(i))
			page.AddCharts(
				translationChart(name, jt),
				rotationChart(name, jt),
			)
		}
	}

	return page.Render(w)
}

// RenderFile renders the preview page to a file on disk.
func RenderFile(set track.AnimationSet, skel *skeleton.Skeleton, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Render(set, skel, f)
}

func translationChart(name string, jt track.JointTrack) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: name + " translation", Subtitle: "clip-local seconds"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	times := make([]string, len(jt.Translations))
	x := make([]opts.LineData, len(jt.Translations))
	y := make([]opts.LineData, len(jt.Translations))
	z := make([]opts.LineData, len(jt.Translations))
	for i, k := range jt.Translations {
		times[i] = fmt.Sprintf("%.3f", k.Time)
		x[i] = opts.LineData{Value: k.Value.X}
		y[i] = opts.LineData{Value: k.Value.Y}
		z[i] = opts.LineData{Value: k.Value.Z}
	}

	line.SetXAxis(times).
		AddSeries("x", x).
		AddSeries("y", y).
		AddSeries("z", z)
	return line
}

func rotationChart(name string, jt track.JointTrack) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: name + " rotation", Subtitle: "quaternion components"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	times := make([]string, len(jt.Rotations))
	w := make([]opts.LineData, len(jt.Rotations))
	x := make([]opts.LineData, len(jt.Rotations))
	y := make([]opts.LineData, len(jt.Rotations))
	z := make([]opts.LineData, len(jt.Rotations))
	for i, k := range jt.Rotations {
		times[i] = fmt.Sprintf("%.3f", k.Time)
		w[i] = opts.LineData{Value: k.Value.Real}
		x[i] = opts.LineData{Value: k.Value.Imag}
		y[i] = opts.LineData{Value: k.Value.Jmag}
		z[i] = opts.LineData{Value: k.Value.Kmag}
	}

	line.SetXAxis(times).
		AddSeries("w", w).
		AddSeries("x", x).
		AddSeries("y", y).
		AddSeries("z", z)
	return line
}
