// trackplot renders joint channels from an exported animation set as PNG
// line plots, one image per animation/channel pair.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ivlev/scene2anim/internal/export"
)

func main() {
	inputPtr := flag.String("input", "", "Exported animation set (.anim.yaml)")
	jointPtr := flag.String("joint", "", "Joint name to plot (empty = all joints)")
	channelPtr := flag.String("channel", "translation", "Channel: translation or scale")
	outPtr := flag.String("out", "plots", "Output directory")
	flag.Parse()

	if *inputPtr == "" {
		log.Fatalf("[-] -input is required")
	}
	if *channelPtr != "translation" && *channelPtr != "scale" {
		log.Fatalf("[-] unknown channel %q", *channelPtr)
	}

	doc, err := export.Read(*inputPtr)
	if err != nil {
		log.Fatalf("[-] failed to read %s: %v", *inputPtr, err)
	}
	if err := os.MkdirAll(*outPtr, 0755); err != nil {
		log.Fatalf("[-] failed to create output dir: %v", err)
	}

	plotted := 0
	for _, anim := range doc.Animations {
		for _, jt := range anim.Tracks {
			if *jointPtr != "" && jt.Joint != *jointPtr {
				continue
			}
			keys := jt.Translations
			if *channelPtr == "scale" {
				keys = jt.Scales
			}
			if len(keys) < 2 {
				continue
			}

			file := filepath.Join(*outPtr, fmt.Sprintf("%s_%s_%s.png", anim.Name, jt.Joint, *channelPtr))
			if err := plotChannel(anim.Name, jt.Joint, *channelPtr, keys, file); err != nil {
				log.Fatalf("[-] %v", err)
			}
			fmt.Printf("[*] wrote %s\n", file)
			plotted++
		}
	}

	if plotted == 0 {
		log.Fatalf("[-] nothing to plot (joint %q, channel %q)", *jointPtr, *channelPtr)
	}
}

func plotChannel(animName, jointName, channel string, keys []export.Vec3Key, file string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s / %s %s", animName, jointName, channel)
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = channel

	for axis, label := range []string{"x", "y", "z"} {
		pts := make(plotter.XYs, len(keys))
		for i, k := range keys {
			pts[i].X = k.Time
			pts[i].Y = k.Value[axis]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("failed to build %s series: %w", label, err)
		}
		line.LineStyle.Dashes = plotDashes(axis)
		p.Add(line)
		p.Legend.Add(label, line)
	}

	if err := p.Save(10*vg.Inch, 5*vg.Inch, file); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

// plotDashes distinguishes the three axes without relying on color.
func plotDashes(axis int) []vg.Length {
	switch axis {
	case 1:
		return []vg.Length{vg.Points(4), vg.Points(2)}
	case 2:
		return []vg.Length{vg.Points(1), vg.Points(2)}
	default:
		return nil
	}
}
