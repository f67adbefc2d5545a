package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/scene2anim/internal/config"
	"github.com/ivlev/scene2anim/internal/export"
	"github.com/ivlev/scene2anim/internal/preview"
	"github.com/ivlev/scene2anim/internal/sampler"
	"github.com/ivlev/scene2anim/internal/scene/yamlscene"
	"github.com/ivlev/scene2anim/internal/system"
)

var buildVersion = "dev"

func main() {
	system.InitResourceLimits()

	// Default working directories, created if missing.
	dirs := []string{"input/scenes", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	inputPtr := flag.String("input", "", "Scene document, or empty to pick the latest file in input/scenes/")
	outPtr := flag.String("out", "output", "Output directory for extracted animation sets")
	ratePtr := flag.Float64("rate", 0, "Sampling rate override in hz (0 = use the scene rate)")
	previewPtr := flag.Bool("preview", false, "Also render an HTML preview of the extracted tracks")
	trackPtr := flag.String("track", "", "Ad-hoc property extraction as node:property")
	workersPtr := flag.Int("workers", 1, "Scene documents processed in parallel (each document stays sequential)")
	statsPtr := flag.Bool("stats", false, "Print time and memory stats after the run")
	configPtr := flag.String("config", "", "Optional YAML config file (flags win)")
	verbosePtr := flag.Bool("verbose", false, "Verbose per-joint logging")
	versionPtr := flag.Bool("version", false, "Print version and exit")

	flag.Parse()

	if *versionPtr {
		fmt.Printf("scene2anim %s\n", buildVersion)
		return
	}

	cfg := config.Default()
	if *configPtr != "" {
		loaded, err := config.Load(*configPtr)
		if err != nil {
			log.Fatalf("[-] failed to load config: %v", err)
		}
		cfg = loaded
	}
	cfg.BuildVersion = buildVersion

	// Explicitly set flags override the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Inputs = []string{*inputPtr}
		case "out":
			cfg.OutputDir = *outPtr
		case "rate":
			cfg.SamplingRate = *ratePtr
		case "preview":
			cfg.Preview = *previewPtr
		case "track":
			cfg.Track = *trackPtr
		case "workers":
			cfg.Workers = *workersPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		case "verbose":
			cfg.Verbose = *verbosePtr
		}
	})

	inputs := append([]string{}, cfg.Inputs...)
	inputs = append(inputs, flag.Args()...)
	if len(inputs) == 0 {
		latest, err := system.FindLatestDocument("input/scenes")
		if err != nil {
			log.Fatalf("[-] %v (put a scene document in input/scenes/)", err)
		}
		inputs = []string{latest}
		fmt.Printf("[*] selected document: %s\n", latest)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Fatalf("[-] failed to create output directory: %v", err)
	}

	sampler.Verbose = cfg.Verbose
	start := time.Now()

	// Documents are independent of each other; extraction within one
	// document stays strictly sequential.
	var g errgroup.Group
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for _, input := range inputs {
		g.Go(func() error {
			return run(input, cfg)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("[-] %v", err)
	}

	if cfg.ShowStats {
		system.PrintStats(start)
	}
	fmt.Printf("[*] done: %d document(s)\n", len(inputs))
}

// run extracts one scene document end to end.
func run(path string, cfg *config.Config) error {
	doc, err := yamlscene.Load(path)
	if err != nil {
		return err
	}
	sc, err := doc.Scene()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	skel, err := doc.BuildSkeleton()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	set, err := sampler.ExtractAnimations(sc, yamlscene.IdentityConverter{}, skel, cfg.SamplingRate)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for i := range set {
		if err := set[i].Validate(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := export.OutputPath(cfg.OutputDir, base)
	if err := export.Write(set, skel, outPath); err != nil {
		return fmt.Errorf("%s: failed to write export: %w", path, err)
	}
	fmt.Printf("[*] %s: %d animation(s) -> %s\n", path, len(set), outPath)

	if cfg.Preview {
		htmlPath := strings.TrimSuffix(outPath, ".anim.yaml") + ".html"
		if err := preview.RenderFile(set, skel, htmlPath); err != nil {
			return fmt.Errorf("%s: failed to render preview: %w", path, err)
		}
		fmt.Printf("[*] preview -> %s\n", htmlPath)
	}

	if cfg.Track != "" {
		node, prop, ok := strings.Cut(cfg.Track, ":")
		if !ok {
			return fmt.Errorf("invalid -track value %q, want node:property", cfg.Track)
		}
		w := sampler.PlanWindow(sc, nil, cfg.SamplingRate)
		curve, err := sampler.ExtractTrack(sc, node, prop, w)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Printf("[*] track %s: %d key(s)\n", cfg.Track, curve.Len())
	}

	return nil
}
