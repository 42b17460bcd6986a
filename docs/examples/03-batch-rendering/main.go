package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/beetlebugorg/geowarp/pkg/geowarp"
)

// Renders every GOES-17 frame in a directory as a time lapse, loading the
// region and chart catalog from a YAML config. Frame files are expected to
// be named goes17-YYYYMMDD-HHMM.jpg.
func main() {
	cfg, err := geowarp.LoadConfig("geowarp.yaml")
	if err != nil {
		log.Fatal(err)
	}
	opts, err := cfg.RendererOptions()
	if err != nil {
		log.Fatal(err)
	}
	renderer := geowarp.NewRenderer(opts)
	region := cfg.Regions[0]

	paths, err := filepath.Glob("frames/goes17-*.jpg")
	if err != nil {
		log.Fatal(err)
	}
	sort.Strings(paths)

	inputs := make([]geowarp.FrameInput, 0, len(paths))
	for _, path := range paths {
		raster, err := os.ReadFile(path)
		if err != nil {
			log.Fatal(err)
		}
		stamp, err := time.Parse("20060102-1504", path[len("frames/goes17-"):len(path)-len(".jpg")])
		if err != nil {
			log.Fatal(err)
		}
		inputs = append(inputs, geowarp.FrameInput{
			Satellite: region.Satellite,
			Image:     raster,
			Time:      stamp,
		})
	}

	frames, errs := renderer.RenderFrames(region, inputs, geowarp.BatchOptions{
		Parallel:   true,
		SkipErrors: true,
		Progress: func(done, total int) {
			fmt.Printf("\rRendering: %d/%d", done, total)
		},
		ErrorLog: os.Stderr,
	})
	fmt.Println()
	for _, err := range errs {
		log.Printf("skipped: %v", err)
	}

	for i, frame := range frames {
		if frame == nil {
			continue
		}
		data, err := frame.EncodePNG()
		if err != nil {
			log.Fatal(err)
		}
		name := fmt.Sprintf("out/frame-%04d.png", i)
		if err := os.WriteFile(name, data, 0o644); err != nil {
			log.Fatal(err)
		}
	}
	log.Printf("rendered %d/%d frames", len(frames)-len(errs), len(inputs))
}
