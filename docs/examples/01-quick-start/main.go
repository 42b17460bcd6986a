package main

import (
	"log"
	"os"
	"time"

	"github.com/beetlebugorg/geowarp/pkg/geowarp"
)

func main() {
	// A region is a geodetic crop rendered at a fixed resolution.
	region := geowarp.Region{
		Name:      "eastpac",
		Box:       geowarp.BoundingBox{West: -160, South: 20, East: -120, North: 50},
		Width:     1200,
		Height:    750,
		Satellite: "goes-17",
	}

	raster, err := os.ReadFile("goes17-20181224-0300.jpg")
	if err != nil {
		log.Fatal(err)
	}

	renderer := geowarp.NewRenderer(geowarp.DefaultRendererOptions())
	frame, err := renderer.RenderFrame(region, geowarp.FrameInput{
		Satellite: "goes-17",
		Image:     raster,
		Time:      time.Date(2018, 12, 24, 3, 0, 0, 0, time.UTC),
	})
	if err != nil {
		log.Fatal(err)
	}

	data, err := frame.EncodePNG()
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile("eastpac.png", data, 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote eastpac.png (%dx%d)", region.Width, region.Height)
}
