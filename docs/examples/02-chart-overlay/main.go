package main

import (
	"log"
	"os"
	"time"

	"github.com/beetlebugorg/geowarp/pkg/geowarp"
)

// Renders the Pacific region with a NOAA OPC surface analysis overlaid on
// GOES-17 imagery. The region crosses the anti-meridian, so the box sets
// the crossing flag and the west edge is given unwrapped.
func main() {
	region := geowarp.Region{
		Name:      "pacific",
		Box:       geowarp.BoundingBox{West: 150, South: 16, East: -115, North: 65, CrossesAntimeridian: true},
		Width:     2441,
		Height:    1556,
		Satellite: "goes-17",
		Chart:     "opc-pacific",
	}

	opts := geowarp.DefaultRendererOptions()
	opts.ChartSources = []geowarp.ChartSource{geowarp.OPCPacificSource()}
	renderer := geowarp.NewRenderer(opts)

	raster, err := os.ReadFile("goes17-20181224-0300.jpg")
	if err != nil {
		log.Fatal(err)
	}
	chart, err := os.ReadFile("opc-pacific-20181224-00z.png")
	if err != nil {
		log.Fatal(err)
	}

	frame, err := renderer.RenderFrame(region, geowarp.FrameInput{
		Satellite: "goes-17",
		Image:     raster,
		Time:      time.Date(2018, 12, 24, 3, 0, 0, 0, time.UTC),
		Chart:     chart,
		ChartTime: time.Date(2018, 12, 24, 0, 0, 0, 0, time.UTC),
		ChartKey:  "opc-pacific-20181224-00z",
		Decorate: &geowarp.Decoration{
			TopLeft: []string{
				" GOES-17 2018-12-24 03:00Z ",
				" OPC Surface Analysis 2018-12-24 00:00Z ",
			},
			Credit: " Imagery: NOAA / NESDIS / STAR ",
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	data, err := frame.EncodePNG()
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile("pacific.png", data, 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote pacific.png, cache: %+v", renderer.CacheStats())
}
