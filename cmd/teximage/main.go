// Command teximage loads, resizes and writes images through a texture
// backend.
//
// Single job from flags:
//
//	teximage -in sprite.png -width 64 -height 64 -smooth -out sprite.tga
//	teximage -width 16 -height 16 -fill '#ff000080' -out red.bmp
//
// Batch jobs from a YAML file:
//
//	teximage -config jobs.yaml
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/teximage"
	"github.com/gogpu/teximage/backend"
	_ "github.com/gogpu/teximage/backend/wgpu" // registers the headless HAL backend
)

func main() {
	var (
		backendName = flag.String("backend", "", "texture backend (default: best available)")
		config      = flag.String("config", "", "YAML job file")
		input       = flag.String("in", "", "input image file")
		output      = flag.String("out", "", "output file (.png, .tga, anything else writes BMP)")
		width       = flag.Int("width", 0, "width to create or resize to")
		height      = flag.Int("height", 0, "height to create or resize to")
		fill        = flag.String("fill", "", "fill color for new images (#rgb, #rgba, #rrggbb, #rrggbbaa)")
		smooth      = flag.Bool("smooth", false, "use linear texture filtering")
		verbose     = flag.Bool("v", false, "debug logging")
		list        = flag.Bool("backends", false, "list registered backends and exit")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	teximage.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *list {
		for _, name := range backend.Available() {
			fmt.Println(name)
		}
		return
	}

	jobs := &JobFile{
		Backend: *backendName,
		Jobs: []Job{{
			Input:  *input,
			Output: *output,
			Width:  *width,
			Height: *height,
			Fill:   *fill,
			Smooth: *smooth,
		}},
	}
	if *config != "" {
		var err error
		if jobs, err = LoadJobFile(*config); err != nil {
			log.Fatalf("Failed to load jobs: %v", err)
		}
		if *backendName != "" {
			jobs.Backend = *backendName
		}
	} else if err := jobs.Jobs[0].Validate(); err != nil {
		flag.Usage()
		log.Fatalf("Invalid arguments: %v", err)
	}

	dev, err := teximage.OpenDevice(jobs.Backend)
	if err != nil {
		log.Fatalf("Failed to open device: %v", err)
	}

	for i, job := range jobs.Jobs {
		if err := Run(dev, job); err != nil {
			log.Fatalf("Job %d (%s): %v", i+1, job.Output, err)
		}
		log.Printf("Wrote %s\n", job.Output)
	}
}
