package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/teximage"
	"github.com/gogpu/teximage/backend"
)

func TestParseJobFile(t *testing.T) {
	data := []byte(`
backend: software
jobs:
  - input: in.png
    output: out.tga
    width: 32
    height: 16
    smooth: true
  - output: blank.bmp
    width: 4
    height: 4
    fill: "#ff0000"
`)
	jf, err := ParseJobFile(data)
	if err != nil {
		t.Fatalf("ParseJobFile() error = %v", err)
	}
	if jf.Backend != "software" || len(jf.Jobs) != 2 {
		t.Fatalf("parsed %+v", jf)
	}
	want := Job{Input: "in.png", Output: "out.tga", Width: 32, Height: 16, Smooth: true}
	if jf.Jobs[0] != want {
		t.Errorf("job 1 = %+v, want %+v", jf.Jobs[0], want)
	}
	if jf.Jobs[1].Fill != "#ff0000" {
		t.Errorf("job 2 fill = %q", jf.Jobs[1].Fill)
	}
}

func TestParseJobFileErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad yaml", "jobs: [", "parsing job file"},
		{"no jobs", "backend: software\n", "no jobs"},
		{"no output", "jobs:\n  - input: a.png\n", "output is required"},
		{"no size", "jobs:\n  - output: a.png\n    width: 4\n", "width and height"},
		{"negative", "jobs:\n  - input: a.png\n    output: b.png\n    width: -1\n", "negative size"},
		{"bad fill", "jobs:\n  - output: a.png\n    width: 1\n    height: 1\n    fill: nope\n", "hex color"},
		{"fill with input", "jobs:\n  - input: a.png\n    output: b.png\n    fill: \"#fff\"\n", "fill applies only to new images"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJobFile([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseJobFile() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadJobFileMissing(t *testing.T) {
	if _, err := LoadJobFile(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("LoadJobFile(missing) succeeded")
	}
}

func newDevice(t *testing.T) *teximage.Device {
	t.Helper()
	dev, err := teximage.NewDevice(backend.NewSoftwareDriver())
	if err != nil {
		t.Fatal(err)
	}
	return dev
}

func TestRunCreateAndResize(t *testing.T) {
	dir := t.TempDir()
	dev := newDevice(t)

	blank := filepath.Join(dir, "blank.png")
	if err := Run(dev, Job{Output: blank, Width: 2, Height: 2, Fill: "#00ff00"}); err != nil {
		t.Fatalf("Run(create) error = %v", err)
	}

	resized := filepath.Join(dir, "resized.tga")
	if err := Run(dev, Job{Input: blank, Output: resized, Width: 3, Height: 1, Smooth: true}); err != nil {
		t.Fatalf("Run(resize) error = %v", err)
	}

	img, err := teximage.NewImage(dev)
	if err != nil {
		t.Fatal(err)
	}
	defer img.Release()
	if err := img.LoadFile(resized); err != nil {
		t.Fatal(err)
	}
	if img.Width() != 3 || img.Height() != 1 {
		t.Fatalf("size = %dx%d, want 3x1", img.Width(), img.Height())
	}
	want := []teximage.Color{teximage.Green, teximage.Green, teximage.EmptyColor}
	for x, c := range want {
		if got := img.At(x, 0); got != c {
			t.Errorf("At(%d,0) = %v, want %v", x, got, c)
		}
	}
}

func TestRunJobFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.bmp")
	cfg := filepath.Join(dir, "jobs.yaml")
	data := "jobs:\n  - output: " + out + "\n    width: 8\n    height: 8\n"
	if err := os.WriteFile(cfg, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	jf, err := LoadJobFile(cfg)
	if err != nil {
		t.Fatal(err)
	}
	dev := newDevice(t)
	for _, j := range jf.Jobs {
		if err := Run(dev, j); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRunMissingInput(t *testing.T) {
	dev := newDevice(t)
	err := Run(dev, Job{Input: filepath.Join(t.TempDir(), "none.png"), Output: "x.png"})
	if err == nil {
		t.Error("Run with missing input succeeded")
	}
}
