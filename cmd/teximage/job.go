package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gogpu/teximage"
	"gopkg.in/yaml.v3"
)

// JobFile is a batch of jobs sharing one backend.
type JobFile struct {
	Backend string `yaml:"backend"`
	Jobs    []Job  `yaml:"jobs"`
}

// Job describes one load → resize → filter → bind → write pipeline.
type Job struct {
	// Input is decoded when set; otherwise a Width×Height image is created.
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	// Width and Height resize the input when both are positive.
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	// Fill colors a new image. It cannot be combined with Input.
	Fill   string `yaml:"fill"`
	Smooth bool   `yaml:"smooth"`
}

// Validate reports a job that cannot run.
func (j Job) Validate() error {
	if j.Output == "" {
		return errors.New("output is required")
	}
	if j.Width < 0 || j.Height < 0 {
		return fmt.Errorf("negative size %dx%d", j.Width, j.Height)
	}
	if j.Input == "" && (j.Width == 0 || j.Height == 0) {
		return errors.New("width and height are required without input")
	}
	if j.Fill != "" {
		if j.Input != "" {
			return errors.New("fill applies only to new images, not with input")
		}
		if _, err := teximage.Hex(j.Fill); err != nil {
			return err
		}
	}
	return nil
}

// LoadJobFile reads and validates a YAML job file.
func LoadJobFile(path string) (*JobFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}
	return ParseJobFile(data)
}

// ParseJobFile parses and validates YAML job data.
func ParseJobFile(data []byte) (*JobFile, error) {
	var jf JobFile
	if err := yaml.Unmarshal(data, &jf); err != nil {
		return nil, fmt.Errorf("parsing job file: %w", err)
	}
	if len(jf.Jobs) == 0 {
		return nil, errors.New("job file has no jobs")
	}
	for i, j := range jf.Jobs {
		if err := j.Validate(); err != nil {
			return nil, fmt.Errorf("job %d: %w", i+1, err)
		}
	}
	return &jf, nil
}

// Run executes job on dev.
func Run(dev *teximage.Device, job Job) error {
	img, err := teximage.NewImage(dev)
	if err != nil {
		return err
	}
	defer img.Release()

	if job.Input != "" {
		if err := img.LoadFile(job.Input); err != nil {
			return err
		}
		if job.Width > 0 && job.Height > 0 {
			if err := img.Resize(job.Width, job.Height); err != nil {
				return err
			}
		}
	} else {
		if err := img.CreateWithSize(job.Width, job.Height); err != nil {
			return err
		}
		fill := teximage.EmptyColor
		if job.Fill != "" {
			if fill, err = teximage.Hex(job.Fill); err != nil {
				return err
			}
		}
		img.Fill(fill)
	}

	if err := img.SetSmooth(job.Smooth); err != nil {
		return err
	}
	if err := img.Bind(); err != nil {
		return err
	}
	return img.Write(job.Output)
}
