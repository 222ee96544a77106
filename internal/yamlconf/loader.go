// Package yamlconf reads burstrank configuration files written in YAML.
// The document mirrors the HCL layout:
//
//	engine:
//	  iterations: 100
//	  buckets: 1009
//	output:
//	  path: ranks.json
//	progress:
//	  url: http://localhost:3000
package yamlconf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/burstrank/internal/config"
	"github.com/vk/burstrank/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

type document struct {
	Engine *struct {
		Iterations    *int     `yaml:"iterations"`
		Buckets       *int     `yaml:"buckets"`
		BaseRank      *float64 `yaml:"base_rank"`
		DampingFactor *float64 `yaml:"damping_factor"`
	} `yaml:"engine"`
	Output *struct {
		Path   *string `yaml:"path"`
		Format *string `yaml:"format"`
	} `yaml:"output"`
	Progress *struct {
		URL                *string `yaml:"url"`
		Namespace          *string `yaml:"namespace"`
		InsecureSkipVerify *bool   `yaml:"insecure_skip_verify"`
	} `yaml:"progress"`
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

var _ config.Loader = Loader{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() Loader {
	return Loader{}
}

// Load decodes the file at path. Unknown keys are rejected; an empty file
// yields an empty layer.
func (Loader) Load(ctx context.Context, path string) (*config.Layer, error) {
	ctxlog.FromContext(ctx).Debug("YAML loader started.", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var doc document
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	layer := &config.Layer{}
	if e := doc.Engine; e != nil {
		layer.Iterations = e.Iterations
		layer.Buckets = e.Buckets
		layer.BaseRank = e.BaseRank
		layer.DampingFactor = e.DampingFactor
	}
	if o := doc.Output; o != nil {
		layer.OutputPath = o.Path
		layer.OutputFormat = o.Format
	}
	if p := doc.Progress; p != nil {
		layer.ProgressURL = p.URL
		layer.ProgressNamespace = p.Namespace
		layer.ProgressInsecureSkipVerify = p.InsecureSkipVerify
	}
	return layer, nil
}
