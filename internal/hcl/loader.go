package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/burstrank/internal/config"
	"github.com/vk/burstrank/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL configuration loader that exposes the process
// environment as env.
func NewLoader() *Loader {
	return &Loader{environ: os.Environ}
}

// Load parses and decodes the file at path into a configuration layer.
func (l *Loader) Load(ctx context.Context, path string) (*config.Layer, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, l.evalContext(), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	layer := translate(&root)
	logger.Debug("HCL loading complete.", "path", path)
	return layer, nil
}

func (l *Loader) evalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

// translate converts the decoded HCL schema into the format-agnostic layer.
func translate(root *fileRoot) *config.Layer {
	layer := &config.Layer{}
	if e := root.Engine; e != nil {
		layer.Iterations = e.Iterations
		layer.Buckets = e.Buckets
		layer.BaseRank = e.BaseRank
		layer.DampingFactor = e.DampingFactor
	}
	if o := root.Output; o != nil {
		layer.OutputPath = o.Path
		layer.OutputFormat = o.Format
	}
	if p := root.Progress; p != nil {
		layer.ProgressURL = p.URL
		layer.ProgressNamespace = p.Namespace
		layer.ProgressInsecureSkipVerify = p.InsecureSkipVerify
	}
	return layer
}
