// Package config loads the engine's construction knobs (word width,
// initial node/edge capacities, shared-memory backing) from an HCL
// file, the same loader idiom as specialistvlad-burstgridgo's
// hcl_adapter.Loader: parse with hclparse, decode with gohcl into a
// plain struct, translate into the adjacency package's own option
// types.
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/lvlath-labs/wordgraph/adjacency"
	"github.com/lvlath-labs/wordgraph/internal/wordbuf"
)

// Engine is the decoded form of an `engine { ... }` HCL block. Labels
// is an open-ended `labels = { ... }` map (deployment tags, instance
// names) that callers can attach for their own bookkeeping without
// this package needing a typed field per label.
type Engine struct {
	WordWidth    string    `hcl:"word_width,optional"`
	NodeCapacity uint32    `hcl:"node_capacity,optional"`
	EdgeCapacity uint32    `hcl:"edge_capacity,optional"`
	SharedMemory bool      `hcl:"shared_memory,optional"`
	Labels       cty.Value `hcl:"labels,optional"`
}

type fileRoot struct {
	Engine *Engine  `hcl:"engine,block"`
	Remain hcl.Body `hcl:",remain"`
}

// Load parses path and decodes its single `engine` block.
func Load(path string) (*Engine, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: decode %s: %w", path, diags)
	}
	if root.Engine == nil {
		return &Engine{}, nil
	}
	return root.Engine, nil
}

// Width resolves the engine's configured word width, defaulting to
// wordbuf.Width32 when unset or unrecognized.
func (e *Engine) Width() wordbuf.Width {
	switch e.WordWidth {
	case "8":
		return wordbuf.Width8
	case "16":
		return wordbuf.Width16
	default:
		return wordbuf.Width32
	}
}

// LabelStrings converts the Labels map to plain Go strings, coercing
// each value via go-cty's conversion package; non-string values that
// can't convert are silently omitted.
func (e *Engine) LabelStrings() map[string]string {
	out := make(map[string]string)
	if e.Labels == cty.NilVal || e.Labels.IsNull() || !e.Labels.CanIterateElements() {
		return out
	}
	for key, val := range e.Labels.AsValueMap() {
		str, err := convert.Convert(val, cty.String)
		if err != nil {
			continue
		}
		out[key] = str.AsString()
	}
	return out
}

// Options translates the decoded block into adjacency.Option values
// ready to pass to adjacency.New.
func (e *Engine) Options() []adjacency.Option {
	opts := []adjacency.Option{adjacency.WithWordWidth(e.Width())}
	if e.NodeCapacity > 0 {
		opts = append(opts, adjacency.WithNodeCapacity(e.NodeCapacity))
	}
	if e.EdgeCapacity > 0 {
		opts = append(opts, adjacency.WithEdgeCapacity(e.EdgeCapacity))
	}
	if e.SharedMemory {
		opts = append(opts, adjacency.WithSharedMemory())
	}
	return opts
}
