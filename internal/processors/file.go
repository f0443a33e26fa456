package processors

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot decodes the top level of a processor file. Anything besides
// processor blocks belongs to the local runner and is ignored here.
type fileRoot struct {
	Processors []*processorBlock `hcl:"processor,block"`
	Remain     hcl.Body          `hcl:",remain"`
}

type processorBlock struct {
	Name        string   `hcl:"name,label"`
	Description string   `hcl:"description,optional"`
	Remain      hcl.Body `hcl:",remain"`
}

// LoadFile parses a processor file and registers every processor it
// declares. Files ending in .json are read as HCL JSON, everything else as
// native HCL syntax:
//
//	processor "tokenizer" {
//	  description = "Splits lines into words for ${env.USER}"
//	}
func (r *Registry) LoadFile(path string) error {
	parser := hclparse.NewParser()

	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		file, diags = parser.ParseJSONFile(path)
	} else {
		file, diags = parser.ParseHCLFile(path)
	}
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse processor file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode processor file %s: %w", path, diags)
	}

	for _, block := range root.Processors {
		p := Processor{
			Name:        block.Name,
			Description: block.Description,
			Source:      path,
		}
		if err := r.Register(p); err != nil {
			return fmt.Errorf("failed to register processor from %s: %w", path, err)
		}
	}
	return nil
}

// evalContext exposes the process environment to processor files as env.NAME.
func evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" || !utf8.ValidString(value) {
			continue
		}
		env[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
	}
}
