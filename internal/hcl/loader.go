package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/topicprobe/internal/config"
	"github.com/specialistvlad/topicprobe/internal/ctxlog"
	"github.com/specialistvlad/topicprobe/internal/fsutil"
	"github.com/specialistvlad/topicprobe/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	converter *Converter
	environ   func() []string
}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{
		converter: NewConverter(),
		environ:   os.Environ,
	}
}

// Load parses every .hcl file found under paths and merges them into a model
// seeded with defaults. `checker` and `introspection` may appear at most once
// across all files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(hclFiles) == 0 {
		return nil, fmt.Errorf("no .hcl configuration files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	model := config.DefaultModel()
	snapshot := &config.Snapshot{}
	evalCtx := l.evalContext()
	parser := hclparse.NewParser()

	var checkerSeen, introspectionSeen string
	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.File
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Checkers {
			if checkerSeen != "" {
				return nil, fmt.Errorf("duplicate checker block in %s, already defined in %s", file, checkerSeen)
			}
			checkerSeen = file
			if err := l.translateChecker(ctx, block, &model.Checker, evalCtx); err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
		}
		for _, block := range root.Introspection {
			if introspectionSeen != "" {
				return nil, fmt.Errorf("duplicate introspection block in %s, already defined in %s", file, introspectionSeen)
			}
			introspectionSeen = file
			if err := l.translateIntrospection(ctx, block, &model.Introspection, evalCtx); err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
		}
		for _, block := range root.MessageTypes {
			def := l.translateMessageType(block)
			model.MessageTypes[def.Descriptor] = def
		}
		for _, block := range root.Topics {
			topic, err := l.translateTopic(ctx, block, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			snapshot.Topics = append(snapshot.Topics, topic)
		}
		for _, block := range root.Nodes {
			node, err := l.translateNode(ctx, block, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			snapshot.Nodes = append(snapshot.Nodes, node)
		}
	}

	if len(snapshot.Topics) > 0 || len(snapshot.Nodes) > 0 {
		model.Snapshot = snapshot
	}

	logger.Debug("HCL loading complete.",
		"important_topics", len(model.Checker.ImportantTopics),
		"message_types", len(model.MessageTypes),
		"snapshot", model.Snapshot != nil,
	)
	return model, nil
}

// evalContext exposes the process environment as `env.NAME`.
func (l *Loader) evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !hclsyntax.ValidIdentifier(name) {
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

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl files found.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	return fsutil.FindFilesByExtension(".hcl", paths...)
}
