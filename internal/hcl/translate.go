// This file translates the HCL schema structs into the format-agnostic
// configuration model defined in the config package.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/topicprobe/internal/config"
	"github.com/specialistvlad/topicprobe/internal/schema"
)

func (l *Loader) translateChecker(ctx context.Context, s *schema.Checker, out *config.CheckerSettings, evalCtx *hcl.EvalContext) error {
	if err := l.converter.DecodeAttributes(ctx, s.Body, out, evalCtx); err != nil {
		return fmt.Errorf("checker block: %w", err)
	}
	return nil
}

func (l *Loader) translateIntrospection(ctx context.Context, s *schema.Introspection, out *config.Introspection, evalCtx *hcl.EvalContext) error {
	out.Backend = s.Backend
	if err := l.converter.DecodeAttributes(ctx, s.Body, out, evalCtx); err != nil {
		return fmt.Errorf("introspection %q: %w", s.Backend, err)
	}
	return nil
}

func (l *Loader) translateMessageType(s *schema.MessageType) *config.MessageTypeDefinition {
	return &config.MessageTypeDefinition{
		Descriptor:  s.Descriptor,
		Description: s.Description,
	}
}

func (l *Loader) translateTopic(ctx context.Context, s *schema.Topic, evalCtx *hcl.EvalContext) (*config.SnapshotTopic, error) {
	t := &config.SnapshotTopic{Name: s.Name}
	if err := l.converter.DecodeAttributes(ctx, s.Body, t, evalCtx); err != nil {
		return nil, fmt.Errorf("topic %q: %w", s.Name, err)
	}
	if t.Type == "" {
		return nil, fmt.Errorf("topic %q: missing required attribute \"type\"", s.Name)
	}
	return t, nil
}

func (l *Loader) translateNode(ctx context.Context, s *schema.Node, evalCtx *hcl.EvalContext) (*config.SnapshotNode, error) {
	n := &config.SnapshotNode{Name: s.Name}
	if err := l.converter.DecodeAttributes(ctx, s.Body, n, evalCtx); err != nil {
		return nil, fmt.Errorf("node %q: %w", s.Name, err)
	}
	return n, nil
}
