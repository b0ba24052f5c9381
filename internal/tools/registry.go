// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tools exposes InspireHEP operations as named tools an agent can
// call. A Registry is built once at startup and handed to the transports
// (line-delimited stdio, HTTP); nothing here is global.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pdiddy/inspirehep-engine/pkg/types"
)

// Handler runs a tool with its raw JSON arguments and returns a
// JSON-serializable document. Handlers report failures as documents, never
// as panics.
type Handler func(ctx context.Context, args json.RawMessage) any

// Param documents one tool argument.
type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required,omitempty"`
}

// Tool is a named, documented operation.
type Tool struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Params      []Param `json:"params"`
	Handler     Handler `json:"-"`
}

// Registry holds the tools available to callers. Register everything before
// serving; lookups are read-only afterwards and safe for concurrent use.
type Registry struct {
	tools    map[string]Tool
	validate *validator.Validate
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Registry{
		tools:    make(map[string]Tool),
		validate: v,
	}
}

// Register adds t. Names must be unique.
func (r *Registry) Register(t Tool) error {
	if t.Name == "" {
		return errors.New("tool name is empty")
	}
	if t.Handler == nil {
		return fmt.Errorf("tool %s has no handler", t.Name)
	}
	if _, ok := r.tools[t.Name]; ok {
		return fmt.Errorf("tool %s already registered", t.Name)
	}
	r.tools[t.Name] = t
	return nil
}

// Lookup returns the tool called name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// List returns all tools sorted by name.
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Call runs the tool called name. An unknown name yields an error document.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) any {
	t, ok := r.tools[name]
	if !ok {
		return types.NewErrorDocument(fmt.Sprintf("unknown tool: %s", name))
	}
	return t.Handler(ctx, args)
}

// Decode unmarshals raw tool arguments into dst and validates it. Missing or
// null arguments decode as an empty object, so required-field checks still
// apply.
func (r *Registry) Decode(name string, raw json.RawMessage, dst any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid arguments for %s: %w", name, err)
	}
	if err := r.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid arguments for %s: %s", name, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid arguments for %s: %w", name, err)
	}
	return nil
}
