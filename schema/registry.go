// Package schema keeps JSON schemas for configuration kinds and validates
// documents against them.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	validator "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrUnknownKind is returned for a kind that was never registered.
var ErrUnknownKind = errors.New("unknown schema kind")

// Registry stores one JSON schema per configuration kind.
type Registry struct {
	schemas   map[string]string
	compiled  map[string]*validator.Schema
	reflector *jsonschema.Reflector
	mu        sync.RWMutex
}

// RegistryOption configures the Registry.
type RegistryOption func(*Registry)

// WithReflector replaces the reflector used to generate schemas from Go types.
func WithReflector(r *jsonschema.Reflector) RegistryOption {
	return func(reg *Registry) {
		reg.reflector = r
	}
}

// NewRegistry creates an empty schema registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		schemas:  make(map[string]string),
		compiled: make(map[string]*validator.Schema),
		reflector: &jsonschema.Reflector{
			ExpandedStruct: true,
			Anonymous:      true,
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds the schema for kind. model is either a raw schema (string,
// []byte or map) or a struct value or pointer to generate one from.
func (r *Registry) Register(kind string, model any) error {
	schemaStr, err := r.schemaFor(model)
	if err != nil {
		return fmt.Errorf("schema for %s: %w", kind, err)
	}

	compiled, err := compile(kind, schemaStr)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[kind]; exists {
		return fmt.Errorf("schema kind already registered: %s", kind)
	}
	r.schemas[kind] = schemaStr
	r.compiled[kind] = compiled
	return nil
}

// GetSchema returns the JSON schema registered for kind.
func (r *Registry) GetSchema(kind string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[kind]
	return s, ok
}

// List returns the registered kinds in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.schemas))
	for k := range r.schemas {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Validate checks a JSON document against the schema of kind.
func (r *Registry) Validate(kind string, document []byte) error {
	r.mu.RLock()
	compiled, ok := r.compiled[kind]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(document))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("parse %s document: %w", kind, err)
	}

	if err := compiled.Validate(doc); err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%s validation failed: %s", kind, strings.Join(leafMessages(verr), "; "))
		}
		return fmt.Errorf("%s validation failed: %w", kind, err)
	}
	return nil
}

func (r *Registry) schemaFor(model any) (string, error) {
	switch v := model.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to marshal schema map: %w", err)
		}
		return string(b), nil
	}

	t := reflect.TypeOf(model)
	if t == nil || (t.Kind() != reflect.Struct && (t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct)) {
		return "", fmt.Errorf("unsupported schema model %T", model)
	}

	s := r.reflector.Reflect(model)
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal generated schema: %w", err)
	}
	return string(b), nil
}

func compile(kind, schemaStr string) (*validator.Schema, error) {
	compiler := validator.NewCompiler()
	url := "file://local/" + kind + ".schema.json"
	if err := compiler.AddResource(url, strings.NewReader(schemaStr)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource %s: %w", kind, err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", kind, err)
	}
	return compiled, nil
}

// leafMessages flattens a validation error tree to its most specific causes.
func leafMessages(err *validator.ValidationError) []string {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{fmt.Sprintf("%s: %s", loc, err.Message)}
	}
	var out []string
	for _, c := range err.Causes {
		out = append(out, leafMessages(c)...)
	}
	return out
}
