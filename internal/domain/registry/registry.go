package registry

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider identifies an upstream chat completion API.
type Provider string

const (
	ProviderXAI    Provider = "xai"
	ProviderOpenAI Provider = "openai"

	// DefaultProvider serves every model name the registry does not know.
	DefaultProvider = ProviderXAI
)

// Valid reports whether p names a supported provider.
func (p Provider) Valid() bool {
	return p == ProviderXAI || p == ProviderOpenAI
}

// ModelDescriptor maps a model name to the provider that serves it.
type ModelDescriptor struct {
	Name     string   `json:"name" yaml:"name"`
	Provider Provider `json:"provider" yaml:"provider"`
}

// Registry is an ordered, read-only model table.
type Registry struct {
	models []ModelDescriptor
	index  map[string]int
}

var builtin = []ModelDescriptor{
	{Name: "grok-beta", Provider: ProviderXAI},
	{Name: "grok-2-latest", Provider: ProviderXAI},
	{Name: "grok-2-1212", Provider: ProviderXAI},
	{Name: "grok-vision-beta", Provider: ProviderXAI},
	{Name: "gpt-4o", Provider: ProviderOpenAI},
	{Name: "gpt-4o-mini", Provider: ProviderOpenAI},
	{Name: "gpt-4-turbo", Provider: ProviderOpenAI},
	{Name: "gpt-3.5-turbo", Provider: ProviderOpenAI},
}

// NewRegistry copies descriptors into a registry. The first occurrence of a
// name wins.
func NewRegistry(descriptors []ModelDescriptor) *Registry {
	r := &Registry{
		models: make([]ModelDescriptor, 0, len(descriptors)),
		index:  make(map[string]int, len(descriptors)),
	}
	for _, d := range descriptors {
		if _, seen := r.index[d.Name]; seen {
			continue
		}
		r.index[d.Name] = len(r.models)
		r.models = append(r.models, d)
	}
	return r
}

// DefaultRegistry returns the built-in model table.
func DefaultRegistry() *Registry {
	return NewRegistry(builtin)
}

// ResolveProvider returns the provider for modelName, or DefaultProvider
// when the name is not registered.
func (r *Registry) ResolveProvider(modelName string) Provider {
	if d, ok := r.Lookup(modelName); ok {
		return d.Provider
	}
	return DefaultProvider
}

// Lookup finds modelName by exact match.
func (r *Registry) Lookup(modelName string) (ModelDescriptor, bool) {
	i, ok := r.index[modelName]
	if !ok {
		return ModelDescriptor{}, false
	}
	return r.models[i], true
}

// Models returns the table in registration order.
func (r *Registry) Models() []ModelDescriptor {
	out := make([]ModelDescriptor, len(r.models))
	copy(out, r.models)
	return out
}

// DefaultModel is the first registered model name, or "" for an empty table.
func (r *Registry) DefaultModel() string {
	if len(r.models) == 0 {
		return ""
	}
	return r.models[0].Name
}

type fileFormat struct {
	Models []ModelDescriptor `yaml:"models"`
}

// LoadFile reads a YAML model table of the form
//
//	models:
//	  - name: grok-beta
//	    provider: xai
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model registry: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML model table.
func Parse(data []byte) (*Registry, error) {
	var file fileFormat
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode model registry: %w", err)
	}
	if len(file.Models) == 0 {
		return nil, fmt.Errorf("model registry has no models")
	}
	for i, m := range file.Models {
		m.Name = strings.TrimSpace(m.Name)
		m.Provider = Provider(strings.ToLower(strings.TrimSpace(string(m.Provider))))
		if m.Name == "" {
			return nil, fmt.Errorf("model %d: name is required", i)
		}
		if !m.Provider.Valid() {
			return nil, fmt.Errorf("model %q: unknown provider %q", m.Name, m.Provider)
		}
		file.Models[i] = m
	}
	return NewRegistry(file.Models), nil
}
