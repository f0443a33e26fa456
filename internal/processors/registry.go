package processors

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Processor is a named unit of record-by-record transformation logic that
// the local runner knows how to execute.
type Processor struct {
	Name        string
	Description string
	// Source is the file that defined the processor, empty for built-ins.
	Source string
}

type Registry struct {
	mu         sync.RWMutex
	processors map[string]Processor
}

func NewRegistry() *Registry {
	return &Registry{processors: make(map[string]Processor)}
}

// NewDefaultRegistry returns a registry pre-populated with the built-in widgets.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, p := range Builtins() {
		// Built-in names are unique, so this cannot fail.
		_ = r.Register(p)
	}
	return r
}

func (r *Registry) Register(p Processor) error {
	if p.Name == "" {
		return fmt.Errorf("processor name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.processors[p.Name]; exists {
		if existing.Source != "" && existing.Source == p.Source {
			return nil
		}
		return fmt.Errorf("processor already registered: %s", p.Name)
	}
	r.processors[p.Name] = p
	return nil
}

func (r *Registry) Get(name string) (Processor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.processors[name]
	if !exists {
		return Processor{}, fmt.Errorf("processor not found: %s", name)
	}
	return p, nil
}

func (r *Registry) Registered(name string) bool {
	if name == "" {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.processors[name]
	return exists
}

// NameFromFile guesses the processor a file is named after: its base name
// without extension.
func (r *Registry) NameFromFile(path string) string {
	return NameFromFile(path)
}

func NameFromFile(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.processors))
	for name := range r.processors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
