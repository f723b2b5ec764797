package rtti

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TypeEntry describes one type of a Manifest
type TypeEntry struct {
	Name     string `yaml:"name"`
	Parent   string `yaml:"parent,omitempty"`
	Abstract bool   `yaml:"abstract,omitempty"`
}

// Manifest is a declarative snapshot of a type graph.
//
//	types:
//	  - name: RTTI
//	    abstract: true
//	  - name: Shape
//	    parent: RTTI
//	    abstract: true
//	  - name: Circle
//	    parent: Shape
type Manifest struct {
	Types []TypeEntry `yaml:"types"`
}

// Manifest returns the current type graph of the registry ordered by type name
func (r *Registry) Manifest() *Manifest {
	m := &Manifest{}
	for _, d := range r.Descriptors() {
		entry := TypeEntry{
			Name:     d.name,
			Abstract: d.Abstract(),
		}
		if d.parent != nil {
			entry.Parent = d.parent.name
		}
		m.Types = append(m.Types, entry)
	}
	return m
}

// YAML encodes the manifest
func (m *Manifest) YAML() ([]byte, error) {
	return yaml.Marshal(m)
}

// Lookup returns the entry with the given name
func (m *Manifest) Lookup(name string) (TypeEntry, bool) {
	for _, t := range m.Types {
		if t.Name == name {
			return t, true
		}
	}
	return TypeEntry{}, false
}

// ParseManifest decodes a YAML manifest. Entries must be named and unique.
func ParseManifest(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	seen := make(map[string]struct{}, len(m.Types))
	for i, t := range m.Types {
		if t.Name == "" {
			return nil, fmt.Errorf("%w: manifest entry %d has no name", ErrInvalidName, i)
		}
		if _, ok := seen[t.Name]; ok {
			return nil, fmt.Errorf("%w: %s declared twice in manifest", ErrDuplicateType, t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	return m, nil
}

// Verify checks that every type declared in the manifest is registered with the declared parent and
// abstractness. Types registered but not declared are ignored. All mismatches are reported, joined.
func (r *Registry) Verify(m *Manifest) error {
	var errs []error
	for _, t := range m.Types {
		d, ok := r.Lookup(t.Name)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s is not registered", ErrManifestMismatch, t.Name))
			continue
		}
		var parent string
		if d.parent != nil {
			parent = d.parent.name
		}
		if parent != t.Parent {
			errs = append(errs, fmt.Errorf("%w: %s extends %q, manifest declares %q", ErrManifestMismatch, t.Name, parent, t.Parent))
		}
		if d.Abstract() != t.Abstract {
			errs = append(errs, fmt.Errorf("%w: %s abstract=%t, manifest declares abstract=%t", ErrManifestMismatch, t.Name, d.Abstract(), t.Abstract))
		}
	}
	return errors.Join(errs...)
}
