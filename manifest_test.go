package rtti_test

import (
	"errors"
	"testing"

	"github.com/autom8ter/rtti"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shapesManifest = `
types:
  - name: RTTI
    abstract: true
  - name: Shape
    parent: RTTI
    abstract: true
  - name: Circle
    parent: Shape
  - name: Square
    parent: Shape
`

func TestManifest(t *testing.T) {
	t.Run("snapshot", func(t *testing.T) {
		m := newTestRegistry(t).Manifest()
		assert.Len(t, m.Types, 6)
		circle, ok := m.Lookup("Circle")
		assert.True(t, ok)
		assert.Equal(t, rtti.TypeEntry{Name: "Circle", Parent: "Shape"}, circle)
		root, ok := m.Lookup(rtti.InterfaceName)
		assert.True(t, ok)
		assert.Equal(t, rtti.TypeEntry{Name: rtti.InterfaceName, Abstract: true}, root)
		_, ok = m.Lookup("Hexagon")
		assert.False(t, ok)
	})
	t.Run("yaml round trip", func(t *testing.T) {
		r := newTestRegistry(t)
		bits, err := r.Manifest().YAML()
		require.NoError(t, err)
		t.Log(string(bits))
		parsed, err := rtti.ParseManifest(bits)
		require.NoError(t, err)
		assert.Equal(t, r.Manifest(), parsed)
		assert.NoError(t, r.Verify(parsed))
	})
	t.Run("verify declared manifest", func(t *testing.T) {
		m, err := rtti.ParseManifest([]byte(shapesManifest))
		require.NoError(t, err)
		assert.Len(t, m.Types, 4)
		assert.NoError(t, newTestRegistry(t).Verify(m))
	})
	t.Run("verify mismatches", func(t *testing.T) {
		r := rtti.NewRegistry()
		require.NoError(t, r.Register(ShapeType))
		require.NoError(t, r.Register(rtti.NewDescriptor("Circle", nil, rtti.Interface)))
		m, err := rtti.ParseManifest([]byte(shapesManifest))
		require.NoError(t, err)
		err = r.Verify(m)
		assert.True(t, errors.Is(err, rtti.ErrManifestMismatch))
		assert.Contains(t, err.Error(), "Square is not registered")
		assert.Contains(t, err.Error(), `Circle extends "RTTI"`)
		assert.Contains(t, err.Error(), "Circle abstract=true")
	})
	t.Run("invalid manifests", func(t *testing.T) {
		_, err := rtti.ParseManifest([]byte("types: [name: Circle"))
		assert.Error(t, err)
		_, err = rtti.ParseManifest([]byte("types:\n  - parent: Shape\n"))
		assert.True(t, errors.Is(err, rtti.ErrInvalidName))
		_, err = rtti.ParseManifest([]byte("types:\n  - name: Circle\n  - name: Circle\n"))
		assert.True(t, errors.Is(err, rtti.ErrDuplicateType))
	})
}
