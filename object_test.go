package rtti_test

import (
	"testing"

	"github.com/autom8ter/rtti"
	"github.com/stretchr/testify/assert"
)

func TestObject(t *testing.T) {
	t.Run("is a", func(t *testing.T) {
		var c rtti.Object = &Circle{Radius: 2}
		assert.True(t, rtti.IsA(c, CircleType))
		assert.True(t, rtti.IsA(c, ShapeType))
		assert.True(t, rtti.IsA(c, rtti.Interface))
		assert.False(t, rtti.IsA(c, SquareType))
	})
	t.Run("is a name", func(t *testing.T) {
		var s rtti.Object = &Square{Side: 1}
		assert.True(t, rtti.IsAName(s, "Square"))
		assert.True(t, rtti.IsAName(s, "Shape"))
		assert.True(t, rtti.IsAName(s, rtti.InterfaceName))
		assert.False(t, rtti.IsAName(s, "SomeUnrelatedTypeName"))
	})
	t.Run("nil descriptor panics", func(t *testing.T) {
		assert.Panics(t, func() {
			rtti.IsA(&Circle{}, nil)
		})
	})
	t.Run("zero base reports the interface", func(t *testing.T) {
		var b rtti.Base
		assert.Equal(t, rtti.Interface, b.Descriptor())
		assert.True(t, b.IsA(rtti.Interface))
		assert.True(t, b.IsAName(rtti.InterfaceName))
		assert.False(t, b.IsAName("Shape"))
	})
	t.Run("embedded base", func(t *testing.T) {
		r := rtti.NewRegistry()
		assert.NoError(t, animals.Register(r))
		obj, err := r.Create("Dog")
		assert.NoError(t, err)
		dog, ok := obj.(*Dog)
		assert.True(t, ok)
		assert.Equal(t, DogType, dog.Descriptor())
		assert.True(t, dog.IsA(AnimalType))
		assert.True(t, dog.IsA(rtti.Interface))
		assert.True(t, dog.IsAName("Animal"))
		assert.False(t, dog.IsA(ShapeType))
		assert.False(t, dog.IsAName("SomeUnrelatedTypeName"))
		assert.True(t, rtti.IsA(dog, DogType))
	})
}
