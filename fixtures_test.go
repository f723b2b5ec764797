package rtti_test

import (
	"os"

	"github.com/autom8ter/rtti"
)

func init() {
	os.Setenv("RTTI_DEBUG", "true")
}

var (
	ShapeType  = rtti.NewDescriptor("Shape", nil, rtti.Interface)
	CircleType = rtti.NewDescriptor("Circle", func() rtti.Object { return &Circle{} }, ShapeType)
	SquareType = rtti.NewDescriptor("Square", func() rtti.Object { return &Square{} }, ShapeType)
)

type Circle struct {
	Radius float64
}

func (c *Circle) Descriptor() *rtti.Descriptor {
	return CircleType
}

type Square struct {
	Side float64
}

func (s *Square) Descriptor() *rtti.Descriptor {
	return SquareType
}

// Animals are defined through a module and embed rtti.Base
var (
	AnimalType *rtti.Descriptor
	DogType    *rtti.Descriptor
)

type Dog struct {
	rtti.Base
	Name string
}

var animals = rtti.ModuleFunc(func(r *rtti.Registry) (err error) {
	if AnimalType, err = r.Define("Animal", nil, rtti.Interface); err != nil {
		return err
	}
	DogType, err = r.Define("Dog", func() rtti.Object {
		return &Dog{Base: rtti.NewBase(DogType)}
	}, AnimalType)
	return err
})

var shapes = rtti.ModuleFunc(func(r *rtti.Registry) error {
	for _, d := range []*rtti.Descriptor{ShapeType, CircleType, SquareType} {
		if err := r.Register(d); err != nil {
			return err
		}
	}
	return nil
})
