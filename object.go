package rtti

// InterfaceName is the name of the root descriptor every chain conventionally ends in
const InterfaceName = "RTTI"

// Interface is the root descriptor of the capability itself. It has no parent and is abstract.
// Every Registry registers it on creation.
var Interface = NewDescriptor(InterfaceName, nil, nil)

// Object is implemented by any value that can report its own type descriptor.
type Object interface {
	Descriptor() *Descriptor
}

// IsA returns true if the object's type is d or derives from d.
// It panics if d is nil.
func IsA(o Object, d *Descriptor) bool {
	return o.Descriptor().IsDerivedFrom(d)
}

// IsAName returns true if the object's type or one of its ancestors is named name.
func IsAName(o Object, name string) bool {
	return o.Descriptor().IsDerivedFromName(name)
}

// Base carries a descriptor as data so that concrete types can embed it to satisfy Object.
// Concrete types must set the descriptor with NewBase when they are constructed;
// a zero Base reports Interface.
//
//	type Circle struct {
//		rtti.Base
//		Radius float64
//	}
//
//	var CircleType *rtti.Descriptor
//
//	func Register(r *rtti.Registry) (err error) {
//		CircleType, err = r.Define("Circle", func() rtti.Object {
//			return &Circle{Base: rtti.NewBase(CircleType)}
//		}, ShapeType)
//		return err
//	}
//
// Base methods only see the embedded descriptor: a Descriptor method declared on the embedding type
// does not change what Base.IsA reports.
type Base struct {
	descriptor *Descriptor
}

// NewBase returns a Base reporting the given descriptor
func NewBase(d *Descriptor) Base {
	return Base{descriptor: d}
}

// Descriptor returns the descriptor the Base was created with
func (b Base) Descriptor() *Descriptor {
	if b.descriptor == nil {
		return Interface
	}
	return b.descriptor
}

// IsA returns true if the embedding type is d or derives from d
func (b Base) IsA(d *Descriptor) bool {
	return b.Descriptor().IsDerivedFrom(d)
}

// IsAName returns true if the embedding type or one of its ancestors is named name
func (b Base) IsAName(name string) bool {
	return b.Descriptor().IsDerivedFromName(name)
}
