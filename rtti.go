/*
Package rtti is a small run-time type identification toolkit.

Every polymorphic type is tagged with a Descriptor carrying its name, a link to its parent's
Descriptor and an optional constructor. Ancestry questions are answered by walking the parent chain,
no reflection involved.

Supported components:

Descriptor: immutable type node answering IsDerivedFrom queries

Object / Base: capability contract letting an instance report its own Descriptor

Registry: concurrency safe name -> Descriptor factory for constructing types by name

Hierarchy: graph view of a Registry with traversal, topological ordering and graphviz output

Manifest: YAML snapshot of a Registry's type graph that can be verified at startup
*/
package rtti

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Constructor creates a new instance of the type a Descriptor describes.
type Constructor func() Object

// Descriptor is a node in a single-inheritance type chain.
// It is immutable once created and safe for concurrent use.
type Descriptor struct {
	name      string
	parent    *Descriptor
	construct Constructor
}

// NewDescriptor creates a Descriptor with the given name, constructor and parent.
// The parent is stored and never dereferenced here, so descriptors may be declared in any order.
// A nil constructor marks the type as abstract. NewDescriptor panics if name is empty.
func NewDescriptor(name string, construct Constructor, parent *Descriptor) *Descriptor {
	if name == "" {
		panic("rtti: descriptor name must not be empty")
	}
	return &Descriptor{
		name:      name,
		parent:    parent,
		construct: construct,
	}
}

// Name returns the type name
func (d *Descriptor) Name() string {
	return d.name
}

// Parent returns the parent descriptor or nil if d is a root
func (d *Descriptor) Parent() *Descriptor {
	return d.parent
}

// Abstract returns true if the type has no constructor
func (d *Descriptor) Abstract() bool {
	return d.construct == nil
}

// New invokes the constructor of the described type.
// A constructor returning nil yields ErrNilObject.
func (d *Descriptor) New() (Object, error) {
	if d.construct == nil {
		return nil, fmt.Errorf("%w: %s", ErrAbstractType, d.name)
	}
	obj := d.construct()
	if obj == nil {
		return nil, fmt.Errorf("%w: constructor of %s returned nil", ErrNilObject, d.name)
	}
	return obj, nil
}

// IsDerivedFrom returns true if other is d or one of its ancestors.
// It panics if other is nil.
func (d *Descriptor) IsDerivedFrom(other *Descriptor) bool {
	if other == nil {
		panic("rtti: IsDerivedFrom called with a nil descriptor")
	}
	for cur := d; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

// IsDerivedFromName returns true if d or one of its ancestors is named name.
// Names are compared exactly.
func (d *Descriptor) IsDerivedFromName(name string) bool {
	for cur := d; cur != nil; cur = cur.parent {
		if cur.name == name {
			return true
		}
	}
	return false
}

// Ancestors iterates over the parent chain, nearest first, until fn returns false.
func (d *Descriptor) Ancestors(fn func(ancestor *Descriptor) bool) {
	for cur := d.parent; cur != nil; cur = cur.parent {
		if !fn(cur) {
			return
		}
	}
}

// Depth returns the number of ancestors of d
func (d *Descriptor) Depth() int {
	depth := 0
	d.Ancestors(func(*Descriptor) bool {
		depth++
		return true
	})
	return depth
}

// Root returns the topmost ancestor of d (d itself if it has no parent)
func (d *Descriptor) Root() *Descriptor {
	root := d
	d.Ancestors(func(ancestor *Descriptor) bool {
		root = ancestor
		return true
	})
	return root
}

// Path returns the names along the chain from the root down to d
func (d *Descriptor) Path() []string {
	path := make([]string, d.Depth()+1)
	i := len(path) - 1
	for cur := d; cur != nil; cur = cur.parent {
		path[i] = cur.name
		i--
	}
	return path
}

// String returns the chain as "Root.Parent.Name"
func (d *Descriptor) String() string {
	return strings.Join(d.Path(), ".")
}

// debugF logs a message if the RTTI_DEBUG environment variable is set.
func debugF(format string, a ...interface{}) {
	if os.Getenv("RTTI_DEBUG") != "" {
		format = fmt.Sprintf("DEBUG: %s\n", format)
		log.Printf(format, a...)
	}
}
