package rtti

import "errors"

// Sentinel errors for comparison with errors.Is. They are wrapped with the offending type name.
var (
	// ErrUnknownType is returned when no descriptor is registered under a name
	ErrUnknownType = errors.New("rtti: unknown type")
	// ErrAbstractType is returned when constructing a type without a constructor
	ErrAbstractType = errors.New("rtti: abstract type")
	// ErrNilObject is returned when a constructor produces a nil object
	ErrNilObject = errors.New("rtti: constructor returned nil")
	// ErrDuplicateType is returned when a name is registered twice
	ErrDuplicateType = errors.New("rtti: duplicate type")
	// ErrNilDescriptor is returned when registering a nil descriptor
	ErrNilDescriptor = errors.New("rtti: nil descriptor")
	// ErrInvalidName is returned when defining a type with an empty name
	ErrInvalidName = errors.New("rtti: invalid type name")
	// ErrSealed is returned when registering into a sealed registry
	ErrSealed = errors.New("rtti: sealed registry")
	// ErrTypeMismatch is returned when a constructed object is not of the requested Go type
	ErrTypeMismatch = errors.New("rtti: type mismatch")
	// ErrUnregisteredParent is returned when a chain references a parent the registry does not know
	ErrUnregisteredParent = errors.New("rtti: unregistered parent")
	// ErrManifestMismatch is returned when a registry does not match a declared manifest
	ErrManifestMismatch = errors.New("rtti: manifest mismatch")
)
