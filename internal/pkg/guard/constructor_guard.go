// Package guard enforces that domain objects are only created through their
// designated constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when the
// caller does not supply a more specific error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built by its constructor. Embedding it in a
// struct lets Validate tell a properly built value from a zero value.
//
// Example:
//
//	var ErrStayIsNotConstructed = errors.New("Stay must be created via NewStay")
//
//	type Stay struct {
//	    frequency Frequency
//	    guard     guard.ConstructorGuard
//	}
//
//	func (s *Stay) Validate() error {
//	    return s.guard.Validate(ErrStayIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that reports the owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
