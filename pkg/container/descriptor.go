package container

import (
	"fmt"
	"reflect"
)

// Shape describes how an injection request wants its matches delivered.
type Shape int

const (
	// Scalar requests exactly one component.
	Scalar Shape = iota
	// ListOf requests a slice of every component satisfying the capability,
	// in registration order.
	ListOf
	// SetOf requests a set (map with empty struct values) of every component
	// satisfying the capability, deduplicated by name.
	SetOf
	// MapByName requests a map keyed by component name of every component
	// satisfying the capability. With no capability it matches every
	// registered component.
	MapByName
)

// String returns the human-readable name of the shape.
func (s Shape) String() string {
	switch s {
	case Scalar:
		return "scalar"
	case ListOf:
		return "list"
	case SetOf:
		return "set"
	case MapByName:
		return "map-by-name"
	default:
		return "unknown"
	}
}

// InjectionRequest is the normalized description of one dependency a
// component needs. Exactly one of Name and Type drives resolution; a
// non-empty Name wins and forces Scalar shape.
type InjectionRequest struct {
	Shape Shape
	// Type is the capability to match. For collection shapes it is the
	// element type. It may be nil for MapByName, which then matches every
	// registered component.
	Type reflect.Type
	// Name is an explicit component name. When set, type-based matching is
	// bypassed entirely.
	Name string

	// declared is the Go type of the receiving parameter, used to
	// materialize collections. When nil a canonical collection type is
	// synthesized from Type.
	declared reflect.Type
}

// NamedRequest builds a request for a single component by its exact name.
func NamedRequest(name string) InjectionRequest {
	return InjectionRequest{Shape: Scalar, Name: name}
}

// TypedRequest builds a request from a declared Go type, applying the
// collection heuristic: slices and arrays become ListOf, maps with string
// keys become MapByName, maps with empty-struct values become SetOf, and
// everything else is a Scalar of the type itself.
func TypedRequest(t reflect.Type) InjectionRequest {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return InjectionRequest{Shape: ListOf, Type: t.Elem(), declared: t}
	case reflect.Map:
		if t.Elem() == emptyStructType {
			return InjectionRequest{Shape: SetOf, Type: t.Key(), declared: t}
		}
		if t.Key().Kind() == reflect.String {
			elem := t.Elem()
			if elem == anyType {
				elem = nil
			}
			return InjectionRequest{Shape: MapByName, Type: elem, declared: t}
		}
		// Unrecognized container shapes deliberately fall back to a list of
		// the element type rather than failing.
		return InjectionRequest{Shape: ListOf, Type: t.Elem(), declared: reflect.SliceOf(t.Elem())}
	default:
		return InjectionRequest{Shape: Scalar, Type: t, declared: t}
	}
}

// normalizeRequest performs the one-time string-vs-type dispatch for lookup
// keys that may be either a component name or a capability type.
func normalizeRequest(key any) (InjectionRequest, error) {
	switch k := key.(type) {
	case string:
		return NamedRequest(k), nil
	case reflect.Type:
		return TypedRequest(k), nil
	default:
		return InjectionRequest{}, InvalidKeyError(key)
	}
}

// want renders what the request is looking for, for error messages.
func (r InjectionRequest) want() string {
	if r.Name != "" {
		return fmt.Sprintf("component '%s'", r.Name)
	}
	if r.Type == nil {
		return "any component"
	}
	return fmt.Sprintf("component of type %s", r.Type)
}

var (
	emptyStructType = reflect.TypeOf(struct{}{})
	anyType         = reflect.TypeOf((*any)(nil)).Elem()
	errorType       = reflect.TypeOf((*error)(nil)).Elem()
)

// Factory produces a component instance from its resolved dependencies, in
// constructor request order.
type Factory interface {
	New(deps []any) (any, error)
}

// FactoryFunc is a Factory implemented as a function
type FactoryFunc func(deps []any) (any, error)

// New calls the function to create the component
func (f FactoryFunc) New(deps []any) (any, error) {
	return f(deps)
}

// setterRequest is one post-construction injection: a named setter plus the
// request resolved for its single argument.
type setterRequest struct {
	method  string
	request InjectionRequest
	invoke  func(target any, arg any) error
}

// Descriptor is the container's normalized record of one registered
// component. Descriptors are immutable once the registry is sealed.
type Descriptor struct {
	name                string
	capabilities        []reflect.Type
	factory             Factory
	constructorRequests []InjectionRequest
	setterRequests      []setterRequest

	// manual marks descriptors whose factory was supplied by the caller
	// rather than derived from a constructor. Their build failures are
	// reported as factory failures.
	manual bool
}

// Name returns the unique component name.
func (d *Descriptor) Name() string {
	return d.name
}

// Capabilities returns the types this component satisfies.
func (d *Descriptor) Capabilities() []reflect.Type {
	out := make([]reflect.Type, len(d.capabilities))
	copy(out, d.capabilities)
	return out
}

// ConstructorRequests returns the ordered injection requests consumed during
// construction.
func (d *Descriptor) ConstructorRequests() []InjectionRequest {
	out := make([]InjectionRequest, len(d.constructorRequests))
	copy(out, d.constructorRequests)
	return out
}

// satisfies reports whether this component provides the given capability.
// Matching is a membership test over the declared capability set; a concrete
// capability also matches an interface it implements.
func (d *Descriptor) satisfies(t reflect.Type) bool {
	if t == nil {
		return true
	}
	for _, c := range d.capabilities {
		if c == t {
			return true
		}
		if t.Kind() == reflect.Interface && c.Implements(t) {
			return true
		}
	}
	return false
}

// requests returns constructor requests followed by setter requests, the
// order in which graph edges are derived.
func (d *Descriptor) requests() []InjectionRequest {
	all := make([]InjectionRequest, 0, len(d.constructorRequests)+len(d.setterRequests))
	all = append(all, d.constructorRequests...)
	for _, s := range d.setterRequests {
		all = append(all, s.request)
	}
	return all
}
