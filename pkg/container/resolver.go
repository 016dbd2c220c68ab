package container

import (
	"fmt"
	"reflect"
	"strings"
)

// injectionResolver matches injection requests against the registry. The
// static phase returns descriptor names and is used while deriving the
// dependency graph; the dynamic phase returns live instances and is used
// while components are constructed, at which point every match is guaranteed
// to be present in the live instance table.
type injectionResolver struct {
	registry *registry
}

func newInjectionResolver(reg *registry) *injectionResolver {
	return &injectionResolver{registry: reg}
}

// resolveNames is the static phase: the names of every descriptor that would
// satisfy the request, without building anything. owner is the requesting
// component, used in error messages.
func (r *injectionResolver) resolveNames(owner string, req InjectionRequest) ([]string, error) {
	subject := fmt.Sprintf("component '%s'", owner)

	// An explicit name bypasses type matching entirely and implies a single
	// component.
	if req.Name != "" {
		d, ok := r.registry.find(req.Name)
		if !ok {
			return nil, UnresolvedDependencyError(subject, req.want())
		}
		if req.Type != nil && !d.satisfies(req.Type) {
			return nil, TypeMismatchError(subject, req.Name, req.Type.String())
		}
		return []string{d.name}, nil
	}

	matches := r.registry.matching(req.Type)

	switch req.Shape {
	case Scalar:
		if len(matches) == 0 {
			return nil, UnresolvedDependencyError(subject, req.want())
		}
		if len(matches) > 1 {
			names := descriptorNames(matches)
			return nil, AmbiguousDependencyError(subject, req.want(), names)
		}
		return []string{matches[0].name}, nil
	default:
		// Collection shapes accept any number of matches, including none.
		names := descriptorNames(matches)
		// A match-all request is a directory of the other components; the
		// requester cannot be constructed before itself, so it is excluded
		// rather than reported as a cycle. Typed collection self-matches are
		// kept and surface as a cycle of one.
		if req.Type == nil {
			names = withoutName(names, owner)
		}
		return names, nil
	}
}

// resolveValue is the dynamic phase: materializes the request from already
// constructed instances, shaped as a scalar, slice, set or name-keyed map.
func (r *injectionResolver) resolveValue(owner string, req InjectionRequest, instances map[string]any) (any, error) {
	names, err := r.resolveNames(owner, req)
	if err != nil {
		return nil, err
	}

	switch req.Shape {
	case Scalar:
		return instances[names[0]], nil
	case ListOf:
		return materializeList(req, names, instances), nil
	case SetOf:
		return materializeSet(req, names, instances), nil
	case MapByName:
		return materializeMap(req, names, instances), nil
	default:
		return nil, ConfigurationError("unknown injection request shape", nil)
	}
}

func withoutName(names []string, skip string) []string {
	out := names[:0]
	for _, n := range names {
		if n != skip {
			out = append(out, n)
		}
	}
	return out
}

func descriptorNames(descs []*Descriptor) []string {
	names := make([]string, len(descs))
	for i, d := range descs {
		names[i] = d.name
	}
	return names
}

func materializeList(req InjectionRequest, names []string, instances map[string]any) any {
	declared := req.declared
	if declared == nil {
		declared = reflect.SliceOf(req.Type)
	}

	// Arrays are covered by the list fallback: fill up to the declared
	// length.
	if declared.Kind() == reflect.Array {
		out := reflect.New(declared).Elem()
		for i, name := range names {
			if i >= declared.Len() {
				break
			}
			out.Index(i).Set(instanceValue(instances[name], declared.Elem()))
		}
		return out.Interface()
	}

	out := reflect.MakeSlice(declared, 0, len(names))
	for _, name := range names {
		out = reflect.Append(out, instanceValue(instances[name], declared.Elem()))
	}
	return out.Interface()
}

func materializeSet(req InjectionRequest, names []string, instances map[string]any) any {
	declared := req.declared
	if declared == nil {
		declared = reflect.MapOf(req.Type, emptyStructType)
	}

	out := reflect.MakeMapWithSize(declared, len(names))
	empty := reflect.ValueOf(struct{}{})
	for _, name := range names {
		out.SetMapIndex(instanceValue(instances[name], declared.Key()), empty)
	}
	return out.Interface()
}

func materializeMap(req InjectionRequest, names []string, instances map[string]any) any {
	declared := req.declared
	if declared == nil {
		elem := req.Type
		if elem == nil {
			elem = anyType
		}
		declared = reflect.MapOf(reflect.TypeOf(""), elem)
	}

	out := reflect.MakeMapWithSize(declared, len(names))
	for _, name := range names {
		// Keys follow the container's display convention: lower-case names.
		key := reflect.ValueOf(strings.ToLower(name)).Convert(declared.Key())
		out.SetMapIndex(key, instanceValue(instances[name], declared.Elem()))
	}
	return out.Interface()
}

// instanceValue converts a stored instance to a reflect value assignable to
// the wanted type, substituting a typed zero for nil instances.
func instanceValue(v any, want reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(want)
	}
	return reflect.ValueOf(v)
}
