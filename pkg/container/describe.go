package container

import (
	"fmt"
	"reflect"
)

// describeConfig collects per-registration options before a Descriptor is
// assembled.
type describeConfig struct {
	name         string
	capabilities []reflect.Type
	paramNames   map[int]string
	setters      []string
	requests     []InjectionRequest
}

// DescribeOption customizes how a component is described during
// registration.
type DescribeOption func(*describeConfig)

// Named overrides the default component name derived from the constructed
// type.
func Named(name string) DescribeOption {
	return func(c *describeConfig) {
		c.name = name
	}
}

// As declares additional capabilities the component satisfies, given as nil
// interface pointers:
//
//	c.Register(NewPorsche, container.As((*Car)(nil)))
func As(capabilities ...any) DescribeOption {
	return func(c *describeConfig) {
		for _, capability := range capabilities {
			t := reflect.TypeOf(capability)
			if t != nil && t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Interface {
				t = t.Elem()
			}
			c.capabilities = append(c.capabilities, t)
		}
	}
}

// ByName forces the constructor parameter at the given index to resolve by
// an explicit component name instead of by its declared type.
func ByName(param int, name string) DescribeOption {
	return func(c *describeConfig) {
		if c.paramNames == nil {
			c.paramNames = make(map[int]string)
		}
		c.paramNames[param] = name
	}
}

// WithRequests declares the injection requests a manually registered factory
// consumes, in the order its New method expects them. Ignored for described
// constructors, whose requests come from the function signature.
func WithRequests(requests ...InjectionRequest) DescribeOption {
	return func(c *describeConfig) {
		c.requests = append(c.requests, requests...)
	}
}

// WithSetter declares a single-argument setter method to receive injection
// after construction. The argument's request is derived from the parameter
// type with the same heuristics as constructor parameters.
func WithSetter(method string) DescribeOption {
	return func(c *describeConfig) {
		c.setters = append(c.setters, method)
	}
}

// DescribeFunc normalizes a constructor function into a Descriptor. The
// constructor must have the signature func(deps...) T or
// func(deps...) (T, error); each parameter becomes one injection request.
func DescribeFunc(constructor any, opts ...DescribeOption) (*Descriptor, error) {
	val := reflect.ValueOf(constructor)
	fnType := val.Type()

	if fnType.Kind() != reflect.Func {
		return nil, ConfigurationError(fmt.Sprintf("constructor must be a function, got %T", constructor), nil)
	}
	if fnType.NumOut() == 0 || fnType.NumOut() > 2 {
		return nil, ConfigurationError("constructor must return (T) or (T, error)", nil)
	}
	if fnType.NumOut() == 2 && !fnType.Out(1).Implements(errorType) {
		return nil, ConfigurationError("second constructor return value must be an error", nil)
	}
	if fnType.IsVariadic() {
		return nil, ConfigurationError("constructor must not be variadic", nil)
	}

	cfg := &describeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	outType := fnType.Out(0)

	name := cfg.name
	if name == "" {
		name = componentName(outType)
	}

	requests := make([]InjectionRequest, fnType.NumIn())
	for i := 0; i < fnType.NumIn(); i++ {
		if override, ok := cfg.paramNames[i]; ok {
			req := NamedRequest(override)
			req.Type = fnType.In(i)
			requests[i] = req
			continue
		}
		requests[i] = TypedRequest(fnType.In(i))
	}

	setters := make([]setterRequest, 0, len(cfg.setters))
	for _, method := range cfg.setters {
		sr, err := describeSetter(outType, method)
		if err != nil {
			return nil, err
		}
		setters = append(setters, sr)
	}

	return &Descriptor{
		name:                name,
		capabilities:        append([]reflect.Type{outType}, cfg.capabilities...),
		factory:             constructorFactory(val),
		constructorRequests: requests,
		setterRequests:      setters,
	}, nil
}

// constructorFactory wraps a constructor function so the scheduler can treat
// it uniformly with manually registered factories.
func constructorFactory(fn reflect.Value) Factory {
	fnType := fn.Type()

	return FactoryFunc(func(deps []any) (any, error) {
		args := make([]reflect.Value, len(deps))
		for i, dep := range deps {
			args[i] = instanceValue(dep, fnType.In(i))
		}

		results := fn.Call(args)
		if len(results) == 2 && !results[1].IsNil() {
			return nil, results[1].Interface().(error)
		}
		return results[0].Interface(), nil
	})
}

// describeSetter validates the setter method on the constructed type and
// prepares its invoker so construction-time code never touches reflection
// details again.
func describeSetter(outType reflect.Type, method string) (setterRequest, error) {
	m, ok := outType.MethodByName(method)
	if !ok {
		return setterRequest{}, ConfigurationError(
			fmt.Sprintf("setter method '%s' not found on %s", method, outType), nil)
	}

	// Method signature includes the receiver as parameter 0.
	if m.Type.NumIn() != 2 {
		return setterRequest{}, ConfigurationError(
			fmt.Sprintf("setter method '%s' on %s must take exactly one argument", method, outType), nil)
	}
	if m.Type.NumOut() > 1 || (m.Type.NumOut() == 1 && !m.Type.Out(0).Implements(errorType)) {
		return setterRequest{}, ConfigurationError(
			fmt.Sprintf("setter method '%s' on %s must return nothing or an error", method, outType), nil)
	}

	argType := m.Type.In(1)

	return setterRequest{
		method:  method,
		request: TypedRequest(argType),
		invoke: func(target any, arg any) error {
			fn := reflect.ValueOf(target).MethodByName(method)
			results := fn.Call([]reflect.Value{instanceValue(arg, argType)})
			if len(results) == 1 && !results[0].IsNil() {
				return results[0].Interface().(error)
			}
			return nil
		},
	}, nil
}
