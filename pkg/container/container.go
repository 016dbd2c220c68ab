// Package container provides a name-keyed dependency injection container.
//
// Components are registered through constructor functions, manual factories
// or pre-built instances. Build derives the full dependency graph from the
// registered descriptors, rejects cycles with a reportable path and then
// constructs every component exactly once in dependency order, injecting
// scalar, list, set and name-keyed map dependencies.
package container

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// Container owns a component registry and, after a successful Build, the
// live instance table. Multiple containers coexist without interference.
// Registration and Build are single-threaded; once built, the container is
// immutable and all reads are safe for concurrent use.
type Container struct {
	config    *Config
	registry  *registry
	resolver  *injectionResolver
	variables *Variables
	metrics   MetricsCollector
	logger    *slog.Logger

	graph     *dependencyGraph
	instances map[string]any
	initOrder []string

	built  bool
	closed bool
	mu     sync.Mutex
}

// New creates an empty container ready for registration.
func New(opts ...Option) *Container {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.CycleMessageFunc == nil {
		config.CycleMessageFunc = DefaultCycleMessage
	}

	reg := newRegistry(config.Logger)
	return &Container{
		config:    config,
		registry:  reg,
		resolver:  newInjectionResolver(reg),
		variables: newVariables(config.Logger),
		metrics:   newMetricsCollector(config.EnableMetrics),
		logger:    config.Logger,
	}
}

// Register normalizes a constructor function into a component descriptor and
// adds it to the registry. The component name defaults to the constructed
// type's simple name in snake case.
func (c *Container) Register(constructor any, opts ...DescribeOption) error {
	d, err := DescribeFunc(constructor, opts...)
	if err != nil {
		return err
	}
	return c.registry.register(d)
}

// RegisterAll registers one constructor per argument with default naming.
// The batch is atomic: if any derived name collides, nothing is added.
func (c *Container) RegisterAll(constructors ...any) error {
	descs := make([]*Descriptor, 0, len(constructors))
	for _, constructor := range constructors {
		d, err := DescribeFunc(constructor)
		if err != nil {
			return err
		}
		descs = append(descs, d)
	}
	return c.registry.registerBatch(descs)
}

// RegisterFactory registers a manually supplied factory under the given
// name. Capabilities are declared with As and dependencies with
// WithRequests; they are not inferred. Factory failures during Build are
// reported as factory failures.
func (c *Container) RegisterFactory(name string, factory Factory, opts ...DescribeOption) error {
	if factory == nil {
		return ConfigurationError("factory cannot be nil", nil)
	}

	cfg := &describeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if len(cfg.setters) > 0 {
		return ConfigurationError("setter injection requires a described constructor", nil)
	}

	return c.registry.register(&Descriptor{
		name:                name,
		capabilities:        cfg.capabilities,
		factory:             factory,
		constructorRequests: cfg.requests,
		manual:              true,
	})
}

// RegisterInstance registers a pre-built value as a component. Its only
// inferred capability is the value's own type; declare more with As.
func (c *Container) RegisterInstance(name string, instance any, opts ...DescribeOption) error {
	cfg := &describeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if len(cfg.setters) > 0 || len(cfg.requests) > 0 {
		return ConfigurationError("instance registrations take no requests or setters", nil)
	}

	capabilities := cfg.capabilities
	if t := reflect.TypeOf(instance); t != nil {
		capabilities = append([]reflect.Type{t}, capabilities...)
	}
	if name == "" && len(capabilities) > 0 {
		name = componentName(capabilities[0])
	}

	return c.registry.register(&Descriptor{
		name:         name,
		capabilities: capabilities,
		factory: FactoryFunc(func([]any) (any, error) {
			return instance, nil
		}),
		manual: true,
	})
}

// Apply applies registration modules in order.
func (c *Container) Apply(modules ...Module) error {
	for _, module := range modules {
		c.logger.Debug("Applying module", "name", module.Name())
		if err := module.Apply(c); err != nil {
			return err
		}
	}
	return nil
}

// Seal freezes the registry. Sealing also happens implicitly on Build.
func (c *Container) Seal() {
	c.registry.seal()
}

// RegisterVariable adds a variable to the container
func (c *Container) RegisterVariable(name, value string) {
	c.variables.Set(name, value)
}

// GetVariable returns a variable by name, empty if absent
func (c *Container) GetVariable(name string) string {
	return c.variables.Get(name)
}

// Build runs variable loaders and modules, seals the registry, derives and
// validates the dependency graph and constructs every component in
// dependency order. Any error is fatal: the container must be discarded, not
// rebuilt.
func (c *Container) Build() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.built {
		return ConfigurationError("container already built", nil)
	}

	start := time.Now()

	for _, loader := range c.config.VariableLoaders {
		if err := loader.Load(c.variables); err != nil {
			return err
		}
	}

	if err := c.Apply(c.config.Modules...); err != nil {
		return err
	}

	c.registry.seal()

	graph, err := buildGraph(c.registry, c.resolver, c.logger)
	if err != nil {
		return err
	}

	if err := detectCycles(graph, c.config.CycleMessageFunc); err != nil {
		return err
	}

	sched := newScheduler(c.registry, c.resolver, graph, c.metrics, c.logger)
	if err := sched.initializeAll(); err != nil {
		return err
	}

	c.graph = graph
	c.instances = sched.instances
	c.initOrder = sched.initOrder
	c.built = true

	c.logger.Info("Container built",
		"components", len(c.initOrder),
		"time_ms", time.Since(start).Milliseconds())
	return nil
}

// Get looks up a built component by key: a string is treated as a component
// name, a reflect.Type as a capability resolved with scalar matching rules.
func (c *Container) Get(key any) (any, error) {
	if !c.built {
		return nil, NotBuiltError()
	}

	switch k := key.(type) {
	case string:
		instance, ok := c.instances[k]
		if !ok {
			return nil, ComponentNotFoundError(k)
		}
		return instance, nil
	case reflect.Type:
		matches := c.registry.matching(k)
		if len(matches) == 0 {
			return nil, ComponentNotFoundError(k.String())
		}
		if len(matches) > 1 {
			return nil, AmbiguousDependencyError("lookup",
				fmt.Sprintf("component of type %s", k), descriptorNames(matches))
		}
		return c.instances[matches[0].name], nil
	default:
		return nil, InvalidKeyError(key)
	}
}

// MustGet is Get that panics on error, for use in program wiring where a
// missing component is unrecoverable.
func (c *Container) MustGet(key any) any {
	instance, err := c.Get(key)
	if err != nil {
		panic(err)
	}
	return instance
}

// Has checks if a component exists, by name or by capability type. Unlike
// Get it may be called before Build.
func (c *Container) Has(key any) bool {
	switch k := key.(type) {
	case string:
		_, ok := c.registry.find(k)
		return ok
	case reflect.Type:
		return len(c.registry.matching(k)) > 0
	default:
		return false
	}
}

// Names returns all registered component names in registration order.
func (c *Container) Names() []string {
	return c.registry.names()
}

// InitOrder returns the order components were constructed in, valid after a
// successful Build.
func (c *Container) InitOrder() []string {
	out := make([]string, len(c.initOrder))
	copy(out, c.initOrder)
	return out
}

// Metrics returns build metrics for all components.
func (c *Container) Metrics() map[string]*ComponentMetrics {
	return c.metrics.GetMetrics()
}

// Close closes every built component implementing io.Closer in reverse
// initialization order. It is safe to call more than once.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.built || c.closed {
		return nil
	}
	c.closed = true

	c.logger.Info("Closing container", "components", len(c.initOrder))
	return closeComponents(c.initOrder, c.instances, c.logger)
}

// Resolve returns the single component satisfying type T:
//
//	car, err := container.Resolve[Car](c)
func Resolve[T any](c *Container) (T, error) {
	var zero T
	t := reflect.TypeOf((*T)(nil)).Elem()

	instance, err := c.Get(t)
	if err != nil {
		return zero, err
	}

	out, ok := instance.(T)
	if !ok {
		return zero, ConfigurationError(
			fmt.Sprintf("cannot convert component of type %T to %s", instance, t), nil)
	}
	return out, nil
}

// ResolveNamed returns the component registered under name, typed:
//
//	porsche, err := container.ResolveNamed[*Porsche](c, "porsche")
func ResolveNamed[T any](c *Container, name string) (T, error) {
	var zero T

	instance, err := c.Get(name)
	if err != nil {
		return zero, err
	}

	out, ok := instance.(T)
	if !ok {
		return zero, ConfigurationError(
			fmt.Sprintf("component '%s' has type %T, not %T", name, instance, zero), nil)
	}
	return out, nil
}
