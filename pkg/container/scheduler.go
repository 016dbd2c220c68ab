package container

import (
	"log/slog"
	"time"
)

// componentState is the lifecycle of one component during initialization.
type componentState int

const (
	stateUnvisited componentState = iota
	stateInProgress
	stateBuilt
)

// scheduler walks the validated dependency graph and invokes each factory
// exactly once, in an order that guarantees every dependency is built before
// its dependents. Results land in the live instance table.
type scheduler struct {
	registry  *registry
	resolver  *injectionResolver
	graph     *dependencyGraph
	instances map[string]any
	states    map[string]componentState
	initOrder []string
	metrics   MetricsCollector
	logger    *slog.Logger
}

func newScheduler(reg *registry, resolver *injectionResolver, graph *dependencyGraph, metrics MetricsCollector, logger *slog.Logger) *scheduler {
	return &scheduler{
		registry:  reg,
		resolver:  resolver,
		graph:     graph,
		instances: make(map[string]any),
		states:    make(map[string]componentState),
		metrics:   metrics,
		logger:    logger,
	}
}

// initializeAll builds every component. The graph has already been proven
// acyclic, so the depth-first descent below terminates and yields a valid
// topological order.
func (s *scheduler) initializeAll() error {
	s.logger.Info("Initializing components", "count", len(s.graph.nodes))

	for _, name := range s.graph.nodes {
		if err := s.initComponent(name); err != nil {
			return err
		}
	}
	return nil
}

func (s *scheduler) initComponent(name string) error {
	if s.states[name] != stateUnvisited {
		return nil
	}
	s.states[name] = stateInProgress

	for _, dep := range s.graph.dependencies(name) {
		if err := s.initComponent(dep); err != nil {
			return err
		}
	}

	d, ok := s.registry.find(name)
	if !ok {
		return ComponentNotFoundError(name)
	}

	s.logger.Debug("Initializing component", "name", name)
	start := time.Now()

	args := make([]any, len(d.constructorRequests))
	for i, req := range d.constructorRequests {
		val, err := s.resolver.resolveValue(name, req, s.instances)
		if err != nil {
			return err
		}
		args[i] = val
	}

	instance, err := d.factory.New(args)
	if err != nil {
		return s.wrapInitError(d, err)
	}

	s.instances[name] = instance
	s.states[name] = stateBuilt
	s.initOrder = append(s.initOrder, name)

	for _, setter := range d.setterRequests {
		val, err := s.resolver.resolveValue(name, setter.request, s.instances)
		if err != nil {
			return err
		}
		if err := setter.invoke(instance, val); err != nil {
			return s.wrapInitError(d, err)
		}
	}

	if init, ok := instance.(Initializer); ok {
		if err := init.PostInit(); err != nil {
			return s.wrapInitError(d, err)
		}
	}

	duration := time.Since(start)
	s.metrics.RecordDependencyCount(name, len(s.graph.dependencies(name)))
	s.metrics.RecordInitDuration(name, duration)

	s.logger.Debug("Component initialized",
		"name", name,
		"time_ms", duration.Milliseconds())

	return nil
}

// wrapInitError distinguishes a failing manually registered factory from a
// component whose own construction logic failed.
func (s *scheduler) wrapInitError(d *Descriptor, err error) error {
	if d.manual {
		return FactoryInitError(d.name, err)
	}
	return ComponentInitError(d.name, err)
}
