package container

// Module groups related registrations so they can be applied to a container
// as one unit, similar to framework starters.
type Module interface {
	// Name returns the name of this module
	Name() string

	// Apply registers the module's components and variables on the container
	Apply(c *Container) error
}

// ModuleFunc is a module implemented as a function
type ModuleFunc struct {
	name string
	fn   func(c *Container) error
}

// Name returns the name of the module
func (m *ModuleFunc) Name() string {
	return m.name
}

// Apply calls the function to register components
func (m *ModuleFunc) Apply(c *Container) error {
	return m.fn(c)
}

// NewModule creates a new module with the given name and function
func NewModule(name string, fn func(c *Container) error) Module {
	return &ModuleFunc{
		name: name,
		fn:   fn,
	}
}

// CompositeModule combines multiple modules into one
type CompositeModule struct {
	name    string
	modules []Module
}

// Name returns the name of the module
func (m *CompositeModule) Name() string {
	return m.name
}

// Apply applies all the modules in sequence
func (m *CompositeModule) Apply(c *Container) error {
	for _, module := range m.modules {
		if err := module.Apply(c); err != nil {
			return err
		}
	}
	return nil
}

// NewCompositeModule creates a new composite module
func NewCompositeModule(name string, modules ...Module) Module {
	return &CompositeModule{
		name:    name,
		modules: modules,
	}
}
