package container

import "log/slog"

// Config contains configuration options for the container
type Config struct {
	// EnableMetrics enables component build metrics
	EnableMetrics bool
	// Logger for container operations (uses slog.Default if nil)
	Logger *slog.Logger
	// VariableLoaders run at the start of Build, in order
	VariableLoaders []VariableLoader
	// Modules are applied at the start of Build, after variable loaders
	Modules []Module
	// CycleMessageFunc renders a detected dependency cycle. Defaults to
	// DefaultCycleMessage.
	CycleMessageFunc func(path []string) string
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		EnableMetrics:    true,
		Logger:           slog.Default(),
		CycleMessageFunc: DefaultCycleMessage,
	}
}

// Option configures the container on creation
type Option func(*Config)

// WithLogger sets the logger used for container operations
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithMetrics enables or disables build metrics
func WithMetrics(enabled bool) Option {
	return func(c *Config) {
		c.EnableMetrics = enabled
	}
}

// WithVariableLoader appends a variable loader run at build time
func WithVariableLoader(loader VariableLoader) Option {
	return func(c *Config) {
		c.VariableLoaders = append(c.VariableLoaders, loader)
	}
}

// WithModule appends a module applied on container creation
func WithModule(module Module) Option {
	return func(c *Config) {
		c.Modules = append(c.Modules, module)
	}
}

// WithCycleMessage overrides how dependency cycles are rendered
func WithCycleMessage(render func(path []string) string) Option {
	return func(c *Config) {
		c.CycleMessageFunc = render
	}
}
