package container

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Variables is the container's string variable registry, populated by
// explicit registration and by VariableLoaders at build time.
type Variables struct {
	values map[string]string
	mu     sync.RWMutex
	logger *slog.Logger
}

func newVariables(logger *slog.Logger) *Variables {
	return &Variables{
		values: make(map[string]string),
		logger: logger,
	}
}

// Set registers a variable, overwriting any previous value.
func (v *Variables) Set(name, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.values[name] = value
}

// Get returns the variable value or the empty string if absent.
func (v *Variables) Get(name string) string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.values[name]
}

// Lookup returns the variable value and whether it was present.
func (v *Variables) Lookup(name string) (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	value, ok := v.values[name]
	return value, ok
}

// Names returns all registered variable names.
func (v *Variables) Names() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	names := make([]string, 0, len(v.values))
	for name := range v.values {
		names = append(names, name)
	}
	return names
}

// VariableLoader defines an interface for loading variables into the
// container at build time
type VariableLoader interface {
	// Load loads variables into the registry
	Load(vars *Variables) error
}

// YamlVariableLoader loads variables from a YAML file, flattening nested
// keys to dot notation (server: {port: 80} -> "server.port").
type YamlVariableLoader struct {
	// Path to the YAML file; defaults to application.yml
	Path string
	// Optional list of profile names; for each, <base>-<profile>.<ext> is
	// loaded on top of the base file
	Profiles []string
}

// Load loads variables from YAML files
func (l YamlVariableLoader) Load(vars *Variables) error {
	path := l.Path
	if path == "" {
		path = "application.yml"
	}

	if err := loadYamlFile(path, vars); err != nil {
		return err
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for _, profile := range l.Profiles {
		if err := loadYamlFile(base+"-"+profile+ext, vars); err != nil {
			return err
		}
	}
	return nil
}

func loadYamlFile(path string, vars *Variables) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		vars.logger.Info("Config file not found, skipping", "path", path)
		return nil
	}
	if err != nil {
		return ConfigurationError(fmt.Sprintf("reading config file %s", path), err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return ConfigurationError(fmt.Sprintf("parsing config file %s", path), err)
	}

	vars.logger.Debug("Loading variables from file", "path", path)
	flattenInto(vars, "", raw)
	return nil
}

// flattenInto registers nested YAML maps as dot-separated variable names.
func flattenInto(vars *Variables, prefix string, m map[string]any) {
	for key, value := range m {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		switch nested := value.(type) {
		case map[string]any:
			flattenInto(vars, name, nested)
		case nil:
			vars.Set(name, "")
		default:
			vars.Set(name, fmt.Sprintf("%v", value))
		}
	}
}

// EnvVariableLoader loads variables from the process environment
type EnvVariableLoader struct {
	// Prefix filters environment variables to only those with this prefix
	Prefix string
}

// Load loads variables from the environment
func (l EnvVariableLoader) Load(vars *Variables) error {
	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key, value := parts[0], parts[1]

		if l.Prefix != "" {
			if !strings.HasPrefix(key, l.Prefix) {
				continue
			}
			key = strings.TrimPrefix(key, l.Prefix)
		}

		// SERVER_PORT -> server.port
		key = strings.ToLower(key)
		key = strings.ReplaceAll(key, "_", ".")

		vars.Set(key, value)
	}
	return nil
}

// DotenvVariableLoader loads variables from a .env file
type DotenvVariableLoader struct {
	// Path to the .env file; defaults to .env
	Path string
}

// Load loads variables from the .env file
func (l DotenvVariableLoader) Load(vars *Variables) error {
	path := l.Path
	if path == "" {
		path = ".env"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		vars.logger.Info("Dotenv file not found, skipping", "path", path)
		return nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return ConfigurationError(fmt.Sprintf("reading dotenv file %s", path), err)
	}

	for key, value := range values {
		vars.Set(key, value)
	}
	return nil
}
