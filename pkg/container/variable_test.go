package container

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVariables() *Variables {
	return newVariables(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestYamlVariableLoader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "application.yml", `
server:
  port: 8080
  host: localhost
debug: true
`)

	vars := newTestVariables()
	require.NoError(t, YamlVariableLoader{Path: path}.Load(vars))

	assert.Equal(t, "8080", vars.Get("server.port"))
	assert.Equal(t, "localhost", vars.Get("server.host"))
	assert.Equal(t, "true", vars.Get("debug"))
}

func TestYamlVariableLoader_Profiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "application.yml", "server:\n  port: 8080\n")
	writeFile(t, dir, "application-dev.yml", "server:\n  port: 9090\n")

	vars := newTestVariables()
	require.NoError(t, YamlVariableLoader{Path: path, Profiles: []string{"dev"}}.Load(vars))

	// Profile file overrides the base file.
	assert.Equal(t, "9090", vars.Get("server.port"))
}

func TestYamlVariableLoader_MissingFileIsSkipped(t *testing.T) {
	t.Parallel()

	vars := newTestVariables()
	loader := YamlVariableLoader{Path: filepath.Join(t.TempDir(), "absent.yml")}
	require.NoError(t, loader.Load(vars))
	assert.Empty(t, vars.Names())
}

func TestYamlVariableLoader_InvalidYaml(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "broken.yml", "server: [unclosed")

	vars := newTestVariables()
	requireCode(t, YamlVariableLoader{Path: path}.Load(vars), CodeConfiguration)
}

func TestEnvVariableLoader(t *testing.T) {
	t.Setenv("LOOM_SERVER_PORT", "8080")
	t.Setenv("UNRELATED_VALUE", "nope")

	vars := newTestVariables()
	require.NoError(t, EnvVariableLoader{Prefix: "LOOM_"}.Load(vars))

	assert.Equal(t, "8080", vars.Get("server.port"))
	_, found := vars.Lookup("unrelated.value")
	assert.False(t, found)
}

func TestDotenvVariableLoader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "API_KEY=secret\nREGION=eu-west-1\n")

	vars := newTestVariables()
	require.NoError(t, DotenvVariableLoader{Path: path}.Load(vars))

	assert.Equal(t, "secret", vars.Get("API_KEY"))
	assert.Equal(t, "eu-west-1", vars.Get("REGION"))
}

func TestDotenvVariableLoader_MissingFileIsSkipped(t *testing.T) {
	t.Parallel()

	vars := newTestVariables()
	loader := DotenvVariableLoader{Path: filepath.Join(t.TempDir(), "absent.env")}
	require.NoError(t, loader.Load(vars))
}

func TestContainerVariables(t *testing.T) {
	t.Parallel()

	c := newTestContainer()
	c.RegisterVariable("app.name", "loom")

	assert.Equal(t, "loom", c.GetVariable("app.name"))
	assert.Equal(t, "", c.GetVariable("absent"))
}

func TestBuild_RunsVariableLoaders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "application.yml", "greeting: hello\n")

	c := newTestContainer(WithVariableLoader(YamlVariableLoader{Path: path}))
	require.NoError(t, c.Build())

	assert.Equal(t, "hello", c.GetVariable("greeting"))
}

func TestBuild_LoaderFailureAborts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "application.yml", "greeting: [unclosed")

	c := newTestContainer(WithVariableLoader(YamlVariableLoader{Path: path}))
	requireCode(t, c.Build(), CodeConfiguration)
}
