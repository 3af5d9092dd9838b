package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunInit_CreatesProjectSkeleton(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	require.NoError(t, runInit(configPath, false))

	for _, path := range []string{
		configPath,
		filepath.Join(dir, "layouts", "post.html"),
		filepath.Join(dir, "layouts", "index.html"),
		filepath.Join(dir, "posts", "2020-01-01-hello-world.md"),
	} {
		_, err := os.Stat(path)
		require.NoError(t, err, path)
	}
}

func TestRunInit_RefusesToOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	require.NoError(t, runInit(configPath, false))
	require.Error(t, runInit(configPath, false))
	require.NoError(t, runInit(configPath, true))
}

func TestRunBuild_EndToEndFromInitSkeleton(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, runInit(configPath, false))

	// The starter config uses relative paths; run from the project dir.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, runBuild(context.Background(), configPath, false))

	out, err := os.ReadFile(filepath.Join(dir, "public", "hello-world", "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(out), "<h1>Hello, world</h1>")

	index, err := os.ReadFile(filepath.Join(dir, "public", "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(index), `<a href="/hello-world/">Hello, world</a>`)

	_, err = os.Stat(filepath.Join(dir, "public", "feed.xml"))
	require.NoError(t, err)
}

func TestRunBuild_MissingConfig(t *testing.T) {
	err := runBuild(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"), false)
	require.Error(t, err)
}
