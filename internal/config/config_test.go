package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	builderrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MinimalConfig_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
content:
  dir: ./posts
layouts:
  dir: ./layouts
output:
  directory: ./public
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Blog", cfg.Site.Title)
	require.Equal(t, site.ErrorModeCollect, cfg.Build.ErrorMode)
	require.GreaterOrEqual(t, cfg.Build.Workers, 1)
	require.Equal(t, "127.0.0.1:8080", cfg.Watch.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.True(t, builderrors.IsCategory(err, builderrors.CategoryConfig))
}

func TestLoad_MissingContentDir_Rejected(t *testing.T) {
	path := writeConfig(t, `
layouts:
  dir: ./layouts
output:
  directory: ./public
`)

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, builderrors.IsCategory(err, builderrors.CategoryConfig))
}

func TestLoad_InvalidErrorMode_Rejected(t *testing.T) {
	path := writeConfig(t, `
content:
  dir: ./posts
layouts:
  dir: ./layouts
output:
  directory: ./public
build:
  error_mode: explode
`)

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, builderrors.IsCategory(err, builderrors.CategoryValidation))
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("BLOG_TITLE", "Expanded Title")
	path := writeConfig(t, `
site:
  title: ${BLOG_TITLE}
content:
  dir: ./posts
layouts:
  dir: ./layouts
output:
  directory: ./public
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Expanded Title", cfg.Site.Title)
}

func TestLoad_FeedDefaults(t *testing.T) {
	path := writeConfig(t, `
content:
  dir: ./posts
layouts:
  dir: ./layouts
output:
  directory: ./public
feed:
  enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "feed.xml", cfg.Feed.Path)
	require.Equal(t, 20, cfg.Feed.Limit)
}

func TestLoad_GitSourceRequiresURL(t *testing.T) {
	path := writeConfig(t, `
content:
  dir: ./posts
  git: {}
layouts:
  dir: ./layouts
output:
  directory: ./public
`)

	_, err := Load(path)
	require.Error(t, err)
}
