package main

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

const starterConfig = `site:
  title: "My Blog"
  base_url: "https://example.com"
  description: "Words about things"

content:
  dir: ./posts
  # Uncomment to pull content from a git repository before each build:
  # git:
  #   url: https://example.com/me/blog-content.git
  #   branch: main

layouts:
  dir: ./layouts

output:
  directory: ./public
  clean: true

build:
  error_mode: collect

feed:
  enabled: true
`

const starterPostLayout = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}} | {{.Site.Title}}</title>
</head>
<body>
  <article>
    <h1>{{.Title}}</h1>
    {{if .HasDate}}<time>{{.Date.Format "2006-01-02"}}</time>{{end}}
    {{.Content}}
  </article>
</body>
</html>
`

const starterIndexLayout = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Site.Title}}</title>
</head>
<body>
  <h1>{{.Site.Title}}</h1>
  <ul>
  {{range .Posts}}<li><time>{{.Date}}</time> <a href="{{.URL}}">{{.Title}}</a></li>
  {{end}}</ul>
</body>
</html>
`

const starterPost = `---
layout: post
title: "Hello, world"
date: 2020-01-01 09:00:00 +0000
categories:
  - meta
---
Welcome to your new blog. Edit this post or add more files next to it.
`

func runInit(configPath string, force bool) error {
	fmt.Printf("Writing configuration to %s\n", configPath)

	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.New(errors.CategoryConfig, errors.SeverityFatal,
			"configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath)
	}

	dir := filepath.Dir(configPath)
	files := map[string]string{
		configPath: starterConfig,
		filepath.Join(dir, "layouts", "post.html"):               starterPostLayout,
		filepath.Join(dir, "layouts", "index.html"):              starterIndexLayout,
		filepath.Join(dir, "posts", "2020-01-01-hello-world.md"): starterPost,
	}
	for path, content := range files {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return errors.OutputError("mkdir", err)
		}
		if _, err := os.Stat(path); err == nil && path != configPath {
			continue // Never clobber existing content or layouts.
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return errors.OutputError("write", err)
		}
	}

	fmt.Println("Initialized successfully")
	return nil
}
