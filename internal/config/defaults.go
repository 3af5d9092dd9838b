package config

import (
	"runtime"

	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "Blog"
	}
	if c.Build.ErrorMode == "" {
		c.Build.ErrorMode = site.ErrorModeCollect
	}
	if c.Build.Workers == 0 {
		c.Build.Workers = runtime.NumCPU()
	}
	if c.Feed.Enabled && c.Feed.Path == "" {
		c.Feed.Path = "feed.xml"
	}
	if c.Feed.Enabled && c.Feed.Limit == 0 {
		c.Feed.Limit = 20
	}
	if c.State.Path == "" {
		c.State.Path = ".blogbuilder-state.db"
	}
	if c.Watch.Addr == "" {
		c.Watch.Addr = "127.0.0.1:8080"
	}
	if c.Watch.NATSURL != "" && c.Watch.NATSSubject == "" {
		c.Watch.NATSSubject = "blogbuilder.builds"
	}
	if c.Content.Git != nil && c.Content.Git.Branch == "" {
		c.Content.Git.Branch = "main"
	}
}
