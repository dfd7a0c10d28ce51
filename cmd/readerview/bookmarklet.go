package main

import (
	"fmt"
	"net/url"
	"strings"

	"readerview/api/handlers"
	"readerview/web"
)

// Run executes the bookmarklet command.
func (c *BookmarkletCmd) Run(deps *Dependencies) error {
	u, err := url.Parse(c.Server)
	if err != nil || !u.IsAbs() || u.Host == "" {
		fmt.Fprintf(deps.Stderr, "error: server must be an absolute URL, got %q\n", c.Server)
		return fmt.Errorf("invalid server URL %q", c.Server)
	}

	fmt.Fprintln(deps.Stdout, web.LoaderLink(strings.TrimRight(c.Server, "/")+handlers.BookmarkletPath))
	return nil
}
