package main

import (
	"fmt"

	"readerview/readerlib"
)

// Run executes the live command.
func (c *LiveCmd) Run(deps *Dependencies) error {
	res, err := deps.Client.Live(deps.Ctx, c.URL, c.ViewerURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readerlib.ErrorMessage(err))
		if readerlib.IsBrowserError(err) {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed, or pass --control-url")
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Delivered to %s (%s)\n", res.ViewerURL, res.State)
	fmt.Fprintf(deps.Stdout, "Posts: %d attempted, %d succeeded\n", res.Attempts, res.Successes)
	return nil
}
