package main

import (
	"encoding/json"
	"fmt"

	"readerview/readerlib"
)

// Run executes the fetch command. A single URL prints its article; several
// print one result per URL in input order.
func (c *FetchCmd) Run(deps *Dependencies) error {
	if len(c.URLs) == 1 {
		return c.one(deps, c.URLs[0])
	}

	results := deps.Client.ExtractMany(deps.Ctx, c.URLs)

	if c.Format == "markdown" {
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(deps.Stdout, "\n---")
			}
			if !r.Success {
				fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.URL, r.Error)
				continue
			}
			md, err := deps.Client.RenderMarkdown(r.Data)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.URL, readerlib.ErrorMessage(err))
				continue
			}
			fmt.Fprint(deps.Stdout, md)
		}
		return nil
	}

	return writeJSON(deps, results)
}

func (c *FetchCmd) one(deps *Dependencies, url string) error {
	if c.Format == "markdown" {
		md, err := deps.Client.Markdown(deps.Ctx, url)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", readerlib.ErrorMessage(err))
			return err
		}
		fmt.Fprint(deps.Stdout, md)
		return nil
	}

	article, err := deps.Client.Extract(deps.Ctx, url)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readerlib.ErrorMessage(err))
		return err
	}
	return writeJSON(deps, article)
}

func writeJSON(deps *Dependencies, v interface{}) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
