package main

import (
	"context"
	"io"
	"time"

	"readerview/readerlib"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Client *readerlib.Client
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Fetch       FetchCmd       `cmd:"" help:"Fetch pages and print their articles"`
	Live        LiveCmd        `cmd:"" help:"Extract a page in a browser and deliver it to the viewer"`
	Bookmarklet BookmarkletCmd `cmd:"" help:"Print the bookmarklet link for a running server"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URLs        []string      `arg:"" name:"url" help:"Page URLs"`
	Format      string        `short:"f" enum:"json,markdown" default:"json" help:"Output format (json, markdown)"`
	Engine      string        `short:"e" enum:"readability,trafilatura,chain" default:"readability" help:"Extraction engine"`
	Timeout     time.Duration `short:"t" default:"8s" help:"Per-page fetch timeout"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent fetch limit"`
}

// LiveCmd is the "live" subcommand.
type LiveCmd struct {
	URL        string `arg:"" help:"Page URL"`
	ViewerURL  string `name:"viewer" help:"Viewer page URL; empty serves one on a loopback port"`
	Headed     bool   `help:"Show the browser window"`
	ControlURL string `name:"control-url" env:"ROD_CONTROL_URL" help:"DevTools URL of a running browser"`
}

// BookmarkletCmd is the "bookmarklet" subcommand.
type BookmarkletCmd struct {
	Server string `short:"s" default:"http://localhost:8000" env:"READERVIEW_SERVER" help:"Base URL of the readerview server"`
}

func (c *CLI) clientOptions(cmd string) []readerlib.Option {
	switch cmd {
	case "fetch":
		return []readerlib.Option{
			readerlib.WithEngineName(c.Fetch.Engine),
			readerlib.WithFetchTimeout(c.Fetch.Timeout),
			readerlib.WithConcurrency(c.Fetch.Concurrency),
		}
	case "live":
		return []readerlib.Option{
			readerlib.WithBrowser(c.Live.ControlURL, !c.Live.Headed),
		}
	}
	return nil
}
