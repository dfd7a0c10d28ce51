// ABOUTME: Command line entry point for extracting articles and driving live delivery
// ABOUTME: Parses arguments with kong and wires a readerlib client per command

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"readerview/readerlib"

	"github.com/alecthomas/kong"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Options are applied to every client before command flags. Tests use
	// this to silence logging.
	Options []readerlib.Option

	Client *readerlib.Client
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close releases the client.
func (m *Main) Close() error {
	if m.Client != nil {
		return m.Client.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("readerview"),
		kong.Description("Extract readable articles and deliver them to a reader view."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'readerview --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cmd != "bookmarklet" {
		opts := append([]readerlib.Option{}, m.Options...)
		opts = append(opts, cli.clientOptions(cmd)...)

		m.Client, err = readerlib.NewClient(opts...)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", readerlib.ErrorMessage(err))
			return err
		}
		defer m.Close()
		deps.Client = m.Client
	}

	return kongCtx.Run(deps)
}
