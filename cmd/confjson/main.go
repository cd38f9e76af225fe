package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/confjson/internal/app"
	"github.com/specialistvlad/confjson/internal/cli"
)

// main is the entrypoint for the confjson tool.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run reads one document, decodes it against the manifests and writes it
// back out in normalised form.
func run(inR io.Reader, outW, logW io.Writer, args []string) error {
	inv, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	a, err := app.New(logW, inv.Config)
	if err != nil {
		return err
	}

	data, err := readDocument(inR, inv.DocumentPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	c, err := a.Decode(ctx, data)
	if err != nil {
		return err
	}
	out, err := a.Encode(ctx, c)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(outW, string(out))
	return err
}

func readDocument(inR io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(inR)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}
