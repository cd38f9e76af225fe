package manifest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/confjson/internal/ctxlog"
	"github.com/specialistvlad/confjson/internal/registry"
)

// Loader reads HCL manifests and registers the configuration types they declare.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load walks the given files and directories, registering every configuration
// type found in a .hcl file. Paths that do not exist are skipped.
func (l *Loader) Load(ctx context.Context, reg *registry.Registry, paths ...string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started.", "path_count", len(paths))

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	for _, file := range hclFiles {
		hclFile, diags := l.parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		if err := l.register(ctx, reg, hclFile, file); err != nil {
			return err
		}
	}

	logger.Debug("Manifest loading complete.", "types", len(reg.Names()))
	return nil
}

// LoadSource parses manifest text held in memory. filename is only used in
// diagnostics.
func (l *Loader) LoadSource(ctx context.Context, reg *registry.Registry, filename string, src []byte) error {
	hclFile, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL source %s: %w", filename, diags)
	}
	return l.register(ctx, reg, hclFile, filename)
}

// register decodes one parsed file and registers its types. Every block is
// attempted so that all problems in a file are reported together.
func (l *Loader) register(ctx context.Context, reg *registry.Registry, file *hcl.File, filename string) error {
	logger := ctxlog.FromContext(ctx)

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	var result *multierror.Error
	for _, block := range root.Configurations {
		t, err := translateConfiguration(ctx, block)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if err := reg.Register(t); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		logger.Debug("Registered configuration type from manifest.", "type", t.Name, "file", filename)
	}
	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("failed to load manifest %s: %w", filename, err)
	}
	return nil
}

// findAllHCLFiles expands paths into the .hcl files they name or contain,
// in walk order and without repeats. Paths that do not exist are skipped.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		p = filepath.Clean(p)
		if _, dup := seen[p]; dup || filepath.Ext(p) != ".hcl" {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error accessing manifest path %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking manifest directory %s: %w", root, err)
		}
	}
	return files, nil
}
