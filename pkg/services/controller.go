package services

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kerbaras/anisearch/pkg/catalog"
	"github.com/kerbaras/anisearch/pkg/config"
	"github.com/kerbaras/anisearch/pkg/sources"
)

// Open builds an engine from cfg and initializes it from the configured
// dataset.
func Open(ctx context.Context, cfg *config.Config) (*Engine, error) {
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	src, err := sources.New(cfg.Dataset.Format, cfg.Dataset.Path, cfg.Dataset.Table)
	if err != nil {
		return nil, err
	}

	e := NewEngine(opts)
	if err := e.Load(ctx, src); err != nil {
		return nil, err
	}
	return e, nil
}

// OptionsFromConfig resolves the alias table and exclusion list, preferring
// configured files over the bundled ones.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	opts, err := DefaultOptions()
	if err != nil {
		return Options{}, err
	}
	opts.Workers = cfg.Search.Workers
	opts.ParallelThreshold = cfg.Search.ParallelThreshold

	if path := cfg.Catalog.Aliases; path != "" {
		if opts.Aliases, err = readFile(path, catalog.ParseAliasTable); err != nil {
			return Options{}, err
		}
	}
	if path := cfg.Catalog.Exclusions; path != "" {
		if opts.Exclusions, err = readFile(path, catalog.ParseExclusionSet); err != nil {
			return Options{}, err
		}
	}
	return opts, nil
}

func readFile[T any](path string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()

	v, err := parse(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Load reads src and initializes the engine with it.
func (e *Engine) Load(ctx context.Context, src sources.Source) error {
	e.log.Debug().Str("source", src.Name()).Msg("loading dataset")
	raw, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", src.Name(), err)
	}
	return e.Initialize(raw)
}

// ReloadFrom reads src again and swaps the result in. On error the
// published catalog is left as it was.
func (e *Engine) ReloadFrom(ctx context.Context, src sources.Source) error {
	raw, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("reload %s: %w", src.Name(), err)
	}
	e.Reload(raw)
	return nil
}
