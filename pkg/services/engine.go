// Package services exposes the catalog through Engine, the single entry point
// used by the CLI and the terminal UI.
package services

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/kerbaras/anisearch/pkg/catalog"
	"github.com/kerbaras/anisearch/pkg/data"
	"github.com/kerbaras/anisearch/pkg/logging"
	"github.com/kerbaras/anisearch/pkg/paging"
	"github.com/kerbaras/anisearch/pkg/query"
)

var (
	// ErrUninitialized is returned by every read before a catalog is published.
	ErrUninitialized = errors.New("catalog is not initialized")
	// ErrAlreadyInitialized is returned by a second Initialize. Use Reload
	// to replace a published catalog.
	ErrAlreadyInitialized = errors.New("catalog is already initialized")
)

// DefaultParallelThreshold is the catalog size from which filtering is split
// across workers.
const DefaultParallelThreshold = 4096

// Options configures an Engine.
type Options struct {
	// Aliases rewrites tags during normalization. Nil means no aliases.
	Aliases catalog.AliasTable
	// Exclusions drops entries by source. Nil means no exclusions.
	Exclusions catalog.ExclusionSet
	// Workers bounds parallel filtering. Values below 2 filter sequentially.
	Workers int
	// ParallelThreshold is the minimum catalog size for parallel filtering.
	ParallelThreshold int
	// Logger defaults to the global logger tagged with component=engine.
	Logger *zerolog.Logger
}

// DefaultOptions uses the bundled alias table and exclusion list.
func DefaultOptions() (Options, error) {
	aliases, err := catalog.DefaultAliases()
	if err != nil {
		return Options{}, err
	}
	exclusions, err := catalog.DefaultExclusions()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Aliases:           aliases,
		Exclusions:        exclusions,
		Workers:           runtime.GOMAXPROCS(0),
		ParallelThreshold: DefaultParallelThreshold,
	}, nil
}

// Engine answers catalog queries against an immutable snapshot. All methods
// are safe for concurrent use; reads never block on a Reload.
type Engine struct {
	opts  Options
	store atomic.Pointer[catalog.Store]
	log   zerolog.Logger
}

func NewEngine(opts Options) *Engine {
	e := &Engine{opts: opts}
	if opts.Logger != nil {
		e.log = *opts.Logger
	} else {
		e.log = logging.With().Str("component", "engine").Logger()
	}
	return e
}

// Initialize normalizes raw and publishes the result. It fails with
// ErrAlreadyInitialized if a catalog has been published before.
func (e *Engine) Initialize(raw []data.Entry) error {
	start := time.Now()
	store := catalog.Normalize(raw, e.opts.Aliases, e.opts.Exclusions)
	if !e.store.CompareAndSwap(nil, store) {
		return ErrAlreadyInitialized
	}
	e.logPublished("initialized", store, time.Since(start))
	return nil
}

// InitializeDocument decodes a {"data": [...]} document and initializes
// the engine with it.
func (e *Engine) InitializeDocument(r io.Reader) error {
	raw, err := data.DecodeDocument(r)
	if err != nil {
		return err
	}
	return e.Initialize(raw)
}

// Reload builds a new catalog from raw and swaps it in. Queries already
// running keep the snapshot they started with.
func (e *Engine) Reload(raw []data.Entry) {
	start := time.Now()
	store := catalog.Normalize(raw, e.opts.Aliases, e.opts.Exclusions)
	e.store.Store(store)
	e.logPublished("reloaded", store, time.Since(start))
}

func (e *Engine) logPublished(msg string, s *catalog.Store, took time.Duration) {
	e.log.Info().
		Int("entries", s.Len()).
		Int("excluded", s.Excluded()).
		Int("tags", len(s.Tags())).
		Dur("took", took).
		Msg("catalog " + msg)
}

// Snapshot returns the published catalog. It must be treated as read-only.
func (e *Engine) Snapshot() (*catalog.Store, error) {
	s := e.store.Load()
	if s == nil {
		return nil, ErrUninitialized
	}
	return s, nil
}

// Count returns the number of entries in the catalog.
func (e *Engine) Count() (int, error) {
	s, err := e.Snapshot()
	if err != nil {
		return 0, err
	}
	return s.Len(), nil
}

// Search returns one page of the entries matching q, in catalog order. The
// entries are copies.
func (e *Engine) Search(q query.Query, page, size int) ([]data.Entry, error) {
	s, err := e.Snapshot()
	if err != nil {
		return nil, err
	}
	if err := paging.Validate(page, size); err != nil {
		return nil, err
	}

	start := time.Now()
	limit := s.Len()
	if off, ok := paging.Offset(page, size); !ok {
		return []data.Entry{}, nil
	} else if off <= limit-size {
		limit = off + size
	}

	idx := e.filter(s, q.Compile(), limit)
	hits, err := paging.Paginate(idx, page, size)
	if err != nil {
		return nil, err
	}

	out := make([]data.Entry, len(hits))
	for i, n := range hits {
		out[i] = s.Entry(n)
	}
	e.log.Debug().Int("page", page).Int("size", size).Int("results", len(out)).
		Dur("took", time.Since(start)).Msg("search")
	return out, nil
}

// SearchCount returns how many entries match q.
func (e *Engine) SearchCount(q query.Query) (int, error) {
	s, err := e.Snapshot()
	if err != nil {
		return 0, err
	}
	start := time.Now()
	n := len(e.filter(s, q.Compile(), s.Len()))
	e.log.Debug().Int("matches", n).Dur("took", time.Since(start)).Msg("search count")
	return n, nil
}

// SearchDocument parses a JSON query document and runs Search.
func (e *Engine) SearchDocument(doc []byte, page, size int) ([]data.Entry, error) {
	if _, err := e.Snapshot(); err != nil {
		return nil, err
	}
	q, err := query.Parse(doc)
	if err != nil {
		return nil, err
	}
	return e.Search(q, page, size)
}

// SearchCountDocument parses a JSON query document and runs SearchCount.
func (e *Engine) SearchCountDocument(doc []byte) (int, error) {
	if _, err := e.Snapshot(); err != nil {
		return 0, err
	}
	q, err := query.Parse(doc)
	if err != nil {
		return 0, err
	}
	return e.SearchCount(q)
}

// Tags returns one page of the tag catalog.
func (e *Engine) Tags(page, size int) ([]string, error) {
	s, err := e.Snapshot()
	if err != nil {
		return nil, err
	}
	tags, err := paging.Paginate(s.Tags(), page, size)
	if err != nil {
		return nil, err
	}
	return slices.Clone(tags), nil
}

// TagSearch returns one page of the catalog tags containing substr. Unlike
// title search the comparison is case-sensitive.
func (e *Engine) TagSearch(substr string, page, size int) ([]string, error) {
	s, err := e.Snapshot()
	if err != nil {
		return nil, err
	}
	if err := paging.Validate(page, size); err != nil {
		return nil, err
	}

	found := []string{}
	for _, tag := range s.Tags() {
		if strings.Contains(tag, substr) {
			found = append(found, tag)
		}
	}
	return paging.Paginate(found, page, size)
}

// TagSearchCount returns how many catalog tags contain substr.
func (e *Engine) TagSearchCount(substr string) (int, error) {
	s, err := e.Snapshot()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, tag := range s.Tags() {
		if strings.Contains(tag, substr) {
			n++
		}
	}
	return n, nil
}

// String describes the engine state for logs and debugging.
func (e *Engine) String() string {
	s := e.store.Load()
	if s == nil {
		return "engine(uninitialized)"
	}
	return fmt.Sprintf("engine(%d entries, %d tags)", s.Len(), len(s.Tags()))
}
