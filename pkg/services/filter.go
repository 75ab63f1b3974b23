package services

import (
	"golang.org/x/sync/errgroup"

	"github.com/kerbaras/anisearch/pkg/catalog"
	"github.com/kerbaras/anisearch/pkg/query"
)

// filter returns the positions of matching entries in catalog order.
// Sequential scans stop after limit matches; parallel scans always cover the
// whole catalog.
func (e *Engine) filter(s *catalog.Store, m query.Matcher, limit int) []int {
	entries := s.Entries()
	workers := e.opts.Workers
	if workers < 2 || len(entries) < max(e.opts.ParallelThreshold, 2) {
		return scan(s, m, 0, len(entries), limit)
	}

	chunk := (len(entries) + workers - 1) / workers
	parts := make([][]int, 0, workers)
	for lo := 0; lo < len(entries); lo += chunk {
		parts = append(parts, nil)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range parts {
		lo := i * chunk
		hi := min(lo+chunk, len(entries))
		g.Go(func() error {
			parts[i] = scan(s, m, lo, hi, hi-lo)
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]int, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func scan(s *catalog.Store, m query.Matcher, lo, hi, limit int) []int {
	entries := s.Entries()
	var out []int
	for i := lo; i < hi && len(out) < limit; i++ {
		if m.Match(&entries[i]) {
			out = append(out, i)
		}
	}
	return out
}
