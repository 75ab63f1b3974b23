package catalog

import (
	"slices"
	"sort"

	"github.com/kerbaras/anisearch/pkg/data"
)

// Normalize builds a Store from raw entries. Each entry is copied, its
// synonyms folded to lowercase and its tags rewritten to canonical form;
// entries with an excluded source are dropped. The result is stable-sorted by
// season year, newest first, with an unknown year counted as 0.
//
// raw is not modified. A nil alias table or exclusion set means none.
func Normalize(raw []data.Entry, aliases AliasTable, excluded ExclusionSet) *Store {
	entries := make([]data.Entry, 0, len(raw))
	dropped := 0

	for i := range raw {
		if excluded.Excludes(&raw[i]) {
			dropped++
			continue
		}

		e := raw[i].Clone()
		for j, syn := range e.Synonyms {
			e.Synonyms[j] = data.Fold(syn)
		}
		for j, tag := range e.Tags {
			e.Tags[j] = aliases.Canonical(tag)
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Season.YearOrZero() > entries[j].Season.YearOrZero()
	})

	return &Store{
		entries:  entries,
		tags:     tagCatalog(entries),
		excluded: dropped,
	}
}

func tagCatalog(entries []data.Entry) []string {
	seen := make(map[string]struct{})
	tags := []string{}
	for i := range entries {
		for _, tag := range entries[i].Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	slices.Sort(tags)
	return tags
}
