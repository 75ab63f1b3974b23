package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"

	"github.com/goccy/go-json"

	"github.com/kerbaras/anisearch/pkg/data"
)

var (
	//go:embed merge_tags.json
	bundledAliases []byte

	//go:embed exclude.json
	bundledExclusions []byte
)

// AliasTable maps an alternate tag spelling to its canonical tag.
type AliasTable map[string]string

// InvertAliases builds an AliasTable from a canonical -> [alias, ...] mapping.
// An alias claimed by two canonical tags, or a canonical tag that is itself an
// alias, makes the mapping ambiguous and is rejected. Identity pairs are
// dropped.
func InvertAliases(canonical map[string][]string) (AliasTable, error) {
	table := make(AliasTable)

	// Iterate in a fixed order so the reported conflict is deterministic.
	keys := make([]string, 0, len(canonical))
	for k := range canonical {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, tag := range keys {
		for _, alias := range canonical[tag] {
			if alias == tag {
				continue
			}
			if prev, ok := table[alias]; ok && prev != tag {
				return nil, fmt.Errorf("%w: alias %q maps to both %q and %q", data.ErrInvalidDataset, alias, prev, tag)
			}
			table[alias] = tag
		}
	}

	for _, tag := range keys {
		if target, ok := table[tag]; ok {
			return nil, fmt.Errorf("%w: canonical tag %q is also an alias of %q", data.ErrInvalidDataset, tag, target)
		}
	}
	return table, nil
}

// ParseAliasTable reads a canonical -> [alias, ...] JSON document.
func ParseAliasTable(r io.Reader) (AliasTable, error) {
	var doc map[string][]string
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: alias table: %v", data.ErrInvalidDataset, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: alias table is null", data.ErrInvalidDataset)
	}
	return InvertAliases(doc)
}

// DefaultAliases returns the alias table bundled with the module.
func DefaultAliases() (AliasTable, error) {
	return ParseAliasTable(bytes.NewReader(bundledAliases))
}

// Canonical returns the canonical form of tag, or tag itself when it has no alias.
func (t AliasTable) Canonical(tag string) string {
	if canonical, ok := t[tag]; ok {
		return canonical
	}
	return tag
}

// IsAlias reports whether tag is a non-canonical spelling.
func (t AliasTable) IsAlias(tag string) bool {
	_, ok := t[tag]
	return ok
}

// ExclusionSet holds source identifiers whose entries never enter the catalog.
type ExclusionSet map[string]struct{}

func NewExclusionSet(sources ...string) ExclusionSet {
	set := make(ExclusionSet, len(sources))
	for _, s := range sources {
		set[s] = struct{}{}
	}
	return set
}

// ParseExclusionSet reads a JSON array of source identifiers.
func ParseExclusionSet(r io.Reader) (ExclusionSet, error) {
	var doc []string
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: exclusion list: %v", data.ErrInvalidDataset, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: exclusion list is null", data.ErrInvalidDataset)
	}
	return NewExclusionSet(doc...), nil
}

// DefaultExclusions returns the exclusion list bundled with the module.
func DefaultExclusions() (ExclusionSet, error) {
	return ParseExclusionSet(bytes.NewReader(bundledExclusions))
}

func (s ExclusionSet) Contains(source string) bool {
	_, ok := s[source]
	return ok
}

// Excludes reports whether any of the entry sources is excluded.
func (s ExclusionSet) Excludes(e *data.Entry) bool {
	for _, src := range e.Sources {
		if s.Contains(src) {
			return true
		}
	}
	return false
}
