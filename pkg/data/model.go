package data

// Season is the airing season of an entry. Year is nil when unknown.
type Season struct {
	Season string `json:"season"`
	Year   *int   `json:"year"`
}

// YearOrZero returns the season year, treating an unknown year as 0.
func (s Season) YearOrZero() int {
	if s.Year == nil {
		return 0
	}
	return *s.Year
}

// Entry is one catalog item as found in the anime-offline-database document.
type Entry struct {
	Sources   []string `json:"sources"`
	Title     string   `json:"title"`
	Category  string   `json:"type"`
	Episodes  int      `json:"episodes"`
	Status    string   `json:"status"`
	Season    Season   `json:"animeSeason"`
	Picture   string   `json:"picture"`
	Thumbnail string   `json:"thumbnail"`
	Synonyms  []string `json:"synonyms"`
	Relations []string `json:"relations"`
	Tags      []string `json:"tags"`
}

// Clone returns a deep copy of e.
func (e Entry) Clone() Entry {
	c := e
	c.Sources = cloneStrings(e.Sources)
	c.Synonyms = cloneStrings(e.Synonyms)
	c.Relations = cloneStrings(e.Relations)
	c.Tags = cloneStrings(e.Tags)
	if e.Season.Year != nil {
		year := *e.Season.Year
		c.Season.Year = &year
	}
	return c
}

// HasTag reports whether tag is one of the entry tags.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
