package data

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/kerbaras/anisearch/pkg/validation"
)

// ErrInvalidDataset is returned when the dataset, the alias table or the
// exclusion list cannot be parsed.
var ErrInvalidDataset = errors.New("invalid dataset")

// document is the top-level dataset document: {"data": [...]}.
type document struct {
	Data []wireEntry `json:"data" validate:"required,dive"`
}

// wireEntry mirrors Entry with pointers so absent scalar fields are told
// apart from zero values. Only the season year, picture and thumbnail may
// be missing.
type wireEntry struct {
	Sources   []string `json:"sources" validate:"required"`
	Title     *string  `json:"title" validate:"required"`
	Category  *string  `json:"type" validate:"required"`
	Episodes  *int     `json:"episodes" validate:"required,gte=0"`
	Status    *string  `json:"status" validate:"required"`
	Season    *Season  `json:"animeSeason" validate:"required"`
	Picture   string   `json:"picture"`
	Thumbnail string   `json:"thumbnail"`
	Synonyms  []string `json:"synonyms" validate:"required"`
	Relations []string `json:"relations" validate:"required"`
	Tags      []string `json:"tags" validate:"required"`
}

func (w *wireEntry) entry() Entry {
	return Entry{
		Sources:   w.Sources,
		Title:     *w.Title,
		Category:  *w.Category,
		Episodes:  *w.Episodes,
		Status:    *w.Status,
		Season:    *w.Season,
		Picture:   w.Picture,
		Thumbnail: w.Thumbnail,
		Synonyms:  w.Synonyms,
		Relations: w.Relations,
		Tags:      w.Tags,
	}
}

// DecodeDocument reads a {"data": [...]} document from r. Unknown entry keys
// are ignored. Missing fields other than the season year, picture and
// thumbnail are rejected, as are negative episode counts.
func DecodeDocument(r io.Reader) ([]Entry, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode document: %v", ErrInvalidDataset, err)
	}
	if err := validation.Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	entries := make([]Entry, len(doc.Data))
	for i := range doc.Data {
		entries[i] = doc.Data[i].entry()
	}
	return entries, nil
}
