// Package paging slices ordered sequences into 1-indexed pages.
package paging

import (
	"errors"
	"fmt"
)

// ErrInvalidPagination is returned for a page or page size below 1.
var ErrInvalidPagination = errors.New("invalid pagination")

// Validate checks that page and size are both at least 1.
func Validate(page, size int) error {
	if page < 1 {
		return fmt.Errorf("%w: page %d, pages start at 1", ErrInvalidPagination, page)
	}
	if size < 1 {
		return fmt.Errorf("%w: page size %d, must be at least 1", ErrInvalidPagination, size)
	}
	return nil
}

// Offset returns the index of the first element of page. ok is false when the
// offset does not fit in an int, which callers treat as past the end.
func Offset(page, size int) (offset int, ok bool) {
	skip := page - 1
	if skip != 0 && size > maxInt/skip {
		return 0, false
	}
	return skip * size, true
}

// Paginate returns page (1-indexed) of seq with up to size elements. A page
// past the end yields an empty slice. The result shares seq's backing array.
func Paginate[T any](seq []T, page, size int) ([]T, error) {
	if err := Validate(page, size); err != nil {
		return nil, err
	}

	start, ok := Offset(page, size)
	if !ok || start >= len(seq) {
		return []T{}, nil
	}
	end := len(seq)
	if size < end-start {
		end = start + size
	}
	return seq[start:end:end], nil
}

// PageCount returns how many pages of size are needed for total elements.
// An empty sequence still has one (empty) page.
func PageCount(total, size int) int {
	if size < 1 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

const maxInt = int(^uint(0) >> 1)
