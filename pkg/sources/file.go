package sources

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kerbaras/anisearch/pkg/data"
)

// JSONFile reads a {"data": [...]} document from disk.
type JSONFile struct {
	path string
}

func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

func (s *JSONFile) Name() string {
	return "json:" + s.path
}

func (s *JSONFile) Load(ctx context.Context) ([]data.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	entries, err := data.DecodeDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return entries, nil
}

// ZipArchive reads the dataset document from a zip archive, the way the
// upstream database is distributed. The first .json member is used, or the
// first member when none has that extension.
type ZipArchive struct {
	path string
}

func NewZipArchive(path string) *ZipArchive {
	return &ZipArchive{path: path}
}

func (s *ZipArchive) Name() string {
	return "zip:" + s.path
}

func (s *ZipArchive) Load(ctx context.Context) ([]data.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := zip.OpenReader(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset archive: %w", err)
	}
	defer r.Close()

	member := pickMember(r.File)
	if member == nil {
		return nil, fmt.Errorf("%s: %w: archive is empty", s.path, data.ErrInvalidDataset)
	}

	rc, err := member.Open()
	if err != nil {
		return nil, fmt.Errorf("%s: open %s: %w", s.path, member.Name, err)
	}
	defer rc.Close()

	entries, err := data.DecodeDocument(rc)
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", s.path, member.Name, err)
	}
	return entries, nil
}

func pickMember(files []*zip.File) *zip.File {
	var first *zip.File
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(f.Name), ".json") {
			return f
		}
		if first == nil {
			first = f
		}
	}
	return first
}
