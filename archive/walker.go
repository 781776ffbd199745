// Package archive reads recipe bundles: zip archives holding selector recipe
// files.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/h2non/filetype"
)

// maxRecipeSize limits how much is read from a single bundle entry.
const maxRecipeSize = 4 << 20

// WalkFunc is called for every recipe in a bundle. The bundle argument is
// the path passed to Walk, name is the entry name inside the archive. If an
// error is returned, processing stops.
type WalkFunc func(bundle, name string, data []byte) error

// IsBundle reports whether file looks like a recipe bundle: it must have
// ".zip" extension and zip content.
func IsBundle(fname string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(fname), ".zip") {
		return false, nil
	}

	f, err := os.Open(fname)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// 262 bytes is enough for filetype matchers
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

// IsRecipe reports whether archive entry name has recipe extension.
func IsRecipe(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Walk visits recipe files under prefix in bundle in name order. Entries with
// absolute paths or ".." components make the whole bundle invalid.
func Walk(ctx context.Context, bundle, prefix string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(bundle)
	if err != nil {
		return err
	}
	defer r.Close()

	files := make([]*zip.File, 0, len(r.File))
	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if !f.FileInfo().IsDir() && strings.HasPrefix(name, prefix) && IsRecipe(name) {
			files = append(files, f)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := readEntry(f)
		if err != nil {
			return fmt.Errorf("zip entry %q: %w", f.Name, err)
		}
		if err := walkFn(bundle, f.Name, data); err != nil {
			return err
		}
	}
	return nil
}

func readEntry(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > maxRecipeSize {
		return nil, fmt.Errorf("recipe is too large (%d bytes)", f.UncompressedSize64)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, maxRecipeSize))
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
