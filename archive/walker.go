// Package archive builds Walk abstraction on top of "archive/zip". Android
// libraries (AAR) are zip archives which carry symbol file and manifest at
// their root.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// Entries indexes all regular files of an archive by their names.
type Entries map[string]*zip.File

// Sibling returns file with the given base name located in the same archive
// directory as f, or nil.
func (e Entries) Sibling(f *zip.File, name string) *zip.File {
	dir := path.Dir(f.Name)
	if dir == "." {
		return e[name]
	}
	return e[path.Join(dir, name)]
}

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to
// Walk. The file argument is the zip.File structure for file in archive which
// satisfies match condition and entries gives access to the rest of archive
// content. If an error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File, entries Entries) error

// Walk walks all files in the archive located under prefix for which match
// returns true (nil match accepts everything), calling walkFn for each item
// in archive order. Archives with absolute entry names or path traversal
// components ("..") are rejected to prevent Zip Slip attacks.
func Walk(fs afero.Fs, archive, prefix string, match func(name string) bool, walkFn WalkFunc) error {
	f, err := fs.Open(archive)
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}
	// insecure names are reported below with better context
	r, err := zip.NewReader(f, fi.Size())
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return err
	}

	entries := make(Entries, len(r.File))
	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if !f.FileInfo().IsDir() {
			entries[name] = f
		}
	}

	for _, f := range r.File {
		name := f.FileHeader.Name
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if match != nil && !match(name) {
			continue
		}
		if err := walkFn(archive, f, entries); err != nil {
			return err
		}
	}
	return nil
}

// BaseNameIs returns match function for Walk selecting entries with the
// given base name.
func BaseNameIs(name string) func(string) bool {
	return func(entry string) bool {
		return path.Base(entry) == name
	}
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
