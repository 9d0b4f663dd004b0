package compile

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/beevik/etree"
	"github.com/h2non/filetype"
	"github.com/spf13/afero"

	"rgen/symbols"
)

// enough for any of filetype matchers
const headerSize = 262

// isArchiveFile reports whether path is zip container we should look into:
// extension must be one of configured archive extensions and content must
// actually be zip.
func isArchiveFile(fs afero.Fs, path string, extensions []string) (bool, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.ContainsFunc(extensions, func(e string) bool { return strings.ToLower(e) == ext }) {
		return false, nil
	}

	f, err := fs.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

// manifestPackage returns value of "package" attribute of the manifest root
// element. Manifest without package attribute is not an error, resulting
// table will be in default package.
func manifestPackage(r io.Reader) (string, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return "", fmt.Errorf("unable to parse manifest: %w", err)
	}
	root := doc.SelectElement("manifest")
	if root == nil {
		return "", errors.New("unable to parse manifest: no manifest element")
	}
	pkg := strings.TrimSpace(root.SelectAttrValue("package", ""))
	if !symbols.IsJavaPackage(pkg) {
		return "", fmt.Errorf("manifest declares invalid package name %q", pkg)
	}
	return pkg, nil
}

// manifestPackageFile looks for manifest file next to symbol file. Absent
// manifest means default package.
func manifestPackageFile(fs afero.Fs, symbolFile, manifestName string) (string, error) {
	f, err := fs.Open(filepath.Join(filepath.Dir(symbolFile), manifestName))
	if err != nil {
		if errors.Is(err, afero.ErrFileNotFound) {
			return "", nil
		}
		return "", err
	}
	defer f.Close()
	return manifestPackage(f)
}
