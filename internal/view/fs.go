// fs.go holds a tiny helper for walking a template tree, since glob
// patterns such as “**/*.html” are not available in the standard library.
package view

import (
	"errors"
	"io/fs"
	"strings"
)

// CollectHTML walks dir inside fsys recursively and returns every *.html
// path, slash-separated and relative to the root of fsys.  A missing dir
// yields no files and no error.
func CollectHTML(fsys fs.FS, dir string) ([]string, error) {
	var files []string

	err := fs.WalkDir(fsys, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil && !isNotExist(err) {
		return nil, err
	}
	return files, nil
}

func isNotExist(err error) bool { return errors.Is(err, fs.ErrNotExist) }
