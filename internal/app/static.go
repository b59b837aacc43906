package app

import (
	"errors"
	"io/fs"
)

// layered serves the first layer that holds a name.
type layered []fs.FS

func (l layered) Open(name string) (fs.File, error) {
	var first error
	for _, f := range l {
		file, err := f.Open(name)
		if err == nil {
			return file, nil
		}
		if first == nil || !errors.Is(err, fs.ErrNotExist) {
			first = err
		}
	}
	if first == nil {
		first = &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return nil, first
}

// overlay layers dir (when present) over the embedded assets.
func overlay(dir string, embedded fs.FS) fs.FS {
	return layered(sources(dir, embedded))
}
