// Package keeplist resolves the schema names a caller wants to keep. Each
// argument is either a literal schema name or the path of a newline-delimited
// file of names.
package keeplist

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
)

type Resolver struct {
	Fs afero.Fs
}

// NewResolver returns a Resolver backed by the OS file system.
func NewResolver() *Resolver {
	return &Resolver{Fs: afero.NewOsFs()}
}

// Resolve expands args into schema names, in order. An argument naming an
// existing regular file contributes the names listed in it; any other
// argument is taken as a name itself.
func (r *Resolver) Resolve(args []string) ([]string, error) {
	var names []string
	for _, arg := range args {
		if !r.isFile(arg) {
			names = append(names, arg)
			continue
		}

		fileNames, err := r.readFile(arg)
		if errors.Is(err, fs.ErrNotExist) {
			names = append(names, arg)
			continue
		}
		if err != nil {
			return nil, err
		}
		names = append(names, fileNames...)
	}
	return names, nil
}

func (r *Resolver) isFile(path string) bool {
	info, err := r.Fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (r *Resolver) readFile(path string) ([]string, error) {
	f, err := r.Fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("couldn't read keep-list file %s: %w", path, err)
	}
	return names, nil
}

// Read returns the trimmed, non-empty lines of r. Lines may end in "\n",
// "\r\n" or a bare "\r", and have no length limit.
func Read(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var names []string
	lines := strings.FieldsFunc(string(data), func(c rune) bool {
		return c == '\n' || c == '\r'
	})
	for _, line := range lines {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
