package keeplist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		args  []string
		want  []string
	}{
		{
			name:  "blank lines skipped",
			files: map[string]string{"keep.txt": "Foo\n\nBar\n"},
			args:  []string{"keep.txt"},
			want:  []string{"Foo", "Bar"},
		},
		{
			name: "literal names",
			args: []string{"Account", "Contact"},
			want: []string{"Account", "Contact"},
		},
		{
			name:  "mixed literals and files",
			files: map[string]string{"a.txt": "Foo\nBar", "b.txt": "Baz\n"},
			args:  []string{"Account", "a.txt", "Contact", "b.txt"},
			want:  []string{"Account", "Foo", "Bar", "Contact", "Baz"},
		},
		{
			name:  "lines trimmed",
			files: map[string]string{"keep.txt": "  Foo \r\n\t\r\n\tBar\t\n   \n"},
			args:  []string{"keep.txt"},
			want:  []string{"Foo", "Bar"},
		},
		{
			name:  "empty file",
			files: map[string]string{"empty.txt": ""},
			args:  []string{"empty.txt", "Foo"},
			want:  []string{"Foo"},
		},
		{
			name:  "directory is a literal",
			files: map[string]string{"dir/keep.txt": "Foo"},
			args:  []string{"dir"},
			want:  []string{"dir"},
		},
		{
			name: "missing file is a literal",
			args: []string{"missing.txt"},
			want: []string{"missing.txt"},
		},
		{
			name:  "bare carriage returns",
			files: map[string]string{"keep.txt": "Foo\rBar\r\rBaz"},
			args:  []string{"keep.txt"},
			want:  []string{"Foo", "Bar", "Baz"},
		},
		{
			name: "no args",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			fs := afero.NewMemMapFs()
			for path, content := range test.files {
				require.NoError(afero.WriteFile(fs, path, []byte(content), 0o644))
			}

			r := &Resolver{Fs: fs}
			names, err := r.Resolve(test.args)
			require.NoError(err)
			require.Equal(test.want, names)
		})
	}
}

func TestResolveOsFs(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "keep.txt")
	require.NoError(os.WriteFile(path, []byte("Foo\n\nBar\n"), 0o644))

	names, err := NewResolver().Resolve([]string{path, "Baz"})
	require.NoError(err)
	require.Equal([]string{"Foo", "Bar", "Baz"}, names)
}

var errRead = errors.New("device error")

type failingFs struct {
	afero.Fs
}

func (f failingFs) Open(name string) (afero.File, error) {
	file, err := f.Fs.Open(name)
	if err != nil {
		return nil, err
	}
	return failingFile{File: file}, nil
}

type failingFile struct {
	afero.File
}

func (failingFile) Read([]byte) (int, error) {
	return 0, errRead
}

func TestResolveReadError(t *testing.T) {
	require := require.New(t)

	fs := afero.NewMemMapFs()
	require.NoError(afero.WriteFile(fs, "keep.txt", []byte("Foo\n"), 0o644))

	r := &Resolver{Fs: failingFs{Fs: fs}}
	_, err := r.Resolve([]string{"Bar", "keep.txt"})
	require.ErrorIs(err, errRead)
}

// vanishingFs reports files as present but fails to open them, as when a
// file is removed between the two calls.
type vanishingFs struct {
	afero.Fs
}

func (vanishingFs) Open(name string) (afero.File, error) {
	return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
}

func TestResolveFileRemovedBeforeOpen(t *testing.T) {
	require := require.New(t)

	fs := afero.NewMemMapFs()
	require.NoError(afero.WriteFile(fs, "keep.txt", []byte("Foo\n"), 0o644))

	r := &Resolver{Fs: vanishingFs{Fs: fs}}
	names, err := r.Resolve([]string{"Bar", "keep.txt"})
	require.NoError(err)
	require.Equal([]string{"Bar", "keep.txt"}, names)
}

func TestRead(t *testing.T) {
	require := require.New(t)

	names, err := Read(strings.NewReader("Foo\nBar\n\nBaz"))
	require.NoError(err)
	require.Equal([]string{"Foo", "Bar", "Baz"}, names)

	names, err = Read(strings.NewReader("\n\n"))
	require.NoError(err)
	require.Empty(names)

	long := strings.Repeat("A", 200*1024)
	names, err = Read(strings.NewReader("Foo\n" + long + "\nBar"))
	require.NoError(err)
	require.Equal([]string{"Foo", long, "Bar"}, names)
}
