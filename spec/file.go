package spec

import (
	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/google/renameio/v2"
	"github.com/spf13/afero"
)

// ReadFile reads and parses the document at path. Errors from the file system
// are returned unwrapped so callers can match fs.ErrNotExist.
func ReadFile(fs afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// WriteFile atomically replaces the file at path with the indented document.
func WriteFile(path string, doc *Document) error {
	data, err := doc.MarshalIndent()
	if err != nil {
		return err
	}
	return renameio.WriteFile(path, data, perms.ReadWrite)
}
