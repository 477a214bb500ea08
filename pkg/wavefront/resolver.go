package wavefront

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Resolution errors.
var (
	ErrMaterialFileNotFound = errors.New("material file not found")
	ErrNoMaterialStream     = errors.New("material stream not available")
)

// MaterialResolver resolves one mtllib reference into material records
// appended to lib. It returns any warning text produced while parsing the
// library. A non-nil error marks the reference as unresolved; the OBJ
// parser then tries the next candidate file name and the overall load
// continues either way.
type MaterialResolver interface {
	Resolve(name string, lib *MaterialLib) (warning string, err error)
}

// FileResolver resolves mtllib references against a base directory on disk.
type FileResolver struct {
	// BaseDir is joined with each referenced file name. Empty means the
	// reference is used as-is.
	BaseDir string
}

// Resolve opens the referenced file and parses it as an MTL library.
func (r FileResolver) Resolve(name string, lib *MaterialLib) (string, error) {
	path := name
	if r.BaseDir != "" {
		path = filepath.Join(r.BaseDir, name)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrMaterialFileNotFound, path)
	}
	defer f.Close()

	return ParseMTL(f, lib), nil
}

// StreamResolver resolves any mtllib reference from a single already-open
// stream. The stream is consumed by the first resolution; later references
// fail.
type StreamResolver struct {
	R io.Reader
}

// Resolve parses the held stream as an MTL library.
func (r *StreamResolver) Resolve(name string, lib *MaterialLib) (string, error) {
	if r.R == nil {
		return "", ErrNoMaterialStream
	}
	warning := ParseMTL(r.R, lib)
	r.R = nil
	return warning, nil
}
