package datasource

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/graphscape/graphscape/pkg/model"
)

// FileSource reads graph snapshots from a local JSON document, the same
// shape the exporter's json format writes.
type FileSource struct {
	path string
}

// NewFileSource builds a source for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the watched snapshot path.
func (s *FileSource) Path() string {
	return s.path
}

// Load parses the snapshot file.
func (s *FileSource) Load() (model.GraphData, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return model.GraphData{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	var data model.GraphData
	if err := json.Unmarshal(raw, &data); err != nil {
		return model.GraphData{}, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return data, nil
}
