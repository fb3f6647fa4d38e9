package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/jonathan/career-compass/internal/schemas"
	"github.com/jonathan/career-compass/internal/types"
)

//go:embed careers.json
var defaultCatalog []byte

// Source loads raw career records. Implementations perform I/O; the catalog built from
// them is immutable.
type Source interface {
	Load(ctx context.Context) ([]types.CareerProfile, error)
}

// File is the JSON catalog file format.
type File struct {
	Version string                `json:"version,omitempty"`
	Careers []types.CareerProfile `json:"careers"`
}

// LoadError represents a failure to read records from a source
type LoadError struct {
	Source string
	Cause  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load catalog from %s: %v", e.Source, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// FileSource reads a schema-validated JSON catalog file.
type FileSource struct {
	Path string
}

// Load implements Source.
func (s FileSource) Load(_ context.Context) ([]types.CareerProfile, error) {
	data, err := schemas.ValidateFile(schemas.Catalog, s.Path)
	if err != nil {
		return nil, &LoadError{Source: s.Path, Cause: err}
	}
	file, err := Decode(data)
	if err != nil {
		return nil, &LoadError{Source: s.Path, Cause: err}
	}
	return file.Careers, nil
}

// EmbeddedSource serves the built-in sample catalog.
type EmbeddedSource struct{}

// Load implements Source.
func (EmbeddedSource) Load(_ context.Context) ([]types.CareerProfile, error) {
	if err := schemas.Validate(schemas.Catalog, defaultCatalog); err != nil {
		return nil, &LoadError{Source: "embedded", Cause: err}
	}
	file, err := Decode(defaultCatalog)
	if err != nil {
		return nil, &LoadError{Source: "embedded", Cause: err}
	}
	return file.Careers, nil
}

// StaticSource serves records held in memory.
type StaticSource []types.CareerProfile

// Load implements Source.
func (s StaticSource) Load(_ context.Context) ([]types.CareerProfile, error) {
	return s, nil
}

// Decode parses catalog file JSON without schema validation.
func Decode(data []byte) (File, error) {
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return file, nil
}

// Load reads records from src and builds the catalog.
func Load(ctx context.Context, src Source, label string) (*Catalog, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return New(records, label)
}
