package analysis

import (
	"embed"
	"errors"
	"fmt"
	"slices"
)

// Result kinds.
const (
	KindSafety   = "safety"
	KindDistance = "distance"
)

// ErrUnknownKind indicates a schema request for a result kind that does not exist.
var ErrUnknownKind = errors.New("unknown result kind")

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// Kinds returns the result kinds that publish a JSON schema.
func Kinds() []string {
	return []string{KindSafety, KindDistance}
}

// Schema returns the JSON schema for a result kind.
func Schema(kind string) ([]byte, error) {
	if !slices.Contains(Kinds(), kind) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	data, err := schemaFS.ReadFile("schemas/" + kind + ".schema.json")
	if err != nil {
		return nil, fmt.Errorf("read %s schema: %w", kind, err)
	}

	return data, nil
}

func mustSchema(kind string) []byte {
	data, err := Schema(kind)
	if err != nil {
		panic(err)
	}

	return data
}
