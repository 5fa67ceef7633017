package renderer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrSchemaViolation indicates a document that does not match its JSON schema.
var ErrSchemaViolation = errors.New("document does not match schema")

// ValidateJSON checks document against schema. Both are raw JSON.
func ValidateJSON(schema, document []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		problems = append(problems, verr.Field()+": "+verr.Description())
	}

	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(problems, "; "))
}
