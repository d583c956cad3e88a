package validation

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/apperrors"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Request body contracts, keyed by file name without extension.
const (
	SchemaSimulation  = "simulation"
	SchemaCompare     = "compare"
	SchemaTaxes       = "taxes"
	SchemaProjections = "projections"
	SchemaContact     = "contact"
)

// Resources are registered under a fixed base so schemas can $ref each other by file name.
const schemaBaseURL = "https://schemas.am-capital.fr/simulator/"

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

func compileSchemas() (map[string]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compileErr = loadSchemas()
	})
	return compiled, compileErr
}

func loadSchemas() (map[string]*jsonschema.Schema, error) {
	entries, err := fs.ReadDir(schemaFS, "schemas")
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		file, err := schemaFS.Open("schemas/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to open schema %s: %w", entry.Name(), err)
		}
		err = compiler.AddResource(schemaBaseURL+entry.Name(), file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to add schema resource %s: %w", entry.Name(), err)
		}
		names = append(names, entry.Name())
	}

	out := make(map[string]*jsonschema.Schema, len(names))
	for _, name := range names {
		schema, err := compiler.Compile(schemaBaseURL + name)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
		}
		out[strings.TrimSuffix(name, ".json")] = schema
	}
	return out, nil
}

// ValidateSchema checks a raw request body against the named contract.
// Both malformed JSON and contract violations wrap apperrors.ErrInvalidRequestBody.
func ValidateSchema(name string, body []byte) error {
	schemas, err := compileSchemas()
	if err != nil {
		return err
	}
	schema, ok := schemas[name]
	if !ok {
		return fmt.Errorf("schema %q not found", name)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("%w: body is not valid JSON: %v", apperrors.ErrInvalidRequestBody, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidRequestBody, err)
	}
	return nil
}
