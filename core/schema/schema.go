package schema

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/xeipuuv/gojsonschema"

	"github.com/VithorDosSantos/reflora/core"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// well-known schema identifiers for the reflora request bodies
const (
	RegisterID = "https://reflora.app/schemas/register.json"
	LoginID    = "https://reflora.app/schemas/login.json"
	SensorID   = "https://reflora.app/schemas/sensor.json"
	ReadingID  = "https://reflora.app/schemas/reading.json"
	AlertID    = "https://reflora.app/schemas/alert.json"
)

// Validator is a utility to validate JSON objects against a given schema
type Validator struct {
	schemaValidators map[string]*gojsonschema.Schema
}

// NewValidator creates a Validator loaded with the embedded reflora
// request body schemas. Schemas are compiled once at construction; the
// validator is safe for concurrent use.
func NewValidator() (*Validator, error) {
	files, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("cannot read schema dir %w", err)
	}

	v := Validator{schemaValidators: map[string]*gojsonschema.Schema{}}
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		raw, err := schemaFS.ReadFile("schemas/" + f.Name())
		if err != nil {
			return nil, fmt.Errorf("cannot read schema '%s' %w", f.Name(), err)
		}
		var idHolder struct {
			ID string `json:"$id"`
		}
		if err := json.Unmarshal(raw, &idHolder); err != nil || idHolder.ID == "" {
			return nil, fmt.Errorf("schema '%s' is missing an $id", f.Name())
		}
		compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("cannot compile schema '%s' %w", f.Name(), err)
		}
		v.schemaValidators[idHolder.ID] = compiled
	}
	return &v, nil
}

// MustNewValidator is like NewValidator, but panics on error
func MustNewValidator() *Validator {
	v, err := NewValidator()
	if err != nil {
		panic(err)
	}
	return v
}

// HasSchema returns true if the validator knows a schema with this id
func (v *Validator) HasSchema(id string) bool {
	_, ok := v.schemaValidators[id]
	return ok
}

// Validate checks the document against the schema with the given id.
// A violation is reported as a KindValidation error carrying the first
// offending field; an unknown schema id is a programming error.
func (v *Validator) Validate(document []byte, schemaID string) error {
	validator, ok := v.schemaValidators[schemaID]
	if !ok {
		return errors.New("unknown schema " + schemaID)
	}
	result, err := validator.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return core.ValidationError("invalid request body")
	}
	if !result.Valid() {
		desc := result.Errors()[0].String()
		return core.ValidationError(desc)
	}
	return nil
}
