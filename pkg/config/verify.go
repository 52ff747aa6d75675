package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	schemavalidator "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var embeddedSchema string

var (
	compileOnce    sync.Once
	compiledSchema *schemavalidator.Schema
	compileErr     error
)

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema. It reports
// fields unknown to the schema, values below the declared minimum and values outside of enums.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("load embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	value, err := decodeJSON(configData)
	if err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}

func loadSchema() (*schemavalidator.Schema, error) {
	compileOnce.Do(func() {
		compiler := schemavalidator.NewCompiler()
		compiler.Draft = schemavalidator.Draft2020
		if err := compiler.AddResource("schema.json", strings.NewReader(embeddedSchema)); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile("schema.json")
	})
	return compiledSchema, compileErr
}

// decodeJSON decodes raw JSON into the generic form the validator works on
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var res any
	if err := dec.Decode(&res); err != nil {
		return nil, err
	}
	return res, nil
}
