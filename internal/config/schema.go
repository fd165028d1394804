package config

import (
	"encoding/json"
	"fmt"

	"github.com/goran-ethernal/ChainActivity/pkg/config"
	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of the configuration file, indented for display.
func Schema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		FieldNameTag:              "json",
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	schema := reflector.Reflect(&config.Config{})
	schema.Title = "ChainActivity configuration"

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode config schema: %w", err)
	}

	return out, nil
}
