package config

import (
	"github.com/invopop/jsonschema"
)

// GenerateSchema generates a JSON schema for the Config struct, nested sections are inlined
func GenerateSchema() (*jsonschema.Schema, error) {
	r := jsonschema.Reflector{DoNotReference: true}
	return r.Reflect(&Config{}), nil
}
