package jsonschema

// Schema is a minimal JSON Schema representation used for export.
// Only the keywords a descriptor table can express are modelled.
type Schema struct {
	// Core
	Schema      string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Type        any    `json:"type,omitempty"` // string, or []string for nullable types
	Format      string `json:"format,omitempty"`
	Description string `json:"description,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`
}

// Draft is the dialect URI written to the root schema.
const Draft = "https://json-schema.org/draft/2020-12/schema"
