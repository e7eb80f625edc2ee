package rules

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// LoadTable reads a difficulty table from a YAML (or JSON) file and validates it
func LoadTable(filePath string) (*Table, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read difficulty table: %w", err)
	}

	table, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return table, nil
}

// ParseTable decodes and validates a table document
func ParseTable(data []byte) (*Table, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse difficulty table YAML: %w", err)
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid difficulty table: %w", err)
	}

	return &table, nil
}

// Encode renders the table in the same layout LoadTable reads
func (t *Table) Encode() ([]byte, error) {
	return yaml.Marshal(t)
}

// Schema reflects the JSON schema of the table document for editor tooling
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
	}
	schema := reflector.Reflect(new(Table))
	schema.Title = "Dungeon Difficulty Table"
	schema.Description = "Ordered rules keyed by tier threshold. The first rule is the baseline."
	return schema
}

// SchemaJSON returns the indented schema document
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}
