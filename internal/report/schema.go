package report

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// SchemaID identifies the JSON Schema of the report document.
const SchemaID = "https://github.com/coral-mesh/fpgaprof/report.schema.json"

// Schema returns the JSON Schema describing the JSON output of Report.
func Schema() ([]byte, error) {
	// Source is recursive, so nested types stay in $defs.
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(&Report{})
	schema.ID = jsonschema.ID(SchemaID)
	schema.Title = "fpgaprof report"
	return json.MarshalIndent(schema, "", "  ")
}
