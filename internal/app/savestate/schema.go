package savestate

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed save_record.schema.json
var recordSchemaJSON string

var recordSchema = jsonschema.MustCompileString("save_record.schema.json", recordSchemaJSON)

// decodeRecord validates raw against the record schema before decoding it.
func decodeRecord(raw []byte) (Record, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Record{}, fmt.Errorf("parse save record: %w", err)
	}
	if err := recordSchema.Validate(doc); err != nil {
		return Record{}, fmt.Errorf("validate save record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, fmt.Errorf("decode save record: %w", err)
	}
	return rec, nil
}
