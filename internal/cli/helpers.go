package cli

import (
	"encoding/json"
	"os"
)

// emitJSON writes v as indented JSON to stdout.
func emitJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// emit prints v as JSON when --json is set, otherwise calls text.
func emit(v any, text func()) error {
	if flagJSON {
		return emitJSON(v)
	}
	text()
	return nil
}
