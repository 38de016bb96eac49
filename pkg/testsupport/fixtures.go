package testsupport

import (
	"encoding/json"
	"os"
)

// LoadJSON decodes the JSON file at path into v.
func LoadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
