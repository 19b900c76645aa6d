package dataset

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads an exported dataset from a JSON file on disk.
func Load(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset file: %w", err)
	}
	defer file.Close()

	var raw envelope
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing dataset file %q: %w", path, err)
	}

	return raw.decode()
}
