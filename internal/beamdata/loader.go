package beamdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a beam-data record from a JSON or YAML file. The format is
// chosen from the file extension; anything that is not .yaml/.yml is
// parsed as JSON.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read beam data: %w", err)
	}

	var doc Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse beam data %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse beam data %s: %w", path, err)
		}
	}

	if len(doc.FloorGroups) == 0 {
		return nil, fmt.Errorf("beam data %s: no floor_groups defined", path)
	}
	return &doc, nil
}
