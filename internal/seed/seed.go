// Package seed reads campaigns from YAML or JSON files for bulk import.
package seed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/questboard/backend/internal/models"
	"gopkg.in/yaml.v3"
)

// LoadFile reads campaigns from path. The file may hold a single campaign,
// a list of campaigns, or a {campaigns: [...]} collection. The format is
// chosen by extension: .yaml/.yml or .json.
func LoadFile(path string) ([]models.Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	case ".json":
		return DecodeJSON(data)
	default:
		return nil, fmt.Errorf("%s: unsupported extension %q", path, ext)
	}
}

func DecodeJSON(data []byte) ([]models.Campaign, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	if data[0] == '[' {
		var list []models.Campaign
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var doc struct {
		Campaigns *[]models.Campaign `json:"campaigns"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Campaigns != nil {
		return *doc.Campaigns, nil
	}

	var single models.Campaign
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, err
	}
	return []models.Campaign{single}, nil
}

func DecodeYAML(data []byte) ([]models.Campaign, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	node := root.Content[0]

	switch node.Kind {
	case yaml.SequenceNode:
		var list []models.Campaign
		if err := node.Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	case yaml.MappingNode:
		if hasKey(node, "campaigns") {
			var doc struct {
				Campaigns []models.Campaign `yaml:"campaigns"`
			}
			if err := node.Decode(&doc); err != nil {
				return nil, err
			}
			return doc.Campaigns, nil
		}
		var single models.Campaign
		if err := node.Decode(&single); err != nil {
			return nil, err
		}
		return []models.Campaign{single}, nil
	default:
		return nil, fmt.Errorf("line %d: expected a campaign, a list or a collection", node.Line)
	}
}

func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}
