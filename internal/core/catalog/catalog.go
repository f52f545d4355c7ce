package catalog

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// DefaultElementTypes are the catalog element types imported when the
// caller does not narrow them down.
var DefaultElementTypes = []string{"control", "control_enhancement"}

// ControlRecord is the minimal slice of a catalog element needed for
// mapping. The full export never leaves disk.
type ControlRecord struct {
	ControlID   string
	Title       string
	ElementType string
}

type catalogExport struct {
	Response *struct {
		Elements *struct {
			Elements []catalogElement `json:"elements"`
		} `json:"elements"`
	} `json:"response"`
}

type catalogElement struct {
	ElementType       string `json:"element_type"`
	ElementIdentifier string `json:"element_identifier"`
	Title             string `json:"title"`
}

// LoadCatalog reads a control catalog JSON export and returns the records
// matching the allowed element types. Elements with a blank identifier are
// skipped. A missing nested structure is an error naming the absent path,
// so a half-shaped file never silently imports nothing.
func LoadCatalog(path string, elementTypes []string) ([]ControlRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read catalog file %s", path)
	}

	var export catalogExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, errors.Wrapf(err, "malformed catalog json in %s", path)
	}

	if export.Response == nil {
		return nil, errors.Errorf("catalog file %s is missing the response object", path)
	}
	if export.Response.Elements == nil || export.Response.Elements.Elements == nil {
		return nil, errors.Errorf("catalog file %s is missing response.elements.elements", path)
	}

	if elementTypes == nil {
		elementTypes = DefaultElementTypes
	}
	allowed := make(map[string]struct{}, len(elementTypes))
	for _, t := range elementTypes {
		allowed[strings.ToLower(t)] = struct{}{}
	}

	records := make([]ControlRecord, 0, len(export.Response.Elements.Elements))
	for _, element := range export.Response.Elements.Elements {
		elementType := strings.ToLower(element.ElementType)
		if _, ok := allowed[elementType]; !ok {
			continue
		}

		controlID := strings.TrimSpace(element.ElementIdentifier)
		if controlID == "" {
			continue
		}

		records = append(records, ControlRecord{
			ControlID:   controlID,
			Title:       strings.TrimSpace(element.Title),
			ElementType: elementType,
		})
	}

	return records, nil
}
