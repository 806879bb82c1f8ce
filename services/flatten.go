package services

import (
	"encoding/json"
	"fmt"

	"bgv-management-api/utils"
)

// FlattenedReport is the tagged form of a submitted report payload: the
// scalar top-level fields destined for the cmt_applications row, and one
// field map per annexure table.
type FlattenedReport struct {
	MainFields map[string]interface{}
	Annexures  map[string]map[string]interface{}
}

// FlattenPayload walks the submitted JSON object. A key literally named
// "annexure" switches into annexure mode: each of its children becomes one
// annexure table's field map, keyed by the normalized table name. Any other
// nested object is merged recursively into the main fields. Arrays are
// stored as their JSON encoding.
func FlattenPayload(payload map[string]interface{}) (*FlattenedReport, error) {
	report := &FlattenedReport{
		MainFields: make(map[string]interface{}),
		Annexures:  make(map[string]map[string]interface{}),
	}
	if err := flattenInto(report, payload); err != nil {
		return nil, err
	}
	return report, nil
}

func flattenInto(report *FlattenedReport, obj map[string]interface{}) error {
	for key, value := range obj {
		if key == "annexure" {
			annexures, ok := value.(map[string]interface{})
			if !ok {
				return fmt.Errorf("annexure value must be an object, got %T", value)
			}
			for tableKey, sub := range annexures {
				subObj, ok := sub.(map[string]interface{})
				if !ok {
					return fmt.Errorf("annexure %q must be an object, got %T", tableKey, sub)
				}
				name := utils.NormalizeTableName(tableKey)
				fields := make(map[string]interface{}, len(subObj))
				for fieldName, fieldValue := range subObj {
					fields[fieldName] = scalarValue(fieldValue)
				}
				report.Annexures[name] = fields
			}
			continue
		}

		if nested, ok := value.(map[string]interface{}); ok {
			if err := flattenInto(report, nested); err != nil {
				return err
			}
			continue
		}
		report.MainFields[key] = scalarValue(value)
	}
	return nil
}

// scalarValue passes scalars through and JSON-encodes arrays, matching how
// multi-value inputs are persisted into their LONGTEXT columns.
func scalarValue(v interface{}) interface{} {
	switch v.(type) {
	case nil, string, bool, float64, int, int64:
		return v
	case []interface{}:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}
