package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

func marshalJSONMap(field string, value map[string]interface{}) (datatypes.JSON, error) {
	if len(value) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", field, err)
	}
	return data, nil
}

func unmarshalJSONMap(field string, data datatypes.JSON) (map[string]interface{}, error) {
	result := make(map[string]interface{})
	if len(data) == 0 || string(data) == "null" {
		return result, nil
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", field, err)
	}
	return result, nil
}
