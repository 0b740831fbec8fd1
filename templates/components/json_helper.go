package components

import (
	"encoding/json"

	"lexium/logger"

	"go.uber.org/zap"
)

// JSON marshals an object to a JSON string, returning "{}" on error
func JSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		logger.GetLogger().Warn("Error marshaling JSON for template", zap.Error(err))
		return "{}"
	}
	return string(b)
}
