package endpoint

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/datastax/table-data-apis/types"
)

// ToJsonValues converts driver values to values that encode to readable json:
// timestamps as RFC3339, blobs as base64, uuids, decimals and varints as strings
func ToJsonValues(rows []types.Row) []map[string]interface{} {
	result := make([]map[string]interface{}, len(rows))
	for i, row := range rows {
		item := make(map[string]interface{}, len(row))
		for column, value := range row {
			item[column] = toJsonValue(value)
		}
		result[i] = item
	}
	return result
}

func toJsonValue(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if v == nil {
			return nil
		}
		return v.UTC().Format(time.RFC3339Nano)
	case []byte:
		return base64.StdEncoding.EncodeToString(v)
	case [16]byte:
		return uuid.UUID(v).String()
	case time.Duration:
		return v.String()
	case fmt.Stringer:
		return v.String()
	}
	return value
}
