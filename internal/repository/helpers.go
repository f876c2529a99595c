package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/forgo/madoka/api/internal/database"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// isUniqueConstraintError checks if an error is a unique index violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, database.ErrDuplicate) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "already contains") ||
		strings.Contains(errStr, "already exists")
}

// recordKey extracts the key part of a SurrealDB record id, so that
// "magical_girl:abc" and RecordID{Table: "magical_girl", ID: "abc"} both give "abc".
func recordKey(id interface{}) string {
	switch v := id.(type) {
	case string:
		if _, key, ok := strings.Cut(v, ":"); ok {
			v = key
		}
		return strings.TrimSuffix(strings.TrimPrefix(v, "⟨"), "⟩")
	case models.RecordID:
		return fmt.Sprint(v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprint(v.ID)
		}
	case map[string]interface{}:
		// A fetched record ({"id": ...}) or the {"tb": ..., "id": ...} wire form
		if inner, ok := v["id"]; ok {
			return recordKey(inner)
		}
	}
	return ""
}

// recordLink builds a record link value for a content map
func recordLink(table, key string) models.RecordID {
	return models.RecordID{Table: table, ID: key}
}

// extractQueryResults extracts the rows of the first statement from a SurrealDB response
func extractQueryResults(result []interface{}) []map[string]interface{} {
	if len(result) == 0 {
		return nil
	}

	var rows []interface{}
	if first, ok := result[0].(map[string]interface{}); ok {
		if resultArray, ok := first["result"].([]interface{}); ok {
			rows = resultArray
		}
	}

	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		if m, ok := row.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getInt extracts an int value from a map
func getInt(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case float32:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	}
	return 0
}

// getTime extracts a time value from a map
func getTime(m map[string]interface{}, key string) *time.Time {
	switch v := m[key].(type) {
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return &t
		}
	case time.Time:
		return &v
	case models.CustomDateTime:
		t := v.Time
		return &t
	case *models.CustomDateTime:
		if v != nil {
			t := v.Time
			return &t
		}
	}
	return nil
}
