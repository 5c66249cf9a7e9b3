package formatter

import (
	"encoding/json"
	"time"
)

// BuildJSON serializes any result to indented JSON.
func BuildJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// iso8601FromUnixMillis renders the engine's epoch-millisecond timestamps.
func iso8601FromUnixMillis(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
