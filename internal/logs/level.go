package logs

import (
	"encoding/json"
	"strings"
)

var levelRank = map[string]int{
	"DEBUG": 0,
	"INFO":  1,
	"WARN":  2,
	"ERROR": 3,
}

// LineLevel extracts the level token of a formatted log line. Console lines
// carry the level as the second whitespace field after the timestamp; JSON
// lines carry a "level" key. The second return is false when the line has no
// recognizable level.
func LineLevel(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}

	if strings.HasPrefix(trimmed, "{") {
		var payload struct {
			Level string `json:"level"`
		}
		if err := json.Unmarshal([]byte(trimmed), &payload); err == nil {
			level := strings.ToUpper(strings.TrimSpace(payload.Level))
			if _, ok := levelRank[level]; ok {
				return level, true
			}
		}
		return "", false
	}

	fields := strings.Fields(trimmed)
	if len(fields) < 2 {
		return "", false
	}
	level := strings.ToUpper(fields[1])
	if _, ok := levelRank[level]; ok {
		return level, true
	}
	return "", false
}

// FilterMinLevel keeps lines at or above min. Lines without a recognizable
// level pass through so wrapped or partial payloads are never dropped. An
// empty or unknown min disables filtering.
func FilterMinLevel(lines []string, min string) []string {
	threshold, ok := levelRank[strings.ToUpper(strings.TrimSpace(min))]
	if !ok {
		return lines
	}

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		level, found := LineLevel(line)
		if found && levelRank[level] < threshold {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}
