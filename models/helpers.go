package models

import "strings"

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

func joinQuoted(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}
