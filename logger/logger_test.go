package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVs(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"authorization", "Bearer abc.def.ghi",
		"guest_phone", "+919876543210",
		"wedding_id", "w-1",
		"dangling",
	})

	assert.Equal(t, []interface{}{
		"authorization", "[REDACTED]",
		"guest_phone", "*********3210",
		"wedding_id", "w-1",
		"dangling",
	}, out)
}

func TestMaskShortValues(t *testing.T) {
	assert.Equal(t, "***", mask("abc"))
	assert.Equal(t, "", mask(""))
}
