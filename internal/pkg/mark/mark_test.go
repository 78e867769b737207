package mark

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestMarks_Integrity(t *testing.T) {
	seen := make(map[Mark]struct{})
	for _, m := range Values() {
		assert.NotEmpty(t, m)
		assert.True(t, utf8.ValidString(string(m)))
		assert.Equal(t, strings.TrimSpace(string(m)), string(m), "마크에는 공백이 없어야 합니다")

		_, dup := seen[m]
		assert.False(t, dup, "중복된 마크: %s", m)
		seen[m] = struct{}{}
	}
}

func TestMark_Prefix(t *testing.T) {
	tests := []struct {
		mark     Mark
		message  string
		expected string
	}{
		{Alert, "서버 중단", "🚨 서버 중단"},
		{Warning, "", "⚠️ "},
		{Mark(""), "그대로", "그대로"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.mark.Prefix(tt.message))
	}
}
