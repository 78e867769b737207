package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCORSOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		origin  string
		wantErr bool
	}{
		{"*", false},
		{"https://example.com", false},
		{"http://localhost:3000", false},
		{"http://127.0.0.1:8080", false},
		{"", true},
		{"https://example.com/", true},
		{"ftp://example.com", true},
		{"https://example.com/path", true},
		{"https://example.com?x=1", true},
		{"https://user:pw@example.com", true},
		{"https://example.com:70000", true},
		{"https://-bad.com", true},
		{"https://example.123", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.origin, func(t *testing.T) {
			t.Parallel()
			err := ValidateCORSOrigin(tt.origin)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePort(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePort(1))
	assert.NoError(t, ValidatePort(65535))
	assert.Error(t, ValidatePort(0))
	assert.Error(t, ValidatePort(65536))
}

func TestValidateHTTPURL(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateHTTPURL("https://app.scrapingbee.com/api/v1"))
	assert.NoError(t, ValidateHTTPURL("http://127.0.0.1:9000"))
	assert.Error(t, ValidateHTTPURL("app.scrapingbee.com"))
	assert.Error(t, ValidateHTTPURL("ftp://host"))
	assert.Error(t, ValidateHTTPURL("https://"))
}

func TestValidateCronExpression(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateCronExpression("0 */10 * * * *"))
	assert.NoError(t, ValidateCronExpression("@every 5m"))
	assert.Error(t, ValidateCronExpression("*/10 * * * *"))
}
