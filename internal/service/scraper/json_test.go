package scraper

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoPayload struct {
	URLs  []string `json:"coupangUrls"`
	SubID string   `json:"subId"`
}

func TestFetchJSON_PostsBodyAndDecodes(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json;charset=UTF-8", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		var in echoPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(in)
	}))
	defer server.Close()

	var out echoPayload
	err := newTestScraper().FetchJSON(context.Background(), http.MethodPost, server.URL,
		echoPayload{URLs: []string{"https://www.coupang.com/vp/products/1"}, SubID: "sub"}, nil, &out)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://www.coupang.com/vp/products/1"}, out.URLs)
	assert.Equal(t, "sub", out.SubID)
}

func TestFetchJSON_KeepsCallerHeader(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "CEA test", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{}`)
	}))
	defer server.Close()

	header := http.Header{}
	header.Set("Authorization", "CEA test")

	var out map[string]any
	require.NoError(t, newTestScraper().FetchJSON(context.Background(), http.MethodPost, server.URL, []byte(`{}`), header, &out))
	assert.Empty(t, header.Get("Content-Type"), "호출자의 헤더는 변경되지 않아야 합니다")
}

func TestFetchJSON_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		errType     apperrors.ErrorType
	}{
		{"HTML 응답", "text/html; charset=utf-8", "<html>login</html>", apperrors.ParsingFailed},
		{"문법 오류", "application/json", `{"a":`, apperrors.ParsingFailed},
		{"잔여 데이터", "application/json", `{"a":1} {"b":2}`, apperrors.ParsingFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			var out map[string]any
			err := newTestScraper().FetchJSON(context.Background(), http.MethodGet, server.URL, nil, nil, &out)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, tt.errType), "err=%v", err)
		})
	}
}

func TestFetchJSON_InvalidTarget(t *testing.T) {
	t.Parallel()

	s := newTestScraper()

	err := s.FetchJSON(context.Background(), http.MethodGet, "http://localhost", nil, nil, nil)
	assert.ErrorIs(t, err, ErrDecodeTargetNil)

	var out map[string]any
	err = s.FetchJSON(context.Background(), http.MethodGet, "http://localhost", nil, nil, out)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Internal))
}

func TestFetchJSON_RequestBodyTooLarge(t *testing.T) {
	t.Parallel()

	var out map[string]any
	err := newTestScraper(WithMaxRequestBodySize(4)).FetchJSON(context.Background(), http.MethodPost, "http://localhost", "0123456789", nil, &out)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}

func TestFetchJSON_NoContent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	var out map[string]any
	require.NoError(t, newTestScraper().FetchJSON(context.Background(), http.MethodDelete, server.URL, nil, nil, &out))
	assert.Nil(t, out)
}
