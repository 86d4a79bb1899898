package flashkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDataStar(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		query    string
		expected bool
	}{
		{
			name:     "datastar request header",
			headers:  map[string]string{"Datastar-Request": "true"},
			expected: true,
		},
		{
			name:     "SSE Accept header with other values",
			headers:  map[string]string{"Accept": "text/html, text/event-stream, */*"},
			expected: true,
		},
		{
			name:     "datastar query parameter",
			query:    "?datastar={\"count\":1}",
			expected: true,
		},
		{
			name:     "regular request",
			headers:  map[string]string{"Accept": "text/html"},
			expected: false,
		},
		{
			name:     "no headers",
			headers:  map[string]string{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test"+tt.query, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, IsDataStar(req))
		})
	}
}

func TestHTMXDetection(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, IsHTMX(req))
	assert.False(t, IsHTMXBoosted(req))
	assert.False(t, IsHTMXHistoryRestore(req))

	req.Header.Set(HXRequest, "true")
	req.Header.Set(HXBoosted, "true")
	req.Header.Set(HXHistoryRestore, "true")
	assert.True(t, IsHTMX(req))
	assert.True(t, IsHTMXBoosted(req))
	assert.True(t, IsHTMXHistoryRestore(req))
}

func TestClientKind(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"htmx", map[string]string{HXRequest: "true"}, "htmx"},
		{"datastar", map[string]string{DataStarRequestHeader: "true"}, "datastar"},
		{"htmx wins over datastar", map[string]string{HXRequest: "true", DataStarRequestHeader: "true"}, "htmx"},
		{"plain browser", nil, "browser"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientKind(req))
		})
	}
}
