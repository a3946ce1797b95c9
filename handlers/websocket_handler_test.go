package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWebSocketCheckOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"no origin header", []string{"https://tab.example"}, "", true},
		{"listed origin", []string{"https://tab.example"}, "https://tab.example", true},
		{"case differs", []string{"https://Tab.Example"}, "https://tab.example", true},
		{"unlisted origin", []string{"https://tab.example"}, "https://evil.example", false},
		{"wildcard", []string{"*"}, "https://evil.example", true},
		{"empty list", nil, "https://evil.example", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewWebSocketHandler(nil, tt.allowed)
			r := httptest.NewRequest("GET", "/ws/tournaments/1", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, h.checkOrigin(r))
		})
	}
}
