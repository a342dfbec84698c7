package middleware

import (
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "/"},
		{"/health/live", "/health/live"},
		{"/health/ready", "/health/ready"},
		{"/metrics", "/metrics"},
		{"/login", "/login"},
		{"/whoami", "/whoami"},
		{"/api/v1/dashboard", "/api/v1/dashboard"},
		{"/api/v1/users", "/api/v1/users"},
		{"/api/v1/users/kimmy", "/api/v1/users/{screenName}"},
		{"/api/v1/users/kimmy/status", "/api/v1/users/{screenName}/status"},
		{"/api/v1/users/kimmy/password", "/api/v1/users/{screenName}/password"},
		{"/api/v1/users/kimmy/sessions", "/api/v1/users/{screenName}/sessions"},
		{"/api/v1/sessions", "/api/v1/sessions"},
		{"/api/v1/sessions/abc-123", "/api/v1/sessions/{id}"},
		{"/api/v1/chatrooms", "/api/v1/chatrooms"},
		{"/api/v1/chatrooms/Lounge", "/api/v1/chatrooms/{name}"},
		{"/api/v1/directory", "/api/v1/directory"},
		{"/api/v1/directory/categories", "/api/v1/directory/categories"},
		{"/api/v1/directory/categories/7", "/api/v1/directory/categories/{id}"},
		{"/api/v1/directory/categories/7/keywords", "/api/v1/directory/categories/{id}/keywords"},
		{"/api/v1/directory/keywords/42", "/api/v1/directory/keywords/{id}"},
		{"/api/v1/settings/backend", "/api/v1/settings/backend"},
		{"/api/v1/messages", "/api/v1/messages"},
		{"/static/css/app.css", "/static/*"},
		{"/static/js/app.js", "/static/*"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, ожидается %q", tt.path, got, tt.want)
		}
	}
}
