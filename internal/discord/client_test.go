package discord

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/crypto-academy/internal/config"
)

func TestGrantRole_Success(t *testing.T) {
	var gotMethod, gotPath, gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(config.Discord{
		APIURL:   server.URL,
		GuildID:  "1180000000000000001",
		BotToken: "bot-token",
	})

	err := client.GrantRole(context.Background(), "280926659550320657", "1190000000000000001")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/guilds/1180000000000000001/members/280926659550320657/roles/1190000000000000001", gotPath)
	assert.Equal(t, "Bot bot-token", gotAuth)
}

func TestGrantRole_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name         string
		statusCode   int
		body         string
		wantContains string
	}{
		{
			name:         "missing permissions",
			statusCode:   http.StatusForbidden,
			body:         `{"message": "Missing Permissions", "code": 50013}`,
			wantContains: "Missing Permissions",
		},
		{
			name:         "unknown member",
			statusCode:   http.StatusNotFound,
			body:         `{"message": "Unknown Member", "code": 10007}`,
			wantContains: "Unknown Member",
		},
		{
			name:       "discord outage",
			statusCode: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
				if tt.body != "" {
					if _, err := w.Write([]byte(tt.body)); err != nil {
						t.Errorf("failed to write response: %v", err)
					}
				}
			}))
			defer server.Close()

			client := NewClient(config.Discord{
				APIURL:   server.URL,
				GuildID:  "guild",
				BotToken: "bot-token",
			})

			err := client.GrantRole(context.Background(), "member", "role")
			assert.Error(t, err)
			if tt.wantContains != "" {
				assert.Contains(t, err.Error(), tt.wantContains)
			}
		})
	}
}

func TestGrantRole_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(config.Discord{
		APIURL:   server.URL,
		GuildID:  "guild",
		BotToken: "bot-token",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := client.GrantRole(ctx, "member", "role")
	assert.Error(t, err)
}
