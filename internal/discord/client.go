// Package discord реализует клиент для выдачи ролей участникам гильдии
// через Discord REST API.
package discord

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/magabrotheeeer/crypto-academy/internal/config"
)

// Client клиент Discord API, авторизованный токеном бота.
type Client struct {
	apiURL     string
	guildID    string
	botToken   string
	httpClient *http.Client
}

// NewClient создаёт новый клиент Discord по настройкам конфига.
func NewClient(cfg config.Discord) *Client {
	return &Client{
		apiURL:     cfg.APIURL,
		guildID:    cfg.GuildID,
		botToken:   cfg.BotToken,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GrantRole добавляет роль участнику гильдии.
//
// Успехом считается любой 2xx-ответ, тело ответа не требуется. Вызов
// идемпотентен на стороне Discord: повторная выдача уже имеющейся роли
// также возвращает 2xx.
func (c *Client) GrantRole(ctx context.Context, memberID, roleID string) error {
	const op = "discord.GrantRole"

	url := fmt.Sprintf("%s/guilds/%s/members/%s/roles/%s", c.apiURL, c.guildID, memberID, roleID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bot "+c.botToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s: unexpected status %s: %s", op, resp.Status, string(body))
	}
	return nil
}
