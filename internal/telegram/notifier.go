package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"et21/internal/notify"
)

const defaultAPIBase = "https://api.telegram.org"

// Notifier posts staff notifications to one or more Telegram chats, for
// example the secretaría group.
type Notifier struct {
	botToken string
	chatIDs  []string
	client   *http.Client
	apiBase  string
}

// New returns notify.Noop when no token or chat is configured. chatIDs is
// a comma separated list.
func New(botToken, chatIDs string) notify.Notifier {
	botToken = strings.TrimSpace(botToken)
	var ids []string
	for _, id := range strings.Split(chatIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if botToken == "" || len(ids) == 0 {
		return notify.Noop{}
	}
	return &Notifier{
		botToken: botToken,
		chatIDs:  ids,
		client:   &http.Client{Timeout: 5 * time.Second},
		apiBase:  defaultAPIBase,
	}
}

func (n *Notifier) NotifyStaff(ctx context.Context, msg string) {
	if n == nil {
		return
	}
	for _, id := range n.chatIDs {
		if err := n.send(ctx, id, msg); err != nil {
			slog.Warn("telegram.send", "chat_id", id, "err", err)
		}
	}
}

type sendRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

func (n *Notifier) send(ctx context.Context, chatID, msg string) error {
	body, err := json.Marshal(sendRequest{ChatID: chatID, Text: msg, ParseMode: "HTML"})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(n.apiBase, "/"), n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("telegram status %s", resp.Status)
	}
	return nil
}
