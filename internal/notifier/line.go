package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Line pushes text messages through the LINE Messaging API.
type Line struct {
	baseURL string
	token   string
	to      string
	client  *http.Client
}

func NewLine(baseURL, channelToken, to string) *Line {
	return &Line{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   channelToken,
		to:      to,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (l *Line) Name() string { return "line" }

type linePush struct {
	To       string        `json:"to"`
	Messages []lineMessage `json:"messages"`
}

type lineMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (l *Line) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(linePush{
		To:       l.to,
		Messages: []lineMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/v2/bot/message/push", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+l.token)

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("line push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("line push: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}
