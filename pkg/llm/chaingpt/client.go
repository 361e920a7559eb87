package chaingpt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/artem13815/architect/pkg/llm"
)

// Client is a minimal ChainGPT chat client (smart contract generator and auditor models).
type Client struct {
	APIKey  string
	BaseURL string
	httpDo  *http.Client
}

var _ llm.Assistant = (*Client)(nil)

func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.chaingpt.org"
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpDo: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type envelope struct {
	Status     *bool  `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       *struct {
		Bot string `json:"bot"`
	} `json:"data"`
}

// Ask posts the question and returns the bot answer. A JSON envelope is
// decoded when present; the stream endpoint may also answer with bare text,
// which is then taken as the body of a successful reply.
func (c *Client) Ask(ctx context.Context, req llm.Request) (llm.Response, error) {
	if c.APIKey == "" {
		return llm.Response{}, errors.New("chaingpt api key is empty")
	}
	if req.ChatHistory == "" {
		req.ChatHistory = llm.ChatHistoryOff
	}
	data, err := json.Marshal(req)
	if err != nil {
		return llm.Response{}, err
	}

	endpoint := fmt.Sprintf("%s/chat/stream", c.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return llm.Response{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return llm.Response{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return llm.Response{}, fmt.Errorf("read chaingpt response: %w", err)
	}

	var env envelope
	decoded := json.Unmarshal(raw, &env) == nil && (env.Status != nil || env.Data != nil || env.Message != "")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decoded && env.Message != "" {
			return llm.Response{Status: false, Message: env.Message}, nil
		}
		return llm.Response{}, fmt.Errorf("chaingpt http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if !decoded {
		return llm.Response{Status: true, Body: string(raw)}, nil
	}

	out := llm.Response{Status: true, Message: env.Message}
	if env.Status != nil {
		out.Status = *env.Status
	}
	if env.Data != nil {
		out.Body = env.Data.Bot
	}
	return out, nil
}
