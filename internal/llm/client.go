package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/olm-ai/olm/pkg/models"
)

// Client talks to an ollama-compatible chat endpoint. Non-streaming: one
// POST per completion.
type Client struct {
	chatURL string
	baseURL string
	model   string
	timeout time.Duration
	client  *http.Client
	debug   bool
}

// Response is one completed chat round from the model.
type Response struct {
	Message models.Message
	Timing  time.Duration
	Model   string
}

// New returns a client against chatURL, which is expected to look like
// 'http://localhost:11434/api/chat'.
func New(chatURL, model string, timeout time.Duration) *Client {
	return &Client{
		chatURL: chatURL,
		baseURL: strings.TrimSuffix(chatURL, "/api/chat"),
		model:   model,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
		debug:   misc.Truthy(os.Getenv("DEBUG")),
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

type chatRequest struct {
	Model    string             `json:"model"`
	Messages []models.Message   `json:"messages"`
	Stream   bool               `json:"stream"`
	Tools    []models.ToolEntry `json:"tools,omitempty"`
}

// wireMessage uses pointers to tell absent fields from empty ones, since
// both 'no message' and 'no content' violate the contract and get their own
// error detail.
type wireMessage struct {
	Role      string        `json:"role"`
	Content   *string       `json:"content"`
	ToolCalls []models.Call `json:"tool_calls"`
}

type chatResponse struct {
	Model   string       `json:"model"`
	Message *wireMessage `json:"message"`
}

// Chat sends the messages, and optionally the tool schema, to the model and
// returns its reply. Transport failures map onto the typed errors in this
// package.
func (c *Client) Chat(ctx context.Context, messages []models.Message, tools []models.ToolEntry) (Response, error) {
	start := time.Now()
	reqData := chatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
		Tools:    tools,
	}
	jsonData, err := json.Marshal(reqData)
	if err != nil {
		return Response{}, fmt.Errorf("failed to encode JSON: %w", err)
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("chat request: %v\n", debug.IndentedJsonFmt(reqData)))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return Response{}, c.transportError(err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return Response{}, ResponseError{
			Detail:     strings.TrimSpace(string(body)),
			StatusCode: res.StatusCode,
		}
	}

	var data chatResponse
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return Response{}, ResponseError{Detail: fmt.Sprintf("failed to decode JSON: %v", err)}
	}
	if data.Message == nil {
		return Response{}, ResponseError{Detail: "missing 'message' field"}
	}
	if data.Message.Content == nil {
		return Response{}, ResponseError{Detail: "missing 'content' in message"}
	}

	role := data.Message.Role
	if role == "" {
		role = models.RoleAssistant
	}
	resp := Response{
		Message: models.Message{
			Role:      role,
			Content:   *data.Message.Content,
			ToolCalls: data.Message.ToolCalls,
		},
		Timing: time.Since(start),
		Model:  c.model,
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("chat response after %v, has tool calls: %v\n",
			resp.Timing, len(resp.Message.ToolCalls) > 0))
	}
	return resp, nil
}

func (c *Client) transportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return TimeoutError{Timeout: c.timeout}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return TimeoutError{Timeout: c.timeout}
	}
	return ConnectionError{Endpoint: c.chatURL, Err: err}
}

// Generate asks the model for a single completion outside any
// conversation. Used by the LLM-backed tools.
func (c *Client) Generate(prompt, system string) (string, error) {
	resp, err := c.Chat(context.Background(), []models.Message{
		{Role: models.RoleSystem, Content: system},
		{Role: models.RoleUser, Content: prompt},
	}, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Message.Content), nil
}

// HealthCheck reports whether the service answers on its tags endpoint.
func (c *Client) HealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	res, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()
	return res.StatusCode == http.StatusOK
}

// ListModels returns the model names the service has available.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	res, err := c.client.Do(req)
	if err != nil {
		return nil, c.transportError(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return nil, ResponseError{Detail: strings.TrimSpace(string(body)), StatusCode: res.StatusCode}
	}
	var data struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, ResponseError{Detail: fmt.Sprintf("failed to decode JSON: %v", err)}
	}
	names := make([]string, 0, len(data.Models))
	for _, m := range data.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
