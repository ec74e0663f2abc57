// Package insights pulls topic hints from the Shape MCP data server.
// The server is best-effort: any failure falls back to the caller's hints
// or a static default list, never to an error.
package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"shinz/pkg/log"
)

const defaultBaseURL = "https://shape-mcp-server.vercel.app/mcp"

// DefaultHints is the fallback topic list used when the data server is
// unreachable and the caller supplied nothing.
var DefaultHints = []string{
	"Shape Chain infrastructure and updates",
	"Gasback rewards for builders",
	"Trending NFT collections on Shape",
	"Stack achievements and leaderboard moves",
}

// Client calls MCP-style tool endpoints: POST {base}/tools/{name}.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an insights client. An empty baseURL uses the hosted
// Shape MCP server.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// toolResponse is the loose shape of an MCP tool result.
type toolResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// callTool posts to one tool endpoint and returns its text content lines.
func (c *Client) callTool(ctx context.Context, name string, params map[string]any) ([]string, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tools/"+name, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("insights: tool %s: status %d", name, resp.StatusCode)
	}

	var parsed toolResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(parsed.Content))
	for _, c := range parsed.Content {
		if text := strings.TrimSpace(c.Text); text != "" {
			lines = append(lines, text)
		}
	}
	return lines, nil
}

// FetchInsights gathers topic hints from the data server. On any failure it
// returns the supplied hints, or DefaultHints when those are empty too.
func (c *Client) FetchInsights(ctx context.Context, hints []string) ([]string, error) {
	var collected []string

	for _, tool := range []string{"getChainStatus", "getTopShapeCreators"} {
		lines, err := c.callTool(ctx, tool, map[string]any{})
		if err != nil {
			log.GlobalWarnCtx(ctx, "insights tool failed", "tool", tool, "error", err)
			continue
		}
		collected = append(collected, lines...)
	}

	if len(collected) > 0 {
		return collected, nil
	}
	if len(hints) > 0 {
		return hints, nil
	}
	return DefaultHints, nil
}
