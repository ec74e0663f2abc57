// Package twitter talks to the Twitter/X v1.1 REST API with OAuth 1.0a
// request signing.
package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"shinz/internal/domain"
)

const defaultBaseURL = "https://api.twitter.com/1.1"

// Config carries the account credentials and optional overrides.
type Config struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
	BaseURL      string
	Timeout      time.Duration
}

// Client is the outbound Twitter collaborator.
type Client struct {
	creds   credentials
	baseURL string
	http    *http.Client
}

// NewClient creates a Twitter client. Credentials are not verified here;
// an incomplete set fails on first use, matching how the bot is deployed
// in preview environments without keys.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		creds: credentials{
			apiKey:       cfg.APIKey,
			apiSecret:    cfg.APISecret,
			accessToken:  cfg.AccessToken,
			accessSecret: cfg.AccessSecret,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// do signs and executes one API call, decoding the JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, params map[string]string, out any) error {
	if !c.creds.complete() {
		return fmt.Errorf("%w: credentials missing", domain.ErrTwitterUnavailable)
	}

	requestURL := c.baseURL + path
	encoded := url.Values{}
	for k, v := range params {
		encoded.Set(k, v)
	}

	var req *http.Request
	var err error
	if method == http.MethodPost {
		req, err = http.NewRequestWithContext(ctx, method, requestURL, strings.NewReader(encoded.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, method, requestURL+"?"+encoded.Encode(), nil)
	}
	if err != nil {
		return fmt.Errorf("twitter: create request: %w", err)
	}
	req.Header.Set("Authorization", c.creds.authHeader(method, requestURL, params))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTwitterUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: api %d: %s", domain.ErrTwitterUnavailable, resp.StatusCode, string(text))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("twitter: decode response: %w", err)
	}
	return nil
}

// rawTweet is the subset of the v1.1 tweet object the bot reads.
type rawTweet struct {
	IDStr    string `json:"id_str"`
	Text     string `json:"text"`
	FullText string `json:"full_text"`
	User     struct {
		ScreenName string `json:"screen_name"`
	} `json:"user"`
}

func (t rawTweet) text() string {
	if t.FullText != "" {
		return t.FullText
	}
	return t.Text
}

// PostTweet publishes a status update, optionally as a reply.
func (c *Client) PostTweet(ctx context.Context, status string, inReplyToID string) (domain.PostedTweet, error) {
	params := map[string]string{"status": status}
	if inReplyToID != "" {
		params["in_reply_to_status_id"] = inReplyToID
		params["auto_populate_reply_metadata"] = "true"
	}

	var posted rawTweet
	if err := c.do(ctx, http.MethodPost, "/statuses/update.json", params, &posted); err != nil {
		return domain.PostedTweet{}, err
	}
	return domain.PostedTweet{ID: posted.IDStr, Text: posted.text()}, nil
}

// FetchMentions returns up to count mentions, newest first, optionally only
// those after sinceID.
func (c *Client) FetchMentions(ctx context.Context, count int, sinceID string) ([]domain.Mention, error) {
	params := map[string]string{
		"count":      strconv.Itoa(count),
		"tweet_mode": "extended",
	}
	if sinceID != "" {
		params["since_id"] = sinceID
	}

	var raw []rawTweet
	if err := c.do(ctx, http.MethodGet, "/statuses/mentions_timeline.json", params, &raw); err != nil {
		return nil, err
	}

	mentions := make([]domain.Mention, 0, len(raw))
	for _, t := range raw {
		mentions = append(mentions, domain.Mention{
			ID:         t.IDStr,
			Text:       t.text(),
			ScreenName: t.User.ScreenName,
		})
	}
	return mentions, nil
}

// FetchUserTimeline returns the text of the account's recent original
// tweets, excluding replies and retweets.
func (c *Client) FetchUserTimeline(ctx context.Context, screenName string, count int) ([]string, error) {
	params := map[string]string{
		"screen_name":     screenName,
		"count":           strconv.Itoa(count),
		"tweet_mode":      "extended",
		"exclude_replies": "true",
		"include_rts":     "false",
	}

	var raw []rawTweet
	if err := c.do(ctx, http.MethodGet, "/statuses/user_timeline.json", params, &raw); err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(raw))
	for _, t := range raw {
		if text := t.text(); text != "" {
			texts = append(texts, text)
		}
	}
	return texts, nil
}
