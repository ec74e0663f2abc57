package twitter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shinz/internal/domain"
)

func testConfig(baseURL string) Config {
	return Config{
		APIKey:       "key",
		APISecret:    "secret",
		AccessToken:  "token",
		AccessSecret: "tokensecret",
		BaseURL:      baseURL,
	}
}

func TestPostTweet(t *testing.T) {
	var gotPath, gotStatus, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = r.ParseForm()
		gotStatus = r.PostFormValue("status")
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id_str":"123","full_text":"gm Shape"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	posted, err := client.PostTweet(context.Background(), "gm Shape", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if posted.ID != "123" || posted.Text != "gm Shape" {
		t.Errorf("posted tweet: got %+v", posted)
	}
	if gotPath != "/statuses/update.json" {
		t.Errorf("path: got %v", gotPath)
	}
	if gotStatus != "gm Shape" {
		t.Errorf("status param: got %q", gotStatus)
	}
	if gotAuth == "" || gotAuth[:6] != "OAuth " {
		t.Errorf("missing OAuth header: %q", gotAuth)
	}
}

func TestPostTweet_AsReply(t *testing.T) {
	var gotReplyID, gotAutoPopulate string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		gotReplyID = r.PostFormValue("in_reply_to_status_id")
		gotAutoPopulate = r.PostFormValue("auto_populate_reply_metadata")
		w.Write([]byte(`{"id_str":"456","text":"reply"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	posted, err := client.PostTweet(context.Background(), "reply", "999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if posted.Text != "reply" {
		t.Errorf("text fallback: got %q", posted.Text)
	}
	if gotReplyID != "999" || gotAutoPopulate != "true" {
		t.Errorf("reply params: got %q/%q", gotReplyID, gotAutoPopulate)
	}
}

func TestPostTweet_MissingCredentials(t *testing.T) {
	client := NewClient(Config{})

	_, err := client.PostTweet(context.Background(), "hi", "")
	if !errors.Is(err, domain.ErrTwitterUnavailable) {
		t.Errorf("expected ErrTwitterUnavailable, got %v", err)
	}
}

func TestPostTweet_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"code":88}]}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.PostTweet(context.Background(), "hi", "")
	if !errors.Is(err, domain.ErrTwitterUnavailable) {
		t.Errorf("expected ErrTwitterUnavailable, got %v", err)
	}
}

func TestFetchMentions(t *testing.T) {
	var gotSinceID, gotMode string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSinceID = r.URL.Query().Get("since_id")
		gotMode = r.URL.Query().Get("tweet_mode")
		w.Write([]byte(`[
			{"id_str":"2","full_text":"@bot hello","user":{"screen_name":"alice"}},
			{"id_str":"1","text":"@bot gm","user":{"screen_name":"bob"}}
		]`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	mentions, err := client.FetchMentions(context.Background(), 5, "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotSinceID != "42" || gotMode != "extended" {
		t.Errorf("query params: since_id=%q tweet_mode=%q", gotSinceID, gotMode)
	}
	if len(mentions) != 2 {
		t.Fatalf("mentions: got %d, want 2", len(mentions))
	}
	if mentions[0].ID != "2" || mentions[0].ScreenName != "alice" || mentions[0].Text != "@bot hello" {
		t.Errorf("first mention: %+v", mentions[0])
	}
	if mentions[1].Text != "@bot gm" {
		t.Errorf("text field fallback: %+v", mentions[1])
	}
}

func TestFetchUserTimeline(t *testing.T) {
	var gotScreenName, gotRTs string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotScreenName = r.URL.Query().Get("screen_name")
		gotRTs = r.URL.Query().Get("include_rts")
		w.Write([]byte(`[
			{"id_str":"1","full_text":"one"},
			{"id_str":"2","full_text":""},
			{"id_str":"3","text":"three"}
		]`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	texts, err := client.FetchUserTimeline(context.Background(), "seishinzinshape", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotScreenName != "seishinzinshape" || gotRTs != "false" {
		t.Errorf("query params: screen_name=%q include_rts=%q", gotScreenName, gotRTs)
	}
	want := []string{"one", "three"}
	if len(texts) != len(want) {
		t.Fatalf("texts: got %v, want %v", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("text %d: got %q, want %q", i, texts[i], want[i])
		}
	}
}
