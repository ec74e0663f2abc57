package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"shinz/internal/access"
	"shinz/internal/command"
	"shinz/internal/domain"
	"shinz/internal/scheduler"
	"shinz/internal/usecases"
)

type stubSocial struct {
	posts []string
}

func (s *stubSocial) PostTweet(ctx context.Context, status string, inReplyToID string) (domain.PostedTweet, error) {
	s.posts = append(s.posts, status)
	return domain.PostedTweet{ID: "1", Text: status}, nil
}

func (s *stubSocial) FetchMentions(ctx context.Context, count int, sinceID string) ([]domain.Mention, error) {
	return nil, nil
}

func (s *stubSocial) FetchUserTimeline(ctx context.Context, screenName string, count int) ([]string, error) {
	return nil, nil
}

type stubGenerator struct{}

func (stubGenerator) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	return "generated", nil
}

type stubInsights struct{}

func (stubInsights) FetchInsights(ctx context.Context, hints []string) ([]string, error) {
	return []string{"hint one"}, nil
}

type stubStore struct {
	values map[string]string
}

func (s *stubStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := s.values[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return value, nil
}

func (s *stubStore) Set(ctx context.Context, key, value string) error {
	s.values[key] = value
	return nil
}

func (s *stubStore) Delete(ctx context.Context, key string) error {
	delete(s.values, key)
	return nil
}

type testEnv struct {
	app    *fiber.App
	gate   *access.Gate
	social *stubSocial
}

func newTestEnv() *testEnv {
	gate := access.NewGate(nil)
	social := &stubSocial{}
	store := &stubStore{values: map[string]string{}}
	gen := stubGenerator{}
	ins := stubInsights{}

	dispatcher := command.NewDispatcher(gen, social, ins, "seishinzinshape")
	handlers := NewHandlers(
		gate,
		usecases.NewRunCommandUseCase(gate, dispatcher, social),
		usecases.NewPostHourlyUseCase(ins, gen, social, "seishinzinshape"),
		usecases.NewPostGMUseCase(social, store),
		usecases.NewReplyMentionsUseCase(social, gen, store),
		ins,
		scheduler.New(gate, nil),
	)

	app := fiber.New()
	SetupRoutes(app, handlers)
	return &testEnv{app: app, gate: gate, social: social}
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var parsed map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, parsed
}

func TestHealth(t *testing.T) {
	env := newTestEnv()

	status, body := doJSON(t, env.app, http.MethodGet, "/health", "")
	if status != http.StatusOK || body["status"] != "ok" {
		t.Errorf("got %d %v", status, body)
	}
}

func TestPostCommand_MissingCommand(t *testing.T) {
	env := newTestEnv()

	status, body := doJSON(t, env.app, http.MethodPost, "/api/command", `{}`)
	if status != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", status)
	}
	if body["help"] == nil || body["error"] == nil {
		t.Errorf("body missing help/error: %v", body)
	}
}

func TestPostCommand_DryRunTweet(t *testing.T) {
	env := newTestEnv()

	status, body := doJSON(t, env.app, http.MethodPost, "/api/command", `{"command":"tweet: hello","dryRun":true}`)
	if status != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %v", status, body)
	}
	if body["action"] != "tweet" || body["content"] != "hello" || body["posted"] != false {
		t.Errorf("body: %v", body)
	}
	if len(env.social.posts) != 0 {
		t.Errorf("dry run posted: %v", env.social.posts)
	}
}

func TestPostCommand_LiveDeniedWithoutGrant(t *testing.T) {
	env := newTestEnv()

	status, body := doJSON(t, env.app, http.MethodPost, "/api/command", `{"command":"tweet: hello"}`)
	if status != http.StatusForbidden {
		t.Errorf("status: got %d, want 403: %v", status, body)
	}
	if body["error"] == nil {
		t.Errorf("missing restriction message: %v", body)
	}
}

func TestPostCommand_LiveWithGrant(t *testing.T) {
	env := newTestEnv()
	env.gate.SetAccessCode("SHINZ2024")

	status, body := doJSON(t, env.app, http.MethodPost, "/api/command", `{"command":"tweet: hello"}`)
	if status != http.StatusOK {
		t.Fatalf("status: got %d: %v", status, body)
	}
	if body["posted"] != true {
		t.Errorf("body: %v", body)
	}
	if len(env.social.posts) != 1 || env.social.posts[0] != "hello" {
		t.Errorf("posts: %v", env.social.posts)
	}
}

func TestPostCommand_EmptyTweetReportsError(t *testing.T) {
	env := newTestEnv()

	status, body := doJSON(t, env.app, http.MethodPost, "/api/command", `{"command":"tweet:   ","dryRun":true}`)
	if status != http.StatusOK {
		t.Fatalf("status: got %d", status)
	}
	if body["error"] != "empty tweet" || body["posted"] != false {
		t.Errorf("body: %v", body)
	}
}

func TestGetCommand_Help(t *testing.T) {
	env := newTestEnv()

	status, body := doJSON(t, env.app, http.MethodGet, "/api/command", "")
	if status != http.StatusOK {
		t.Fatalf("status: got %d", status)
	}
	help, _ := body["help"].(string)
	if !strings.Contains(help, "tweet:") {
		t.Errorf("help text: %q", help)
	}
}

func TestAccessFlow(t *testing.T) {
	env := newTestEnv()

	// Invalid code.
	status, _ := doJSON(t, env.app, http.MethodPost, "/api/access", `{"code":"WRONG"}`)
	if status != http.StatusUnauthorized {
		t.Errorf("invalid code: got %d, want 401", status)
	}

	// Valid code, case-insensitive.
	status, body := doJSON(t, env.app, http.MethodPost, "/api/access", `{"code":"shinz2024"}`)
	if status != http.StatusOK {
		t.Fatalf("valid code: got %d: %v", status, body)
	}
	if body["accessType"] != string(domain.KindHolder) {
		t.Errorf("accessType: %v", body["accessType"])
	}

	// Stats reflect the active grant.
	status, body = doJSON(t, env.app, http.MethodGet, "/api/access/stats", "")
	if status != http.StatusOK || body["accessCode"] != "SHINZ2024" {
		t.Errorf("stats: %d %v", status, body)
	}

	// Clear returns to unauthenticated.
	status, _ = doJSON(t, env.app, http.MethodDelete, "/api/access", "")
	if status != http.StatusOK {
		t.Errorf("clear: got %d", status)
	}
	_, body = doJSON(t, env.app, http.MethodGet, "/api/access/stats", "")
	if body["accessCode"] != "None" {
		t.Errorf("stats after clear: %v", body)
	}
}

func TestAccessCodesAndInfo(t *testing.T) {
	env := newTestEnv()

	status, body := doJSON(t, env.app, http.MethodGet, "/api/access/codes", "")
	if status != http.StatusOK {
		t.Fatalf("codes: got %d", status)
	}
	codes, _ := body["codes"].([]any)
	if len(codes) != 4 {
		t.Errorf("codes: %v", codes)
	}

	status, body = doJSON(t, env.app, http.MethodGet, "/api/access/info/SHINZ2024", "")
	if status != http.StatusOK {
		t.Fatalf("info: got %d", status)
	}
	info, _ := body["info"].(string)
	if !strings.Contains(info, "NFT Holder") {
		t.Errorf("info: %q", info)
	}
}

func TestInsights_GatedOnGetData(t *testing.T) {
	env := newTestEnv()

	status, _ := doJSON(t, env.app, http.MethodGet, "/api/insights", "")
	if status != http.StatusForbidden {
		t.Errorf("without grant: got %d, want 403", status)
	}

	env.gate.SetAccessCode("VIEWER2024")
	status, body := doJSON(t, env.app, http.MethodGet, "/api/insights", "")
	if status != http.StatusOK {
		t.Fatalf("with grant: got %d: %v", status, body)
	}
	hints, _ := body["hints"].([]any)
	if len(hints) != 1 || hints[0] != "hint one" {
		t.Errorf("hints: %v", hints)
	}
}

func TestCronEndpoints(t *testing.T) {
	env := newTestEnv()

	status, body := doJSON(t, env.app, http.MethodPost, "/api/cron/tweet-hourly", "")
	if status != http.StatusOK || body["status"] != usecases.StatusTweeted {
		t.Errorf("tweet-hourly: %d %v", status, body)
	}

	status, body = doJSON(t, env.app, http.MethodGet, "/api/cron/reply-mentions", "")
	if status != http.StatusOK || body["status"] != usecases.StatusNoMentions {
		t.Errorf("reply-mentions: %d %v", status, body)
	}
	if _, ok := body["count"]; ok {
		t.Errorf("count emitted without replies: %v", body)
	}

	status, body = doJSON(t, env.app, http.MethodGet, "/api/cron/gm-tweet", "")
	if status != http.StatusOK || body["status"] != usecases.StatusTweeted {
		t.Errorf("gm-tweet: %d %v", status, body)
	}

	// Second GM trigger on the same day dedupes.
	status, body = doJSON(t, env.app, http.MethodGet, "/api/cron/gm-tweet", "")
	if status != http.StatusOK || body["status"] != usecases.StatusAlreadyPosted {
		t.Errorf("gm-tweet repeat: %d %v", status, body)
	}
}

func TestSchedulerEndpoints(t *testing.T) {
	env := newTestEnv()

	status, body := doJSON(t, env.app, http.MethodGet, "/api/scheduler", "")
	if status != http.StatusOK || body["running"] != false {
		t.Errorf("status: %d %v", status, body)
	}
	if body["totalTasks"] != float64(4) {
		t.Errorf("totalTasks: %v", body["totalTasks"])
	}

	status, body = doJSON(t, env.app, http.MethodPost, "/api/scheduler", `{"action":"start"}`)
	if status != http.StatusOK || body["running"] != true {
		t.Errorf("start: %d %v", status, body)
	}

	status, body = doJSON(t, env.app, http.MethodPost, "/api/scheduler", `{"action":"stop"}`)
	if status != http.StatusOK || body["running"] != false {
		t.Errorf("stop: %d %v", status, body)
	}

	status, _ = doJSON(t, env.app, http.MethodPost, "/api/scheduler", `{"action":"reboot"}`)
	if status != http.StatusBadRequest {
		t.Errorf("unknown action: got %d, want 400", status)
	}
}
