package access

import (
	"os"
	"path/filepath"
	"testing"

	"shinz/internal/domain"
)

func TestDefaultGrants_Table(t *testing.T) {
	table := DefaultGrants()

	if len(table) != 4 {
		t.Fatalf("table size: got %d, want 4", len(table))
	}

	holder, ok := table["SHINZ2024"]
	if !ok {
		t.Fatal("SHINZ2024 missing")
	}
	if holder.Kind != domain.KindHolder || !holder.Capabilities.CanPostTweets {
		t.Errorf("SHINZ2024 grant wrong: %+v", holder)
	}
	if holder.MaxTweetsPerDay != 50 || holder.MaxRepliesPerSession != 10 {
		t.Errorf("SHINZ2024 limits: got %d/%d, want 50/10", holder.MaxTweetsPerDay, holder.MaxRepliesPerSession)
	}

	viewer := table["VIEWER2024"]
	if viewer.Capabilities.CanPostTweets || viewer.MaxTweetsPerDay != 0 {
		t.Errorf("VIEWER2024 must not post: %+v", viewer)
	}

	admin := table["ADMIN2024"]
	if admin.MaxTweetsPerDay != 999 || admin.Kind != domain.KindAdmin {
		t.Errorf("ADMIN2024 grant wrong: %+v", admin)
	}
}

func TestLoadGrants_EmptyPathUsesDefaults(t *testing.T) {
	table, err := LoadGrants("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := table["SHINZ2024"]; !ok {
		t.Error("defaults missing SHINZ2024")
	}
}

func TestLoadGrants_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grants.yaml")
	content := `grants:
  - code: partner2025
    kind: nft_holder
    description: Partner access
    max_tweets_per_day: 5
    max_replies_per_session: 2
    capabilities:
      can_post_tweets: true
      can_use_interface: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadGrants(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	grant, ok := table["PARTNER2025"]
	if !ok {
		t.Fatalf("code not normalized to upper case: %v", table)
	}
	if grant.MaxTweetsPerDay != 5 || !grant.Capabilities.CanPostTweets {
		t.Errorf("grant not parsed: %+v", grant)
	}
	if grant.Capabilities.CanAutoReply {
		t.Error("unset capability parsed as true")
	}
}

func TestLoadGrants_RejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grants.yaml")
	if err := os.WriteFile(path, []byte("grants: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadGrants(path); err == nil {
		t.Error("expected error for empty grant table")
	}
}

func TestLoadGrants_MissingFile(t *testing.T) {
	if _, err := LoadGrants("/nonexistent/grants.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
