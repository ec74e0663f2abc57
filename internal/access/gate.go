package access

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"shinz/internal/domain"
)

// Gate is the single authority on "is action X currently permitted" and the
// only place usage counters are mutated. One instance per process, passed
// explicitly to whoever needs it.
//
// Two states: unauthenticated (no active grant, every check is false) and
// authenticated (capability- and counter-gated checks). The bypass flag is
// orthogonal to both and overrides grant checks entirely while enabled.
type Gate struct {
	mu     sync.Mutex
	table  map[string]domain.AccessGrant
	active *domain.AccessGrant
	bypass bool

	tweetsPostedToday      int
	repliesSentThisSession int
	lastResetDate          string

	now func() time.Time
}

// NewGate creates a gate over the given grant table. A nil table uses the
// built-in defaults.
func NewGate(table map[string]domain.AccessGrant) *Gate {
	if table == nil {
		table = DefaultGrants()
	}
	g := &Gate{
		table: table,
		now:   time.Now,
	}
	g.lastResetDate = dateString(g.now())
	return g
}

// dateString is the calendar-date key used for daily resets.
func dateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// SetAccessCode looks up the code case-insensitively and, if it names a
// non-expired grant, makes it the active grant. Returns false with state
// unchanged otherwise.
func (g *Gate) SetAccessCode(code string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	grant, ok := g.table[strings.ToUpper(strings.TrimSpace(code))]
	if !ok || grant.Expired(g.now()) {
		return false
	}

	g.active = &grant
	g.resetDailyUsageLocked()
	return true
}

// Clear returns the gate to the unauthenticated state. Counters are kept;
// they belong to the process, not the grant.
func (g *Gate) Clear() {
	g.mu.Lock()
	g.active = nil
	g.mu.Unlock()
}

// CanPerformAction reports whether the action is currently permitted.
// Closed by default: no grant means no. Unknown actions are denied.
func (g *Gate) CanPerformAction(action domain.Action) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.bypass {
		return true
	}
	if g.active == nil {
		return false
	}

	// Counter-sensitive checks see a fresh day without a new SetAccessCode.
	g.resetDailyUsageLocked()

	caps := g.active.Capabilities
	switch action {
	case domain.ActionPostTweet:
		return caps.CanPostTweets && g.tweetsPostedToday < g.active.MaxTweetsPerDay
	case domain.ActionReplyToTweet:
		return caps.CanReplyToTweets
	case domain.ActionAutoReply:
		return caps.CanAutoReply && g.repliesSentThisSession < g.active.MaxRepliesPerSession
	case domain.ActionCheckReplies:
		return caps.CanCheckReplies
	case domain.ActionGetData:
		return caps.CanGetData
	case domain.ActionUseQuickActions:
		return caps.CanUseQuickActions
	case domain.ActionUseInterface:
		return caps.CanUseInterface
	default:
		return false
	}
}

// RecordAction bumps the counter behind the action. Callers must invoke it
// only after the external call confirmed success; the gate has no way to
// tell a failed post from a successful one.
func (g *Gate) RecordAction(action domain.Action) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch action {
	case domain.ActionPostTweet:
		g.tweetsPostedToday++
	case domain.ActionReplyToTweet, domain.ActionAutoReply:
		g.repliesSentThisSession++
	}
}

// UsageStats returns a snapshot of counters and the active grant.
// Remaining counts clamp at zero.
func (g *Gate) UsageStats() domain.UsageStats {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.resetDailyUsageLocked()

	stats := domain.UsageStats{
		TweetsPosted:  g.tweetsPostedToday,
		RepliesSent:   g.repliesSentThisSession,
		LastResetDate: g.lastResetDate,
		AccessCode:    "None",
		AccessType:    "None",
	}
	if g.active != nil {
		stats.AccessCode = g.active.Code
		stats.AccessType = string(g.active.Kind)
		stats.RemainingTweets = clampZero(g.active.MaxTweetsPerDay - g.tweetsPostedToday)
		stats.RemainingReplies = clampZero(g.active.MaxRepliesPerSession - g.repliesSentThisSession)
	}
	return stats
}

// resetDailyUsageLocked zeroes both counters once per calendar day.
// Lazy: runs on grant activation and counter-sensitive reads, not a timer.
func (g *Gate) resetDailyUsageLocked() {
	today := dateString(g.now())
	if g.lastResetDate != today {
		g.tweetsPostedToday = 0
		g.repliesSentThisSession = 0
		g.lastResetDate = today
	}
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// EnableBypass forces every CanPerformAction to true until disabled.
// Intended for trusted automated callers such as scheduled jobs.
func (g *Gate) EnableBypass() {
	g.mu.Lock()
	g.bypass = true
	g.mu.Unlock()
}

// DisableBypass restores grant-based checks.
func (g *Gate) DisableBypass() {
	g.mu.Lock()
	g.bypass = false
	g.mu.Unlock()
}

// BypassEnabled reports the bypass flag.
func (g *Gate) BypassEnabled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bypass
}

// AvailableCodes lists the codes in the grant table, sorted.
func (g *Gate) AvailableCodes() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return codeList(g.table)
}

// GrantInfo renders a human-readable permission summary for a code, or an
// "Invalid access code" line when the code is unknown.
func (g *Gate) GrantInfo(code string) string {
	g.mu.Lock()
	grant, ok := g.table[strings.ToUpper(strings.TrimSpace(code))]
	g.mu.Unlock()

	if !ok {
		return "Invalid access code"
	}

	caps := grant.Capabilities
	return fmt.Sprintf(
		"%s\n\nPermissions:\n"+
			"- Use Interface: %s\n"+
			"- Post to X: %s\n"+
			"- Reply to Tweets: %s\n"+
			"- Auto Reply: %s\n"+
			"- Check Replies: %s\n"+
			"- Get Data: %s\n"+
			"- Quick Actions: %s\n"+
			"- Max Tweets/Day: %d\n"+
			"- Max Replies/Session: %d",
		grant.Description,
		yesNo(caps.CanUseInterface),
		yesNo(caps.CanPostTweets),
		yesNo(caps.CanReplyToTweets),
		yesNo(caps.CanAutoReply),
		yesNo(caps.CanCheckReplies),
		yesNo(caps.CanGetData),
		yesNo(caps.CanUseQuickActions),
		grant.MaxTweetsPerDay,
		grant.MaxRepliesPerSession,
	)
}

// RestrictionMessage describes the current access situation for end users.
// Empty string means nothing is restricted.
func (g *Gate) RestrictionMessage() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.bypass {
		return "Admin bypass active: all features are enabled."
	}
	if g.active == nil {
		return "Access required: enter an access code to use the ShinZ agent."
	}
	if !g.active.Capabilities.CanPostTweets {
		return "X posting restricted: your access code does not allow posting. " +
			"You can still use the interface, check replies and mentions, and view Shape data."
	}
	return ""
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
