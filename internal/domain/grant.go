// Package domain contains the core business entities and rules.
package domain

import "time"

// AccessKind classifies an access grant.
type AccessKind string

const (
	KindHolder AccessKind = "nft_holder"
	KindViewer AccessKind = "viewer"
	KindGuest  AccessKind = "restricted"
	KindAdmin  AccessKind = "admin"
)

// Capabilities is the set of named permissions carried by a grant.
type Capabilities struct {
	CanPostTweets      bool `yaml:"can_post_tweets"`
	CanReplyToTweets   bool `yaml:"can_reply_to_tweets"`
	CanAutoReply       bool `yaml:"can_auto_reply"`
	CanCheckReplies    bool `yaml:"can_check_replies"`
	CanGetData         bool `yaml:"can_get_data"`
	CanUseQuickActions bool `yaml:"can_use_quick_actions"`
	CanUseInterface    bool `yaml:"can_use_interface"`
}

// AccessGrant is the permission and limit bundle behind one access code.
// Grants are immutable after the table is loaded; only the gate's active
// grant pointer and usage counters change at runtime.
type AccessGrant struct {
	Code                 string       `yaml:"code"`
	Kind                 AccessKind   `yaml:"kind"`
	Capabilities         Capabilities `yaml:"capabilities"`
	MaxTweetsPerDay      int          `yaml:"max_tweets_per_day"`
	MaxRepliesPerSession int          `yaml:"max_replies_per_session"`
	Description          string       `yaml:"description"`
	ExpiresAt            *time.Time   `yaml:"expires_at,omitempty"`
}

// Expired reports whether the grant is past its expiry at the given time.
// Grants without an expiry never expire.
func (g AccessGrant) Expired(at time.Time) bool {
	return g.ExpiresAt != nil && at.After(*g.ExpiresAt)
}

// Action is a gate-checked operation name.
type Action string

const (
	ActionPostTweet       Action = "postTweet"
	ActionReplyToTweet    Action = "replyToTweet"
	ActionAutoReply       Action = "autoReply"
	ActionCheckReplies    Action = "checkReplies"
	ActionGetData         Action = "getData"
	ActionUseQuickActions Action = "useQuickActions"
	ActionUseInterface    Action = "useInterface"
)

// UsageStats is a snapshot of the gate's counters and active grant.
type UsageStats struct {
	TweetsPosted     int    `json:"tweetsPosted"`
	RepliesSent      int    `json:"repliesSent"`
	RemainingTweets  int    `json:"remainingTweets"`
	RemainingReplies int    `json:"remainingReplies"`
	LastResetDate    string `json:"lastResetDate"`
	AccessCode       string `json:"accessCode"`
	AccessType       string `json:"accessType"`
}
