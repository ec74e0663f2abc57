package domain

import "strings"

// TweetLimit is the character ceiling for a single tweet.
const TweetLimit = 280

// SplitIntoTweets breaks long text into tweet-sized parts, preferring to
// cut at the last space before the limit. Parts are posted as a reply chain.
func SplitIntoTweets(text string, limit int) []string {
	if limit <= 0 {
		limit = TweetLimit
	}

	var parts []string
	remaining := strings.TrimSpace(text)
	for len(remaining) > limit {
		idx := strings.LastIndex(remaining[:limit], " ")
		if idx <= 0 {
			idx = limit
		}
		parts = append(parts, strings.TrimSpace(remaining[:idx]))
		remaining = strings.TrimSpace(remaining[idx:])
	}
	if remaining != "" {
		parts = append(parts, remaining)
	}
	return parts
}

// PostedTweet is the social client's confirmation of a published tweet.
type PostedTweet struct {
	ID   string
	Text string
}

// Mention is a tweet that mentions the bot's account.
type Mention struct {
	ID         string
	Text       string
	ScreenName string
}

// Instruction selects the prompt template used for content generation.
type Instruction string

const (
	InstructionHourly   Instruction = "hourly"
	InstructionReply    Instruction = "reply"
	InstructionAnalysis Instruction = "analysis"
)

// GenerateRequest carries everything the content generator needs for one tweet.
type GenerateRequest struct {
	Instruction Instruction
	TopicHints  []string
	Context     string
	MentionText string
}
