// Package usecases wires the gate, the dispatcher, and the outbound
// collaborators into the bot's operations.
package usecases

import (
	"context"

	"shinz/internal/domain"
)

// SocialClient is the Twitter collaborator surface the usecases need.
type SocialClient interface {
	PostTweet(ctx context.Context, status string, inReplyToID string) (domain.PostedTweet, error)
	FetchMentions(ctx context.Context, count int, sinceID string) ([]domain.Mention, error)
	FetchUserTimeline(ctx context.Context, screenName string, count int) ([]string, error)
}

// Generator produces tweet content from a prompt request.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerateRequest) (string, error)
}

// InsightsFetcher supplies topic hints from the Shape data collaborator.
type InsightsFetcher interface {
	FetchInsights(ctx context.Context, hints []string) ([]string, error)
}

// StateStore persists the bot's small operational state.
type StateStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
