package usecases

import (
	"context"
	"strings"

	"shinz/internal/domain"
	"shinz/pkg/log"
)

// Statuses reported by the scheduled usecases.
const (
	StatusTweeted       = "tweeted"
	StatusNoContent     = "no-content"
	StatusNoMentions    = "no-mentions"
	StatusReplied       = "replied"
	StatusAlreadyPosted = "already-posted"
)

// PostHourlyUseCase publishes the recurring ecosystem update tweet.
type PostHourlyUseCase struct {
	insights  InsightsFetcher
	generator Generator
	social    SocialClient
	handle    string
}

// NewPostHourlyUseCase creates the hourly tweet runner. handle is the bot's
// own screen name.
func NewPostHourlyUseCase(insights InsightsFetcher, generator Generator, social SocialClient, handle string) *PostHourlyUseCase {
	return &PostHourlyUseCase{
		insights:  insights,
		generator: generator,
		social:    social,
		handle:    handle,
	}
}

// Execute gathers hints and recent timeline context, generates the update,
// and posts it. An empty generation is skipped, not an error.
func (uc *PostHourlyUseCase) Execute(ctx context.Context) (string, error) {
	hints, err := uc.insights.FetchInsights(ctx, nil)
	if err != nil {
		return "", err
	}
	recent, err := uc.social.FetchUserTimeline(ctx, uc.handle, 5)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(recent))
	for _, t := range recent {
		lines = append(lines, "- "+t)
	}

	content, err := uc.generator.Generate(ctx, domain.GenerateRequest{
		Instruction: domain.InstructionHourly,
		TopicHints:  hints,
		Context:     strings.Join(lines, "\n"),
	})
	if err != nil {
		return "", err
	}
	if content == "" {
		return StatusNoContent, nil
	}

	posted, err := uc.social.PostTweet(ctx, content, "")
	if err != nil {
		return "", err
	}
	log.GlobalInfoCtx(ctx, "hourly tweet posted", "tweet_id", posted.ID)
	return StatusTweeted, nil
}
