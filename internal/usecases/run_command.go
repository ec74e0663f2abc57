package usecases

import (
	"context"

	"shinz/internal/access"
	"shinz/internal/command"
	"shinz/internal/domain"
)

// RunCommandUseCase executes one free-text command in a gated context:
// the dispatcher itself does no permission checks, so the live poster it
// gets here is wrapped with the gate.
type RunCommandUseCase struct {
	gate       *access.Gate
	dispatcher *command.Dispatcher
	live       command.Poster
}

// NewRunCommandUseCase creates the gated command runner.
func NewRunCommandUseCase(gate *access.Gate, dispatcher *command.Dispatcher, social SocialClient) *RunCommandUseCase {
	return &RunCommandUseCase{
		gate:       gate,
		dispatcher: dispatcher,
		live:       &gatedPoster{gate: gate, social: social},
	}
}

// Execute dispatches the command. Dry runs get the preview poster and never
// touch the gate; live runs post through the gated poster.
func (uc *RunCommandUseCase) Execute(ctx context.Context, raw string, dryRun bool) (command.Result, error) {
	poster := uc.live
	if dryRun {
		poster = command.PreviewPoster{}
	}
	return uc.dispatcher.Dispatch(ctx, raw, poster)
}

// gatedPoster checks the gate immediately before the external call and
// records the action only after confirmed success.
type gatedPoster struct {
	gate   *access.Gate
	social SocialClient
}

// Long content goes out as a reply-chained thread. One logical post counts
// as one action regardless of how many parts it takes.
func (p *gatedPoster) Post(ctx context.Context, content string) (bool, error) {
	if !p.gate.CanPerformAction(domain.ActionPostTweet) {
		return false, domain.ErrPermissionDenied
	}

	parts := domain.SplitIntoTweets(content, domain.TweetLimit)
	if len(parts) == 0 {
		return false, nil
	}

	replyTo := ""
	for _, part := range parts {
		posted, err := p.social.PostTweet(ctx, part, replyTo)
		if err != nil {
			return false, err
		}
		replyTo = posted.ID
	}
	p.gate.RecordAction(domain.ActionPostTweet)
	return true, nil
}
