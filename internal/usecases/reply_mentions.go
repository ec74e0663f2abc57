package usecases

import (
	"context"
	"errors"
	"fmt"

	"shinz/internal/domain"
	"shinz/pkg/log"
)

// ReplyMentionsUseCase replies to recent mentions of the bot's account.
// The last handled mention id lives in the state store so restarts do not
// re-reply to old mentions.
type ReplyMentionsUseCase struct {
	social    SocialClient
	generator Generator
	store     StateStore
	batch     int
}

// NewReplyMentionsUseCase creates the mention reply runner.
func NewReplyMentionsUseCase(social SocialClient, generator Generator, store StateStore) *ReplyMentionsUseCase {
	return &ReplyMentionsUseCase{
		social:    social,
		generator: generator,
		store:     store,
		batch:     5,
	}
}

// Execute fetches mentions newer than the stored watermark and replies to
// each. The watermark advances before replying, matching the original
// behavior: a failed reply is dropped, not retried on the next run.
func (uc *ReplyMentionsUseCase) Execute(ctx context.Context) (string, int, error) {
	sinceID, err := uc.store.Get(ctx, storeKeyLastMentionID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", 0, err
	}

	mentions, err := uc.social.FetchMentions(ctx, uc.batch, sinceID)
	if err != nil {
		return "", 0, err
	}
	if len(mentions) == 0 {
		return StatusNoMentions, 0, nil
	}

	// Mentions arrive newest first.
	if err := uc.store.Set(ctx, storeKeyLastMentionID, mentions[0].ID); err != nil {
		return "", 0, err
	}

	replied := 0
	for _, m := range mentions {
		text, err := uc.generator.Generate(ctx, domain.GenerateRequest{
			Instruction: domain.InstructionReply,
			MentionText: m.Text,
		})
		if err != nil {
			return "", replied, fmt.Errorf("reply to %s: %w", m.ID, err)
		}
		if text == "" {
			continue
		}
		if _, err := uc.social.PostTweet(ctx, text, m.ID); err != nil {
			return "", replied, fmt.Errorf("reply to %s: %w", m.ID, err)
		}
		replied++
		log.GlobalDebugCtx(ctx, "replied to mention", "mention_id", m.ID, "user", m.ScreenName)
	}

	return StatusReplied, replied, nil
}

const storeKeyLastMentionID = "mentions:last-id"
