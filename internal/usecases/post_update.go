package usecases

import (
	"context"

	"shinz/pkg/log"
)

// Canned update bodies for the scheduled gasback and NFT tasks.
const (
	GasbackUpdateContent = "Gasback Rewards Update\n\nLatest rewards are live on Shape Network! Stack those points and earn rewards.\n\nCheck your rewards at seishinz.xyz\n\n#ShapeNetwork #Gasback"
	NFTUpdateContent     = "NFT Collection Update\n\nLatest floor movements and volume spikes on Shape Network!\n\nDiscover trending collections at seishinz.xyz\n\n#NFTs #ShapeNetwork"
)

// PostUpdateUseCase posts a fixed update tweet.
type PostUpdateUseCase struct {
	social  SocialClient
	content string
}

// NewPostUpdateUseCase creates a runner for one canned update.
func NewPostUpdateUseCase(social SocialClient, content string) *PostUpdateUseCase {
	return &PostUpdateUseCase{social: social, content: content}
}

// Execute posts the update.
func (uc *PostUpdateUseCase) Execute(ctx context.Context) (string, error) {
	posted, err := uc.social.PostTweet(ctx, uc.content, "")
	if err != nil {
		return "", err
	}
	log.GlobalInfoCtx(ctx, "update posted", "tweet_id", posted.ID)
	return StatusTweeted, nil
}
