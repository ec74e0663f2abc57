package usecases

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"shinz/internal/domain"
	"shinz/pkg/log"
)

const storeKeyLastGMDate = "gm:last-date"

// gmTemplates are the rotating morning greetings.
var gmTemplates = []string{
	"GM Shapers @ShapeL2! Ready to hunt some NFT alpha today? Let's find those rare gems.\n\nCheck out seishinz.xyz for the latest drops!",
	"GM @ShapeL2 Shapers! Another beautiful day to stack and collect. What's your alpha today?\n\nDiscover more at seishinz.xyz",
	"GM Shapers @ShapeL2! Time to wake up and smell the NFTs. Ready for some epic finds?\n\nExplore seishinz.xyz for exclusive collections!",
	"GM @ShapeL2! Good morning, alpha hunters! Let's make today legendary with some sick NFT grabs.\n\nVisit seishinz.xyz for the freshest drops!",
	"GM Shapers @ShapeL2! Rise and shine, it's NFT hunting time. Who's ready to find the next big thing?\n\nCheck seishinz.xyz for the latest!",
}

// PostGMUseCase posts the daily GM tweet, at most once per calendar day.
type PostGMUseCase struct {
	social SocialClient
	store  StateStore
	now    func() time.Time
	pick   func(n int) int
}

// NewPostGMUseCase creates the GM tweet runner.
func NewPostGMUseCase(social SocialClient, store StateStore) *PostGMUseCase {
	return &PostGMUseCase{
		social: social,
		store:  store,
		now:    time.Now,
		pick:   rand.Intn,
	}
}

// Execute posts a random GM template unless one already went out today.
// The dedupe date is stored only after a confirmed post.
func (uc *PostGMUseCase) Execute(ctx context.Context) (string, error) {
	today := uc.now().Format("2006-01-02")

	last, err := uc.store.Get(ctx, storeKeyLastGMDate)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}
	if last == today {
		return StatusAlreadyPosted, nil
	}

	content := gmTemplates[uc.pick(len(gmTemplates))]
	posted, err := uc.social.PostTweet(ctx, content, "")
	if err != nil {
		return "", err
	}
	if err := uc.store.Set(ctx, storeKeyLastGMDate, today); err != nil {
		return "", err
	}

	log.GlobalInfoCtx(ctx, "gm tweet posted", "tweet_id", posted.ID)
	return StatusTweeted, nil
}
