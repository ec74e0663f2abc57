// Package command turns one line of free text into a structured bot action.
package command

import (
	"context"
	"strings"

	"shinz/internal/domain"
)

// Generator produces tweet content from a prompt request.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerateRequest) (string, error)
}

// Timeline fetches recent tweets from the bot's own account.
type Timeline interface {
	FetchUserTimeline(ctx context.Context, screenName string, count int) ([]string, error)
}

// Insights fetches topic hints from the Shape data collaborator.
type Insights interface {
	FetchInsights(ctx context.Context, hints []string) ([]string, error)
}

// Poster publishes a finished tweet. Dry run is a wiring decision: pass a
// live poster to publish, a preview poster to suppress the external call.
// The returned bool reports whether the tweet actually went out.
type Poster interface {
	Post(ctx context.Context, content string) (posted bool, err error)
}

// PreviewPoster is the no-op Poster used for dry runs.
type PreviewPoster struct{}

func (PreviewPoster) Post(ctx context.Context, content string) (bool, error) { return false, nil }

// Result is the outcome of one dispatched command.
type Result struct {
	Action  string `json:"action"`
	Content string `json:"content,omitempty"`
	Posted  bool   `json:"posted"`
	Err     string `json:"error,omitempty"`
}

const (
	ActionHelp     = "help"
	ActionTweet    = "tweet"
	ActionAITweet  = "ai-tweet"
	ActionAnalysis = "analysis"
)

const (
	timelineForHints    = 5
	timelineForAnalysis = 8
)

// Dispatcher matches command text against an ordered rule table and runs
// the first matching rule. It does no permission checking; callers that
// need gating wrap the Poster they inject.
type Dispatcher struct {
	generator Generator
	timeline  Timeline
	insights  Insights
	handle    string

	rules []rule
}

// rule pairs an input predicate with its handler. First match wins.
type rule struct {
	matches func(lower string) bool
	run     func(ctx context.Context, raw string, poster Poster) (Result, error)
}

// NewDispatcher creates a dispatcher around the given collaborators.
// handle is the bot's own screen name, used for timeline context.
func NewDispatcher(generator Generator, timeline Timeline, insights Insights, handle string) *Dispatcher {
	d := &Dispatcher{
		generator: generator,
		timeline:  timeline,
		insights:  insights,
		handle:    handle,
	}
	d.rules = []rule{
		{
			matches: func(lower string) bool { return lower == "help" || lower == "/help" },
			run:     d.runHelp,
		},
		{
			matches: func(lower string) bool { return strings.HasPrefix(lower, "tweet:") },
			run:     d.runTweet,
		},
		{
			matches: func(lower string) bool { return strings.HasPrefix(lower, "ai tweet:") },
			run:     d.runAITweet,
		},
		{
			matches: func(lower string) bool { return strings.HasPrefix(lower, "analysis") },
			run:     d.runAnalysis,
		},
		{
			// Fallback: the whole input becomes an AI tweet hint.
			matches: func(string) bool { return true },
			run:     d.runFallback,
		},
	}
	return d
}

// Dispatch trims the input, matches it against the rule table in order, and
// runs the winning rule with the given poster. Collaborator errors propagate
// unwrapped; validation problems come back inside the Result.
func (d *Dispatcher) Dispatch(ctx context.Context, raw string, poster Poster) (Result, error) {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)

	for _, r := range d.rules {
		if r.matches(lower) {
			return r.run(ctx, raw, poster)
		}
	}
	// Unreachable: the fallback rule matches everything.
	return Result{}, nil
}

func (d *Dispatcher) runHelp(ctx context.Context, raw string, poster Poster) (Result, error) {
	return Result{Action: ActionHelp, Content: HelpText()}, nil
}

// runTweet posts the text after the first colon verbatim.
func (d *Dispatcher) runTweet(ctx context.Context, raw string, poster Poster) (Result, error) {
	content := afterFirstColon(raw)
	if content == "" {
		return Result{Action: ActionTweet, Err: "empty tweet"}, nil
	}
	return d.post(ctx, ActionTweet, content, poster)
}

// runAITweet generates content from the hint after the colon plus recent
// timeline context, then posts it.
func (d *Dispatcher) runAITweet(ctx context.Context, raw string, poster Poster) (Result, error) {
	return d.generateAndPost(ctx, afterFirstColon(raw), poster)
}

// runFallback treats the entire input as an AI tweet hint.
func (d *Dispatcher) runFallback(ctx context.Context, raw string, poster Poster) (Result, error) {
	return d.generateAndPost(ctx, raw, poster)
}

func (d *Dispatcher) generateAndPost(ctx context.Context, hint string, poster Poster) (Result, error) {
	recent, err := d.timeline.FetchUserTimeline(ctx, d.handle, timelineForHints)
	if err != nil {
		return Result{}, err
	}

	lines := make([]string, 0, len(recent)+1)
	if hint != "" {
		lines = append(lines, hint)
	}
	for _, t := range recent {
		if t != "" {
			lines = append(lines, "Prev: "+t)
		}
	}

	content, err := d.generator.Generate(ctx, domain.GenerateRequest{
		Instruction: domain.InstructionHourly,
		Context:     strings.Join(lines, "\n"),
	})
	if err != nil {
		return Result{}, err
	}
	return d.post(ctx, ActionAITweet, content, poster)
}

// runAnalysis combines Shape insight hints with recent timeline context and
// posts an analysis tweet.
func (d *Dispatcher) runAnalysis(ctx context.Context, raw string, poster Poster) (Result, error) {
	hints, err := d.insights.FetchInsights(ctx, nil)
	if err != nil {
		return Result{}, err
	}
	recent, err := d.timeline.FetchUserTimeline(ctx, d.handle, timelineForAnalysis)
	if err != nil {
		return Result{}, err
	}

	lines := make([]string, 0, len(recent))
	for _, t := range recent {
		lines = append(lines, "- "+t)
	}

	content, err := d.generator.Generate(ctx, domain.GenerateRequest{
		Instruction: domain.InstructionAnalysis,
		TopicHints:  hints,
		Context:     strings.Join(lines, "\n"),
	})
	if err != nil {
		return Result{}, err
	}
	return d.post(ctx, ActionAnalysis, content, poster)
}

func (d *Dispatcher) post(ctx context.Context, action, content string, poster Poster) (Result, error) {
	posted, err := poster.Post(ctx, content)
	if err != nil {
		return Result{}, err
	}
	return Result{Action: action, Content: content, Posted: posted}, nil
}

// afterFirstColon returns the trimmed text after the first colon in raw,
// preserving the original case of the content.
func afterFirstColon(raw string) string {
	idx := strings.Index(raw, ":")
	if idx < 0 {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(raw[idx+1:])
}
