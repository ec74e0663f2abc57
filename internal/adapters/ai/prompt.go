package ai

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"shinz/internal/domain"
)

// LoadCharacter loads a persona from a YAML file. An empty path returns the
// compiled-in default.
func LoadCharacter(filePath string) (domain.Character, error) {
	if filePath == "" {
		return domain.DefaultCharacter, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return domain.Character{}, fmt.Errorf("read character: %w", err)
	}

	var c domain.Character
	if err := yaml.Unmarshal(data, &c); err != nil {
		return domain.Character{}, fmt.Errorf("parse character: %w", err)
	}
	if c.Name == "" {
		return domain.Character{}, fmt.Errorf("character file %s has no name", filePath)
	}
	return c, nil
}

// systemPrompt renders the persona as the system message.
func systemPrompt(c domain.Character) string {
	return strings.Join([]string{
		fmt.Sprintf("%s: %s", c.Name, c.Bio),
		"Goals: " + strings.Join(c.Goals, "; "),
		"Style: " + strings.Join(c.Style, "; "),
		"Topics: " + strings.Join(c.Topics, "; "),
	}, "\n")
}

// userPrompt renders the instruction-specific user message.
func userPrompt(req domain.GenerateRequest) string {
	var lines []string
	switch req.Instruction {
	case domain.InstructionReply:
		lines = []string{
			"You are replying to a mention on Twitter/X.",
		}
		if req.MentionText != "" {
			lines = append(lines, "Mention: "+req.MentionText)
		}
		if req.Context != "" {
			lines = append(lines, "Context: "+req.Context)
		}
		lines = append(lines, "Keep it under 280 characters, include @user if referenced, and be helpful.")
	case domain.InstructionAnalysis:
		lines = []string{
			"Write a single tweet with an opinionated but measured analysis about Shape ecosystem.",
		}
		if len(req.TopicHints) > 0 {
			lines = append(lines, "Hints: "+strings.Join(req.TopicHints, ", "))
		}
		if req.Context != "" {
			lines = append(lines, "Context: "+req.Context)
		}
		lines = append(lines, "Keep it under 280 characters. Avoid hype, include 1 relevant hashtag max.")
	default: // hourly
		lines = []string{
			"Compose a concise hourly update about a Shape project or insight.",
		}
		if len(req.TopicHints) > 0 {
			lines = append(lines, "Hints: "+strings.Join(req.TopicHints, ", "))
		}
		if req.Context != "" {
			lines = append(lines, "Context: "+req.Context)
		}
		lines = append(lines, "Keep under 280 characters. Prefer clarity over emojis. No financial advice.")
	}
	return strings.Join(lines, "\n")
}
