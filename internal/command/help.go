package command

import "strings"

// HelpText enumerates the supported command forms.
func HelpText() string {
	return strings.Join([]string{
		"Commands:",
		"- tweet: <text>               # post exactly this tweet",
		"- ai tweet: <hint/context>    # AI crafts tweet using persona",
		"- analysis                    # AI crafts analysis tweet with Shape insights",
		"- help                        # show this help",
		"",
		"Add dryRun=true to preview without posting.",
	}, "\n")
}
