// Package access decides whether a requested bot action may proceed.
// It holds the grant table, the active grant, and the usage counters.
package access

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"shinz/internal/domain"
)

// DefaultGrants returns the built-in access code table.
// Keys are upper-cased codes; lookups are case-insensitive.
func DefaultGrants() map[string]domain.AccessGrant {
	all := domain.Capabilities{
		CanPostTweets:      true,
		CanReplyToTweets:   true,
		CanAutoReply:       true,
		CanCheckReplies:    true,
		CanGetData:         true,
		CanUseQuickActions: true,
		CanUseInterface:    true,
	}
	readOnly := domain.Capabilities{
		CanCheckReplies: true,
		CanGetData:      true,
		CanUseInterface: true,
	}

	return map[string]domain.AccessGrant{
		"SHINZ2024": {
			Code:                 "SHINZ2024",
			Kind:                 domain.KindHolder,
			Capabilities:         all,
			MaxTweetsPerDay:      50,
			MaxRepliesPerSession: 10,
			Description:          "NFT Holder Access - Full features including X posting",
		},
		"VIEWER2024": {
			Code:         "VIEWER2024",
			Kind:         domain.KindViewer,
			Capabilities: readOnly,
			Description:  "Viewer Access - Use interface but cannot post to X",
		},
		"GUEST2024": {
			Code:         "GUEST2024",
			Kind:         domain.KindGuest,
			Capabilities: readOnly,
			Description:  "Guest Access - Read-only features, no X posting",
		},
		// 999 is the effectively-unlimited sentinel carried over from the
		// hosted deployment's admin code.
		"ADMIN2024": {
			Code:                 "ADMIN2024",
			Kind:                 domain.KindAdmin,
			Capabilities:         all,
			MaxTweetsPerDay:      999,
			MaxRepliesPerSession: 999,
			Description:          "Admin Access - Unlimited features including X posting",
		},
	}
}

// grantFile represents the YAML structure of an access code file.
type grantFile struct {
	Grants []domain.AccessGrant `yaml:"grants"`
}

// LoadGrants loads the grant table from a YAML file. Codes are normalized
// to upper case. An empty path returns the built-in defaults.
func LoadGrants(filePath string) (map[string]domain.AccessGrant, error) {
	if filePath == "" {
		return DefaultGrants(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read access codes: %w", err)
	}

	var raw grantFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse access codes: %w", err)
	}
	if len(raw.Grants) == 0 {
		return nil, fmt.Errorf("access codes file %s defines no grants", filePath)
	}

	table := make(map[string]domain.AccessGrant, len(raw.Grants))
	for _, g := range raw.Grants {
		code := strings.ToUpper(strings.TrimSpace(g.Code))
		if code == "" {
			return nil, fmt.Errorf("access codes file %s contains a grant without a code", filePath)
		}
		g.Code = code
		table[code] = g
	}

	return table, nil
}

// codeList returns the table's codes in a stable order.
func codeList(table map[string]domain.AccessGrant) []string {
	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
