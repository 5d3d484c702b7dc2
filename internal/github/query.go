package github

import (
	"fmt"
	"strings"
)

// Filter is the search filter tuple supplied by the UI. Zero values mean
// "no qualifier": an empty Difficulty adds no label clause (callers that
// want the default beginner search pass "good first issue" explicitly),
// and an empty Repo searches all of GitHub.
type Filter struct {
	Language   string // e.g. "Python" — language:X qualifier
	Difficulty string // label value, e.g. "good first issue"
	TaskType   string // second label value, e.g. "documentation"
	Text       string // free text matched against title and body
	Repo       string // "owner/name" — restricts to one repository
	NoAssignee bool   // only unassigned issues
}

// BuildQuery translates a Filter into the GitHub search grammar.
//
// The produced string is a space-joined sequence of qualifiers:
//
//	is:issue is:open [no:assignee] [repo:owner/name]
//	label:"<difficulty>" label:"<taskType>" [language:X] [<text> in:title,body]
//
// Order is stable so callers (and tests) can rely on the exact string.
// No validation of label or language spelling happens here: a misspelled
// value is syntactically valid and simply yields zero results upstream.
// Pure string construction, no side effects.
func BuildQuery(f Filter) string {
	parts := []string{"is:issue", "is:open"}

	if f.NoAssignee {
		parts = append(parts, "no:assignee")
	}
	if f.Repo != "" {
		parts = append(parts, "repo:"+f.Repo)
	}
	for _, label := range []string{f.Difficulty, f.TaskType} {
		if label = strings.TrimSpace(label); label != "" {
			parts = append(parts, fmt.Sprintf("label:%q", label))
		}
	}
	if f.Language != "" {
		parts = append(parts, "language:"+f.Language)
	}
	if text := strings.TrimSpace(f.Text); text != "" {
		parts = append(parts, text+" in:title,body")
	}

	return strings.Join(parts, " ")
}
