package github

import (
	"strconv"
	"strings"

	"github.com/forgemycode/forgemycode/internal/model"
)

// Difficulty keyword tables, scanned in priority order: any beginner match
// wins even when an advanced keyword also matches the same label set.
// Matching is case-insensitive substring containment against label names.
var (
	beginnerKeywords = []string{
		"good first issue",
		"beginner",
		"easy",
		"starter",
		"good-first-issue",
		"first-timers-only",
		"help wanted",
		"up-for-grabs",
		"beginner friendly",
	}
	advancedKeywords = []string{
		"bug",
		"performance",
		"security",
		"complex",
		"advanced",
		"hard",
	}
)

const (
	maxDescriptionLen = 300
	maxTagLabels      = 5
	maxTagLabelLen    = 20

	noDescription = "No description provided"
)

// NormalizeOptions adjusts normalization per search request.
type NormalizeOptions struct {
	// DifficultyFilter is the caller's explicit difficulty. Any value other
	// than "" or "all" overrides the label-inferred difficulty.
	DifficultyFilter string

	// Language tags tasks with a known language. When empty, the language
	// is looked up from the seed-repository table by repository name.
	Language string
}

// Normalize maps one raw search item to a Task. The second return value is
// false when the item should be skipped: pull requests (the search endpoint
// conflates them with issues) and items without a usable identity.
//
// Pure transformation — no side effects, no error conditions beyond the
// skip signal.
func Normalize(issue RawIssue, opts NormalizeOptions) (*model.Task, bool) {
	if issue.PullRequest != nil {
		return nil, false
	}
	if issue.ID == 0 || issue.Title == "" {
		return nil, false
	}

	repository := repositoryFromURL(issue.RepositoryURL)

	language := opts.Language
	if language == "" {
		language = seedLanguage(repository)
	}

	difficulty := inferDifficulty(issue.Labels)
	if f := opts.DifficultyFilter; f != "" && f != "all" {
		difficulty = f
	}

	labels := make([]model.Label, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		labels = append(labels, model.Label{Name: l.Name, Color: l.Color})
	}

	return &model.Task{
		GithubIssueID:  strconv.FormatInt(issue.ID, 10),
		Title:          issue.Title,
		Description:    normalizeDescription(issue.Body),
		Repository:     repository,
		URL:            issue.HTMLURL,
		Labels:         labels,
		Difficulty:     difficulty,
		EstimatedHours: estimateHours(difficulty),
		Tags:           buildTags(issue.Labels, difficulty, language),
		Language:       language,
		CreatedAt:      issue.CreatedAt,
	}, true
}

// NormalizeAll maps a page of raw items, dropping pull requests and
// malformed entries.
func NormalizeAll(issues []RawIssue, opts NormalizeOptions) []model.Task {
	tasks := make([]model.Task, 0, len(issues))
	for _, issue := range issues {
		if task, ok := Normalize(issue, opts); ok {
			tasks = append(tasks, *task)
		}
	}
	return tasks
}

// DifficultyOverride maps a caller-supplied difficulty filter (a label
// value like "good first issue", or a level name) to the difficulty level
// that should override label inference. An empty return means "no
// override" — the inferred value stands.
func DifficultyOverride(filter string) string {
	switch filter {
	case "good first issue", "good-first-issue":
		return model.DifficultyBeginner
	case model.DifficultyBeginner, model.DifficultyIntermediate, model.DifficultyAdvanced:
		return filter
	default:
		return ""
	}
}

// repositoryFromURL derives "owner/name" from a repository API URL like
// https://api.github.com/repos/facebook/react — the last two path segments.
func repositoryFromURL(repoURL string) string {
	parts := strings.Split(strings.TrimSuffix(repoURL, "/"), "/")
	if len(parts) < 2 {
		return "unknown/unknown"
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1]
}

// inferDifficulty classifies an issue from its labels. Beginner keywords
// take priority over advanced ones; no match at all means intermediate.
func inferDifficulty(labels []RawLabel) string {
	for _, label := range labels {
		name := strings.ToLower(label.Name)
		for _, kw := range beginnerKeywords {
			if strings.Contains(name, kw) {
				return model.DifficultyBeginner
			}
		}
	}
	for _, label := range labels {
		name := strings.ToLower(label.Name)
		for _, kw := range advancedKeywords {
			if strings.Contains(name, kw) {
				return model.DifficultyAdvanced
			}
		}
	}
	return model.DifficultyIntermediate
}

// normalizeDescription collapses all line-break variants to single spaces
// and truncates to maxDescriptionLen runes plus an ellipsis marker. An
// absent body becomes a fixed placeholder.
func normalizeDescription(body string) string {
	if body == "" {
		return noDescription
	}

	replacer := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")
	desc := strings.TrimSpace(replacer.Replace(body))
	if desc == "" {
		return noDescription
	}

	runes := []rune(desc)
	if len(runes) > maxDescriptionLen {
		return string(runes[:maxDescriptionLen]) + "..."
	}
	return desc
}

// buildTags takes up to five short label names, then appends the computed
// difficulty and language when not already present. "Unknown" languages are
// not worth a tag.
func buildTags(labels []RawLabel, difficulty, language string) []string {
	tags := make([]string, 0, maxTagLabels+2)
	for _, label := range labels {
		if len(label.Name) >= maxTagLabelLen {
			continue
		}
		tags = append(tags, label.Name)
		if len(tags) == maxTagLabels {
			break
		}
	}

	if !containsTag(tags, difficulty) {
		tags = append(tags, difficulty)
	}
	if language != "" && language != "Unknown" && !containsTag(tags, language) {
		tags = append(tags, language)
	}
	return tags
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// estimateHours is a coarse fixed bucket keyed off difficulty, not a model.
func estimateHours(difficulty string) string {
	switch difficulty {
	case model.DifficultyBeginner:
		return "1-2 hours"
	case model.DifficultyAdvanced:
		return "5+ hours"
	default:
		return "2-5 hours"
	}
}
