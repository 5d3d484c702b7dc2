package github

// SeedRepo is one of a fixed list of popular repositories queried when a
// free-text search needs a narrower target set. The language is carried
// alongside so the normalizer can tag tasks without an extra API call.
type SeedRepo struct {
	Owner    string
	Repo     string
	Language string
}

// FullName returns the "owner/name" form used in repo: qualifiers.
func (s SeedRepo) FullName() string {
	return s.Owner + "/" + s.Repo
}

// seedRepos lists repositories known to carry many beginner-friendly
// issues, in priority order. Only the first maxFanout entries are queried
// per search to stay well inside GitHub's search rate limits.
var seedRepos = []SeedRepo{
	{Owner: "facebook", Repo: "react", Language: "JavaScript"},
	{Owner: "vuejs", Repo: "vue", Language: "JavaScript"},
	{Owner: "microsoft", Repo: "vscode", Language: "TypeScript"},
	{Owner: "angular", Repo: "angular", Language: "TypeScript"},
	{Owner: "nodejs", Repo: "node", Language: "JavaScript"},
	{Owner: "expressjs", Repo: "express", Language: "JavaScript"},
	{Owner: "sveltejs", Repo: "svelte", Language: "JavaScript"},
	{Owner: "python", Repo: "cpython", Language: "Python"},
	{Owner: "django", Repo: "django", Language: "Python"},
	{Owner: "spring-projects", Repo: "spring-boot", Language: "Java"},
	{Owner: "microsoft", Repo: "TypeScript", Language: "TypeScript"},
	{Owner: "rust-lang", Repo: "rust", Language: "Rust"},
	{Owner: "golang", Repo: "go", Language: "Go"},
}

// maxFanout caps how many seed repositories one search queries in parallel.
const maxFanout = 3

// SeedRepos returns the full seed list (a copy, so callers can't mutate it).
func SeedRepos() []SeedRepo {
	out := make([]SeedRepo, len(seedRepos))
	copy(out, seedRepos)
	return out
}

// seedLanguage returns the known language for an "owner/name" repository,
// or "Unknown" when the repository is not in the seed list.
func seedLanguage(fullName string) string {
	for _, s := range seedRepos {
		if s.FullName() == fullName {
			return s.Language
		}
	}
	return "Unknown"
}
