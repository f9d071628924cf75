package resolver

import (
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
)

// DefaultIgnorePatterns are skipped by the registration fallback search.
// They hold generated or third-party assets that never declare modules.
var DefaultIgnorePatterns = []string{
	"node_modules/",
	"var/",
	"generated/",
	"pub/static/",
}

// ignoreRules wraps gitignore-style patterns evaluated relative to the
// project root. Directories whose name starts with a dot are always ignored.
type ignoreRules struct {
	matcher gitignore.GitIgnore
}

func newIgnoreRules(root string, patterns []string) *ignoreRules {
	if len(patterns) == 0 {
		return &ignoreRules{}
	}

	content := strings.Join(patterns, "\n") + "\n"
	return &ignoreRules{
		matcher: gitignore.New(strings.NewReader(content), root, nil),
	}
}

// Ignored reports whether rel (slash separated, relative to the root)
// should be skipped.
func (r *ignoreRules) Ignored(rel string, isDir bool) bool {
	if rel == "." || rel == "" {
		return false
	}
	if isDir && strings.HasPrefix(filepath.Base(rel), ".") {
		return true
	}
	if r.matcher == nil {
		return false
	}
	if match := r.matcher.Relative(rel, isDir); match != nil && match.Ignore() {
		return true
	}
	return false
}
