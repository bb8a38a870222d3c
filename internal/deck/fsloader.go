package deck

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// markdownFiles returns the Markdown files below root as slash-separated
// relative paths, ordered case-insensitively with files before directories
// at each level.
func markdownFiles(root string) ([]string, error) {
	var files []string
	var walk func(rel string) error
	walk = func(rel string) error {
		entries, err := os.ReadDir(abs(root, rel))
		if err != nil {
			return err
		}
		sort.Slice(entries, func(i, j int) bool {
			ei, ej := entries[i], entries[j]
			if ei.IsDir() != ej.IsDir() {
				return !ei.IsDir()
			}
			return strings.ToLower(ei.Name()) < strings.ToLower(ej.Name())
		})
		for _, entry := range entries {
			name := entry.Name()
			childPath := join(rel, name)
			if entry.IsDir() {
				if shouldSkipDir(name) {
					continue
				}
				if err := walk(childPath); err != nil {
					return err
				}
				continue
			}
			if isMarkdown(name) {
				files = append(files, childPath)
			}
		}
		return nil
	}
	if err := walk(""); err != nil {
		return nil, err
	}
	return files, nil
}

func abs(root, relPath string) string {
	if relPath == "" {
		return root
	}
	return filepath.Join(root, filepath.FromSlash(relPath))
}

func join(base, part string) string {
	if base == "" {
		return part
	}
	return base + "/" + part
}

// SkipDir reports whether a directory deck ignores the directory name, along
// with everything below it.
func SkipDir(name string) bool {
	return shouldSkipDir(name)
}

func shouldSkipDir(name string) bool {
	switch strings.ToLower(name) {
	case ".git", "node_modules", ".hg", ".svn", ".idea", ".vscode":
		return true
	default:
		return false
	}
}

// IsMarkdown reports whether name has a Markdown extension.
func IsMarkdown(name string) bool {
	return isMarkdown(name)
}

func isMarkdown(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".mdx")
}

// filterIncluded keeps the files matching any pattern. No patterns keeps
// everything.
func filterIncluded(files, patterns []string) []string {
	if len(patterns) == 0 {
		return files
	}
	var kept []string
	for _, rel := range files {
		if matchesAny(rel, patterns) {
			kept = append(kept, rel)
		}
	}
	return kept
}

func matchesAny(rel string, patterns []string) bool {
	base := path.Base(rel)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
