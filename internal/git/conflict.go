package git

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/Johannes-Berggren/kiki/internal/models"
)

const (
	summaryClean       = "Clean rebase (0 conflicts expected)"
	summaryUnavailable = "Unable to preview conflicts (rebase may still work)"
)

var conflictMarkers = []string{"<<<<<<<", "=======", ">>>>>>>"}

var (
	// <<<<<<< <label>:<path>
	markerPathRe = regexp.MustCompile(`<<<<<<< .*?:(.*)`)
	// @@ -1,5 +1,5 @@ <path>
	hunkPathRe = regexp.MustCompile(`^@@ .* @@ (.*)`)
	//   our    100644 <hash> <path>
	stagePathRe = regexp.MustCompile(`^\s+(?:base|our|their)\s+\d+\s+[a-f0-9]+\s+(.+)$`)
)

// PreviewRebaseConflicts simulates merging branch with base through their
// merge-base without touching the working copy. It never fails: when the
// simulation cannot run, the preview looks clean and is marked Unavailable.
func (r *Repo) PreviewRebaseConflicts(ctx context.Context, branch, base string) models.ConflictPreview {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mergeBase, err := r.run(ctx, "merge-base", branch, base)
	if err == nil && mergeBase == "" {
		err = errors.Newf("no common ancestor between %s and %s", branch, base)
	}
	if err != nil {
		r.log.Warn("Conflict preview failed", zap.String("branch", branch), zap.String("base", base), zap.Error(err))
		return unavailablePreview()
	}

	output, err := r.run(ctx, "merge-tree", mergeBase, base, branch)
	if err != nil {
		r.log.Warn("Conflict preview failed", zap.String("branch", branch), zap.String("base", base), zap.Error(err))
		return unavailablePreview()
	}

	return ParseMergeTree(output)
}

func unavailablePreview() models.ConflictPreview {
	return models.ConflictPreview{
		ConflictedFiles: []string{},
		Summary:         summaryUnavailable,
		Unavailable:     true,
	}
}

// ParseMergeTree classifies the output of a three-way merge-tree simulation.
func ParseMergeTree(output string) models.ConflictPreview {
	if !hasConflictMarkers(output) {
		return models.ConflictPreview{
			ConflictedFiles: []string{},
			Summary:         summaryClean,
		}
	}

	files := extractConflictedFiles(output)
	return models.ConflictPreview{
		HasConflicts:    true,
		ConflictCount:   len(files),
		ConflictedFiles: files,
		Summary:         fmt.Sprintf("%d %s will have conflicts", len(files), plural(len(files), "file", "files")),
	}
}

func hasConflictMarkers(output string) bool {
	for _, marker := range conflictMarkers {
		if strings.Contains(output, marker) {
			return true
		}
	}
	return false
}

// extractConflictedFiles recovers paths from conflict-start markers, hunk
// headers and stage lines, in that order of precedence. When none can be
// recovered it returns a single descriptor counting the conflict sections.
func extractConflictedFiles(output string) []string {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		path = strings.TrimSpace(path)
		if path == "" || seen[path] {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.Contains(line, "<<<<<<<"):
			if m := markerPathRe.FindStringSubmatch(line); m != nil {
				add(m[1])
			}
		case strings.Contains(line, ">>>>>>>"):
			// end of a conflict section
		case strings.HasPrefix(line, "@@"):
			if m := hunkPathRe.FindStringSubmatch(line); m != nil {
				add(m[1])
			}
		default:
			if m := stagePathRe.FindStringSubmatch(line); m != nil {
				add(m[1])
			}
		}
	}

	if len(files) == 0 {
		sections := countConflictSections(output)
		return []string{fmt.Sprintf("%d conflict %s detected", sections, plural(sections, "section", "sections"))}
	}

	return files
}

// countConflictSections counts lines opening a conflict, ignoring the diff
// prefix merge-tree puts in front of content lines.
func countConflictSections(output string) int {
	n := 0
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(strings.TrimLeft(line, "+- "), "<<<<<<<") {
			n++
		}
	}
	return n
}

// WouldRequireForcePush reports whether rebasing branch would rewrite commits
// already tracked by its upstream. Branches without an upstream, and any
// inconclusive check, report false.
func (r *Repo) WouldRequireForcePush(ctx context.Context, branch string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	upstream, err := r.run(ctx, "rev-parse", "--abbrev-ref", branch+"@{upstream}")
	if err != nil || upstream == "" {
		return false
	}

	output, err := r.run(ctx, "rev-list", "--count", upstream+".."+branch)
	if err != nil {
		r.log.Debug("Force-push check inconclusive", zap.String("branch", branch), zap.Error(err))
		return false
	}
	count, err := strconv.Atoi(output)
	if err != nil {
		return false
	}
	return count > 0
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
