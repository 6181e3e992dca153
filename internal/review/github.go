package review

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/Johannes-Berggren/kiki/internal/models"
)

// GitHubCLI looks up pull requests through the gh CLI, which carries its own
// authentication.
type GitHubCLI struct {
	dir string
}

func NewGitHubCLI(repoDir string) *GitHubCLI {
	return &GitHubCLI{dir: repoDir}
}

type ghPR struct {
	Number   int    `json:"number"`
	Title    string `json:"title"`
	State    string `json:"state"`
	URL      string `json:"url"`
	MergedAt string `json:"mergedAt"`
}

func (g *GitHubCLI) ResolveReviewRequest(ctx context.Context, branch string) (*models.PullRequest, error) {
	out, err := runCommand(ctx, g.dir, "gh", "pr", "list",
		"--head", branch,
		"--state", "all",
		"--json", "number,title,state,url,mergedAt",
		"--limit", "1")
	if err != nil {
		return nil, err
	}

	var prs []ghPR
	if err := json.Unmarshal(out, &prs); err != nil {
		return nil, errors.Wrap(err, "decode gh pr list output")
	}
	if len(prs) == 0 {
		return nil, nil
	}

	pr := prs[0]
	return &models.PullRequest{
		Number:   pr.Number,
		Title:    strings.TrimSpace(pr.Title),
		State:    normalizeGitHubState(pr.State, pr.MergedAt),
		URL:      strings.TrimSpace(pr.URL),
		Platform: models.PlatformGitHub,
	}, nil
}

func normalizeGitHubState(state, mergedAt string) models.PRState {
	if strings.TrimSpace(mergedAt) != "" || strings.EqualFold(state, "merged") {
		return models.PRStateMerged
	}
	if strings.EqualFold(state, "open") {
		return models.PRStateOpen
	}
	return models.PRStateClosed
}
