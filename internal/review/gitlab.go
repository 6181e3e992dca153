package review

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/Johannes-Berggren/kiki/internal/models"
)

// GitLabCLI looks up merge requests through the glab CLI.
type GitLabCLI struct {
	dir string
}

func NewGitLabCLI(repoDir string) *GitLabCLI {
	return &GitLabCLI{dir: repoDir}
}

type glabMR struct {
	IID    int    `json:"iid"`
	Title  string `json:"title"`
	State  string `json:"state"`
	WebURL string `json:"web_url"`
}

func (g *GitLabCLI) ResolveReviewRequest(ctx context.Context, branch string) (*models.PullRequest, error) {
	out, err := runCommand(ctx, g.dir, "glab", "mr", "list",
		"--source-branch", branch,
		"--all",
		"--output", "json")
	if err != nil {
		return nil, err
	}

	var mrs []glabMR
	if err := json.Unmarshal(out, &mrs); err != nil {
		return nil, errors.Wrap(err, "decode glab mr list output")
	}
	if len(mrs) == 0 {
		return nil, nil
	}

	mr := mrs[0]
	return &models.PullRequest{
		Number:   mr.IID,
		Title:    strings.TrimSpace(mr.Title),
		State:    normalizeGitLabState(mr.State),
		URL:      strings.TrimSpace(mr.WebURL),
		Platform: models.PlatformGitLab,
	}, nil
}

// glab reports "opened", "merged", "closed" and "locked".
func normalizeGitLabState(state string) models.PRState {
	switch strings.ToLower(strings.TrimSpace(state)) {
	case "opened", "open":
		return models.PRStateOpen
	case "merged":
		return models.PRStateMerged
	default:
		return models.PRStateClosed
	}
}
