// Package health scores a branch status on a 0-100 scale.
//
// Score breakdown:
//   - 40 points: drift (not behind develop)
//   - 25 points: recency, estimated from drift
//   - 20 points: review request state
//   - 15 points: no rebase needed
//
// Protected branches always score 100. Merged branches that are not checked
// out are capped at 70 so they surface as cleanup candidates.
package health

import (
	"fmt"

	"github.com/Johannes-Berggren/kiki/internal/models"
)

type Level string

const (
	Healthy   Level = "healthy"
	Attention Level = "attention"
	Critical  Level = "critical"
)

const (
	HealthyThreshold   = 80
	AttentionThreshold = 50
	mergedScoreCap     = 70
)

// Severity is the pass/warning/error semantic a presentation layer maps to an icon.
type Severity string

const (
	SeverityPass    Severity = "pass"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// LevelForScore classifies a score.
func LevelForScore(score int) Level {
	switch {
	case score >= HealthyThreshold:
		return Healthy
	case score >= AttentionThreshold:
		return Attention
	default:
		return Critical
	}
}

func (l Level) Severity() Severity {
	switch l {
	case Healthy:
		return SeverityPass
	case Attention:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// Title is the human label used in tooltips and reports.
func (l Level) Title() string {
	switch l {
	case Healthy:
		return "Healthy"
	case Attention:
		return "Needs Attention"
	default:
		return "Critical"
	}
}

// rank orders levels by urgency: critical first.
func (l Level) rank() int {
	switch l {
	case Critical:
		return 0
	case Attention:
		return 1
	default:
		return 2
	}
}

type Health struct {
	Score  int      `json:"score"`
	Level  Level    `json:"level"`
	Issues []string `json:"issues"`
}

// Calculate scores a branch. It is pure and deterministic.
func Calculate(b models.BranchStatus) Health {
	var issues []string
	behind := b.BehindDevelop()
	ahead := b.AheadDevelop()
	merged := b.Merged()

	score := driftPoints(behind, &issues) +
		recencyPoints(ahead, behind, merged, &issues) +
		reviewPoints(b.PR, ahead, merged, &issues) +
		rebasePoints(b.NeedsRebase, behind, &issues)

	if models.IsProtectedBranch(b.Name) {
		return Health{Score: 100, Level: Healthy, Issues: []string{}}
	}

	if merged && !b.IsActive {
		score = min(score, mergedScoreCap)
		issues = append(issues, "ready to delete (merged)")
	}

	score = max(0, min(score, 100))
	if issues == nil {
		issues = []string{}
	}
	return Health{Score: score, Level: LevelForScore(score), Issues: issues}
}

func driftPoints(behind int, issues *[]string) int {
	switch {
	case behind == 0:
		return 40
	case behind <= 5:
		*issues = append(*issues, fmt.Sprintf("%d %s behind develop", behind, commits(behind)))
		return 30
	case behind <= 20:
		*issues = append(*issues, fmt.Sprintf("%d commits behind develop", behind))
		return 15
	default:
		*issues = append(*issues, fmt.Sprintf("%d commits behind develop (stale)", behind))
		return 0
	}
}

func recencyPoints(ahead, behind int, merged bool, issues *[]string) int {
	switch {
	case merged:
		return 25
	case ahead == 0 && behind == 0:
		return 25
	case ahead >= 1 && ahead <= 10:
		return 25
	case ahead > 10:
		if behind > 10 {
			*issues = append(*issues, "large divergence from develop")
		}
		return 20
	case behind > 20:
		*issues = append(*issues, "no recent activity")
		return 5
	default:
		return 15
	}
}

func reviewPoints(pr *models.PullRequest, ahead int, merged bool, issues *[]string) int {
	if pr != nil {
		switch pr.State {
		case models.PRStateOpen:
			return 20
		case models.PRStateMerged:
			return 15
		case models.PRStateClosed:
			*issues = append(*issues, "PR closed without merge")
			return 5
		}
	}

	switch {
	case merged:
		return 15
	case ahead > 0:
		if ahead >= 5 {
			*issues = append(*issues, "no PR created yet")
		}
		return 10
	default:
		return 10
	}
}

func rebasePoints(needsRebase bool, behind int, issues *[]string) int {
	switch {
	case needsRebase:
		*issues = append(*issues, "needs rebase (diverged)")
		return 0
	case behind > 0:
		return 5
	default:
		return 15
	}
}

func commits(n int) string {
	if n == 1 {
		return "commit"
	}
	return "commits"
}
