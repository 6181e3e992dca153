package models

import (
	"slices"
	"time"
)

// ProtectedBranches are exempt from deletion and always scored as healthy.
var ProtectedBranches = []string{"main", "master", "develop", "development"}

// IsProtectedBranch reports whether name is one of the well-known integration branches.
func IsProtectedBranch(name string) bool {
	return slices.Contains(ProtectedBranches, name)
}

type PRState string

const (
	PRStateOpen   PRState = "open"
	PRStateClosed PRState = "closed"
	PRStateMerged PRState = "merged"
)

type Platform string

const (
	PlatformGitHub    Platform = "github"
	PlatformGitLab    Platform = "gitlab"
	PlatformBitbucket Platform = "bitbucket"
)

// PullRequest is the review request attached to a branch by an external lookup.
type PullRequest struct {
	Number   int      `json:"number"`
	Title    string   `json:"title"`
	State    PRState  `json:"state"`
	URL      string   `json:"url"`
	Platform Platform `json:"platform"`
}

// Comparison holds a branch's position relative to one integration ref
// (e.g. origin/develop). It is only present when that ref exists.
type Comparison struct {
	Ref      string     `json:"ref"`
	Ahead    int        `json:"ahead"`
	Behind   int        `json:"behind"`
	Merged   bool       `json:"merged"`
	MergedAt *time.Time `json:"mergedAt,omitempty"` // nil unless Merged
}

type BranchStatus struct {
	Name        string       `json:"name"`
	Ahead       int          `json:"ahead"`
	Behind      int          `json:"behind"`
	NeedsRebase bool         `json:"needsRebase"`
	IsActive    bool         `json:"isActive"`
	Develop     *Comparison  `json:"develop,omitempty"`
	Main        *Comparison  `json:"main,omitempty"`
	PR          *PullRequest `json:"pr,omitempty"`
}

// BranchReport is one analysis pass: the statuses and the base they were
// counted against.
type BranchReport struct {
	Base     string         `json:"base"`
	Branches []BranchStatus `json:"branches"`
}

func (b BranchStatus) MergedIntoDevelop() bool {
	return b.Develop != nil && b.Develop.Merged
}

func (b BranchStatus) MergedIntoMain() bool {
	return b.Main != nil && b.Main.Merged
}

// Merged reports whether the branch is merged into develop or main.
func (b BranchStatus) Merged() bool {
	return b.MergedIntoDevelop() || b.MergedIntoMain()
}

// AheadDevelop returns the develop-relative ahead count, falling back to the
// base-relative count when no develop ref exists.
func (b BranchStatus) AheadDevelop() int {
	if b.Develop != nil {
		return b.Develop.Ahead
	}
	return b.Ahead
}

// BehindDevelop is the behind counterpart of AheadDevelop.
func (b BranchStatus) BehindDevelop() int {
	if b.Develop != nil {
		return b.Develop.Behind
	}
	return b.Behind
}
