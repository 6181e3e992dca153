package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	ReasonActive    = "currently checked out"
	ReasonProtected = "protected branch"
)

// MergedBranchCandidate is a merged branch considered for batch deletion.
type MergedBranchCandidate struct {
	Name              string     `json:"name"`
	MergedIntoDevelop bool       `json:"mergedIntoDevelop"`
	MergedIntoMain    bool       `json:"mergedIntoMain"`
	MergedAtDevelop   *time.Time `json:"mergedAtDevelop,omitempty"`
	MergedAtMain      *time.Time `json:"mergedAtMain,omitempty"`
	IsActive          bool       `json:"isActive"`
	IsProtected       bool       `json:"isProtected"`
	Reason            string     `json:"reason,omitempty"`
}

// Describe renders the candidate for a deletion listing, e.g.
// "feature/x (merged into develop and main) [3 days ago]".
func (c MergedBranchCandidate) Describe(now time.Time) string {
	parts := []string{c.Name}

	var targets []string
	if c.MergedIntoDevelop {
		targets = append(targets, "develop")
	}
	if c.MergedIntoMain {
		targets = append(targets, "main")
	}
	if len(targets) > 0 {
		parts = append(parts, fmt.Sprintf("(merged into %s)", strings.Join(targets, " and ")))
	}

	at := c.MergedAtDevelop
	if at == nil {
		at = c.MergedAtMain
	}
	if at != nil {
		parts = append(parts, fmt.Sprintf("[%s]", humanize.RelTime(*at, now, "ago", "from now")))
	}

	return strings.Join(parts, " ")
}

type BatchDeletePreview struct {
	Deletable           []MergedBranchCandidate `json:"deletable"`
	Protected           []MergedBranchCandidate `json:"protected"`
	Active              []MergedBranchCandidate `json:"active"`
	TotalMergedBranches int                     `json:"totalMergedBranches"`
}

// DeletableNames lists the names of the deletable partition.
func (p BatchDeletePreview) DeletableNames() []string {
	names := make([]string, 0, len(p.Deletable))
	for _, c := range p.Deletable {
		names = append(names, c.Name)
	}
	return names
}

type FailedDeletion struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// BatchDeleteResult reports every item of a batch delete; a partial failure
// is expressed here rather than as an error.
type BatchDeleteResult struct {
	Succeeded []string         `json:"succeeded"`
	Failed    []FailedDeletion `json:"failed"`
}
