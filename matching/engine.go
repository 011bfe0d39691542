// Package matching contains the compatibility engine and the match action
// recorder. The engine is pure computation over profiles; all storage access
// happens behind the narrow interfaces its callers supply.
package matching

import (
	"context"
	"sort"

	"manzafir/models"
)

const (
	baseScore     = 50
	styleBonus    = 20
	interestBonus = 5
	budgetBonus   = 15
	maxScore      = 100
	maxCandidates = 5
	unknownName   = "Unknown"
	absentPicture = ""
)

// ScoredCandidate is an ephemeral ranking entry; it is never persisted.
type ScoredCandidate struct {
	UserID             string             `json:"user_id"`
	Name               string             `json:"name"`
	Picture            string             `json:"picture"`
	Profile            models.UserProfile `json:"profile"`
	CompatibilityScore int                `json:"compatibility_score"`
}

// DisplayLookup resolves a candidate's display name and picture. A failed
// lookup downgrades to placeholder values; it never fails the batch.
type DisplayLookup func(ctx context.Context, userID string) (models.DisplayInfo, error)

// Score computes the compatibility between two profiles: base 50, +20 for an
// identical travel style (case-sensitive), +5 per shared interest, +15 for an
// identical budget preference, clamped to [0, 100]. The formula cannot go
// below zero, the lower clamp is there so adversarial inputs can't either.
func Score(requester, candidate models.UserProfile) int {
	score := baseScore

	if candidate.TravelStyle == requester.TravelStyle {
		score += styleBonus
	}

	score += interestBonus * commonInterests(requester.Interests, candidate.Interests)

	if candidate.BudgetPreference == requester.BudgetPreference {
		score += budgetBonus
	}

	if score > maxScore {
		score = maxScore
	}
	if score < 0 {
		score = 0
	}
	return score
}

func commonInterests(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, interest := range a {
		set[interest] = struct{}{}
	}
	count := 0
	seen := make(map[string]struct{}, len(b))
	for _, interest := range b {
		if _, dup := seen[interest]; dup {
			continue
		}
		seen[interest] = struct{}{}
		if _, ok := set[interest]; ok {
			count++
		}
	}
	return count
}

// Rank scores every candidate against the requester and returns at most the
// top five, ordered by descending score. The sort is stable: equal scores
// keep their input order. Callers must pass candidates already filtered of
// the requester and of previously processed users.
func Rank(ctx context.Context, requester models.UserProfile, candidates []models.UserProfile, lookup DisplayLookup) []ScoredCandidate {
	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		entry := ScoredCandidate{
			UserID:             candidate.UserID,
			Name:               unknownName,
			Picture:            absentPicture,
			Profile:            candidate,
			CompatibilityScore: Score(requester, candidate),
		}
		if lookup != nil {
			if info, err := lookup(ctx, candidate.UserID); err == nil {
				if info.Name != "" {
					entry.Name = info.Name
				}
				entry.Picture = info.Picture
			}
		}
		scored = append(scored, entry)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].CompatibilityScore > scored[j].CompatibilityScore
	})

	if len(scored) > maxCandidates {
		scored = scored[:maxCandidates]
	}
	return scored
}
