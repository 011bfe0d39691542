package matching

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manzafir/models"
)

func profile(style string, budget string, interests ...string) models.UserProfile {
	return models.UserProfile{
		TravelStyle:      style,
		Interests:        interests,
		BudgetPreference: budget,
		AgeRange:         "25-34",
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		requester models.UserProfile
		candidate models.UserProfile
		want      int
	}{
		{
			name:      "same style and budget, no shared interests",
			requester: profile("adventure", "medium", "diving"),
			candidate: profile("adventure", "medium", "museums"),
			want:      85,
		},
		{
			name:      "same style, three shared interests, different budget",
			requester: profile("adventure", "medium", "diving", "hiking", "food"),
			candidate: profile("adventure", "low", "diving", "hiking", "food"),
			want:      85,
		},
		{
			name:      "concrete scenario from the product brief",
			requester: profile("adventure", "medium", "diving", "hiking"),
			candidate: profile("adventure", "low", "hiking", "cycling"),
			want:      75,
		},
		{
			name:      "nothing in common",
			requester: profile("relaxation", "high", "spas"),
			candidate: profile("adventure", "low", "hiking"),
			want:      50,
		},
		{
			name:      "style only",
			requester: profile("cultural", "medium"),
			candidate: profile("cultural", "low"),
			want:      70,
		},
		{
			name:      "budget only",
			requester: profile("cultural", "medium"),
			candidate: profile("adventure", "medium"),
			want:      65,
		},
		{
			name:      "style match is case-sensitive",
			requester: profile("Adventure", "low"),
			candidate: profile("adventure", "low"),
			want:      65,
		},
		{
			name:      "empty interest slices",
			requester: profile("adventure", "medium"),
			candidate: profile("adventure", "medium"),
			want:      85,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.requester, tt.candidate))
		})
	}
}

func TestScoreClampsAtUpperBound(t *testing.T) {
	interests := make([]string, 40)
	for i := range interests {
		interests[i] = fmt.Sprintf("interest-%d", i)
	}

	requester := profile("adventure", "medium", interests...)
	candidate := profile("adventure", "medium", interests...)

	// 50 + 20 + 40*5 + 15 without the clamp
	assert.Equal(t, 100, Score(requester, candidate))
}

func TestScoreIgnoresDuplicateInterests(t *testing.T) {
	requester := profile("a", "b", "hiking", "hiking", "diving")
	candidate := profile("x", "y", "hiking", "hiking")

	// one shared interest, counted once
	assert.Equal(t, 55, Score(requester, candidate))
}

func TestScoreStaysInRange(t *testing.T) {
	profiles := []models.UserProfile{
		profile("adventure", "medium", "a", "b", "c"),
		profile("", "", ""),
		profile("adventure", "medium", make([]string, 100)...),
	}
	for _, p := range profiles {
		for _, q := range profiles {
			score := Score(p, q)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

func TestRankOrdersByDescendingScore(t *testing.T) {
	requester := profile("adventure", "medium", "diving", "hiking")
	candidates := []models.UserProfile{
		{UserID: "low", TravelStyle: "relaxation", BudgetPreference: "high"},
		{UserID: "high", TravelStyle: "adventure", BudgetPreference: "medium", Interests: []string{"diving", "hiking"}},
		{UserID: "mid", TravelStyle: "adventure", BudgetPreference: "low", Interests: []string{"hiking"}},
	}

	ranked := Rank(context.Background(), requester, candidates, nil)

	require.Len(t, ranked, 3)
	assert.Equal(t, "high", ranked[0].UserID)
	assert.Equal(t, "mid", ranked[1].UserID)
	assert.Equal(t, "low", ranked[2].UserID)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].CompatibilityScore, ranked[i].CompatibilityScore)
	}
}

func TestRankStableOnTies(t *testing.T) {
	requester := profile("adventure", "medium")
	var candidates []models.UserProfile
	for i := 0; i < 4; i++ {
		candidates = append(candidates, models.UserProfile{
			UserID:           fmt.Sprintf("tied-%d", i),
			TravelStyle:      "relaxation",
			BudgetPreference: "high",
		})
	}

	ranked := Rank(context.Background(), requester, candidates, nil)

	require.Len(t, ranked, 4)
	for i, entry := range ranked {
		assert.Equal(t, fmt.Sprintf("tied-%d", i), entry.UserID, "equal scores must keep input order")
	}
}

func TestRankTruncatesToFive(t *testing.T) {
	requester := profile("adventure", "medium")
	var candidates []models.UserProfile
	for i := 0; i < 9; i++ {
		candidates = append(candidates, models.UserProfile{UserID: fmt.Sprintf("c%d", i)})
	}

	ranked := Rank(context.Background(), requester, candidates, nil)
	assert.Len(t, ranked, 5)

	ranked = Rank(context.Background(), requester, candidates[:3], nil)
	assert.Len(t, ranked, 3)

	ranked = Rank(context.Background(), requester, nil, nil)
	assert.Empty(t, ranked)
}

func TestRankEnrichesDisplayInfo(t *testing.T) {
	requester := profile("adventure", "medium")
	candidates := []models.UserProfile{
		{UserID: "known"},
		{UserID: "broken"},
	}

	lookup := func(ctx context.Context, userID string) (models.DisplayInfo, error) {
		if userID == "known" {
			return models.DisplayInfo{Name: "Alex", Picture: "https://img/alex.jpg"}, nil
		}
		return models.DisplayInfo{}, errors.New("directory down")
	}

	ranked := Rank(context.Background(), requester, candidates, lookup)

	require.Len(t, ranked, 2, "a failed lookup must not drop the candidate")
	assert.Equal(t, "Alex", ranked[0].Name)
	assert.Equal(t, "https://img/alex.jpg", ranked[0].Picture)
	assert.Equal(t, "Unknown", ranked[1].Name)
	assert.Empty(t, ranked[1].Picture)
}
