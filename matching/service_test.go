package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manzafir/models"
)

type fakeProfiles struct {
	profiles    map[string]models.UserProfile
	candidates  []models.UserProfile
	lastExclude []string
	lastLimit   int64
	getErr      error
	listErr     error
}

func (f *fakeProfiles) Get(_ context.Context, userID string) (*models.UserProfile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if p, ok := f.profiles[userID]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeProfiles) ListUnprocessed(_ context.Context, exclude []string, limit int64) ([]models.UserProfile, error) {
	f.lastExclude = exclude
	f.lastLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.candidates, nil
}

type fakeDirectory struct {
	info map[string]models.DisplayInfo
}

func (f *fakeDirectory) DisplayInfo(_ context.Context, userID string) (models.DisplayInfo, error) {
	if info, ok := f.info[userID]; ok {
		return info, nil
	}
	return models.DisplayInfo{}, errors.New("no such user")
}

func TestPotentialMatchesRequiresProfile(t *testing.T) {
	svc := NewService(&fakeProfiles{}, &fakeDirectory{}, &fakeLedger{})

	_, err := svc.PotentialMatches(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrProfileIncomplete)
}

func TestPotentialMatchesExcludesSelfAndProcessed(t *testing.T) {
	profiles := &fakeProfiles{
		profiles: map[string]models.UserProfile{
			"alice": profile("adventure", "medium", "diving"),
		},
	}
	ledger := &fakeLedger{records: []models.TravelMatch{
		{User1ID: "alice", User2ID: "bob", MatchStatus: "like"},
		{User1ID: "carol", User2ID: "alice", MatchStatus: "pass"},
	}}

	svc := NewService(profiles, &fakeDirectory{}, ledger)

	_, err := svc.PotentialMatches(context.Background(), "alice")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"alice", "bob", "carol"}, profiles.lastExclude)
	assert.Equal(t, int64(10), profiles.lastLimit)
}

func TestPotentialMatchesRanksAndEnriches(t *testing.T) {
	profiles := &fakeProfiles{
		profiles: map[string]models.UserProfile{
			"alice": profile("adventure", "medium", "diving", "hiking"),
		},
		candidates: []models.UserProfile{
			{UserID: "dan", TravelStyle: "relaxation", BudgetPreference: "high"},
			{UserID: "erin", TravelStyle: "adventure", BudgetPreference: "medium", Interests: []string{"diving"}},
		},
	}
	directory := &fakeDirectory{info: map[string]models.DisplayInfo{
		"erin": {Name: "Erin", Picture: "https://img/erin.jpg"},
	}}

	svc := NewService(profiles, directory, &fakeLedger{})

	matches, err := svc.PotentialMatches(context.Background(), "alice")
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, "erin", matches[0].UserID)
	assert.Equal(t, "Erin", matches[0].Name)
	assert.Equal(t, 90, matches[0].CompatibilityScore)
	assert.Equal(t, "dan", matches[1].UserID)
	assert.Equal(t, "Unknown", matches[1].Name, "directory failure downgrades to placeholder")
	assert.Equal(t, 50, matches[1].CompatibilityScore)
}

func TestPotentialMatchesPropagatesStoreFailures(t *testing.T) {
	storeErr := errors.New("profile store unreachable")

	svc := NewService(&fakeProfiles{getErr: storeErr}, &fakeDirectory{}, &fakeLedger{})
	_, err := svc.PotentialMatches(context.Background(), "alice")
	assert.ErrorIs(t, err, storeErr)

	listErr := errors.New("candidate query timeout")
	svc = NewService(&fakeProfiles{
		profiles: map[string]models.UserProfile{"alice": profile("adventure", "medium")},
		listErr:  listErr,
	}, &fakeDirectory{}, &fakeLedger{})
	_, err = svc.PotentialMatches(context.Background(), "alice")
	assert.ErrorIs(t, err, listErr)
}
