package matching

import (
	"context"
	"errors"
	"fmt"

	"manzafir/models"
)

// ErrProfileIncomplete means the requester has no profile yet. It is a
// precondition failure, not a storage failure.
var ErrProfileIncomplete = errors.New("profile incomplete")

// candidatePageSize bounds how many unprocessed profiles are pulled from the
// store per ranking request; the engine then keeps the top five.
const candidatePageSize = 10

// ProfileStore reads travel profiles.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	ListUnprocessed(ctx context.Context, exclude []string, limit int64) ([]models.UserProfile, error)
}

// UserDirectory resolves display info for response enrichment.
type UserDirectory interface {
	DisplayInfo(ctx context.Context, userID string) (models.DisplayInfo, error)
}

// LedgerReader exposes the ledger query the candidate exclusion needs.
type LedgerReader interface {
	CounterpartIDs(ctx context.Context, userID string) ([]string, error)
}

// Service drives one ranking request: load the requester's profile, exclude
// everyone already acted on, pull candidates, and hand them to the engine.
type Service struct {
	profiles ProfileStore
	users    UserDirectory
	ledger   LedgerReader
}

func NewService(profiles ProfileStore, users UserDirectory, ledger LedgerReader) *Service {
	return &Service{profiles: profiles, users: users, ledger: ledger}
}

func (s *Service) PotentialMatches(ctx context.Context, userID string) ([]ScoredCandidate, error) {
	requester, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load requester profile: %w", err)
	}
	if requester == nil {
		return nil, ErrProfileIncomplete
	}

	counterparts, err := s.ledger.CounterpartIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list processed counterparts: %w", err)
	}

	exclude := append([]string{userID}, counterparts...)

	candidates, err := s.profiles.ListUnprocessed(ctx, exclude, candidatePageSize)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	return Rank(ctx, *requester, candidates, s.users.DisplayInfo), nil
}
