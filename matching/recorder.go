package matching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"manzafir/models"
)

// Validation failures are client-caused rejections; handlers map them to 400.
// Anything else coming out of the recorder is a ledger failure.
var (
	ErrMissingParticipant = errors.New("actor and target ids are required")
	ErrSelfAction         = errors.New("cannot act on your own profile")
	ErrInvalidAction      = errors.New(`action must be "like" or "pass"`)
)

// MatchLedger is the append-only store of match actions.
type MatchLedger interface {
	Append(ctx context.Context, record models.TravelMatch) (string, error)
	// Find returns (nil, nil) when no record matches.
	Find(ctx context.Context, user1ID, user2ID, status string) (*models.TravelMatch, error)
}

// ActionResult reports a recorded action. Mutual is true only when the target
// had already liked the actor at the time of this call.
type ActionResult struct {
	RecordID string
	Mutual   bool
}

// Recorder appends like/pass actions and detects mutual-match formation.
type Recorder struct {
	ledger MatchLedger
}

func NewRecorder(ledger MatchLedger) *Recorder {
	return &Recorder{ledger: ledger}
}

// Record appends exactly one ledger entry for (actor, target, action). The
// declared score is persisted verbatim; it is the caller's echo of a prior
// engine score and is deliberately not range-checked. Repeated calls for the
// same pair accumulate records — the ledger never deduplicates.
//
// A mutual match is detected only on "like", by looking for an existing
// reverse-pair record with status "like". No "matched" record is written;
// mutuality stays a derived fact over the two independent like records.
func (r *Recorder) Record(ctx context.Context, actorID, targetID, action string, declaredScore int) (ActionResult, error) {
	if actorID == "" || targetID == "" {
		return ActionResult{}, ErrMissingParticipant
	}
	if actorID == targetID {
		return ActionResult{}, ErrSelfAction
	}
	if action != models.ActionLike && action != models.ActionPass {
		return ActionResult{}, ErrInvalidAction
	}

	record := models.TravelMatch{
		ID:                 uuid.NewString(),
		User1ID:            actorID,
		User2ID:            targetID,
		CompatibilityScore: declaredScore,
		MatchStatus:        action,
		CreatedAt:          time.Now().UTC(),
	}

	recordID, err := r.ledger.Append(ctx, record)
	if err != nil {
		return ActionResult{}, fmt.Errorf("append match record: %w", err)
	}

	result := ActionResult{RecordID: recordID}
	if action == models.ActionLike {
		reverse, err := r.ledger.Find(ctx, targetID, actorID, models.ActionLike)
		if err != nil {
			return ActionResult{}, fmt.Errorf("mutual match lookup: %w", err)
		}
		result.Mutual = reverse != nil
	}
	return result, nil
}
