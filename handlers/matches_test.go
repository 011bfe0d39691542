package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manzafir/matching"
	"manzafir/middleware"
	"manzafir/models"
)

type memProfiles struct {
	profiles map[string]models.UserProfile
}

func (m *memProfiles) Get(_ context.Context, userID string) (*models.UserProfile, error) {
	if p, ok := m.profiles[userID]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *memProfiles) ListUnprocessed(_ context.Context, exclude []string, limit int64) ([]models.UserProfile, error) {
	excluded := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}
	var out []models.UserProfile
	for _, p := range m.profiles {
		if _, skip := excluded[p.UserID]; skip {
			continue
		}
		if int64(len(out)) == limit {
			break
		}
		out = append(out, p)
	}
	return out, nil
}

type memDirectory struct{}

func (memDirectory) DisplayInfo(_ context.Context, userID string) (models.DisplayInfo, error) {
	return models.DisplayInfo{}, errors.New("directory not seeded")
}

type memLedger struct {
	records []models.TravelMatch
}

func (m *memLedger) Append(_ context.Context, record models.TravelMatch) (string, error) {
	m.records = append(m.records, record)
	return record.ID, nil
}

func (m *memLedger) Find(_ context.Context, user1ID, user2ID, status string) (*models.TravelMatch, error) {
	for i := range m.records {
		r := m.records[i]
		if r.User1ID == user1ID && r.User2ID == user2ID && r.MatchStatus == status {
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memLedger) CounterpartIDs(_ context.Context, userID string) ([]string, error) {
	var ids []string
	for _, r := range m.records {
		switch userID {
		case r.User1ID:
			ids = append(ids, r.User2ID)
		case r.User2ID:
			ids = append(ids, r.User1ID)
		}
	}
	return ids, nil
}

func newMatchTestRouter(profiles *memProfiles, ledger *memLedger, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	api := &API{
		Matcher:  matching.NewService(profiles, memDirectory{}, ledger),
		Recorder: matching.NewRecorder(ledger),
	}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
	})
	router.GET("/api/matches", api.GetPotentialMatches)
	router.POST("/api/matches/action", api.MatchAction)
	return router
}

func TestGetPotentialMatchesWithoutProfile(t *testing.T) {
	router := newMatchTestRouter(&memProfiles{profiles: map[string]models.UserProfile{}}, &memLedger{}, "alice")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/matches", nil))

	require.Equal(t, http.StatusOK, w.Code, "missing profile is a hint, not an error")

	var body struct {
		Matches []matching.ScoredCandidate `json:"matches"`
		Message string                     `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Matches)
	assert.Equal(t, "Please complete your profile first", body.Message)
}

func TestGetPotentialMatchesReturnsRankedCandidates(t *testing.T) {
	profiles := &memProfiles{profiles: map[string]models.UserProfile{
		"alice": {UserID: "alice", TravelStyle: "adventure", BudgetPreference: "medium", Interests: []string{"diving"}},
		"bob":   {UserID: "bob", TravelStyle: "adventure", BudgetPreference: "medium", Interests: []string{"diving"}},
	}}
	router := newMatchTestRouter(profiles, &memLedger{}, "alice")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/matches", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Matches []matching.ScoredCandidate `json:"matches"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Matches, 1)
	assert.Equal(t, "bob", body.Matches[0].UserID)
	assert.Equal(t, 90, body.Matches[0].CompatibilityScore)
}

func TestMatchActionRecordsAndDetectsMutual(t *testing.T) {
	ledger := &memLedger{}
	profiles := &memProfiles{profiles: map[string]models.UserProfile{}}

	post := func(userID, body string) *httptest.ResponseRecorder {
		router := newMatchTestRouter(profiles, ledger, userID)
		req := httptest.NewRequest(http.MethodPost, "/api/matches/action", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := post("alice", `{"target_user_id":"bob","action":"like","compatibility_score":70}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"mutual_match":false`)

	w = post("bob", `{"target_user_id":"alice","action":"like","compatibility_score":70}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"mutual_match":true`)

	assert.Len(t, ledger.records, 2)
}

func TestMatchActionRejectsBadInput(t *testing.T) {
	ledger := &memLedger{}
	profiles := &memProfiles{profiles: map[string]models.UserProfile{}}
	router := newMatchTestRouter(profiles, ledger, "alice")

	cases := []string{
		`{"action":"like"}`,
		`{"target_user_id":"bob"}`,
		`{"target_user_id":"bob","action":"superlike"}`,
		`{"target_user_id":"alice","action":"like"}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/matches/action", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
	assert.Empty(t, ledger.records)
}
