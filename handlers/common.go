package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"golang.org/x/oauth2"

	"manzafir/llm"
	"manzafir/matching"
	"manzafir/store"
)

const sessionTTL = 7 * 24 * time.Hour

// API holds every dependency the handlers need. It is built once in main;
// handlers carry no package-level state.
type API struct {
	Users    *store.Users
	Profiles *store.Profiles
	Sessions *store.Sessions
	Matches  *store.Matches
	Packages *store.Packages
	PushSubs *store.PushSubs

	Matcher     *matching.Service
	Recorder    *matching.Recorder
	Recommender llm.Recommender

	Cloudinary      *cloudinary.Cloudinary
	OAuth           *oauth2.Config
	IdentityBaseURL string
	HTTPClient      *http.Client

	VAPIDPublicKey  string
	VAPIDPrivateKey string
	PushSubscriber  string
}

func (a *API) httpClient() *http.Client {
	if a.HTTPClient != nil {
		return a.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}

// generateSessionToken returns a random 64-hex-char opaque token for the
// sign-in paths that do not receive one from the identity provider.
func generateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
