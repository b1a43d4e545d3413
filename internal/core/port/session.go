package port

import (
	"time"

	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
)

//go:generate mockgen -source=session.go -destination=mock/session.go -package=mock

// Session is the explicit holder of the persisted client state (token pair
// and user blob). It is injected everywhere a token is needed; nothing reads
// session state ambiently.
type Session interface {
	AccessToken() string
	RefreshToken() string
	User() *domain.User
	// AccessExpired reports whether the access token is missing, unreadable,
	// or expires within the given leeway.
	AccessExpired(leeway time.Duration) bool
	SetSession(access, refresh string, user *domain.User) error
	SetAccessToken(access string) error
	ClearSession() error
}
