package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	sharedauth "jobassist-backend/internal/shared/auth"
	"jobassist-backend/internal/shared/server/respond"
	"jobassist-backend/internal/shared/telemetry"
	"jobassist-backend/internal/users"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	loginStateTTL     = 5 * time.Minute
	googleSubjectPref = "google:"
)

var (
	errBadState     = errors.New("invalid or expired state")
	errExchange     = errors.New("failed to exchange code")
	errProfile      = errors.New("failed to fetch user profile")
	errSaveUser     = errors.New("failed to save user")
	errIssueToken   = errors.New("failed to issue token")
	errNoUIRedirect = errors.New("redirect url required")
)

// UserStore persists the identity returned by Google.
type UserStore interface {
	UpsertFromAuth(ctx context.Context, user users.User) error
}

// GoogleService runs the Google login round trip and hands the UI a signed
// session token.
type GoogleService struct {
	oauthConfig *oauth2.Config
	uiRedirect  string
	states      *loginStates
	users       UserStore
	userInfoURL string
}

func NewGoogleService(clientID, clientSecret, redirectURL, uiRedirect string, store UserStore) *GoogleService {
	return &GoogleService{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		uiRedirect:  uiRedirect,
		states:      newLoginStates(loginStateTTL),
		users:       store,
		userInfoURL: googleUserInfoURL,
	}
}

func (s *GoogleService) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/auth/google")
	g.GET("/start", s.handleStart)
	g.GET("/callback", s.handleCallback)
}

func (s *GoogleService) configured() bool {
	cfg := s.oauthConfig
	return cfg.ClientID != "" && cfg.ClientSecret != "" && cfg.RedirectURL != ""
}

func (s *GoogleService) handleStart(c *gin.Context) {
	if !s.configured() {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "Google auth not configured", nil)
		return
	}
	c.Redirect(http.StatusFound, s.oauthConfig.AuthCodeURL(s.states.issue(), oauth2.AccessTypeOffline))
}

func (s *GoogleService) handleCallback(c *gin.Context) {
	state, code := c.Query("state"), c.Query("code")
	if state == "" || code == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing state or code", nil)
		return
	}

	target, err := s.login(c.Request.Context(), state, code)
	if err != nil {
		status, errCode := callbackStatus(err)
		respond.Error(c, status, errCode, err.Error(), nil)
		return
	}
	c.Redirect(http.StatusFound, target)
}

// login redeems the state, resolves the Google profile, stores the user and
// returns the UI URL carrying the session token.
func (s *GoogleService) login(ctx context.Context, state, code string) (string, error) {
	if !s.states.redeem(state) {
		return "", errBadState
	}

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		telemetry.Warn("auth.exchange_failed", map[string]any{"error": err})
		return "", errExchange
	}

	profile, err := fetchProfile(ctx, s.oauthConfig.Client(ctx, token), s.userInfoURL)
	if err != nil {
		telemetry.Warn("auth.profile_failed", map[string]any{"error": err})
		return "", errProfile
	}

	user := users.User{
		ID:         googleSubjectPref + profile.Subject(),
		Email:      profile.Email,
		FullName:   profile.Name,
		PictureURL: profile.Picture,
	}
	if s.users != nil {
		if err := s.users.UpsertFromAuth(ctx, user); err != nil {
			telemetry.Error("auth.user_upsert_failed", map[string]any{"user_id": user.ID, "error": err})
			return "", errSaveUser
		}
	}

	jwt, err := sharedauth.SignJWT(sharedauth.Claims{Sub: user.ID, Email: user.Email, Name: user.FullName})
	if err != nil {
		telemetry.Error("auth.sign_failed", map[string]any{"user_id": user.ID, "error": err})
		return "", errIssueToken
	}
	telemetry.Info("auth.login", map[string]any{"user_id": user.ID})
	return appendToken(s.uiRedirect, jwt)
}

func callbackStatus(err error) (int, string) {
	switch {
	case errors.Is(err, errBadState), errors.Is(err, errExchange):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, errProfile):
		return http.StatusBadGateway, "auth_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func appendToken(rawURL, token string) (string, error) {
	if rawURL == "" {
		return "", errNoUIRedirect
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
