package auth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// dummyPasswordHash keeps login timing flat when the username does not
// resolve to a user: we still burn a bcrypt comparison so an unknown username
// and a wrong password are not distinguishable by response time.
const dummyPasswordHash = "$2a$14$uN9nZkCCK2Dg8.sfHBemGuR1YdXIcErAQsPVgROEBZW3dbGTCHGoW"

// Auther orchestrates login and refresh over a user store and a token
// service. It is safe for concurrent use: all fields are set at construction
// and never mutated.
type Auther struct {
	store        UserFinder
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(store UserFinder, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		store:        store,
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// WithTokenService overrides the token service, mostly for tests.
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	s.tokenService = ts
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the credentials and returns a signed auth token. An unknown
// username and a bad password produce the identical ErrInvalidCredentials.
func (s *Auther) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			// compare against a throwaway digest before failing
			_ = ComparePasswordAndHash(password, dummyPasswordHash)
			s.logger.Debug("Login unknown username", "username", username)
			return "", ErrInvalidCredentials
		}
		s.logger.Error("Login user lookup failed", "error", err)
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during login")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		s.logger.Debug("Login password mismatch", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := s.tokenService.Generate(user.View(), user.Username)
	if err != nil {
		s.logger.Error("Login token generation failed", "error", err)
		return "", err
	}

	return token, nil
}

// Refresh validates rawToken and reissues it with a fresh issued-at and an
// expiry no earlier than the original. Expired tokens are rejected, never
// silently renewed. The user view is copied verbatim from the old claims and
// the store is not consulted.
func (s *Auther) Refresh(ctx context.Context, rawToken string) (string, error) {
	if rawToken == "" {
		return "", ErrMissingToken
	}

	claims, err := s.tokenService.Validate(rawToken)
	if err != nil {
		// expired and malformed both map to 401, keep the distinction in logs
		if IsTokenExpiredError(err) {
			s.logger.Info("Refresh rejected expired token", "subject", subjectForLog(claims))
		} else {
			s.logger.Warn("Refresh rejected invalid token", "error", err)
		}
		return "", err
	}

	token, err := s.tokenService.Reissue(claims)
	if err != nil {
		s.logger.Error("Refresh reissue failed", "error", err)
		return "", err
	}

	return token, nil
}

func subjectForLog(claims *JWTClaims) string {
	if claims == nil {
		return ""
	}
	return claims.Subject()
}

var _ Authenticator = (*Auther)(nil)
