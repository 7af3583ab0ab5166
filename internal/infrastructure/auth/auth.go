package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"promptkeep/services/message-api/internal/config"
	"promptkeep/services/message-api/internal/domain/user"
)

const identityKey = "auth_identity"

// Identity is the authenticated caller extracted from the access token.
type Identity struct {
	UserID string
	Email  *string
}

// Validator validates access tokens. Keys come from a JWKS endpoint when
// AUTH_JWKS_URL is set, otherwise tokens are verified against the shared
// HS256 secret the auth provider signs with.
type Validator struct {
	cfg   *config.Config
	log   zerolog.Logger
	jwks  *keyfunc.JWKS
	users user.Repository
}

// NewValidator initializes JWKS fetching when a JWKS URL is configured.
func NewValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger, users user.Repository) (*Validator, error) {
	v := &Validator{cfg: cfg, log: log, users: users}

	if strings.TrimSpace(cfg.AuthJWKSURL) == "" {
		if strings.TrimSpace(cfg.AuthSecret) == "" {
			return nil, fmt.Errorf("auth: neither AUTH_JWKS_URL nor AUTH_JWT_SECRET configured")
		}
		return v, nil
	}

	options := keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Error().Err(err).Msg("jwks refresh error")
		},
	}

	jwks, err := keyfunc.Get(cfg.AuthJWKSURL, options)
	if err != nil {
		return nil, err
	}
	v.jwks = jwks
	return v, nil
}

// Middleware enforces token auth on every request it wraps. On success the
// caller's user row is upserted and the identity stored on the context; this
// is the only place user rows are written.
func (v *Validator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		token, err := jwt.Parse(tokenString, v.keyfunc(),
			jwt.WithAudience(v.cfg.AuthAudience),
			jwt.WithValidMethods(v.validMethods()),
			jwt.WithExpirationRequired(),
		)
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid token claims")
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			abortUnauthorized(c, "token missing subject")
			return
		}

		var email *string
		if raw, ok := claims["email"].(string); ok && raw != "" {
			email = &raw
		}

		if _, err := v.users.EnsureExists(c.Request.Context(), sub, email); err != nil {
			v.log.Error().Err(err).Str("user_id", sub).Msg("user sync failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "user sync failed",
			})
			return
		}

		SetIdentity(c, Identity{UserID: sub, Email: email})
		c.Next()
	}
}

// SetIdentity stores the authenticated identity on the request context.
func SetIdentity(c *gin.Context, identity Identity) {
	c.Set(identityKey, identity)
}

// IdentityFromContext returns the authenticated identity set by Middleware.
func IdentityFromContext(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}

// Ready indicates if the validator is prepared.
func (v *Validator) Ready() bool {
	if v == nil {
		return false
	}
	if strings.TrimSpace(v.cfg.AuthJWKSURL) != "" {
		return v.jwks != nil
	}
	return v.cfg.AuthSecret != ""
}

func (v *Validator) keyfunc() jwt.Keyfunc {
	if v.jwks != nil {
		return v.jwks.Keyfunc
	}
	return func(*jwt.Token) (interface{}, error) {
		return []byte(v.cfg.AuthSecret), nil
	}
}

func (v *Validator) validMethods() []string {
	if v.jwks != nil {
		return []string{"RS256", "RS384", "RS512"}
	}
	return []string{"HS256"}
}

// NewDevToken signs a short-lived HS256 token carrying the given identity.
// For local development and tests only; production tokens come from the
// auth provider.
func NewDevToken(secret, userID string, email *string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"aud": "authenticated",
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if email != nil {
		claims["email"] = *email
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": message,
	})
}
