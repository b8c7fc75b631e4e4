package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/fitcheckapp/backend/internal/database"
	"github.com/fitcheckapp/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidToken = errors.New("invalid session token")
)

// Service verifies auth-provider session tokens. The provider's user ID is
// carried in the token subject and treated as an opaque string everywhere;
// ResolveUser performs the required external-to-internal translation.
type Service struct {
	signingKey []byte
}

// NewService creates a new authentication service
func NewService(signingKey []byte) *Service {
	return &Service{signingKey: signingKey}
}

// SessionClaims are the claims carried by a session token
type SessionClaims struct {
	jwt.RegisteredClaims
}

// VerifySessionToken validates a session token and returns the external
// (auth-provider) user ID from its subject.
func (s *Service) VerifySessionToken(tokenString string) (string, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.signingKey, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// IssueSessionToken mints a session token for an external user ID. Used by
// the CLI and the seeder; production tokens come from the auth provider.
func (s *Service) IssueSessionToken(clerkUserID string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clerkUserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.signingKey)
}

// Middleware validates the Authorization header and stores the external
// user ID in the request context under "clerk_user_id".
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(401, gin.H{"error": "no token provided"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		clerkUserID, err := s.VerifySessionToken(tokenString)
		if err != nil {
			c.JSON(401, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set("clerk_user_id", clerkUserID)
		c.Next()
	}
}

// ResolveUser translates an external auth-provider user ID into the
// application's own user row. The two identifier spaces are never assumed
// equal; every ownership check and FK write goes through this lookup.
func ResolveUser(clerkUserID string) (*models.User, error) {
	var user models.User
	err := database.DB.First(&user, "clerk_user_id = ?", clerkUserID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
