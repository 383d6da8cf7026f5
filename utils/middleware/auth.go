package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/moringa/darasa-api/model"
	"github.com/moringa/darasa-api/utils/apperrors"
	"github.com/moringa/darasa-api/utils/auth"
	"github.com/moringa/darasa-api/utils/response"
	"gorm.io/gorm"
)

const (
	DefaultTokenHeader = "jwttoken"

	principalKey = "principal"
	claimsKey    = "claims"
)

// AuthMiddleware resolves the jwttoken header into a Principal
type AuthMiddleware struct {
	jwtManager       *auth.JWTManager
	blacklistService *auth.BlacklistService
	db               *gorm.DB
	header           string
}

// NewAuthMiddleware creates a new auth middleware. An empty header name
// means jwttoken.
func NewAuthMiddleware(jwtManager *auth.JWTManager, blacklist *auth.BlacklistService, db *gorm.DB, header string) *AuthMiddleware {
	if header == "" {
		header = DefaultTokenHeader
	}
	return &AuthMiddleware{
		jwtManager:       jwtManager,
		blacklistService: blacklist,
		db:               db,
		header:           header,
	}
}

// Required rejects requests without a valid token for an existing principal
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := strings.TrimSpace(c.Get(m.header))
		if tokenString == "" {
			return response.FromError(c, apperrors.AuthMissing("missing access token"))
		}

		claims, err := m.jwtManager.Verify(tokenString)
		if err != nil {
			return response.FromError(c, apperrors.AuthInvalid("invalid access token"))
		}

		if m.blacklistService != nil {
			revoked, err := m.blacklistService.IsTokenRevoked(c.UserContext(), claims.ID)
			if err != nil {
				return response.InternalServerError(c, err)
			}
			if revoked {
				return response.FromError(c, apperrors.AuthInvalid("invalid access token"))
			}
		}

		principal, err := m.resolve(c, claims)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.FromError(c, apperrors.AuthInvalid("user not found"))
			}
			return response.InternalServerError(c, err)
		}

		c.Locals(principalKey, principal)
		c.Locals(claimsKey, claims)

		return c.Next()
	}
}

// resolve loads exactly the table named by the token's role tag
func (m *AuthMiddleware) resolve(c *fiber.Ctx, claims *auth.Claims) (*auth.Principal, error) {
	db := m.db.WithContext(c.UserContext())

	switch claims.UserType {
	case auth.RoleStudent:
		var student model.Student
		if err := db.First(&student, claims.PrincipalID).Error; err != nil {
			return nil, err
		}
		return auth.StudentPrincipal(&student), nil
	case auth.RoleAdmin:
		var admin model.Admin
		if err := db.First(&admin, claims.PrincipalID).Error; err != nil {
			return nil, err
		}
		return auth.AdminPrincipal(&admin), nil
	}
	return nil, gorm.ErrRecordNotFound
}

// RequireStudent must run after Required
func (m *AuthMiddleware) RequireStudent() fiber.Handler {
	return requireRole(auth.RoleStudent)
}

// RequireAdmin must run after Required
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return requireRole(auth.RoleAdmin)
}

func requireRole(role auth.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := GetPrincipal(c)
		if !ok || principal.Role != role {
			return response.Forbidden(c, "Unauthorized access")
		}
		return c.Next()
	}
}

// GetPrincipal extracts the authenticated caller from context
func GetPrincipal(c *fiber.Ctx) (*auth.Principal, bool) {
	p, ok := c.Locals(principalKey).(*auth.Principal)
	return p, ok && p != nil
}

// GetClaims extracts the verified token claims from context
func GetClaims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}
