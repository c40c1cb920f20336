package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sjlee/order-api/internal/errors"
	"github.com/sjlee/order-api/pkg/util"
)

// Context keys for member information
const (
	MemberIDKey    = "member_id"
	MemberEmailKey = "member_email"
)

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

// Authenticate validates the JWT issued by the auth service and stores the
// member identity in the request context. Services re-validate membership
// against the members table on every mutating call.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "로그인이 필요합니다")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "인증 형식이 올바르지 않습니다")
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(parts[1], m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "로그인이 만료되었습니다")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "유효하지 않은 인증 토큰입니다")
			}
			c.Abort()
			return
		}

		c.Set(MemberIDKey, claims.UserID)
		c.Set(MemberEmailKey, claims.Email)

		log.Debug("Member authenticated successfully", map[string]interface{}{
			"member_id": claims.UserID,
			"email":     claims.Email,
		})

		c.Next()
	}
}

// GetMemberID extracts the member ID from context
func GetMemberID(c *gin.Context) (uint, bool) {
	memberID, exists := c.Get(MemberIDKey)
	if !exists {
		return 0, false
	}
	return memberID.(uint), true
}

// GetMemberEmail extracts the member email from context
func GetMemberEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(MemberEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}
