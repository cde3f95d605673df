package middleware

import (
	"net/http"
	"strings"

	"food-ordering-api/apperror"
	"food-ordering-api/auth"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

const (
	principalKey = "principal"
	tokenKey     = "token"
)

// Abort writes err as the response and stops the handler chain.
func Abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperror.HTTPStatus(err), apperror.ToResponse(err))
}

// BearerToken extracts the credential from the Authorization header.
func BearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return tok, tok != ""
}

// AuthRequired validates the bearer token and injects the principal into context
func AuthRequired(authn *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := BearerToken(c)
		if !ok {
			Abort(c, apperror.Auth("authorization header required (Bearer <token>)"))
			return
		}
		p, err := authn.Authenticate(c.Request.Context(), tok)
		if err != nil {
			if !apperror.Is(err, apperror.KindAuth) {
				_ = c.Error(err)
			}
			Abort(c, err)
			return
		}
		c.Set(principalKey, p)
		c.Set(tokenKey, tok)
		c.Next()
	}
}

// RoleRequired enforces that caller has one of the allowed roles
func RoleRequired(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := GetPrincipal(c)
		if p == nil {
			Abort(c, apperror.Auth("not authenticated"))
			return
		}
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		Abort(c, apperror.Forbidden("access denied, required role(s): "+rolesString(roles)))
	}
}

func rolesString(roles []models.UserRole) string {
	s := make([]string, len(roles))
	for i, r := range roles {
		s[i] = string(r)
	}
	return strings.Join(s, ", ")
}

// GetPrincipal returns the authenticated caller, or nil on public routes.
func GetPrincipal(c *gin.Context) *auth.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}

// GetToken returns the raw credential the request was authenticated with.
func GetToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}

// NoRoute answers unknown paths with the standard error body.
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, apperror.ToResponse(apperror.NotFound("route not found")))
}
