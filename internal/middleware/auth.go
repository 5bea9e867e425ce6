package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"transportcoin-service/pkg/common"
)

const authUserKey = "authUser"

// AuthUser is the identity the token issuer vouches for. The service trusts
// the verified claims and never re-checks them against a user store.
type AuthUser struct {
	UserId  int
	IsAdmin bool
}

type tokenClaims struct {
	UserId  int  `json:"userId"`
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev_secret_change_me"
	}
	return []byte(secret)
}

func parseBearer(header string) (*AuthUser, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, false
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid || claims.UserId == 0 {
		return nil, false
	}

	return &AuthUser{UserId: claims.UserId, IsAdmin: claims.IsAdmin}, true
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller identity in the gin context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := parseBearer(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				common.NewErrorResponse("Unauthorized", common.CodeUnauthorized, http.StatusUnauthorized))
			return
		}
		c.Set(authUserKey, user)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetAuthUser(c)
		if user == nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				common.NewErrorResponse("Forbidden", common.CodeForbidden, http.StatusForbidden))
			return
		}
		c.Next()
	}
}

func GetAuthUser(c *gin.Context) *AuthUser {
	v, ok := c.Get(authUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*AuthUser)
	return user
}
