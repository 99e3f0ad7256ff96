package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ndthang/edubot/internal/dto"
	"github.com/ndthang/edubot/internal/service"
)

const UserIDKey = "user_id"

// RequireAuth validates the bearer token and stores the user id in the gin
// context under UserIDKey.
func RequireAuth(tokens service.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
			return
		}
		userID, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
			return
		}
		ctx.Set(UserIDKey, userID)
		ctx.Next()
	}
}

// CurrentUserID reads the authenticated user id set by RequireAuth.
func CurrentUserID(ctx *gin.Context) uint {
	return ctx.GetUint(UserIDKey)
}
