package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/configuration"
	"vidtube/infrastructure/logger"
)

// ContextUserID is the gin context key holding the authenticated user's id.
const ContextUserID = "user_id"

// Auth verifies the Bearer access token and resolves the user it names.
// The user id lands in the gin context under ContextUserID.
func Auth(userRepository repository.IUser) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authorization := ctx.Request.Header.Get("Authorization")
		if authorization == "" {
			unauthorized(ctx, "Unauthorized")
			return
		}
		parts := strings.Split(authorization, "Bearer ")
		if len(parts) != 2 {
			unauthorized(ctx, "Unauthorized")
			return
		}

		userClaims, token, err := getClaim(parts[1], configuration.C.App.SecretKey)
		if err != nil || !token.Valid {
			unauthorized(ctx, tokenMessage(err))
			return
		}

		user, err := userRepository.GetByUserName(ctx.Request.Context(), userClaims.Username)
		if err != nil {
			logger.GetLogger().WithField("username", userClaims.Username).
				Info("Token subject no longer exists")
			unauthorized(ctx, "Unauthorized")
			return
		}

		ctx.Set(ContextUserID, user.ID)
		ctx.Next()
	}
}

func unauthorized(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized,
		model.NewApiResponse(http.StatusUnauthorized, nil, message))
}

func tokenMessage(err error) string {
	var ve *jwt.ValidationError
	if errors.As(err, &ve) {
		if ve.Errors&jwt.ValidationErrorMalformed != 0 {
			return "That's not even a token"
		}
		if ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
			return "Timing is everything"
		}
		return fmt.Sprintf("Couldn't handle this token:%v", err)
	}
	return "Unauthorized"
}

func getClaim(tokenString, secretKey string) (model.UserClaims, *jwt.Token, error) {
	var userClaims model.UserClaims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&userClaims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		},
	)
	return userClaims, token, err
}

// UserID pulls the authenticated user's id out of the gin context.
func UserID(ctx *gin.Context) (bson.ObjectID, bool) {
	raw, ok := ctx.Get(ContextUserID)
	if !ok {
		return bson.ObjectID{}, false
	}
	id, ok := raw.(bson.ObjectID)
	return id, ok
}
