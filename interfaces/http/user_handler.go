package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/infrastructure/logger"
	"vidtube/usecase"
)

const ErrorUnmarshal = "Error while unmarshal"

type IUserHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	RefreshToken(c *gin.Context)
	ChangePassword(c *gin.Context)
	GetCurrentUser(c *gin.Context)
	UpdateAccount(c *gin.Context)
	UpdateAvatar(c *gin.Context)
	UpdateCoverImage(c *gin.Context)
	GetChannelProfile(c *gin.Context)
	MakeWatchHistory(c *gin.Context)
	GetWatchHistory(c *gin.Context)
}

type UserHandler struct {
	userUsecase usecase.IUserUsecase
}

func NewUserHandler(userUsecase usecase.IUserUsecase) IUserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		respond(c, http.StatusBadRequest, nil, err.Error())
		return
	}

	avatarPath, cleanupAvatar, err := saveUpload(c, req.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}
	defer cleanupAvatar()

	coverImagePath := ""
	if req.CoverImage != nil {
		path, cleanup, err := saveUpload(c, req.CoverImage)
		if err != nil {
			respondError(c, err)
			return
		}
		defer cleanup()
		coverImagePath = path
	}

	user, err := h.userUsecase.Register(c.Request.Context(), &req, avatarPath, coverImagePath)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, user, "user registered successfully")
}

func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		respond(c, http.StatusBadRequest, nil, err.Error())
		return
	}

	user, pair, err := h.userUsecase.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "logged in successfully")
}

func (h *UserHandler) Logout(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	if err := h.userUsecase.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "logged out successfully")
}

func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, err.Error())
		return
	}
	pair, err := h.userUsecase.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, pair, "access token refreshed")
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, err.Error())
		return
	}
	if err := h.userUsecase.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "password changed successfully")
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	user, err := h.userUsecase.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "current user fetched successfully")
}

func (h *UserHandler) UpdateAccount(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, err.Error())
		return
	}
	user, err := h.userUsecase.UpdateAccount(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "account details updated successfully")
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", h.userUsecase.UpdateAvatar)
}

func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, "coverImage", h.userUsecase.UpdateCoverImage)
}

func (h *UserHandler) updateImage(c *gin.Context, field string, update func(ctx context.Context, userID bson.ObjectID, localPath string) (*model.User, error)) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	file, err := c.FormFile(field)
	if err != nil {
		respond(c, http.StatusBadRequest, nil, field+" file is required")
		return
	}
	path, cleanup, err := saveUpload(c, file)
	if err != nil {
		respondError(c, err)
		return
	}
	defer cleanup()

	user, err := update(c.Request.Context(), userID, path)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, field+" updated successfully")
}

func (h *UserHandler) GetChannelProfile(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	profile, err := h.userUsecase.GetChannelProfile(c.Request.Context(), c.Param("username"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, profile, "channel profile fetched successfully")
}

func (h *UserHandler) MakeWatchHistory(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	if err := h.userUsecase.AddWatchHistory(c.Request.Context(), userID, c.Param("videoId")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "watch history updated")
}

func (h *UserHandler) GetWatchHistory(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	history, err := h.userUsecase.GetWatchHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, history, "watch history fetched successfully")
}
