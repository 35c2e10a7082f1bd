package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/usecase"
)

type ILikeHandler interface {
	ToggleVideoLike(c *gin.Context)
	ToggleCommentLike(c *gin.Context)
	ToggleTweetLike(c *gin.Context)
	GetLikedVideos(c *gin.Context)
}

type LikeHandler struct {
	likeUsecase usecase.ILikeUsecase
}

func NewLikeHandler(likeUsecase usecase.ILikeUsecase) ILikeHandler {
	return &LikeHandler{likeUsecase: likeUsecase}
}

func (h *LikeHandler) ToggleVideoLike(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	liked, err := h.likeUsecase.ToggleVideoLike(c.Request.Context(), userID, c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"liked": liked}, toggleMessage(liked))
}

func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	liked, err := h.likeUsecase.ToggleCommentLike(c.Request.Context(), userID, c.Param("commentId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"liked": liked}, toggleMessage(liked))
}

func (h *LikeHandler) ToggleTweetLike(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	liked, err := h.likeUsecase.ToggleTweetLike(c.Request.Context(), userID, c.Param("tweetId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"liked": liked}, toggleMessage(liked))
}

func (h *LikeHandler) GetLikedVideos(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	videos, err := h.likeUsecase.GetLikedVideos(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, videos, "liked videos fetched successfully")
}

func toggleMessage(liked bool) string {
	if liked {
		return "liked"
	}
	return "unliked"
}
