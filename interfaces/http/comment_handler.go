package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/domain/dto"
	"vidtube/usecase"
)

type ICommentHandler interface {
	Add(c *gin.Context)
	ListForVideo(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type CommentHandler struct {
	commentUsecase usecase.ICommentUsecase
}

func NewCommentHandler(commentUsecase usecase.ICommentUsecase) ICommentHandler {
	return &CommentHandler{commentUsecase: commentUsecase}
}

func (h *CommentHandler) Add(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, err.Error())
		return
	}
	comment, err := h.commentUsecase.Add(c.Request.Context(), userID, c.Param("videoId"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, comment, "comment added successfully")
}

func (h *CommentHandler) ListForVideo(c *gin.Context) {
	var req dto.CommentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, err.Error())
		return
	}
	payload, err := h.commentUsecase.ListForVideo(c.Request.Context(), c.Param("videoId"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, payload, "comments fetched successfully")
}

func (h *CommentHandler) Update(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, err.Error())
		return
	}
	comment, err := h.commentUsecase.Update(c.Request.Context(), userID, c.Param("commentId"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, comment, "comment updated successfully")
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	if err := h.commentUsecase.Delete(c.Request.Context(), userID, c.Param("commentId")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "comment deleted successfully")
}
