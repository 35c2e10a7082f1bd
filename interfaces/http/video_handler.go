package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/domain/dto"
	"vidtube/infrastructure/logger"
	"vidtube/usecase"
)

type IVideoHandler interface {
	List(c *gin.Context)
	Publish(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	UpdateThumbnail(c *gin.Context)
	Delete(c *gin.Context)
	TogglePublish(c *gin.Context)
}

type VideoHandler struct {
	videoUsecase usecase.IVideoUsecase
}

func NewVideoHandler(videoUsecase usecase.IVideoUsecase) IVideoHandler {
	return &VideoHandler{videoUsecase: videoUsecase}
}

func (h *VideoHandler) List(c *gin.Context) {
	var req dto.VideoListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, err.Error())
		return
	}
	payload, err := h.videoUsecase.List(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, payload, "videos fetched successfully")
}

func (h *VideoHandler) Publish(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	var req dto.PublishVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		respond(c, http.StatusBadRequest, nil, err.Error())
		return
	}

	videoPath, cleanupVideo, err := saveUpload(c, req.VideoFile)
	if err != nil {
		respondError(c, err)
		return
	}
	defer cleanupVideo()

	thumbnailPath, cleanupThumbnail, err := saveUpload(c, req.Thumbnail)
	if err != nil {
		respondError(c, err)
		return
	}
	defer cleanupThumbnail()

	video, err := h.videoUsecase.Publish(c.Request.Context(), userID, &req, videoPath, thumbnailPath)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, video, "video published successfully")
}

func (h *VideoHandler) Get(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	details, err := h.videoUsecase.Get(c.Request.Context(), c.Param("videoId"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, details, "video fetched successfully")
}

func (h *VideoHandler) Update(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	var req dto.UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, err.Error())
		return
	}
	video, err := h.videoUsecase.Update(c.Request.Context(), userID, c.Param("videoId"), &req, "")
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, video, "video updated successfully")
}

func (h *VideoHandler) UpdateThumbnail(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	file, err := c.FormFile("thumbnail")
	if err != nil {
		respond(c, http.StatusBadRequest, nil, "thumbnail file is required")
		return
	}
	path, cleanup, err := saveUpload(c, file)
	if err != nil {
		respondError(c, err)
		return
	}
	defer cleanup()

	video, err := h.videoUsecase.Update(c.Request.Context(), userID, c.Param("videoId"), &dto.UpdateVideoRequest{}, path)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, video, "thumbnail updated successfully")
}

func (h *VideoHandler) Delete(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	if err := h.videoUsecase.Delete(c.Request.Context(), userID, c.Param("videoId")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "video deleted successfully")
}

func (h *VideoHandler) TogglePublish(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	published, err := h.videoUsecase.TogglePublish(c.Request.Context(), userID, c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"isPublished": published}, "publish status toggled")
}
