package http

import (
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/model"
	"vidtube/infrastructure/logger"
	"vidtube/interfaces/middleware"
)

func respond(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, model.NewApiResponse(statusCode, data, message))
}

func respondError(c *gin.Context, err error) {
	status := model.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.GetLogger().WithField("error", err).Error("Request failed")
	}
	c.JSON(status, model.NewApiResponse(status, nil, err.Error()))
}

// authedUser resolves the id the auth middleware stored; a miss means the
// route was wired without the middleware.
func authedUser(c *gin.Context) (bson.ObjectID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		respond(c, http.StatusUnauthorized, nil, "Unauthorized")
	}
	return id, ok
}

// saveUpload spools a multipart file to the local temp dir so the media
// host client can stream it. The caller removes it via the returned cleanup.
func saveUpload(c *gin.Context, file *multipart.FileHeader) (string, func(), error) {
	path := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", nil, model.Internal("failed to store uploaded file", err)
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil {
			logger.GetLogger().WithField("path", path).
				WithField("error", err).Warn("Failed removing temp upload")
		}
	}
	return path, cleanup, nil
}
