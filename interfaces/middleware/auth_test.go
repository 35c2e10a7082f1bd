package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/model"
	"vidtube/infrastructure/configuration"
	"vidtube/infrastructure/utils"
	"vidtube/interfaces/middleware"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) GetByUserName(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) SetRefreshToken(ctx context.Context, id bson.ObjectID, token string) error {
	return m.Called(ctx, id, token).Error(0)
}

func (m *mockUserRepository) SetPassword(ctx context.Context, id bson.ObjectID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *mockUserRepository) UpdateAccountDetails(ctx context.Context, id bson.ObjectID, fullName, email string) (*model.User, error) {
	args := m.Called(ctx, id, fullName, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) UpdateAvatar(ctx context.Context, id bson.ObjectID, url string) (*model.User, error) {
	args := m.Called(ctx, id, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) UpdateCoverImage(ctx context.Context, id bson.ObjectID, url string) (*model.User, error) {
	args := m.Called(ctx, id, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) AddToWatchHistory(ctx context.Context, userID, videoID bson.ObjectID) error {
	return m.Called(ctx, userID, videoID).Error(0)
}

func (m *mockUserRepository) GetWatchHistory(ctx context.Context, userID bson.ObjectID) ([]model.VideoWithOwner, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VideoWithOwner), args.Error(1)
}

func (m *mockUserRepository) GetChannelProfile(ctx context.Context, username string, requesterID bson.ObjectID) (*model.ChannelProfile, error) {
	args := m.Called(ctx, username, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChannelProfile), args.Error(1)
}

func authRouter(userRepo *mockUserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.Auth(userRepo))
	router.GET("/whoami", func(c *gin.Context) {
		id, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id.Hex()})
	})
	return router
}

func accessToken(t *testing.T, username string) string {
	t.Helper()
	token, err := utils.GenerateToken(map[string]interface{}{
		"username": username,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}, configuration.C.App.SecretKey)
	assert.NoError(t, err)
	return token
}

func TestAuthMissingHeader(t *testing.T) {
	router := authRouter(new(mockUserRepository))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMalformedToken(t *testing.T) {
	router := authRouter(new(mockUserRepository))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer this-is-not-a-jwt")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "That's not even a token")
}

func TestAuthExpiredToken(t *testing.T) {
	router := authRouter(new(mockUserRepository))

	expired, err := utils.GenerateToken(map[string]interface{}{
		"username": "testuser",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	}, configuration.C.App.SecretKey)
	assert.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Timing is everything")
}

func TestAuthRejectsDeletedUser(t *testing.T) {
	userRepo := new(mockUserRepository)
	userRepo.On("GetByUserName", mock.Anything, "ghost").
		Return(nil, model.NotFound("user not found"))
	router := authRouter(userRepo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, "ghost"))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthResolvesUserIntoContext(t *testing.T) {
	userID := bson.NewObjectID()
	userRepo := new(mockUserRepository)
	userRepo.On("GetByUserName", mock.Anything, "testuser").
		Return(&model.User{ID: userID, Username: "testuser"}, nil)
	router := authRouter(userRepo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, "testuser"))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.Hex())
}
