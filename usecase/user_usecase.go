package usecase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/configuration"
	"vidtube/infrastructure/logger"
	"vidtube/infrastructure/utils"
)

type IUserUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest, avatarPath, coverImagePath string) (*model.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*model.User, *dto.TokenPair, error)
	Logout(ctx context.Context, userID bson.ObjectID) error
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	ChangePassword(ctx context.Context, userID bson.ObjectID, req *dto.ChangePasswordRequest) error
	GetCurrentUser(ctx context.Context, userID bson.ObjectID) (*model.User, error)
	UpdateAccount(ctx context.Context, userID bson.ObjectID, req *dto.UpdateAccountRequest) (*model.User, error)
	UpdateAvatar(ctx context.Context, userID bson.ObjectID, localPath string) (*model.User, error)
	UpdateCoverImage(ctx context.Context, userID bson.ObjectID, localPath string) (*model.User, error)
	GetChannelProfile(ctx context.Context, username string, requesterID bson.ObjectID) (*model.ChannelProfile, error)
	AddWatchHistory(ctx context.Context, userID bson.ObjectID, videoID string) error
	GetWatchHistory(ctx context.Context, userID bson.ObjectID) ([]model.VideoWithOwner, error)
}

type UserUsecase struct {
	userRepository repository.IUser
	mediaHost      repository.IMediaHost
}

func NewUserUsecase(userRepository repository.IUser, mediaHost repository.IMediaHost) IUserUsecase {
	return &UserUsecase{
		userRepository: userRepository,
		mediaHost:      mediaHost,
	}
}

// Register creates the account after pushing the avatar (and optional cover
// image) to the media host. Uploaded assets are removed again when the
// insert fails, so a lost race on the unique index leaves nothing behind.
func (u *UserUsecase) Register(ctx context.Context, req *dto.RegisterRequest, avatarPath, coverImagePath string) (*model.User, error) {
	exists, err := u.userRepository.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.Conflict("user with email or username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, model.Internal("failed to hash password", err)
	}

	var uploaded []string
	rollback := func() {
		for _, publicID := range uploaded {
			if err := u.mediaHost.Delete(ctx, publicID); err != nil {
				logger.GetLogger().WithField("publicId", publicID).
					WithField("error", err).Error("Error while rolling back upload")
			}
		}
	}

	avatar, err := u.mediaHost.Upload(ctx, avatarPath)
	if err != nil {
		return nil, model.Internal("failed to upload avatar", err)
	}
	uploaded = append(uploaded, avatar.PublicID)

	coverImage := ""
	if coverImagePath != "" {
		cover, err := u.mediaHost.Upload(ctx, coverImagePath)
		if err != nil {
			rollback()
			return nil, model.Internal("failed to upload cover image", err)
		}
		uploaded = append(uploaded, cover.PublicID)
		coverImage = cover.URL
	}

	now := utils.GetCurrentTime()
	user, err := u.userRepository.Create(ctx, &model.User{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		Avatar:       avatar.URL,
		CoverImage:   coverImage,
		WatchHistory: []bson.ObjectID{},
		Password:     string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		rollback()
		return nil, err
	}
	return user, nil
}

func (u *UserUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*model.User, *dto.TokenPair, error) {
	user, err := u.userRepository.GetByUserName(ctx, req.Username)
	if err != nil {
		return nil, nil, model.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, nil, model.Unauthorized("invalid credentials")
	}

	pair, err := u.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	if err := u.userRepository.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (u *UserUsecase) Logout(ctx context.Context, userID bson.ObjectID) error {
	return u.userRepository.SetRefreshToken(ctx, userID, "")
}

// RefreshToken rotates the pair: the presented token must both verify and
// match the stored one, and the stored one is replaced on success.
func (u *UserUsecase) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	var claims jwt.StandardClaims
	token, err := jwt.ParseWithClaims(refreshToken, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(configuration.C.App.RefreshSecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, model.Unauthorized("invalid refresh token")
	}

	userID, err := bson.ObjectIDFromHex(claims.Issuer)
	if err != nil {
		return nil, model.Unauthorized("invalid refresh token")
	}
	user, err := u.userRepository.GetByID(ctx, userID)
	if err != nil {
		return nil, model.Unauthorized("invalid refresh token")
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, model.Unauthorized("refresh token is expired or used")
	}

	pair, err := u.issueTokens(user)
	if err != nil {
		return nil, err
	}
	if err := u.userRepository.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, err
	}
	return pair, nil
}

func (u *UserUsecase) ChangePassword(ctx context.Context, userID bson.ObjectID, req *dto.ChangePasswordRequest) error {
	user, err := u.userRepository.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return model.BadRequest("invalid old password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return model.Internal("failed to hash password", err)
	}
	return u.userRepository.SetPassword(ctx, userID, string(hash))
}

func (u *UserUsecase) GetCurrentUser(ctx context.Context, userID bson.ObjectID) (*model.User, error) {
	return u.userRepository.GetByID(ctx, userID)
}

func (u *UserUsecase) UpdateAccount(ctx context.Context, userID bson.ObjectID, req *dto.UpdateAccountRequest) (*model.User, error) {
	if req.FullName == "" && req.Email == "" {
		return nil, model.BadRequest("at least one of fullName or email is required")
	}
	return u.userRepository.UpdateAccountDetails(ctx, userID, req.FullName, req.Email)
}

func (u *UserUsecase) UpdateAvatar(ctx context.Context, userID bson.ObjectID, localPath string) (*model.User, error) {
	asset, err := u.mediaHost.Upload(ctx, localPath)
	if err != nil {
		return nil, model.Internal("failed to upload avatar", err)
	}
	return u.userRepository.UpdateAvatar(ctx, userID, asset.URL)
}

func (u *UserUsecase) UpdateCoverImage(ctx context.Context, userID bson.ObjectID, localPath string) (*model.User, error) {
	asset, err := u.mediaHost.Upload(ctx, localPath)
	if err != nil {
		return nil, model.Internal("failed to upload cover image", err)
	}
	return u.userRepository.UpdateCoverImage(ctx, userID, asset.URL)
}

func (u *UserUsecase) GetChannelProfile(ctx context.Context, username string, requesterID bson.ObjectID) (*model.ChannelProfile, error) {
	if username == "" {
		return nil, model.BadRequest("username is required")
	}
	return u.userRepository.GetChannelProfile(ctx, username, requesterID)
}

// AddWatchHistory appends the video to the user's history; rewatching moves
// it to the end instead of duplicating it.
func (u *UserUsecase) AddWatchHistory(ctx context.Context, userID bson.ObjectID, videoID string) error {
	id, err := bson.ObjectIDFromHex(videoID)
	if err != nil {
		return model.BadRequest("invalid video id")
	}
	return u.userRepository.AddToWatchHistory(ctx, userID, id)
}

func (u *UserUsecase) GetWatchHistory(ctx context.Context, userID bson.ObjectID) ([]model.VideoWithOwner, error) {
	return u.userRepository.GetWatchHistory(ctx, userID)
}

func (u *UserUsecase) issueTokens(user *model.User) (*dto.TokenPair, error) {
	app := configuration.C.App
	now := utils.GetCurrentTime()

	accessToken, err := utils.GenerateToken(map[string]interface{}{
		"iss":      user.ID.Hex(),
		"username": user.Username,
		"email":    user.Email,
		"fullName": user.FullName,
		"exp":      now.Add(time.Duration(app.AccessTokenTTLMinutes) * time.Minute).Unix(),
	}, app.SecretKey)
	if err != nil {
		return nil, model.Internal("failed to generate access token", err)
	}

	refreshToken, err := utils.GenerateToken(map[string]interface{}{
		"iss": user.ID.Hex(),
		"exp": now.Add(time.Duration(app.RefreshTokenTTLHours) * time.Hour).Unix(),
	}, app.RefreshSecretKey)
	if err != nil {
		return nil, model.Internal("failed to generate refresh token", err)
	}

	return &dto.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
