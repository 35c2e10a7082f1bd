package persistence

import (
	"context"
	"errors"

	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"
	"vidtube/infrastructure/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type UserRepository struct {
	db *mongo.Database
}

func NewUserRepository(db *mongo.Database) repository.IUser {
	return &UserRepository{db: db}
}

func (r *UserRepository) users() *mongo.Collection {
	return r.db.Collection(colUsers)
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	now := utils.GetCurrentTime()
	user.ID = bson.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.WatchHistory == nil {
		user.WatchHistory = []bson.ObjectID{}
	}
	if _, err := r.users().InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, model.Conflict("user with this email or username already exists")
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	var user model.User
	err := r.users().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByUserName(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.users().FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	count, err := r.users().CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) SetRefreshToken(ctx context.Context, id bson.ObjectID, token string) error {
	update := bson.M{"$set": bson.M{"updatedAt": utils.GetCurrentTime()}}
	if token == "" {
		update["$unset"] = bson.M{"refreshToken": ""}
	} else {
		update["$set"].(bson.M)["refreshToken"] = token
	}
	_, err := r.users().UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *UserRepository) SetPassword(ctx context.Context, id bson.ObjectID, passwordHash string) error {
	_, err := r.users().UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"password": passwordHash, "updatedAt": utils.GetCurrentTime()},
	})
	return err
}

func (r *UserRepository) UpdateAccountDetails(ctx context.Context, id bson.ObjectID, fullName, email string) (*model.User, error) {
	set := bson.M{"updatedAt": utils.GetCurrentTime()}
	if fullName != "" {
		set["fullName"] = fullName
	}
	if email != "" {
		set["email"] = email
	}
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set})
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id bson.ObjectID, url string) (*model.User, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$set": bson.M{"avatar": url, "updatedAt": utils.GetCurrentTime()},
	})
}

func (r *UserRepository) UpdateCoverImage(ctx context.Context, id bson.ObjectID, url string) (*model.User, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$set": bson.M{"coverImage": url, "updatedAt": utils.GetCurrentTime()},
	})
}

func (r *UserRepository) findOneAndUpdate(ctx context.Context, id bson.ObjectID, update bson.M) (*model.User, error) {
	var user model.User
	err := r.users().FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.NotFound("user not found")
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, model.Conflict("email already in use")
		}
		return nil, err
	}
	return &user, nil
}

// AddToWatchHistory appends the video to the end of the history, moving it
// there if it was already present so the list stays duplicate-free.
func (r *UserRepository) AddToWatchHistory(ctx context.Context, userID, videoID bson.ObjectID) error {
	if _, err := r.users().UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$pull": bson.M{"watchHistory": videoID},
	}); err != nil {
		return err
	}
	res, err := r.users().UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$push": bson.M{"watchHistory": videoID},
		"$set":  bson.M{"updatedAt": utils.GetCurrentTime()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) GetWatchHistory(ctx context.Context, userID bson.ObjectID) ([]model.VideoWithOwner, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: userID}}}},
		lookupStage(colVideos, "watchHistory", "_id", "watchHistory",
			ownerLookupStage("owner", "owner"),
			flattenFirstStage("owner"),
		),
		projectStage(bson.D{{Key: "watchHistory", Value: 1}}),
	}
	cursor, err := r.users().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()

	var rows []struct {
		WatchHistory []model.VideoWithOwner `bson:"watchHistory"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, model.NotFound("user not found")
	}
	if rows[0].WatchHistory == nil {
		return []model.VideoWithOwner{}, nil
	}
	return rows[0].WatchHistory, nil
}

// GetChannelProfile resolves the public channel page. The requester id is
// threaded in so isSubscribed is derived from explicit context, never from
// ambient state.
func (r *UserRepository) GetChannelProfile(ctx context.Context, username string, requesterID bson.ObjectID) (*model.ChannelProfile, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "username", Value: username}}}},
		lookupStage(colSubscriptions, "_id", "channel", "subscribers"),
		lookupStage(colSubscriptions, "_id", "subscriber", "subscribedTo"),
		bson.D{{Key: "$addFields", Value: bson.D{
			sizeField("subscriberCount", "subscribers"),
			sizeField("channelsSubscribedToCount", "subscribedTo"),
			{Key: "isSubscribed", Value: bson.D{{Key: "$in", Value: bson.A{
				requesterID, "$subscribers.subscriber",
			}}}},
		}}},
		projectStage(bson.D{
			{Key: "_id", Value: 1},
			{Key: "username", Value: 1},
			{Key: "fullName", Value: 1},
			{Key: "email", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "coverImage", Value: 1},
			{Key: "subscriberCount", Value: 1},
			{Key: "channelsSubscribedToCount", Value: 1},
			{Key: "isSubscribed", Value: 1},
		}),
	}
	cursor, err := r.users().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()

	var profiles []model.ChannelProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, model.NotFound("channel not found")
	}
	return &profiles[0], nil
}
