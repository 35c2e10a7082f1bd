package dto

import "mime/multipart"

// PublishVideoRequest is the multipart publish form: metadata plus the two
// assets that go to the media host.
type PublishVideoRequest struct {
	Title       string                `form:"title" binding:"required"`
	Description string                `form:"description" binding:"required"`
	VideoFile   *multipart.FileHeader `form:"videoFile" binding:"required"`
	Thumbnail   *multipart.FileHeader `form:"thumbnail" binding:"required"`
}

type UpdateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// VideoListRequest mirrors the feed query string.
type VideoListRequest struct {
	Limit       int    `form:"limit,default=10"`
	Query       string `form:"query"`
	SortBy      string `form:"sortBy,default=views"`
	SortType    string `form:"sortType,default=desc"`
	UserID      string `form:"userId"`
	LastVideoID string `form:"lastVideoId"`
	WithTotal   bool   `form:"withTotal"`
}

// CommentListRequest mirrors the comment list query string.
type CommentListRequest struct {
	Limit       int    `form:"limit,default=10"`
	SortBy      string `form:"sortBy,default=createdAt"`
	SortType    string `form:"sortType,default=desc"`
	LastVideoID string `form:"lastVideoId"`
}
