package dto

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type TweetRequest struct {
	Content string `json:"content" binding:"required"`
}

type PlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}
