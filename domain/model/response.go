package model

// ApiResponse is the envelope every endpoint returns.
type ApiResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

func NewApiResponse(statusCode int, data interface{}, message string) ApiResponse {
	return ApiResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

// ListPayload wraps a cursor-paginated page. LastVideoID carries the opaque
// continuation token; TotalVideos is only present when the caller asked for it.
type ListPayload struct {
	Data        interface{} `json:"data"`
	HasMore     bool        `json:"hasMore"`
	TotalVideos *int64      `json:"totalVideos,omitempty"`
	LastVideoID string      `json:"lastVideoId"`
}
