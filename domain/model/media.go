package model

// MediaAsset is what the external media host returns for an uploaded file.
type MediaAsset struct {
	URL      string  `json:"url"`
	PublicID string  `json:"publicId"`
	Duration float64 `json:"duration,omitempty"`
}
