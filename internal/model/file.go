package model

type UploadBrandImageRequest struct{}

type UploadBrandImageResponse struct {
	URL string `json:"url"`
}
