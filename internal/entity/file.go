package entity

type Bucket string

const (
	Image Bucket = "images"
)
