package entity

import "time"

// ImageMetadata describes an original image. It is captured once at save time
// and persisted as the image's JSON sidecar.
type ImageMetadata struct {
	Format    string `json:"format"`
	MediaType string `json:"mediaType"`
	Size      int64  `json:"size"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// Image is the catalog record of a stored original.
type Image struct {
	ID        string    `json:"id"`
	UID       string    `json:"uid"`
	Format    string    `json:"format"`
	MediaType string    `json:"mediaType"`
	Size      int64     `json:"size"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewImage(id, uid string, meta *ImageMetadata) *Image {
	return &Image{
		ID:        id,
		UID:       uid,
		Format:    meta.Format,
		MediaType: meta.MediaType,
		Size:      meta.Size,
		Width:     meta.Width,
		Height:    meta.Height,
		CreatedAt: time.Now().UTC(),
	}
}

func (i *Image) Metadata() *ImageMetadata {
	return &ImageMetadata{
		Format:    i.Format,
		MediaType: i.MediaType,
		Size:      i.Size,
		Width:     i.Width,
		Height:    i.Height,
	}
}
