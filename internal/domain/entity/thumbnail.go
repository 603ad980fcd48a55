package entity

// ThumbnailSpec describes one derived variant of an image. Name is used as the
// thumbnail's path segment and may not contain dots or separators. Size is the
// bounding box edge in pixels.
type ThumbnailSpec struct {
	Name        string `json:"name" yaml:"name"`
	Size        int    `json:"size" yaml:"size"`
	// Progressive is recorded but output is always baseline.
	Progressive bool   `json:"progressive,omitempty" yaml:"progressive"`
}

// ThumbnailSource yields the thumbnail specs for one resize operation.
type ThumbnailSource interface {
	Thumbnails(meta *ImageMetadata) []ThumbnailSpec
	// NeedsMetadata reports whether Thumbnails reads the image metadata.
	NeedsMetadata() bool
}

// StaticThumbnails is a fixed, ordered list of specs.
type StaticThumbnails []ThumbnailSpec

func (s StaticThumbnails) Thumbnails(*ImageMetadata) []ThumbnailSpec {
	return s
}

func (s StaticThumbnails) NeedsMetadata() bool {
	return false
}

// DynamicThumbnails computes the specs from the original's metadata.
type DynamicThumbnails func(meta *ImageMetadata) []ThumbnailSpec

func (d DynamicThumbnails) Thumbnails(meta *ImageMetadata) []ThumbnailSpec {
	return d(meta)
}

func (d DynamicThumbnails) NeedsMetadata() bool {
	return true
}

// SkipUpscale drops every spec whose size exceeds both dimensions of the original.
func SkipUpscale(specs []ThumbnailSpec) DynamicThumbnails {
	return func(meta *ImageMetadata) []ThumbnailSpec {
		out := make([]ThumbnailSpec, 0, len(specs))
		for _, spec := range specs {
			if spec.Size > meta.Width && spec.Size > meta.Height {
				continue
			}
			out = append(out, spec)
		}
		return out
	}
}
