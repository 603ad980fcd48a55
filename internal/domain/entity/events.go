package entity

// ResizeEvent is reported after each thumbnail step and once the image is done.
type ResizeEvent struct {
	ID      string   `json:"id"`
	Resized []string `json:"resized"`
	Errors  int      `json:"errors"`
}

// BulkProgressEvent is reported after every image visited by a bulk resize.
type BulkProgressEvent struct {
	ID      string `json:"id"`
	Resized int    `json:"resized"`
	Total   int    `json:"total"`
}

// BulkResizeEvent is reported once a bulk resize finishes.
type BulkResizeEvent struct {
	Resized int `json:"resized"`
	Total   int `json:"total"`
}
