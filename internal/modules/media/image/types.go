package image

type UpdateImageDTO struct {
	URL    *string `json:"url"    binding:"omitempty,url"`
	Width  *int    `json:"width"  binding:"omitempty,min=1"`
	Height *int    `json:"height" binding:"omitempty,min=1"`
	Tipo   *string `json:"tipo"   binding:"omitempty,oneof=mobile desktop"`
}

// Download is a file ready to be sent as an attachment.
type Download struct {
	Data        []byte
	ContentType string
	Filename    string
}
