package link

type CreateLinkRequest struct {
	DestinationURL string `json:"destination_url" binding:"required"`
	Name           string `json:"name"`
	ConfigID       *uint  `json:"config_id"`
}
