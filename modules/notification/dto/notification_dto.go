package dto

// MarkAsReadRequest flags specific notifications as read.
type MarkAsReadRequest struct {
	IDs []string `json:"ids"`
}
