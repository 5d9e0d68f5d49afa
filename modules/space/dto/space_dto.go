package dto

// CreateSpaceRequest creates a bookable space in the caller's organization.
type CreateSpaceRequest struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

// UpdateRulesRequest replaces the booking policy of a space.
type UpdateRulesRequest struct {
	SlotDurationMinutes int    `json:"slot_duration_minutes"`
	OpenTime            string `json:"open_time"`
	CloseTime           string `json:"close_time"`
	MaxAdvanceDays      int    `json:"max_advance_days"`
	MaxDurationMinutes  int    `json:"max_duration_minutes"`
	AllowRecurring      bool   `json:"allow_recurring"`
	BufferMinutes       int    `json:"buffer_minutes"`
}
