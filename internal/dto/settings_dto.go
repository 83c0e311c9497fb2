package dto

// SettingsResponse is the full snapshot of process-wide preferences.
type SettingsResponse struct {
	Currency         string `json:"currency"`
	PageSize         int    `json:"page_size"`
	CheckoutHour     int    `json:"checkout_hour"`
	StatsRecentLimit int    `json:"stats_recent_limit"`
}

// UpdateSettingsRequest patches any subset of the settings.
type UpdateSettingsRequest struct {
	Currency         *string `json:"currency"           validate:"omitempty,len=3"`
	PageSize         *int    `json:"page_size"          validate:"omitempty,min=1,max=200"`
	CheckoutHour     *int    `json:"checkout_hour"      validate:"omitempty,min=0,max=23"`
	StatsRecentLimit *int    `json:"stats_recent_limit" validate:"omitempty,min=1,max=100"`
}
