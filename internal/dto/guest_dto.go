package dto

// ─── Filter / List ──────────────────────────────────────────────────────────

type GuestFilter struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type GuestListResponse struct {
	Data  []GuestResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateGuestRequest struct {
	FullName string  `json:"full_name" validate:"required,min=2"`
	Email    *string `json:"email"     validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	IDNumber *string `json:"id_number"`
	Address  *string `json:"address"`
}

type UpdateGuestRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2"`
	Email    *string `json:"email"     validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	IDNumber *string `json:"id_number"`
	Address  *string `json:"address"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type GuestResponse struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	IDNumber *string `json:"id_number,omitempty"`
	Address  *string `json:"address,omitempty"`
}
