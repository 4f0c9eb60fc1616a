package shift

type UpsertShiftRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	StartTime   string  `json:"start_time" binding:"required"`
	EndTime     string  `json:"end_time" binding:"required"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type ListFilters struct {
	Search string `json:"search,omitempty" form:"search"`
	Status string `json:"status,omitempty" form:"status"` // active | inactive | ""
	Page   int    `json:"page,omitempty" form:"page"`
}

type ShiftResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
}
