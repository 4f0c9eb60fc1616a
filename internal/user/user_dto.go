package user

type CreateUserRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	NIK      string  `json:"nik" binding:"required,len=16"`
	NIP      string  `json:"nip" binding:"required,max=50"`
	Email    string  `json:"email" binding:"required,email,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Role     string  `json:"role" binding:"required,oneof=superadmin admin user"`
	Password string  `json:"password" binding:"required,min=8"`
	IsActive *bool   `json:"is_active"`
}

type UpdateUserRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	NIK      string  `json:"nik" binding:"required,len=16"`
	NIP      string  `json:"nip" binding:"required,max=50"`
	Email    string  `json:"email" binding:"required,email,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Role     string  `json:"role" binding:"required,oneof=superadmin admin user"`
	Password string  `json:"password" binding:"omitempty,min=8"`
	IsActive *bool   `json:"is_active"`
}

// ListFilters adalah filter listing yang sudah dinormalisasi; di-echo kembali
// di response agar client bisa mengulang query untuk halaman berikutnya.
type ListFilters struct {
	Search string `json:"search,omitempty" form:"search"`
	Role   string `json:"role,omitempty" form:"role"`
	Status string `json:"status,omitempty" form:"status"` // active | inactive | ""
	Page   int    `json:"page,omitempty" form:"page"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	NIK       string  `json:"nik"`
	NIP       string  `json:"nip"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	Role      string  `json:"role"`
	IsActive  bool    `json:"is_active"`
	CreatedAt string  `json:"created_at"`
}
