package auth

type RegisterRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	NIK      string  `json:"nik" binding:"required,len=16"`
	NIP      string  `json:"nip" binding:"required,max=50"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Password string  `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	NIK   string `json:"nik"`
	NIP   string `json:"nip"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
