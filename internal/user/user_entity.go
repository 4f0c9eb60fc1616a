package user

import (
	"time"

	"go-satpam/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"column:name;type:varchar(255);not null"`
	NIK      string    `gorm:"column:nik;type:varchar(16);not null;uniqueIndex:uq_users_nik"` // Nomor Induk Kependudukan
	NIP      string    `gorm:"column:nip;type:varchar(50);not null;uniqueIndex:uq_users_nip"` // Nomor Induk Pegawai
	Email    string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_users_email"`
	Phone    *string   `gorm:"column:phone;type:varchar(20)"`
	Role     string    `gorm:"column:role;type:varchar(20);not null;default:user;index"`
	IsActive bool      `gorm:"column:is_active;default:true;index"`
	Password string    `gorm:"column:password;type:text;not null"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}

// DomainRole mengembalikan variant tertutup; role dari storage selalu salah
// satu dari tiga nilai enum.
func (u *User) DomainRole() domain.Role {
	r, _ := domain.ParseRole(u.Role)
	return r
}
