package main

import (
	"os"

	"go-satpam/internal/domain"
	"go-satpam/internal/report"
	"go-satpam/internal/shared/connection"
	"go-satpam/internal/shift"
	"go-satpam/internal/user"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const outboxTableDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id UUID PRIMARY KEY,
	request_id TEXT,
	aggregate_type TEXT NOT NULL,
	aggregate_id UUID NOT NULL,
	event_type TEXT NOT NULL,
	topic TEXT NOT NULL,
	payload JSONB NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	error_message TEXT,
	next_retry_at TIMESTAMPTZ,
	processed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	db, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}

	if err := migrate(db); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}
	logger.Info("migration complete")

	if err := seedUsers(db); err != nil {
		logger.Fatal("seed users failed", zap.Error(err))
	}
	if err := seedShifts(db); err != nil {
		logger.Fatal("seed shifts failed", zap.Error(err))
	}
	logger.Info("seed complete")
}

func migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return err
	}
	if err := db.AutoMigrate(&user.User{}, &shift.Shift{}, &report.AreaReport{}); err != nil {
		return err
	}
	return db.Exec(outboxTableDDL).Error
}

func seedUsers(db *gorm.DB) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []user.User{
		{
			Name:  "Super Admin",
			NIK:   "1234567890123456",
			NIP:   "SA-001",
			Email: "superadmin@example.com",
			Role:  string(domain.RoleSuperadmin),
		},
		{
			Name:  "Admin Satpam",
			NIK:   "1234567890123457",
			NIP:   "ADM-001",
			Email: "admin@example.com",
			Role:  string(domain.RoleAdmin),
		},
		{
			Name:  "Budi Santoso",
			NIK:   "1234567890123458",
			NIP:   "GRD-001",
			Email: "budi@example.com",
			Role:  string(domain.RoleGuard),
		},
		{
			Name:  "Agus Wijaya",
			NIK:   "1234567890123459",
			NIP:   "GRD-002",
			Email: "agus@example.com",
			Role:  string(domain.RoleGuard),
		},
		{
			Name:  "Siti Rahayu",
			NIK:   "1234567890123460",
			NIP:   "GRD-003",
			Email: "siti@example.com",
			Role:  string(domain.RoleGuard),
		},
	}

	for _, u := range users {
		u.ID = uuid.New()
		u.IsActive = true
		u.Password = string(hashed)
		// Idempotent: akun yang sudah ada tidak disentuh
		if err := db.Where("email = ?", u.Email).FirstOrCreate(&u).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedShifts(db *gorm.DB) error {
	pagiDesc := "Shift pagi area utama"
	siangDesc := "Shift siang area utama"

	shifts := []shift.Shift{
		{
			Name:        "Shift Pagi",
			StartTime:   "06:00",
			EndTime:     "14:00",
			Description: &pagiDesc,
		},
		{
			Name:        "Shift Siang",
			StartTime:   "14:00",
			EndTime:     "22:00",
			Description: &siangDesc,
		},
	}

	for _, s := range shifts {
		s.ID = uuid.New()
		s.IsActive = true
		if err := db.Where("name = ?", s.Name).FirstOrCreate(&s).Error; err != nil {
			return err
		}
	}
	return nil
}
