package app

import (
	"os"
	"strconv"

	"go-satpam/internal/shared/connection"
	"go-satpam/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	blobs, err := buildBlobStore()
	if err != nil {
		return err
	}

	// 2. Register Modules & Routes
	return registerModules(router, sqlDB, gormDB, redisClient, blobs, zap.L())
}

// buildBlobStore memilih backend bukti: MinIO kalau endpoint dikonfigurasi,
// fallback ke disk lokal untuk development.
func buildBlobStore() (storage.BlobStore, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		root := os.Getenv("EVIDENCE_DIR")
		if root == "" {
			root = "storage/evidence"
		}
		zap.L().Named("app").Info("using disk blob store", zap.String("root", root))
		return storage.NewDiskStore(root, "area-reports"), nil
	}

	useSSL, _ := strconv.ParseBool(os.Getenv("MINIO_USE_SSL"))
	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "satpam-evidence"
	}

	client, err := connection.ConnectMinioWithRetry(
		endpoint,
		os.Getenv("MINIO_ACCESS_KEY"),
		os.Getenv("MINIO_SECRET_KEY"),
		bucket,
		useSSL,
		5,
	)
	if err != nil {
		return nil, err
	}
	zap.L().Named("app").Info("minio connection established", zap.String("bucket", bucket))
	return storage.NewMinioStore(client, bucket, "area-reports"), nil
}
