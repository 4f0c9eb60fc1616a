package consumer

import (
	"context"
	"encoding/json"

	"go-satpam/internal/dashboard"
	"go-satpam/internal/events"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeReportLifecycle membaca event laporan dan membuang cache statistik
// dashboard yang sudah basi. Cache memang punya TTL pendek, consumer ini
// membuat angka admin segar begitu laporan masuk atau berubah status.
func ConsumeReportLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.report_lifecycle")
	log.Info("report lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("report lifecycle consumer stopped")
				return
			}
			log.Error("fetch report lifecycle message failed", zap.Error(err))
			continue
		}

		ownerID, ok := resolveOwner(msg.Value)
		if !ok {
			log.Error("decode report lifecycle event failed",
				zap.ByteString("payload", msg.Value),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := dashboard.InvalidateStats(ctx, rdb, ownerID); err != nil {
			log.Error("invalidate dashboard stats failed",
				zap.String("owner_id", ownerID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit report lifecycle message failed", zap.Error(err))
			continue
		}

		log.Debug("dashboard stats invalidated", zap.String("owner_id", ownerID))
	}
}

func resolveOwner(payload []byte) (string, bool) {
	var envelope struct {
		EventType string `json:"event_type"`
		UserID    string `json:"user_id"`
		OwnerID   string `json:"owner_id"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return "", false
	}

	switch envelope.EventType {
	case events.EventReportSubmitted:
		return envelope.UserID, true
	case events.EventReportStatusChanged:
		return envelope.OwnerID, true
	}
	return "", false
}
