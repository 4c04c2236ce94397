// internal/repositories/audit_repository.go
// Administrative audit trail storage, carried forward from
// original_source/app/models/audit_log.py into MongoDB — grounded on
// the teacher's AnalyticsService.LogEvent bson.M insert pattern.

package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"padeltour/internal/apperrors"
	"padeltour/internal/models"
)

type AuditRepository struct {
	db *mongo.Database
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{db: db}
}

// Record appends one audit entry. Audit logging never blocks the
// mutating operation it describes on a non-transient failure; callers
// log and continue rather than fail the request.
func (r *AuditRepository) Record(ctx context.Context, rec models.AuditRecord) error {
	doc := bson.M{
		"admin_id":       rec.AdminID,
		"action":         rec.Action,
		"target_type":    rec.TargetType,
		"target_id":      rec.TargetID,
		"old_values":     rec.OldValues,
		"new_values":     rec.NewValues,
		"reason":         rec.Reason,
		"client_address": rec.ClientAddr,
		"timestamp":      rec.Timestamp,
	}
	_, err := r.db.Collection("audit_log").InsertOne(ctx, doc)
	if err != nil {
		return apperrors.Wrap(apperrors.TransientStore, "failed to write audit record", err)
	}
	return nil
}

// ListByTarget returns the audit trail for a single entity, newest first.
func (r *AuditRepository) ListByTarget(ctx context.Context, targetType, targetID string, limit int64) ([]models.AuditRecord, error) {
	filter := bson.M{"target_type": targetType, "target_id": targetID}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(limit)

	cursor, err := r.db.Collection("audit_log").Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.TransientStore, "failed to query audit log", err)
	}
	defer cursor.Close(ctx)

	records := make([]models.AuditRecord, 0)
	for cursor.Next(ctx) {
		var doc struct {
			AdminID      string                 `bson:"admin_id"`
			Action       string                 `bson:"action"`
			TargetType   string                 `bson:"target_type"`
			TargetID     string                 `bson:"target_id"`
			OldValues    map[string]interface{} `bson:"old_values"`
			NewValues    map[string]interface{} `bson:"new_values"`
			Reason       string                 `bson:"reason"`
			ClientAddr   string                 `bson:"client_address"`
			Timestamp    time.Time              `bson:"timestamp"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperrors.Wrap(apperrors.FatalStore, "failed to decode audit record", err)
		}
		rec := models.AuditRecord{
			AdminID:    doc.AdminID,
			Action:     doc.Action,
			TargetType: doc.TargetType,
			TargetID:   doc.TargetID,
			OldValues:  doc.OldValues,
			NewValues:  doc.NewValues,
			Reason:     doc.Reason,
			ClientAddr: doc.ClientAddr,
			Timestamp:  doc.Timestamp,
		}
		records = append(records, rec)
	}
	return records, nil
}
