package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/locauto/rental-system/internal/core/domain"
	"github.com/locauto/rental-system/internal/core/ports"
)

const auditCollection = "audit_events"

// AuditRepository persists security audit events.
type AuditRepository struct {
	db *mongo.Database
}

// NewAuditRepository creates an AuditRepository on the audit_events collection.
func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	doc := bson.M{
		"actor":   event.Actor,
		"action":  event.Action,
		"subject": event.Subject,
		"at":      event.At.UTC(),
	}

	if _, err := r.db.Collection(auditCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
