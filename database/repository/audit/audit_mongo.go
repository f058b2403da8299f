package auditRepo

import (
	"context"
	"fmt"
	"time"

	"smartbooking/database"
	"smartbooking/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AuditLogRepository stores append-only audit entries.
type AuditLogRepository interface {
	Create(entry *models.AuditLog) error
	FindAll() ([]models.AuditLog, error)
}

// MongoAuditLogRepo implements AuditLogRepository using MongoDB.
type MongoAuditLogRepo struct {
	coll *mongo.Collection
}

// NewMongoAuditLogRepo creates a new AuditLogRepository backed by the
// audit_logs collection.
func NewMongoAuditLogRepo() AuditLogRepository {
	coll := database.Collection("audit_logs")
	repo := &MongoAuditLogRepo{coll: coll}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		fmt.Printf("failed to create audit indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create appends an audit entry.
func (r *MongoAuditLogRepo) Create(entry *models.AuditLog) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}
	return nil
}

// FindAll lists all audit entries, newest first.
func (r *MongoAuditLogRepo) FindAll() ([]models.AuditLog, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.AuditLog
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit entries: %w", err)
	}
	return entries, nil
}
