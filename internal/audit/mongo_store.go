package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

const mongoCollection = "audit_logs"

// MongoStore grava a trilha de auditoria numa coleção do MongoDB.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(mongoCollection),
	}, nil
}

func (s *MongoStore) Save(ctx context.Context, entry *models.AuditLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := s.coll.InsertOne(ctx, bson.M{
		"user_id":    entry.UserID,
		"action":     entry.Action,
		"entity":     entry.Entity,
		"entity_id":  entry.EntityID,
		"metadata":   entry.Metadata,
		"created_at": entry.CreatedAt,
	})
	return err
}

type mongoEntry struct {
	UserID    *uint     `bson:"user_id"`
	Action    string    `bson:"action"`
	Entity    string    `bson:"entity"`
	EntityID  *uint     `bson:"entity_id"`
	Metadata  string    `bson:"metadata"`
	CreatedAt time.Time `bson:"created_at"`
}

// List aplica os mesmos filtros do GormStore. Documentos não têm id numérico.
func (s *MongoStore) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	filter := bson.M{}
	if f.Action != "" {
		filter["action"] = f.Action
	}
	if f.Entity != "" {
		filter["entity"] = f.Entity
	}

	period := bson.M{}
	if f.From != nil {
		period["$gte"] = *f.From
	}
	if f.To != nil {
		period["$lt"] = *f.To
	}
	if len(period) > 0 {
		filter["created_at"] = period
	}

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var rows []mongoEntry
	if err := cur.All(ctx, &rows); err != nil {
		return nil, 0, err
	}

	logs := make([]models.AuditLog, 0, len(rows))
	for _, r := range rows {
		logs = append(logs, models.AuditLog{
			UserID:    r.UserID,
			Action:    r.Action,
			Entity:    r.Entity,
			EntityID:  r.EntityID,
			Metadata:  r.Metadata,
			CreatedAt: r.CreatedAt,
		})
	}
	return logs, total, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
