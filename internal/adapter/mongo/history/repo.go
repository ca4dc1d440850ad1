// Package history stores the append-only ledger of profile changes.
package history

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	driver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/foodi-app/foodi-backend/internal/adapter/mongo"
	"github.com/foodi-app/foodi-backend/internal/domain"
)

const collectionName = "profile_history"

type Repo struct {
	coll *driver.Collection
}

func NewRepo(client *mongo.Client) *Repo {
	return &Repo{coll: client.Database().Collection(collectionName)}
}

type changeDoc struct {
	ID        string        `bson:"_id"`
	UserID    string        `bson:"user_id"`
	Field     string        `bson:"field"`
	OldValue  any           `bson:"old_value"`
	NewValue  any           `bson:"new_value"`
	ChangedAt bson.DateTime `bson:"changed_at"`
}

// Append inserts one ledger record per change. Records are write-once, so
// this is the only mutation the collection ever sees.
func (r *Repo) Append(ctx context.Context, records []domain.ProfileChangeRecord) error {
	if len(records) == 0 {
		return nil
	}
	docs := make([]any, 0, len(records))
	for _, rec := range records {
		docs = append(docs, changeDoc{
			ID:        rec.ID.String(),
			UserID:    rec.UserID.String(),
			Field:     rec.Field,
			OldValue:  rec.OldValue,
			NewValue:  rec.NewValue,
			ChangedAt: bson.NewDateTimeFromTime(rec.ChangedAt),
		})
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return mongo.MapError(err, "history.Append")
	}
	return nil
}

// List returns the newest records for a user, most recent first.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ProfileChangeRecord, error) {
	cursor, err := r.coll.Find(ctx,
		bson.D{{Key: "user_id", Value: userID.String()}},
		options.Find().
			SetSort(bson.D{{Key: "changed_at", Value: -1}}).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, mongo.MapError(err, "history.List")
	}

	var docs []changeDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, mongo.MapError(err, "history.List")
	}

	records := make([]domain.ProfileChangeRecord, 0, len(docs))
	for _, doc := range docs {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			return nil, mongo.MapError(err, "history.List")
		}
		records = append(records, domain.ProfileChangeRecord{
			ID:        id,
			UserID:    userID,
			Field:     doc.Field,
			OldValue:  doc.OldValue,
			NewValue:  doc.NewValue,
			ChangedAt: doc.ChangedAt.Time(),
		})
	}
	return records, nil
}
