package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// MovementRepository implements ports.MovementRepository on the
// stock_movements audit collection.
type MovementRepository struct {
	col *mongo.Collection
}

func NewMovementRepository(db *mongo.Database) *MovementRepository {
	return &MovementRepository{col: db.Collection(collectionMovements)}
}

type mongoMovement struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	SweetID           string             `bson:"sweetId"`
	UserID            string             `bson:"userId,omitempty"`
	Kind              string             `bson:"kind"`
	Quantity          int                `bson:"quantity"`
	ResultingQuantity int                `bson:"resultingQuantity"`
	At                time.Time          `bson:"at"`
}

// Insert persists one movement. The caller's struct receives the new id.
func (r *MovementRepository) Insert(ctx context.Context, m *domain.StockMovement) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoMovement{
		ID:                primitive.NewObjectID(),
		SweetID:           m.SweetID,
		UserID:            m.UserID,
		Kind:              string(m.Kind),
		Quantity:          m.Quantity,
		ResultingQuantity: m.ResultingQuantity,
		At:                m.At.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	m.ID = doc.ID.Hex()
	return nil
}

func (r *MovementRepository) ListBySweet(ctx context.Context, sweetID string) ([]domain.StockMovement, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"sweetId": sweetID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find movements: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]domain.StockMovement, 0)
	for cur.Next(ctx) {
		var mm mongoMovement
		if err := cur.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode movement: %w", err)
		}
		out = append(out, domain.StockMovement{
			ID:                mm.ID.Hex(),
			SweetID:           mm.SweetID,
			UserID:            mm.UserID,
			Kind:              domain.MovementKind(mm.Kind),
			Quantity:          mm.Quantity,
			ResultingQuantity: mm.ResultingQuantity,
			At:                mm.At,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate movements: %w", err)
	}
	return out, nil
}
