package mongorepo

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	domainRepo "github.com/sangkips/flowpilot-api/internal/domain/repository"
	"github.com/sangkips/flowpilot-api/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrdersCollection is the collection holding order documents
const OrdersCollection = "orders"

type orderRepository struct {
	coll *mongo.Collection
}

// NewOrderRepository creates an order repository over the orders collection
func NewOrderRepository(db *mongo.Database) domainRepo.OrderRepository {
	return &orderRepository{coll: db.Collection(OrdersCollection)}
}

func (r *orderRepository) ListAll(ctx context.Context) ([]entity.OrderRecord, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// ListSince filters after normalisation since stored dates are free-form strings
func (r *orderRepository) ListSince(ctx context.Context, since time.Time) ([]entity.OrderRecord, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterSince(all, since), nil
}

func (r *orderRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.OrderRecord, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	params.Validate()
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(int64(params.Offset())).
		SetLimit(int64(params.PerPage))
	records, err := r.find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*entity.OrderRecord, error) {
	var doc bson.M
	err := r.coll.FindOne(ctx, bson.M{"_id": documentID(id)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec := NormalizeOrder(doc)
	return &rec, nil
}

func (r *orderRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]entity.OrderRecord, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]entity.OrderRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, NormalizeOrder(doc))
	}
	return records, nil
}

// FilterSince keeps dated orders on or after since
func FilterSince(orders []entity.OrderRecord, since time.Time) []entity.OrderRecord {
	out := make([]entity.OrderRecord, 0, len(orders))
	for _, o := range orders {
		if o.HasDate() && !o.Date.Before(since) {
			out = append(out, o)
		}
	}
	return out
}
