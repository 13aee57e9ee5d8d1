package mongorepo

import (
	"context"
	"errors"

	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	domainRepo "github.com/sangkips/flowpilot-api/internal/domain/repository"
	"github.com/sangkips/flowpilot-api/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InventoryCollection is the collection holding inventory documents
const InventoryCollection = "inventory"

type inventoryRepository struct {
	coll *mongo.Collection
}

// NewInventoryRepository creates an inventory repository over the inventory collection
func NewInventoryRepository(db *mongo.Database) domainRepo.InventoryRepository {
	return &inventoryRepository{coll: db.Collection(InventoryCollection)}
}

func (r *inventoryRepository) List(ctx context.Context, filter entity.InventoryFilter) ([]entity.InventoryRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	return r.find(ctx, InventoryFilterQuery(filter), opts)
}

func (r *inventoryRepository) ListPage(ctx context.Context, filter entity.InventoryFilter, params *pagination.PaginationParams) ([]entity.InventoryRecord, int64, error) {
	query := InventoryFilterQuery(filter)
	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	params.Validate()
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(params.Offset())).
		SetLimit(int64(params.PerPage))
	records, err := r.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *inventoryRepository) GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	var doc bson.M
	err := r.coll.FindOne(ctx, bson.M{"_id": documentID(id)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec := NormalizeInventory(doc)
	return &rec, nil
}

func (r *inventoryRepository) GetByName(ctx context.Context, name string) (*entity.InventoryRecord, error) {
	or := make(bson.A, 0, len(inventoryNameKeys))
	for _, k := range inventoryNameKeys {
		or = append(or, bson.M{k: name})
	}

	var doc bson.M
	err := r.coll.FindOne(ctx, bson.M{"$or": or}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec := NormalizeInventory(doc)
	return &rec, nil
}

func (r *inventoryRepository) Create(ctx context.Context, item *entity.InventoryRecord) error {
	oid := primitive.NewObjectID()
	doc := InventoryDocument(*item)
	doc["_id"] = oid
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	item.ID = oid.Hex()
	return nil
}

func (r *inventoryRepository) Update(ctx context.Context, item *entity.InventoryRecord) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": documentID(item.ID)},
		bson.M{"$set": InventoryDocument(*item)},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": documentID(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) UpdatePrice(ctx context.Context, id string, price float64) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": documentID(id)},
		bson.M{"$set": bson.M{inventoryPriceKeys[0]: price}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]entity.InventoryRecord, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]entity.InventoryRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, NormalizeInventory(doc))
	}
	return records, nil
}

// InventoryFilterQuery translates a filter into a collection query
func InventoryFilterQuery(filter entity.InventoryFilter) bson.M {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.WarehouseLocation != "" {
		query["warehouse_location"] = filter.WarehouseLocation
	}
	return query
}

// documentID uses an ObjectID when the id is a valid hex id and the raw string otherwise
func documentID(id string) interface{} {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}
