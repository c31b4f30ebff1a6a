package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mithaighar/sweetshop-api/internal/core/domain"
	"github.com/mithaighar/sweetshop-api/internal/core/ports"
)

const sweetsCollection = "sweets"

// SweetRepository implements ports.SweetRepository on MongoDB.
type SweetRepository struct {
	coll *mongo.Collection
}

func NewSweetRepository(db *mongo.Database) *SweetRepository {
	return &SweetRepository{coll: db.Collection(sweetsCollection)}
}

type mongoSweet struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Category string             `bson:"category"`
	Price    float64            `bson:"price"`
	Quantity int                `bson:"quantity"`
}

func (ms mongoSweet) toDomain() domain.Sweet {
	return domain.Sweet{
		ID:       ms.ID.Hex(),
		Name:     ms.Name,
		Category: ms.Category,
		Price:    ms.Price,
		Quantity: ms.Quantity,
	}
}

func (r *SweetRepository) Create(ctx context.Context, sweet *domain.Sweet) (*domain.Sweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoSweet{
		Name:     sweet.Name,
		Category: sweet.Category,
		Price:    sweet.Price,
		Quantity: sweet.Quantity,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateSweet
		}
		return nil, fmt.Errorf("insert sweet: %w", err)
	}

	created := *sweet
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *SweetRepository) FindByID(ctx context.Context, id string) (*domain.Sweet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSweetNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSweet
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSweetNotFound
		}
		return nil, fmt.Errorf("find sweet: %w", err)
	}

	sweet := ms.toDomain()
	return &sweet, nil
}

// List returns the sweets matching filter in store order. All set criteria
// are combined conjunctively.
func (r *SweetRepository) List(ctx context.Context, filter ports.ListSweetsFilter) ([]domain.Sweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Name != "" {
		query["name"] = bson.M{"$regex": filter.Name, "$options": "i"}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["price"] = price
	}

	cur, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sweets: %w", err)
	}
	defer cur.Close(ctx)

	sweets := make([]domain.Sweet, 0)
	for cur.Next(ctx) {
		var ms mongoSweet
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode sweet: %w", err)
		}
		sweets = append(sweets, ms.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list sweets: %w", err)
	}
	return sweets, nil
}

func (r *SweetRepository) Update(ctx context.Context, id string, patch ports.SweetPatch) (*domain.Sweet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSweetNotFound
	}

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Quantity != nil {
		set["quantity"] = *patch.Quantity
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSweet
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ms)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSweetNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateSweet
		}
		return nil, fmt.Errorf("update sweet: %w", err)
	}

	sweet := ms.toDomain()
	return &sweet, nil
}

func (r *SweetRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSweetNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete sweet: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSweetNotFound
	}
	return nil
}

// DecrementStock applies a conditional $inc: the filter requires the current
// quantity to cover qty, so the quantity can never go negative even under
// concurrent purchases. A non-matching filter surfaces as ErrSweetNotFound.
func (r *SweetRepository) DecrementStock(ctx context.Context, id string, qty int) (*domain.Sweet, error) {
	return r.adjustStock(ctx, id, -qty, bson.M{"quantity": bson.M{"$gte": qty}})
}

// IncrementStock applies an unconditional $inc with no upper bound.
func (r *SweetRepository) IncrementStock(ctx context.Context, id string, qty int) (*domain.Sweet, error) {
	return r.adjustStock(ctx, id, qty, nil)
}

func (r *SweetRepository) adjustStock(ctx context.Context, id string, delta int, extra bson.M) (*domain.Sweet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSweetNotFound
	}

	filter := bson.M{"_id": oid}
	for k, v := range extra {
		filter[k] = v
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSweet
	err = r.coll.FindOneAndUpdate(
		ctx,
		filter,
		bson.M{"$inc": bson.M{"quantity": delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ms)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSweetNotFound
		}
		return nil, fmt.Errorf("adjust stock: %w", err)
	}

	sweet := ms.toDomain()
	return &sweet, nil
}

// EnsureIndexes creates the unique name index that backs the duplicate-name
// conflict, plus supporting indexes for search.
func (r *SweetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
