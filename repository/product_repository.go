package repository

import (
	"context"
	"errors"
	"topup-store/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a catalog document or embedded package does
// not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateID is returned when creating a product whose id is taken.
var ErrDuplicateID = errors.New("product id already exists")

// ProductRepository defines the interface for catalog data access.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id string, updates bson.M) error
	Delete(ctx context.Context, id string) error
	AddPackage(ctx context.Context, productID string, pkg models.Package) error
	UpdatePackage(ctx context.Context, productID string, pkg models.Package) error
	RemovePackage(ctx context.Context, productID, packageID string) error
}

// MongoProductRepository implements ProductRepository on a Mongo collection.
type MongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a new MongoProductRepository.
func NewMongoProductRepository(db *mongo.Database) ProductRepository {
	return &MongoProductRepository{collection: db.Collection("products")}
}

// FindAll retrieves the whole catalog, newest first.
func (r *MongoProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID retrieves one product document.
func (r *MongoProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts a new product document. The _id key enforces uniqueness.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	_, err := r.collection.InsertOne(ctx, product)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateID
	}
	return err
}

// Update applies a partial $set update to one product.
func (r *MongoProductRepository) Update(ctx context.Context, id string, updates bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product document. Embedded packages go with it.
func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddPackage appends a package to the product's embedded array.
func (r *MongoProductRepository) AddPackage(ctx context.Context, productID string, pkg models.Package) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$push": bson.M{"packages": pkg}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePackage replaces one embedded package in place via the positional
// operator, keeping the array order stable.
func (r *MongoProductRepository) UpdatePackage(ctx context.Context, productID string, pkg models.Package) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": productID, "packages.id": pkg.ID},
		bson.M{"$set": bson.M{"packages.$": pkg}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemovePackage pulls one embedded package out of the array.
func (r *MongoProductRepository) RemovePackage(ctx context.Context, productID, packageID string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$pull": bson.M{"packages": bson.M{"id": packageID}}},
	)
	if err != nil {
		return err
	}
	// MatchedCount covers a missing product, ModifiedCount a missing package.
	if result.MatchedCount == 0 || result.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}
