package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cardapio-digital/domain/models"
	"cardapio-digital/domain/repositories"
)

type CategoryRepositoryImpl struct {
	store *Store
}

func NewCategoryRepository(store *Store) repositories.CategoryRepository {
	return &CategoryRepositoryImpl{store: store}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *models.Category) error {
	coll, err := r.store.collection(ctx, CategoriesCollection)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	rec := &categoryRecord{
		ID:        primitive.NewObjectID(),
		Name:      category.Name,
		Slug:      category.Slug,
		Image:     category.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := coll.InsertOne(ctx, rec); err != nil {
		return r.store.wrap("categories.insert", err)
	}

	category.ID = rec.ID.Hex()
	category.CreatedAt = now
	category.UpdatedAt = now
	return nil
}

func (r *CategoryRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Category, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return r.findOne(ctx, "categories.findById", bson.M{"_id": oid})
}

func (r *CategoryRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	if slug == "" {
		return nil, nil
	}
	return r.findOne(ctx, "categories.findBySlug", bson.M{"slug": slug})
}

func (r *CategoryRepositoryImpl) findOne(ctx context.Context, op string, filter bson.M) (*models.Category, error) {
	coll, err := r.store.collection(ctx, CategoriesCollection)
	if err != nil {
		return nil, err
	}

	var rec categoryRecord
	if err := coll.FindOne(ctx, filter).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, r.store.wrap(op, err)
	}
	return rec.toModel(), nil
}

func (r *CategoryRepositoryImpl) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	oid, ok := parseID(category.ID)
	if !ok {
		return nil, nil
	}
	coll, err := r.store.collection(ctx, CategoriesCollection)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"name":      category.Name,
		"slug":      category.Slug,
		"image":     category.Image,
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rec categoryRecord
	if err := coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, r.store.wrap("categories.update", err)
	}
	return rec.toModel(), nil
}

func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return nil
	}
	coll, err := r.store.collection(ctx, CategoriesCollection)
	if err != nil {
		return err
	}
	if _, err := coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return r.store.wrap("categories.delete", err)
	}
	return nil
}

func (r *CategoryRepositoryImpl) List(ctx context.Context) ([]*models.Category, error) {
	coll, err := r.store.collection(ctx, CategoriesCollection)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, r.store.wrap("categories.find", err)
	}
	defer cursor.Close(ctx)

	var recs []categoryRecord
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, r.store.wrap("categories.find", err)
	}

	categories := make([]*models.Category, 0, len(recs))
	for i := range recs {
		categories = append(categories, recs[i].toModel())
	}
	return categories, nil
}
