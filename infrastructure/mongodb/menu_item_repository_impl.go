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

type MenuItemRepositoryImpl struct {
	store *Store
}

func NewMenuItemRepository(store *Store) repositories.MenuItemRepository {
	return &MenuItemRepositoryImpl{store: store}
}

func (r *MenuItemRepositoryImpl) Create(ctx context.Context, item *models.MenuItem) error {
	categoryID, ok := parseID(item.CategoryID)
	if !ok {
		return repositories.NewStoreError("menuitems.insert", errors.New("invalid category id"))
	}
	coll, err := r.store.collection(ctx, MenuItemsCollection)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	rec := menuItemFromModel(item, categoryID)
	rec.ID = primitive.NewObjectID()

	if _, err := coll.InsertOne(ctx, rec); err != nil {
		return r.store.wrap("menuitems.insert", err)
	}
	item.ID = rec.ID.Hex()
	return nil
}

func (r *MenuItemRepositoryImpl) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	coll, err := r.store.collection(ctx, MenuItemsCollection)
	if err != nil {
		return nil, err
	}

	var rec menuItemRecord
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, r.store.wrap("menuitems.findById", err)
	}
	return rec.toModel(), nil
}

func (r *MenuItemRepositoryImpl) Update(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	oid, ok := parseID(item.ID)
	if !ok {
		return nil, nil
	}
	categoryID, ok := parseID(item.CategoryID)
	if !ok {
		return nil, repositories.NewStoreError("menuitems.update", errors.New("invalid category id"))
	}
	coll, err := r.store.collection(ctx, MenuItemsCollection)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"name":        item.Name,
		"description": item.Description,
		"price":       int64(item.Price),
		"halfPrice":   int64(item.HalfPrice),
		"image":       item.Image,
		"category":    categoryID,
		"promotion":   promotionFromModel(item.Promotion),
		"updatedAt":   time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rec menuItemRecord
	if err := coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, r.store.wrap("menuitems.update", err)
	}
	return rec.toModel(), nil
}

func (r *MenuItemRepositoryImpl) Delete(ctx context.Context, id string) (*models.MenuItem, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	coll, err := r.store.collection(ctx, MenuItemsCollection)
	if err != nil {
		return nil, err
	}

	var rec menuItemRecord
	if err := coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, r.store.wrap("menuitems.delete", err)
	}
	return rec.toModel(), nil
}

func (r *MenuItemRepositoryImpl) DeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	oid, ok := parseID(categoryID)
	if !ok {
		return 0, nil
	}
	coll, err := r.store.collection(ctx, MenuItemsCollection)
	if err != nil {
		return 0, err
	}

	res, err := coll.DeleteMany(ctx, bson.M{"category": oid})
	if err != nil {
		return 0, r.store.wrap("menuitems.deleteMany", err)
	}
	return res.DeletedCount, nil
}

func (r *MenuItemRepositoryImpl) ListByCategory(ctx context.Context, categoryID string) ([]*models.MenuItem, error) {
	oid, ok := parseID(categoryID)
	if !ok {
		return []*models.MenuItem{}, nil
	}
	coll, err := r.store.collection(ctx, MenuItemsCollection)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{"category": oid}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, r.store.wrap("menuitems.find", err)
	}
	defer cursor.Close(ctx)

	var recs []menuItemRecord
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, r.store.wrap("menuitems.find", err)
	}

	items := make([]*models.MenuItem, 0, len(recs))
	for i := range recs {
		items = append(items, recs[i].toModel())
	}
	return items, nil
}

func (r *MenuItemRepositoryImpl) ListAllWithCategory(ctx context.Context) ([]*models.MenuItemWithCategory, error) {
	coll, err := r.store.collection(ctx, MenuItemsCollection)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Aggregate(ctx, joinedPipeline())
	if err != nil {
		return nil, r.store.wrap("menuitems.aggregate", err)
	}
	defer cursor.Close(ctx)

	var recs []joinedRecord
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, r.store.wrap("menuitems.aggregate", err)
	}

	rows := make([]*models.MenuItemWithCategory, 0, len(recs))
	for i := range recs {
		rows = append(rows, recs[i].toModel())
	}
	return rows, nil
}

// joinedPipeline looks up each item's category; $unwind drops items whose category is gone
func joinedPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: CategoriesCollection},
			{Key: "localField", Value: "category"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "categoryDoc"},
		}}},
		{{Key: "$unwind", Value: "$categoryDoc"}},
		{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}}}},
	}
}
