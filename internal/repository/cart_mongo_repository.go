package repository

import (
	"context"
	"errors"
	"time"

	"github.com/furniro/storefront/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCartRepository MongoDB 实现（每个用户一个购物车文档）
type MongoCartRepository struct {
	collection *mongo.Collection
}

type mongoCartDocument struct {
	UserID    uint                 `bson:"user_id"`
	Items     []mongoCartItemEntry `bson:"cart_items"`
	CreatedAt time.Time            `bson:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at"`
}

type mongoCartItemEntry struct {
	ProductID    uint   `bson:"product"`
	Name         string `bson:"name"`
	Image        string `bson:"image"`
	Price        string `bson:"price"`
	Quantity     int    `bson:"qty"`
	CountInStock int    `bson:"count_in_stock"`
	Category     string `bson:"category"`
}

// NewMongoCartRepository 创建 MongoDB 购物车仓库
func NewMongoCartRepository(collection *mongo.Collection) *MongoCartRepository {
	return &MongoCartRepository{collection: collection}
}

// EnsureIndexes 创建 user_id 唯一索引
func (r *MongoCartRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Get 获取购物车，不存在时返回 nil
func (r *MongoCartRepository) Get(ctx context.Context, userID uint) (*models.Cart, error) {
	doc, err := r.find(ctx, userID)
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toModel()
}

// GetOrCreate 获取购物车，不存在时创建空购物车
func (r *MongoCartRepository) GetOrCreate(ctx context.Context, userID uint) (*models.Cart, error) {
	now := time.Now()
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$setOnInsert": bson.M{
			"user_id":    userID,
			"cart_items": bson.A{},
			"created_at": now,
			"updated_at": now,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, userID)
}

// UpsertItem 存在同商品时覆盖数量与快照字段，否则追加到末尾
func (r *MongoCartRepository) UpsertItem(ctx context.Context, userID uint, item models.CartItem) (*models.Cart, error) {
	doc, err := r.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if doc == nil {
		doc = &mongoCartDocument{UserID: userID, CreatedAt: now}
	}
	doc.upsert(newMongoCartItemEntry(item))
	doc.UpdatedAt = now
	if err := r.replace(ctx, doc); err != nil {
		return nil, err
	}
	return doc.toModel()
}

// RemoveItem 删除购物车项，商品不在购物车中时不做任何修改
func (r *MongoCartRepository) RemoveItem(ctx context.Context, userID uint, productID uint) (*models.Cart, error) {
	doc, err := r.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrCartNotInitialized
	}
	if doc.remove(productID) {
		doc.UpdatedAt = time.Now()
		if err := r.replace(ctx, doc); err != nil {
			return nil, err
		}
	}
	return doc.toModel()
}

// Clear 清空购物车
func (r *MongoCartRepository) Clear(ctx context.Context, userID uint) (*models.Cart, error) {
	now := time.Now()
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"cart_items": bson.A{}, "updated_at": now}},
	)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrCartNotInitialized
	}
	return &models.Cart{UserID: userID, UpdatedAt: now, Items: []models.CartItem{}}, nil
}

func (r *MongoCartRepository) find(ctx context.Context, userID uint) (*mongoCartDocument, error) {
	var doc mongoCartDocument
	if err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *MongoCartRepository) replace(ctx context.Context, doc *mongoCartDocument) error {
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"user_id": doc.UserID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

func newMongoCartItemEntry(item models.CartItem) mongoCartItemEntry {
	return mongoCartItemEntry{
		ProductID:    item.ProductID,
		Name:         item.Name,
		Image:        item.Image,
		Price:        item.Price.String(),
		Quantity:     item.Quantity,
		CountInStock: item.CountInStock,
		Category:     item.Category,
	}
}

func (d *mongoCartDocument) upsert(entry mongoCartItemEntry) {
	for i := range d.Items {
		if d.Items[i].ProductID == entry.ProductID {
			d.Items[i] = entry
			return
		}
	}
	d.Items = append(d.Items, entry)
}

func (d *mongoCartDocument) remove(productID uint) bool {
	kept := d.Items[:0]
	removed := false
	for _, entry := range d.Items {
		if entry.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	d.Items = kept
	return removed
}

func (d *mongoCartDocument) toModel() (*models.Cart, error) {
	cart := &models.Cart{
		UserID:    d.UserID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		Items:     make([]models.CartItem, 0, len(d.Items)),
	}
	for idx, entry := range d.Items {
		price, err := models.NewMoneyFromString(entry.Price)
		if err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, models.CartItem{
			ProductID:    entry.ProductID,
			Name:         entry.Name,
			Image:        entry.Image,
			Price:        price,
			Quantity:     entry.Quantity,
			CountInStock: entry.CountInStock,
			Category:     entry.Category,
			Position:     idx + 1,
		})
	}
	return cart, nil
}
