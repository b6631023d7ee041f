package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
)

const testimonialsCollectionName = "comments"

type testimonialDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     primitive.ObjectID `bson:"userId"`
	UserName   string             `bson:"userName,omitempty"`
	Content    string             `bson:"content"`
	Rating     int                `bson:"rating"`
	IsApproved bool               `bson:"isApproved"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (d *testimonialDocument) toEntity() *entity.Testimonial {
	return &entity.Testimonial{
		ID:         d.ID.Hex(),
		UserID:     hexOrEmpty(d.UserID),
		UserName:   d.UserName,
		Content:    d.Content,
		Rating:     d.Rating,
		IsApproved: d.IsApproved,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type TestimonialMongoRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewTestimonialMongoRepository indexes userId without a uniqueness
// constraint; one testimonial per user is checked by the use case.
func NewTestimonialMongoRepository(db *mongo.Database, logger *zap.Logger) *TestimonialMongoRepository {
	logger = logger.Named("TestimonialRepository")
	coll := db.Collection(testimonialsCollectionName)
	ensureIndexes(coll, logger, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "isApproved", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return &TestimonialMongoRepository{coll: coll, logger: logger}
}

func (r *TestimonialMongoRepository) Create(ctx context.Context, t *entity.Testimonial) (string, error) {
	doc := testimonialDocument{
		ID:         primitive.NewObjectID(),
		UserID:     refFromHex(t.UserID),
		UserName:   t.UserName,
		Content:    t.Content,
		Rating:     t.Rating,
		IsApproved: t.IsApproved,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert testimonial", zap.String("userID", t.UserID), zap.Error(err))
		return "", fmt.Errorf("failed to create testimonial in mongo: %w", err)
	}
	r.logger.Info("Testimonial created", zap.String("testimonialID", doc.ID.Hex()), zap.String("userID", t.UserID))
	return doc.ID.Hex(), nil
}

func (r *TestimonialMongoRepository) findOne(ctx context.Context, filter bson.M) (*entity.Testimonial, error) {
	var doc testimonialDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFoundOr(err, "failed to get testimonial from mongo")
	}
	return doc.toEntity(), nil
}

func (r *TestimonialMongoRepository) GetByID(ctx context.Context, id string) (*entity.Testimonial, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *TestimonialMongoRepository) GetByUserID(ctx context.Context, userID string) (*entity.Testimonial, error) {
	oid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"userId": oid})
}

func (r *TestimonialMongoRepository) Update(ctx context.Context, t *entity.Testimonial) error {
	oid, err := objectID(t.ID)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"content":    t.Content,
		"rating":     t.Rating,
		"isApproved": t.IsApproved,
		"updatedAt":  t.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("failed to update testimonial in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TestimonialMongoRepository) SetApproval(ctx context.Context, id string, approved bool) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"isApproved": approved,
		"updatedAt":  time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("failed to set testimonial approval in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	r.logger.Info("Testimonial approval changed", zap.String("testimonialID", id), zap.Bool("approved", approved))
	return nil
}

func (r *TestimonialMongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete testimonial from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TestimonialMongoRepository) DeleteByUserID(ctx context.Context, userID string) error {
	oid, err := objectID(userID)
	if err != nil {
		return err
	}
	if _, err := r.coll.DeleteMany(ctx, bson.M{"userId": oid}); err != nil {
		return fmt.Errorf("failed to delete user testimonials from mongo: %w", err)
	}
	return nil
}

func (r *TestimonialMongoRepository) ListApproved(ctx context.Context, limit int) ([]*entity.Testimonial, error) {
	opts := options.Find().SetSort(newestFirst).SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{"isApproved": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved testimonials from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []testimonialDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode testimonials: %w", err)
	}
	out := make([]*entity.Testimonial, len(docs))
	for i := range docs {
		out[i] = docs[i].toEntity()
	}
	return out, nil
}

func (r *TestimonialMongoRepository) List(ctx context.Context, f repository.TestimonialFilter) ([]*entity.Testimonial, int64, error) {
	filter := bson.M{}
	if f.Approved != nil {
		filter["isApproved"] = *f.Approved
	}
	docs, total, err := findPage[testimonialDocument](ctx, r.coll, filter, f.Page, newestFirst)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*entity.Testimonial, len(docs))
	for i := range docs {
		out[i] = docs[i].toEntity()
	}
	return out, total, nil
}

func (r *TestimonialMongoRepository) CountPending(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"isApproved": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count pending testimonials: %w", err)
	}
	return n, nil
}

var _ repository.TestimonialRepository = (*TestimonialMongoRepository)(nil)
