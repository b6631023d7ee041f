package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
)

const petPostsCollectionName = "petposts"

type postCommentDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	UserID    primitive.ObjectID `bson:"userId"`
	UserName  string             `bson:"userName,omitempty"`
	Content   string             `bson:"content"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type petPostDocument struct {
	ID                primitive.ObjectID    `bson:"_id,omitempty"`
	UserID            primitive.ObjectID    `bson:"userId"`
	PostType          string                `bson:"postType"`
	Pet               petDocument           `bson:"pet"`
	Description       string                `bson:"description"`
	Images            []string              `bson:"images"`
	Location          locationDocument      `bson:"location"`
	City              string                `bson:"city,omitempty"`
	State             string                `bson:"state,omitempty"`
	ContactPhone      string                `bson:"contactPhone,omitempty"`
	LastSeenDate      *time.Time            `bson:"lastSeenDate,omitempty"`
	InjuryDescription string                `bson:"injuryDescription,omitempty"`
	Status            string                `bson:"status"`
	Comments          []postCommentDocument `bson:"comments"`
	Views             int64                 `bson:"views"`
	ResolvedBy        primitive.ObjectID    `bson:"resolvedBy,omitempty"`
	ResolvedAt        *time.Time            `bson:"resolvedAt,omitempty"`
	ClosedBy          primitive.ObjectID    `bson:"closedBy,omitempty"`
	ClosedAt          *time.Time            `bson:"closedAt,omitempty"`
	CreatedAt         time.Time             `bson:"createdAt"`
	UpdatedAt         time.Time             `bson:"updatedAt"`
}

func toPetPostDocument(p *entity.PetPost) *petPostDocument {
	doc := &petPostDocument{
		UserID:            refFromHex(p.UserID),
		PostType:          string(p.PostType),
		Pet:               toPetDocument(p.Pet),
		Description:       p.Description,
		Images:            nonNil(p.Images),
		Location:          toLocationDocument(p.Location),
		City:              p.City,
		State:             p.State,
		ContactPhone:      p.ContactPhone,
		LastSeenDate:      p.LastSeenDate,
		InjuryDescription: p.InjuryDescription,
		Status:            string(p.Status),
		Comments:          []postCommentDocument{},
		Views:             p.Views,
		ResolvedBy:        refFromHex(p.ResolvedBy),
		ResolvedAt:        p.ResolvedAt,
		ClosedBy:          refFromHex(p.ClosedBy),
		ClosedAt:          p.ClosedAt,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	for _, c := range p.Comments {
		doc.Comments = append(doc.Comments, toPostCommentDocument(c))
	}
	return doc
}

func toPostCommentDocument(c entity.PostComment) postCommentDocument {
	id := refFromHex(c.ID)
	if id.IsZero() {
		id = primitive.NewObjectID()
	}
	return postCommentDocument{
		ID:        id,
		UserID:    refFromHex(c.UserID),
		UserName:  c.UserName,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func (d *petPostDocument) toEntity() *entity.PetPost {
	p := &entity.PetPost{
		ID:                d.ID.Hex(),
		UserID:            hexOrEmpty(d.UserID),
		PostType:          entity.PostType(d.PostType),
		Pet:               d.Pet.toEntity(),
		Description:       d.Description,
		Images:            nonNil(d.Images),
		Location:          d.Location.toEntity(),
		City:              d.City,
		State:             d.State,
		ContactPhone:      d.ContactPhone,
		LastSeenDate:      d.LastSeenDate,
		InjuryDescription: d.InjuryDescription,
		Status:            entity.PostStatus(d.Status),
		Comments:          make([]entity.PostComment, 0, len(d.Comments)),
		Views:             d.Views,
		ResolvedBy:        hexOrEmpty(d.ResolvedBy),
		ResolvedAt:        d.ResolvedAt,
		ClosedBy:          hexOrEmpty(d.ClosedBy),
		ClosedAt:          d.ClosedAt,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	for _, c := range d.Comments {
		p.Comments = append(p.Comments, entity.PostComment{
			ID:        c.ID.Hex(),
			UserID:    hexOrEmpty(c.UserID),
			UserName:  c.UserName,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}
	return p
}

type PetPostMongoRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewPetPostMongoRepository(db *mongo.Database, logger *zap.Logger) *PetPostMongoRepository {
	logger = logger.Named("PetPostRepository")
	coll := db.Collection(petPostsCollectionName)
	ensureIndexes(coll, logger, []mongo.IndexModel{
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{
			{Key: "description", Value: "text"},
			{Key: "pet.name", Value: "text"},
			{Key: "pet.breed", Value: "text"},
			{Key: "city", Value: "text"},
		}, Options: options.Index().SetName("petposts_text")},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "postType", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	})
	return &PetPostMongoRepository{coll: coll, logger: logger}
}

func (r *PetPostMongoRepository) Create(ctx context.Context, post *entity.PetPost) (string, error) {
	doc := toPetPostDocument(post)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert pet post", zap.Error(err))
		return "", fmt.Errorf("failed to create pet post in mongo: %w", err)
	}
	r.logger.Info("Pet post created", zap.String("postID", doc.ID.Hex()), zap.String("postType", doc.PostType))
	return doc.ID.Hex(), nil
}

func (r *PetPostMongoRepository) GetByID(ctx context.Context, id string) (*entity.PetPost, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc petPostDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFoundOr(err, "failed to get pet post from mongo")
	}
	return doc.toEntity(), nil
}

func (r *PetPostMongoRepository) IncrementViews(ctx context.Context, id string) (*entity.PetPost, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"views": 1}})
}

// findOneAndUpdate applies update to the document matched by filter and
// returns it as stored afterwards.
func (r *PetPostMongoRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*entity.PetPost, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc petPostDocument
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return nil, notFoundOr(err, "failed to update pet post in mongo")
	}
	return doc.toEntity(), nil
}

// conditional runs an update guarded on status=active. When nothing matches
// it tells a missing post apart from one in another state.
func (r *PetPostMongoRepository) conditional(ctx context.Context, id string, update bson.M) (*entity.PetPost, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	post, err := r.findOneAndUpdate(ctx, bson.M{"_id": oid, "status": string(entity.PostStatusActive)}, update)
	if errors.Is(err, repository.ErrNotFound) {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, repository.ErrConditionFailed
	}
	return post, err
}

func (r *PetPostMongoRepository) AddComment(ctx context.Context, id string, comment entity.PostComment) (*entity.PetPost, error) {
	doc := toPostCommentDocument(comment)
	return r.conditional(ctx, id, bson.M{
		"$push": bson.M{"comments": doc},
		"$set":  bson.M{"updatedAt": comment.CreatedAt},
	})
}

func (r *PetPostMongoRepository) Resolve(ctx context.Context, id, by string, at time.Time) (*entity.PetPost, error) {
	post, err := r.conditional(ctx, id, bson.M{"$set": bson.M{
		"status":     string(entity.PostStatusResolved),
		"resolvedBy": refFromHex(by),
		"resolvedAt": at,
		"updatedAt":  at,
	}})
	if err == nil {
		r.logger.Info("Pet post resolved", zap.String("postID", id), zap.String("by", by))
	}
	return post, err
}

func (r *PetPostMongoRepository) Close(ctx context.Context, id, by string, at time.Time) (*entity.PetPost, error) {
	return r.conditional(ctx, id, bson.M{"$set": bson.M{
		"status":    string(entity.PostStatusClosed),
		"closedBy":  refFromHex(by),
		"closedAt":  at,
		"updatedAt": at,
	}})
}

func (r *PetPostMongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete pet post from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	r.logger.Info("Pet post deleted", zap.String("postID", id))
	return nil
}

func buildPetPostFilter(f repository.PetPostFilter) bson.M {
	filter := bson.M{}
	if f.PostType != "" {
		filter["postType"] = string(f.PostType)
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.PetType != "" {
		filter["pet.type"] = equalsInsensitive(f.PetType)
	}
	if f.City != "" {
		filter["city"] = equalsInsensitive(f.City)
	}
	if oid := refFromHex(f.UserID); !oid.IsZero() {
		filter["userId"] = oid
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		filter["$text"] = bson.M{"$search": s}
	}
	if f.Near != nil && f.Near.RadiusKm > 0 {
		filter["location"] = withinRadius(f.Near)
	}
	return filter
}

func (r *PetPostMongoRepository) List(ctx context.Context, f repository.PetPostFilter) ([]*entity.PetPost, int64, error) {
	docs, total, err := findPage[petPostDocument](ctx, r.coll, buildPetPostFilter(f), f.Page, newestFirst)
	if err != nil {
		r.logger.Error("Failed to list pet posts", zap.Error(err))
		return nil, 0, err
	}
	posts := make([]*entity.PetPost, len(docs))
	for i := range docs {
		posts[i] = docs[i].toEntity()
	}
	return posts, total, nil
}

func (r *PetPostMongoRepository) CountByStatus(ctx context.Context) (map[entity.PostStatus]int64, error) {
	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$status"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate pet posts in mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode pet post counts: %w", err)
	}
	counts := map[entity.PostStatus]int64{
		entity.PostStatusActive:   0,
		entity.PostStatusResolved: 0,
		entity.PostStatusClosed:   0,
	}
	for _, row := range rows {
		counts[entity.PostStatus(row.Status)] = row.Count
	}
	return counts, nil
}

var _ repository.PetPostRepository = (*PetPostMongoRepository)(nil)
