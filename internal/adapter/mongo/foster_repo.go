package mongo

import (
	"context"
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

const fostersCollectionName = "fosters"

type fosterParentDocument struct {
	UserID     primitive.ObjectID `bson:"userId"`
	AssignedAt time.Time          `bson:"assignedAt"`
	Notes      string             `bson:"notes,omitempty"`
}

type fosterDocument struct {
	ID            primitive.ObjectID    `bson:"_id,omitempty"`
	Pet           petDocument           `bson:"pet"`
	Description   string                `bson:"description"`
	Images        []string              `bson:"images"`
	Location      locationDocument      `bson:"location"`
	City          string                `bson:"city"`
	State         string                `bson:"state"`
	Duration      string                `bson:"duration"`
	StartDate     time.Time             `bson:"startDate"`
	EndDate       *time.Time            `bson:"endDate,omitempty"`
	Requirements  []string              `bson:"requirements"`
	SpecialNeeds  string                `bson:"specialNeeds,omitempty"`
	Compatibility compatibilityDocument `bson:"compatibility"`
	ContactInfo   contactDocument       `bson:"contactInfo"`
	Status        string                `bson:"status"`
	PostedBy      primitive.ObjectID    `bson:"postedBy"`
	FosterParent  *fosterParentDocument `bson:"fosterParent,omitempty"`
	Applications  []applicationDocument `bson:"applications"`
	CreatedAt     time.Time             `bson:"createdAt"`
	UpdatedAt     time.Time             `bson:"updatedAt"`
}

func toFosterDocument(l *entity.FosterListing) *fosterDocument {
	doc := &fosterDocument{
		Pet:           toPetDocument(l.Pet),
		Description:   l.Description,
		Images:        nonNil(l.Images),
		Location:      toLocationDocument(l.Location),
		City:          l.City,
		State:         l.State,
		Duration:      string(l.Duration),
		StartDate:     l.StartDate,
		EndDate:       l.EndDate,
		Requirements:  nonNil(l.Requirements),
		SpecialNeeds:  l.SpecialNeeds,
		Compatibility: compatibilityDocument(l.Compatibility),
		ContactInfo:   contactDocument(l.ContactInfo),
		Status:        string(l.Status),
		PostedBy:      refFromHex(l.PostedBy),
		Applications:  []applicationDocument{},
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
	if l.FosterParent != nil {
		doc.FosterParent = &fosterParentDocument{
			UserID:     refFromHex(l.FosterParent.UserID),
			AssignedAt: l.FosterParent.AssignedAt,
			Notes:      l.FosterParent.Notes,
		}
	}
	for _, a := range l.Applications {
		doc.Applications = append(doc.Applications, toApplicationDocument(a))
	}
	return doc
}

func (d *fosterDocument) toEntity() *entity.FosterListing {
	l := &entity.FosterListing{
		ID:            d.ID.Hex(),
		Pet:           d.Pet.toEntity(),
		Description:   d.Description,
		Images:        nonNil(d.Images),
		Location:      d.Location.toEntity(),
		City:          d.City,
		State:         d.State,
		Duration:      entity.FosterDuration(d.Duration),
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		Requirements:  nonNil(d.Requirements),
		SpecialNeeds:  d.SpecialNeeds,
		Compatibility: entity.Compatibility(d.Compatibility),
		ContactInfo:   entity.ContactInfo(d.ContactInfo),
		Status:        entity.FosterStatus(d.Status),
		PostedBy:      hexOrEmpty(d.PostedBy),
		Applications:  toApplications(d.Applications),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if d.FosterParent != nil {
		l.FosterParent = &entity.FosterParent{
			UserID:     hexOrEmpty(d.FosterParent.UserID),
			AssignedAt: d.FosterParent.AssignedAt,
			Notes:      d.FosterParent.Notes,
		}
	}
	return l
}

type FosterMongoRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewFosterMongoRepository(db *mongo.Database, logger *zap.Logger) *FosterMongoRepository {
	logger = logger.Named("FosterRepository")
	coll := db.Collection(fostersCollectionName)
	ensureIndexes(coll, logger, []mongo.IndexModel{
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "duration", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return &FosterMongoRepository{coll: coll, logger: logger}
}

func (r *FosterMongoRepository) Create(ctx context.Context, listing *entity.FosterListing) (string, error) {
	doc := toFosterDocument(listing)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert foster listing", zap.Error(err))
		return "", fmt.Errorf("failed to create foster listing in mongo: %w", err)
	}
	r.logger.Info("Foster listing created", zap.String("listingID", doc.ID.Hex()))
	return doc.ID.Hex(), nil
}

func (r *FosterMongoRepository) GetByID(ctx context.Context, id string) (*entity.FosterListing, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc fosterDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFoundOr(err, "failed to get foster listing from mongo")
	}
	return doc.toEntity(), nil
}

func buildFosterFilter(f repository.FosterFilter) bson.M {
	filter := bson.M{}
	if f.PetType != "" {
		filter["pet.type"] = equalsInsensitive(f.PetType)
	}
	if f.City != "" {
		filter["city"] = equalsInsensitive(f.City)
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.Duration != "" {
		filter["duration"] = string(f.Duration)
	}
	if oid := refFromHex(f.PostedBy); !oid.IsZero() {
		filter["postedBy"] = oid
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		re := containsInsensitive(s)
		filter["$or"] = bson.A{
			bson.M{"pet.name": re},
			bson.M{"pet.breed": re},
			bson.M{"description": re},
		}
	}
	return filter
}

func (r *FosterMongoRepository) List(ctx context.Context, f repository.FosterFilter) ([]*entity.FosterListing, int64, error) {
	docs, total, err := findPage[fosterDocument](ctx, r.coll, buildFosterFilter(f), f.Page, newestFirst)
	if err != nil {
		r.logger.Error("Failed to list foster listings", zap.Error(err))
		return nil, 0, err
	}
	out := make([]*entity.FosterListing, len(docs))
	for i := range docs {
		out[i] = docs[i].toEntity()
	}
	return out, total, nil
}

func (r *FosterMongoRepository) AddApplication(ctx context.Context, id string, app entity.Application) error {
	return addApplication(ctx, r.coll, id, string(entity.FosterAvailable), app)
}

func (r *FosterMongoRepository) AssignParent(ctx context.Context, id string, parent entity.FosterParent) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	applicant := refFromHex(parent.UserID)
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(entity.FosterAvailable)},
		bson.M{"$set": bson.M{
			"status": string(entity.FosterFostered),
			"fosterParent": fosterParentDocument{
				UserID:     applicant,
				AssignedAt: parent.AssignedAt,
				Notes:      parent.Notes,
			},
			"applications.$[app].status": string(entity.ApplicationApproved),
			"updatedAt":                  parent.AssignedAt,
		}},
		optionsArrayFilter(applicant),
	)
	if err != nil {
		return fmt.Errorf("failed to assign foster parent in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return repository.ErrConditionFailed
	}
	r.logger.Info("Foster parent assigned", zap.String("listingID", id), zap.String("userID", parent.UserID))
	return nil
}

// optionsArrayFilter targets the applicant's application for approval.
func optionsArrayFilter(applicant primitive.ObjectID) *options.UpdateOptions {
	return options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"app.applicantId": applicant}},
	})
}

func (r *FosterMongoRepository) UpdateStatus(ctx context.Context, id string, status entity.FosterStatus) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": string(status), "updatedAt": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("failed to update foster status in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *FosterMongoRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id)
}

var _ repository.FosterRepository = (*FosterMongoRepository)(nil)
