package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
)

const adoptionsCollectionName = "adoptions"

type adoptionDocument struct {
	ID            primitive.ObjectID    `bson:"_id,omitempty"`
	Pet           petDocument           `bson:"pet"`
	Description   string                `bson:"description"`
	Images        []string              `bson:"images"`
	Location      locationDocument      `bson:"location"`
	City          string                `bson:"city"`
	State         string                `bson:"state"`
	AdoptionFee   float64               `bson:"adoptionFee"`
	Requirements  []string              `bson:"requirements"`
	Compatibility compatibilityDocument `bson:"compatibility"`
	HealthNotes   string                `bson:"healthNotes,omitempty"`
	ContactInfo   contactDocument       `bson:"contactInfo"`
	Status        string                `bson:"status"`
	PostedBy      primitive.ObjectID    `bson:"postedBy"`
	Applications  []applicationDocument `bson:"applications"`
	AdoptedBy     primitive.ObjectID    `bson:"adoptedBy,omitempty"`
	CreatedAt     time.Time             `bson:"createdAt"`
	UpdatedAt     time.Time             `bson:"updatedAt"`
}

func toAdoptionDocument(l *entity.AdoptionListing) *adoptionDocument {
	doc := &adoptionDocument{
		Pet:           toPetDocument(l.Pet),
		Description:   l.Description,
		Images:        nonNil(l.Images),
		Location:      toLocationDocument(l.Location),
		City:          l.City,
		State:         l.State,
		AdoptionFee:   l.AdoptionFee,
		Requirements:  nonNil(l.Requirements),
		Compatibility: compatibilityDocument(l.Compatibility),
		HealthNotes:   l.HealthNotes,
		ContactInfo:   contactDocument(l.ContactInfo),
		Status:        string(l.Status),
		PostedBy:      refFromHex(l.PostedBy),
		Applications:  []applicationDocument{},
		AdoptedBy:     refFromHex(l.AdoptedBy),
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
	for _, a := range l.Applications {
		doc.Applications = append(doc.Applications, toApplicationDocument(a))
	}
	return doc
}

func (d *adoptionDocument) toEntity() *entity.AdoptionListing {
	return &entity.AdoptionListing{
		ID:            d.ID.Hex(),
		Pet:           d.Pet.toEntity(),
		Description:   d.Description,
		Images:        nonNil(d.Images),
		Location:      d.Location.toEntity(),
		City:          d.City,
		State:         d.State,
		AdoptionFee:   d.AdoptionFee,
		Requirements:  nonNil(d.Requirements),
		Compatibility: entity.Compatibility(d.Compatibility),
		HealthNotes:   d.HealthNotes,
		ContactInfo:   entity.ContactInfo(d.ContactInfo),
		Status:        entity.AdoptionStatus(d.Status),
		PostedBy:      hexOrEmpty(d.PostedBy),
		Applications:  toApplications(d.Applications),
		AdoptedBy:     hexOrEmpty(d.AdoptedBy),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type AdoptionMongoRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewAdoptionMongoRepository(db *mongo.Database, logger *zap.Logger) *AdoptionMongoRepository {
	logger = logger.Named("AdoptionRepository")
	coll := db.Collection(adoptionsCollectionName)
	ensureIndexes(coll, logger, []mongo.IndexModel{
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "pet.type", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return &AdoptionMongoRepository{coll: coll, logger: logger}
}

func (r *AdoptionMongoRepository) Create(ctx context.Context, listing *entity.AdoptionListing) (string, error) {
	doc := toAdoptionDocument(listing)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert adoption listing", zap.Error(err))
		return "", fmt.Errorf("failed to create adoption listing in mongo: %w", err)
	}
	r.logger.Info("Adoption listing created", zap.String("listingID", doc.ID.Hex()))
	return doc.ID.Hex(), nil
}

func (r *AdoptionMongoRepository) GetByID(ctx context.Context, id string) (*entity.AdoptionListing, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc adoptionDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFoundOr(err, "failed to get adoption listing from mongo")
	}
	return doc.toEntity(), nil
}

func buildAdoptionFilter(f repository.AdoptionFilter) bson.M {
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
	if f.Gender != "" {
		filter["pet.gender"] = equalsInsensitive(f.Gender)
	}
	if f.Size != "" {
		filter["pet.size"] = equalsInsensitive(f.Size)
	}
	if f.GoodWithKids != nil {
		filter["compatibility.goodWithKids"] = *f.GoodWithKids
	}
	if f.GoodWithPets != nil {
		filter["compatibility.goodWithPets"] = *f.GoodWithPets
	}
	if f.MaxFee != nil {
		filter["adoptionFee"] = bson.M{"$lte": *f.MaxFee}
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

func (r *AdoptionMongoRepository) List(ctx context.Context, f repository.AdoptionFilter) ([]*entity.AdoptionListing, int64, error) {
	docs, total, err := findPage[adoptionDocument](ctx, r.coll, buildAdoptionFilter(f), f.Page, newestFirst)
	if err != nil {
		r.logger.Error("Failed to list adoption listings", zap.Error(err))
		return nil, 0, err
	}
	out := make([]*entity.AdoptionListing, len(docs))
	for i := range docs {
		out[i] = docs[i].toEntity()
	}
	return out, total, nil
}

func (r *AdoptionMongoRepository) AddApplication(ctx context.Context, id string, app entity.Application) error {
	return addApplication(ctx, r.coll, id, string(entity.AdoptionAvailable), app)
}

// adoptionStatusUpdate sets the status and either records the adopter or
// removes a previous one.
func adoptionStatusUpdate(status entity.AdoptionStatus, adoptedBy string, at time.Time) bson.M {
	set := bson.M{"status": string(status), "updatedAt": at}
	if ref := refFromHex(adoptedBy); !ref.IsZero() {
		set["adoptedBy"] = ref
		return bson.M{"$set": set}
	}
	return bson.M{"$set": set, "$unset": bson.M{"adoptedBy": ""}}
}

func (r *AdoptionMongoRepository) UpdateStatus(ctx context.Context, id string, status entity.AdoptionStatus, adoptedBy string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, adoptionStatusUpdate(status, adoptedBy, time.Now().UTC()))
	if err != nil {
		return fmt.Errorf("failed to update adoption status in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AdoptionMongoRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id)
}

// addApplication pushes app onto a listing that is still in openStatus and
// has no application from the same applicant.
func addApplication(ctx context.Context, coll *mongo.Collection, id, openStatus string, app entity.Application) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	doc := toApplicationDocument(app)
	res, err := coll.UpdateOne(ctx,
		bson.M{
			"_id":                      oid,
			"status":                   openStatus,
			"applications.applicantId": bson.M{"$ne": doc.ApplicantID},
		},
		bson.M{
			"$push": bson.M{"applications": doc},
			"$set":  bson.M{"updatedAt": doc.AppliedAt},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to add application in mongo: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	var current struct {
		Status       string                `bson:"status"`
		Applications []applicationDocument `bson:"applications"`
	}
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&current); err != nil {
		return notFoundOr(err, "failed to load listing")
	}
	for _, a := range current.Applications {
		if a.ApplicantID == doc.ApplicantID {
			return repository.ErrDuplicate
		}
	}
	return repository.ErrConditionFailed
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.AdoptionRepository = (*AdoptionMongoRepository)(nil)
