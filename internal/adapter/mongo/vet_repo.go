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

const vetDirectoryCollectionName = "vetdirectories"

type dayHoursDocument struct {
	Open   string `bson:"open,omitempty"`
	Close  string `bson:"close,omitempty"`
	Closed bool   `bson:"closed"`
}

type ratingDocument struct {
	Sum   int64 `bson:"sum"`
	Count int64 `bson:"count"`
}

type vetContactDocument struct {
	Phone   string `bson:"phone"`
	Email   string `bson:"email,omitempty"`
	Website string `bson:"website,omitempty"`
}

type vetDocument struct {
	ID                   primitive.ObjectID          `bson:"_id,omitempty"`
	VetID                primitive.ObjectID          `bson:"vetId"`
	ClinicName           string                      `bson:"clinicName"`
	Description          string                      `bson:"description,omitempty"`
	Specializations      []string                    `bson:"specializations"`
	Services             []string                    `bson:"services"`
	Location             locationDocument            `bson:"location"`
	City                 string                      `bson:"city"`
	State                string                      `bson:"state"`
	ZipCode              string                      `bson:"zipCode,omitempty"`
	Contact              vetContactDocument          `bson:"contact"`
	OperatingHours       map[string]dayHoursDocument `bson:"operatingHours,omitempty"`
	IsEmergencyAvailable bool                        `bson:"isEmergencyAvailable"`
	Is24Hours            bool                        `bson:"is24Hours"`
	Rating               ratingDocument              `bson:"rating"`
	IsVerified           bool                        `bson:"isVerified"`
	IsActive             bool                        `bson:"isActive"`
	CreatedAt            time.Time                   `bson:"createdAt"`
	UpdatedAt            time.Time                   `bson:"updatedAt"`
}

func toVetDocument(e *entity.VetDirectoryEntry) *vetDocument {
	doc := &vetDocument{
		VetID:                refFromHex(e.VetID),
		ClinicName:           e.ClinicName,
		Description:          e.Description,
		Specializations:      nonNil(e.Specializations),
		Services:             nonNil(e.Services),
		Location:             toLocationDocument(e.Location),
		City:                 e.City,
		State:                e.State,
		ZipCode:              e.ZipCode,
		Contact:              vetContactDocument(e.Contact),
		IsEmergencyAvailable: e.IsEmergencyAvailable,
		Is24Hours:            e.Is24Hours,
		Rating:               ratingDocument{Sum: e.Rating.Sum, Count: e.Rating.Count},
		IsVerified:           e.IsVerified,
		IsActive:             e.IsActive,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
	if len(e.OperatingHours) > 0 {
		doc.OperatingHours = make(map[string]dayHoursDocument, len(e.OperatingHours))
		for day, h := range e.OperatingHours {
			doc.OperatingHours[day] = dayHoursDocument(h)
		}
	}
	return doc
}

func (d *vetDocument) toEntity() *entity.VetDirectoryEntry {
	e := &entity.VetDirectoryEntry{
		ID:                   d.ID.Hex(),
		VetID:                hexOrEmpty(d.VetID),
		ClinicName:           d.ClinicName,
		Description:          d.Description,
		Specializations:      nonNil(d.Specializations),
		Services:             nonNil(d.Services),
		Location:             d.Location.toEntity(),
		City:                 d.City,
		State:                d.State,
		ZipCode:              d.ZipCode,
		Contact:              entity.VetContact(d.Contact),
		IsEmergencyAvailable: d.IsEmergencyAvailable,
		Is24Hours:            d.Is24Hours,
		Rating:               entity.Rating{Sum: d.Rating.Sum, Count: d.Rating.Count},
		IsVerified:           d.IsVerified,
		IsActive:             d.IsActive,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
	e.AverageRating = e.Rating.Average()
	if len(d.OperatingHours) > 0 {
		e.OperatingHours = make(map[string]entity.DayHours, len(d.OperatingHours))
		for day, h := range d.OperatingHours {
			e.OperatingHours[day] = entity.DayHours(h)
		}
	}
	return e
}

type VetDirectoryMongoRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewVetDirectoryMongoRepository(db *mongo.Database, logger *zap.Logger) *VetDirectoryMongoRepository {
	logger = logger.Named("VetDirectoryRepository")
	coll := db.Collection(vetDirectoryCollectionName)
	ensureIndexes(coll, logger, []mongo.IndexModel{
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "vetId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "specializations", Value: 1}}},
		{Keys: bson.D{{Key: "city", Value: 1}, {Key: "state", Value: 1}}},
	})
	return &VetDirectoryMongoRepository{coll: coll, logger: logger}
}

func (r *VetDirectoryMongoRepository) Create(ctx context.Context, entry *entity.VetDirectoryEntry) (string, error) {
	doc := toVetDocument(entry)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if isDuplicateKey(err) {
			return "", repository.ErrDuplicate
		}
		r.logger.Error("Failed to insert vet directory entry", zap.Error(err))
		return "", fmt.Errorf("failed to create vet entry in mongo: %w", err)
	}
	r.logger.Info("Vet directory entry created", zap.String("entryID", doc.ID.Hex()), zap.String("vetID", entry.VetID))
	return doc.ID.Hex(), nil
}

func (r *VetDirectoryMongoRepository) findOne(ctx context.Context, filter bson.M) (*entity.VetDirectoryEntry, error) {
	var doc vetDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFoundOr(err, "failed to get vet entry from mongo")
	}
	return doc.toEntity(), nil
}

func (r *VetDirectoryMongoRepository) GetByID(ctx context.Context, id string) (*entity.VetDirectoryEntry, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *VetDirectoryMongoRepository) GetByVetID(ctx context.Context, vetID string) (*entity.VetDirectoryEntry, error) {
	oid, err := objectID(vetID)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"vetId": oid})
}

// Update writes the listing fields. Rating and verification are changed
// through AddRating and SetVerified only.
func (r *VetDirectoryMongoRepository) Update(ctx context.Context, entry *entity.VetDirectoryEntry) error {
	oid, err := objectID(entry.ID)
	if err != nil {
		return err
	}
	doc := toVetDocument(entry)
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"clinicName":           doc.ClinicName,
		"description":          doc.Description,
		"specializations":      doc.Specializations,
		"services":             doc.Services,
		"location":             doc.Location,
		"city":                 doc.City,
		"state":                doc.State,
		"zipCode":              doc.ZipCode,
		"contact":              doc.Contact,
		"operatingHours":       doc.OperatingHours,
		"isEmergencyAvailable": doc.IsEmergencyAvailable,
		"is24Hours":            doc.Is24Hours,
		"isActive":             doc.IsActive,
		"updatedAt":            doc.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("failed to update vet entry in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *VetDirectoryMongoRepository) AddRating(ctx context.Context, id string, score int) (*entity.VetDirectoryEntry, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc vetDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{
		"$inc": bson.M{"rating.sum": score, "rating.count": 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}, opts).Decode(&doc)
	if err != nil {
		return nil, notFoundOr(err, "failed to rate vet entry in mongo")
	}
	return doc.toEntity(), nil
}

func (r *VetDirectoryMongoRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"isVerified": verified, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("failed to verify vet entry in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	r.logger.Info("Vet directory verification changed", zap.String("entryID", id), zap.Bool("verified", verified))
	return nil
}

func (r *VetDirectoryMongoRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id)
}

func buildVetFilter(f repository.VetFilter) bson.M {
	filter := bson.M{"isActive": true}
	if f.Specialization != "" {
		filter["specializations"] = equalsInsensitive(f.Specialization)
	}
	if f.Service != "" {
		filter["services"] = equalsInsensitive(f.Service)
	}
	if f.Emergency {
		filter["isEmergencyAvailable"] = true
	}
	if f.Is24Hours {
		filter["is24Hours"] = true
	}
	if f.City != "" {
		filter["city"] = equalsInsensitive(f.City)
	}
	if f.State != "" {
		filter["state"] = equalsInsensitive(f.State)
	}
	if f.Verified != nil {
		filter["isVerified"] = *f.Verified
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		re := containsInsensitive(s)
		filter["$or"] = bson.A{
			bson.M{"clinicName": re},
			bson.M{"description": re},
			bson.M{"services": re},
		}
	}
	if f.Near != nil && f.Near.RadiusKm > 0 {
		filter["location"] = withinRadius(f.Near)
	}
	return filter
}

func (r *VetDirectoryMongoRepository) List(ctx context.Context, f repository.VetFilter) ([]*entity.VetDirectoryEntry, int64, error) {
	sort := bson.D{{Key: "isVerified", Value: -1}, {Key: "createdAt", Value: -1}}
	docs, total, err := findPage[vetDocument](ctx, r.coll, buildVetFilter(f), f.Page, sort)
	if err != nil {
		r.logger.Error("Failed to list vet directory", zap.Error(err))
		return nil, 0, err
	}
	out := make([]*entity.VetDirectoryEntry, len(docs))
	for i := range docs {
		out[i] = docs[i].toEntity()
	}
	return out, total, nil
}

var _ repository.VetDirectoryRepository = (*VetDirectoryMongoRepository)(nil)
