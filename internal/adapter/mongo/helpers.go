package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
)

const earthRadiusKm = 6378.1

type locationDocument struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
	Address     string    `bson:"address,omitempty"`
}

func toLocationDocument(l entity.Location) locationDocument {
	return locationDocument{
		Type:        "Point",
		Coordinates: []float64{l.Coordinates[0], l.Coordinates[1]},
		Address:     l.Address,
	}
}

func (d locationDocument) toEntity() entity.Location {
	l := entity.Location{Type: "Point", Address: d.Address}
	if len(d.Coordinates) == 2 {
		l.Coordinates = [2]float64{d.Coordinates[0], d.Coordinates[1]}
	}
	return l
}

type petDocument struct {
	Name        string `bson:"name,omitempty"`
	Type        string `bson:"type,omitempty"`
	Breed       string `bson:"breed,omitempty"`
	Color       string `bson:"color,omitempty"`
	Age         string `bson:"age,omitempty"`
	Gender      string `bson:"gender,omitempty"`
	Size        string `bson:"size,omitempty"`
	Description string `bson:"description,omitempty"`
}

func toPetDocument(p entity.PetDetails) petDocument { return petDocument(p) }
func (d petDocument) toEntity() entity.PetDetails { return entity.PetDetails(d) }

type contactDocument struct {
	Phone string `bson:"phone,omitempty"`
	Email string `bson:"email,omitempty"`
}

type applicationDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	ApplicantID primitive.ObjectID `bson:"applicantId"`
	Message     string             `bson:"message,omitempty"`
	Status      string             `bson:"status"`
	AppliedAt   time.Time          `bson:"appliedAt"`
}

func toApplicationDocument(a entity.Application) applicationDocument {
	id := refFromHex(a.ID)
	if id.IsZero() {
		id = primitive.NewObjectID()
	}
	return applicationDocument{
		ID:          id,
		ApplicantID: refFromHex(a.ApplicantID),
		Message:     a.Message,
		Status:      string(a.Status),
		AppliedAt:   a.AppliedAt,
	}
}

func toApplications(docs []applicationDocument) []entity.Application {
	apps := make([]entity.Application, 0, len(docs))
	for _, d := range docs {
		apps = append(apps, entity.Application{
			ID:          d.ID.Hex(),
			ApplicantID: hexOrEmpty(d.ApplicantID),
			Message:     d.Message,
			Status:      entity.ApplicationStatus(d.Status),
			AppliedAt:   d.AppliedAt,
		})
	}
	return apps
}

type compatibilityDocument struct {
	IsVaccinated   bool `bson:"isVaccinated"`
	IsNeutered     bool `bson:"isNeutered"`
	IsHouseTrained bool `bson:"isHouseTrained"`
	GoodWithKids   bool `bson:"goodWithKids"`
	GoodWithPets   bool `bson:"goodWithPets"`
}

// objectID parses a public id. Malformed ids cannot match any record and
// are reported as not found.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrNotFound
	}
	return oid, nil
}

// refFromHex converts an optional reference; empty or malformed gives the zero id.
func refFromHex(id string) primitive.ObjectID {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return oid
}

func hexOrEmpty(id primitive.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// containsInsensitive matches s anywhere in a field, ignoring case. User
// input is quoted so it never acts as a pattern.
func containsInsensitive(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func equalsInsensitive(s string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(s) + "$", Options: "i"}
}

// withinRadius selects points within km of the given coordinates. It uses
// $geoWithin so that it can be combined with sorting and counting.
func withinRadius(g *repository.GeoFilter) bson.M {
	return bson.M{
		"$geoWithin": bson.M{
			"$centerSphere": bson.A{
				bson.A{g.Longitude, g.Latitude},
				g.RadiusKm / earthRadiusKm,
			},
		},
	}
}

func isDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

func notFoundOr(err error, format string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	return fmt.Errorf(format+": %w", err)
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

// findPage runs filter with pagination and returns the decoded page with the
// total number of matches.
func findPage[D any](ctx context.Context, coll *mongo.Collection, filter bson.M, page entity.PageRequest, sort bson.D) ([]D, int64, error) {
	findOptions := options.Find().
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit)).
		SetSort(sort)

	cursor, err := coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s from mongo: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var docs []D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode %s list from mongo: %w", coll.Name(), err)
	}

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count %s in mongo: %w", coll.Name(), err)
	}
	return docs, total, nil
}

func ensureIndexes(coll *mongo.Collection, logger *zap.Logger, indexes []mongo.IndexModel) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("Failed to create indexes (may already exist)", zap.String("collection", coll.Name()), zap.Error(err))
		return
	}
	logger.Info("Successfully ensured indexes", zap.String("collection", coll.Name()))
}
