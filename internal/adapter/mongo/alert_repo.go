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

const alertsCollectionName = "alerts"

type alertAreaDocument struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
	Address     string    `bson:"address"`
	City        string    `bson:"city"`
	State       string    `bson:"state"`
	Radius      float64   `bson:"radius"`
}

type alertDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Type           string             `bson:"type"`
	Title          string             `bson:"title"`
	Description    string             `bson:"description"`
	Urgency        string             `bson:"urgency"`
	Status         string             `bson:"status"`
	TargetAudience string             `bson:"targetAudience"`
	Location       alertAreaDocument  `bson:"location"`
	PetDetails     *petDocument       `bson:"petDetails,omitempty"`
	ContactInfo    contactDocument    `bson:"contactInfo"`
	Images         []string           `bson:"images"`
	CreatedBy      primitive.ObjectID `bson:"createdBy"`
	ExpiresAt      time.Time          `bson:"expiresAt"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func toAlertDocument(a *entity.Alert) *alertDocument {
	doc := &alertDocument{
		Type:           string(a.Type),
		Title:          a.Title,
		Description:    a.Description,
		Urgency:        string(a.Urgency),
		Status:         string(a.Status),
		TargetAudience: string(a.TargetAudience),
		Location: alertAreaDocument{
			Type:        "Point",
			Coordinates: []float64{a.Location.Point.Coordinates[0], a.Location.Point.Coordinates[1]},
			Address:     a.Location.Point.Address,
			City:        a.Location.City,
			State:       a.Location.State,
			Radius:      a.Location.RadiusKm,
		},
		ContactInfo: contactDocument(a.ContactInfo),
		Images:      nonNil(a.Images),
		CreatedBy:   refFromHex(a.CreatedBy),
		ExpiresAt:   a.ExpiresAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.PetDetails != nil {
		pd := toPetDocument(*a.PetDetails)
		doc.PetDetails = &pd
	}
	return doc
}

func (d *alertDocument) toEntity() *entity.Alert {
	a := &entity.Alert{
		ID:             d.ID.Hex(),
		Type:           entity.AlertType(d.Type),
		Title:          d.Title,
		Description:    d.Description,
		Urgency:        entity.Urgency(d.Urgency),
		Status:         entity.AlertStatus(d.Status),
		TargetAudience: entity.Audience(d.TargetAudience),
		Location: entity.AlertArea{
			Point: locationDocument{
				Type:        d.Location.Type,
				Coordinates: d.Location.Coordinates,
				Address:     d.Location.Address,
			}.toEntity(),
			City:     d.Location.City,
			State:    d.Location.State,
			RadiusKm: d.Location.Radius,
		},
		ContactInfo: entity.ContactInfo(d.ContactInfo),
		Images:      nonNil(d.Images),
		CreatedBy:   hexOrEmpty(d.CreatedBy),
		ExpiresAt:   d.ExpiresAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.PetDetails != nil {
		pd := d.PetDetails.toEntity()
		a.PetDetails = &pd
	}
	return a
}

type AlertMongoRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewAlertMongoRepository(db *mongo.Database, logger *zap.Logger) *AlertMongoRepository {
	logger = logger.Named("AlertRepository")
	coll := db.Collection(alertsCollectionName)
	ensureIndexes(coll, logger, []mongo.IndexModel{
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "type", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdBy", Value: 1}}},
	})
	return &AlertMongoRepository{coll: coll, logger: logger}
}

func (r *AlertMongoRepository) Create(ctx context.Context, alert *entity.Alert) (string, error) {
	doc := toAlertDocument(alert)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert alert", zap.Error(err))
		return "", fmt.Errorf("failed to create alert in mongo: %w", err)
	}
	r.logger.Info("Alert created", zap.String("alertID", doc.ID.Hex()), zap.String("type", doc.Type), zap.String("urgency", doc.Urgency))
	return doc.ID.Hex(), nil
}

func (r *AlertMongoRepository) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc alertDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFoundOr(err, "failed to get alert from mongo")
	}
	return doc.toEntity(), nil
}

func (r *AlertMongoRepository) Update(ctx context.Context, alert *entity.Alert) error {
	oid, err := objectID(alert.ID)
	if err != nil {
		return err
	}
	doc := toAlertDocument(alert)
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"type":           doc.Type,
		"title":          doc.Title,
		"description":    doc.Description,
		"urgency":        doc.Urgency,
		"status":         doc.Status,
		"targetAudience": doc.TargetAudience,
		"location":       doc.Location,
		"petDetails":     doc.PetDetails,
		"contactInfo":    doc.ContactInfo,
		"images":         doc.Images,
		"expiresAt":      doc.ExpiresAt,
		"updatedAt":      doc.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("failed to update alert in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	r.logger.Info("Alert updated", zap.String("alertID", alert.ID))
	return nil
}

func (r *AlertMongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete alert from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	r.logger.Info("Alert deleted", zap.String("alertID", id))
	return nil
}

// buildAlertFilter keeps the historical radius semantics: MaxRadiusKm
// compares against each alert's own coverage radius. A Near point adds a
// real distance restriction on top.
func buildAlertFilter(f repository.AlertFilter) bson.M {
	filter := bson.M{}
	if s := strings.TrimSpace(f.Search); s != "" {
		re := containsInsensitive(s)
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
			bson.M{"location.city": re},
		}
	}
	if f.Type != "" {
		filter["type"] = string(f.Type)
	}
	if f.Urgency != "" {
		filter["urgency"] = string(f.Urgency)
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.City != "" {
		filter["location.city"] = equalsInsensitive(f.City)
	}
	if f.MaxRadiusKm > 0 {
		filter["location.radius"] = bson.M{"$lte": f.MaxRadiusKm}
	}
	if f.Near != nil && f.Near.RadiusKm > 0 {
		filter["location"] = withinRadius(f.Near)
	}
	return filter
}

func (r *AlertMongoRepository) List(ctx context.Context, f repository.AlertFilter) ([]*entity.Alert, int64, error) {
	docs, total, err := findPage[alertDocument](ctx, r.coll, buildAlertFilter(f), f.Page, newestFirst)
	if err != nil {
		r.logger.Error("Failed to list alerts", zap.Error(err))
		return nil, 0, err
	}
	alerts := make([]*entity.Alert, len(docs))
	for i := range docs {
		alerts[i] = docs[i].toEntity()
	}
	return alerts, total, nil
}

var _ repository.AlertRepository = (*AlertMongoRepository)(nil)
