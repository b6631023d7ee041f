package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
)

const reportsCollectionName = "reports"

type reportDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ReporterID  primitive.ObjectID `bson:"reporterId"`
	TargetType  string             `bson:"targetType"`
	TargetID    primitive.ObjectID `bson:"targetId"`
	Reason      string             `bson:"reason"`
	Description string             `bson:"description,omitempty"`
	Status      string             `bson:"status"`
	ReviewedBy  primitive.ObjectID `bson:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time         `bson:"reviewedAt,omitempty"`
	AdminNotes  string             `bson:"adminNotes,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *reportDocument) toEntity() *entity.Report {
	return &entity.Report{
		ID:          d.ID.Hex(),
		ReporterID:  hexOrEmpty(d.ReporterID),
		TargetType:  entity.ReportTarget(d.TargetType),
		TargetID:    hexOrEmpty(d.TargetID),
		Reason:      d.Reason,
		Description: d.Description,
		Status:      entity.ReportStatus(d.Status),
		ReviewedBy:  hexOrEmpty(d.ReviewedBy),
		ReviewedAt:  d.ReviewedAt,
		AdminNotes:  d.AdminNotes,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type ReportMongoRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewReportMongoRepository(db *mongo.Database, logger *zap.Logger) *ReportMongoRepository {
	logger = logger.Named("ReportRepository")
	coll := db.Collection(reportsCollectionName)
	ensureIndexes(coll, logger, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "targetType", Value: 1}, {Key: "targetId", Value: 1}}},
	})
	return &ReportMongoRepository{coll: coll, logger: logger}
}

func (r *ReportMongoRepository) Create(ctx context.Context, report *entity.Report) (string, error) {
	doc := reportDocument{
		ID:          primitive.NewObjectID(),
		ReporterID:  refFromHex(report.ReporterID),
		TargetType:  string(report.TargetType),
		TargetID:    refFromHex(report.TargetID),
		Reason:      report.Reason,
		Description: report.Description,
		Status:      string(report.Status),
		CreatedAt:   report.CreatedAt,
		UpdatedAt:   report.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert report", zap.Error(err))
		return "", fmt.Errorf("failed to create report in mongo: %w", err)
	}
	r.logger.Info("Report filed", zap.String("reportID", doc.ID.Hex()), zap.String("targetType", doc.TargetType))
	return doc.ID.Hex(), nil
}

func (r *ReportMongoRepository) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc reportDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFoundOr(err, "failed to get report from mongo")
	}
	return doc.toEntity(), nil
}

func (r *ReportMongoRepository) List(ctx context.Context, f repository.ReportFilter) ([]*entity.Report, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	docs, total, err := findPage[reportDocument](ctx, r.coll, filter, f.Page, newestFirst)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*entity.Report, len(docs))
	for i := range docs {
		out[i] = docs[i].toEntity()
	}
	return out, total, nil
}

func (r *ReportMongoRepository) Review(ctx context.Context, report *entity.Report) error {
	oid, err := objectID(report.ID)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status":     string(report.Status),
		"adminNotes": report.AdminNotes,
		"reviewedBy": refFromHex(report.ReviewedBy),
		"reviewedAt": report.ReviewedAt,
		"updatedAt":  report.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("failed to review report in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	r.logger.Info("Report reviewed", zap.String("reportID", report.ID), zap.String("status", string(report.Status)))
	return nil
}

func (r *ReportMongoRepository) CountByStatus(ctx context.Context, status entity.ReportStatus) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"status": string(status)})
	if err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return n, nil
}

var _ repository.ReportRepository = (*ReportMongoRepository)(nil)
