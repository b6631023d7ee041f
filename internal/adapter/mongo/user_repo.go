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

const usersCollectionName = "users"

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	Password     string             `bson:"password"`
	Role         string             `bson:"role"`
	Phone        string             `bson:"phone,omitempty"`
	Address      string             `bson:"address,omitempty"`
	Bio          string             `bson:"bio,omitempty"`
	ProfileImage string             `bson:"profileImage,omitempty"`
	VetInfo      *vetInfoDocument   `bson:"vetInfo,omitempty"`
	Permissions  permissionsDoc     `bson:"permissions"`
	IsActive     bool               `bson:"isActive"`

	IsBlocked   bool               `bson:"isBlocked"`
	BlockedBy   primitive.ObjectID `bson:"blockedBy,omitempty"`
	BlockedAt   *time.Time         `bson:"blockedAt,omitempty"`
	BlockReason string             `bson:"blockReason,omitempty"`

	IsEmailVerified          bool       `bson:"isEmailVerified"`
	EmailVerificationToken   string     `bson:"emailVerificationToken,omitempty"`
	EmailVerificationExpires *time.Time `bson:"emailVerificationExpires,omitempty"`
	PasswordResetToken       string     `bson:"passwordResetToken,omitempty"`
	PasswordResetExpires     *time.Time `bson:"passwordResetExpires,omitempty"`

	LastLogin *time.Time `bson:"lastLogin,omitempty"`
	CreatedAt time.Time  `bson:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt"`
}

type vetInfoDocument struct {
	LicenseNumber  string `bson:"licenseNumber,omitempty"`
	Specialization string `bson:"specialization,omitempty"`
	ClinicName     string `bson:"clinicName,omitempty"`
}

type permissionsDoc struct {
	CanPost         bool `bson:"canPost"`
	CanComment      bool `bson:"canComment"`
	CanCreateAlerts bool `bson:"canCreateAlerts"`
}

func toUserDocument(u *entity.User) (*userDocument, error) {
	doc := &userDocument{
		Name:                     u.Name,
		Email:                    strings.ToLower(strings.TrimSpace(u.Email)),
		Password:                 u.Password,
		Role:                     string(u.Role),
		Phone:                    u.Phone,
		Address:                  u.Address,
		Bio:                      u.Bio,
		ProfileImage:             u.ProfileImage,
		Permissions:              permissionsDoc(u.Permissions),
		IsActive:                 u.IsActive,
		IsBlocked:                u.IsBlocked,
		BlockedBy:                refFromHex(u.BlockedBy),
		BlockedAt:                u.BlockedAt,
		BlockReason:              u.BlockReason,
		IsEmailVerified:          u.IsEmailVerified,
		EmailVerificationToken:   u.EmailVerificationToken,
		EmailVerificationExpires: u.EmailVerificationExpires,
		PasswordResetToken:       u.PasswordResetToken,
		PasswordResetExpires:     u.PasswordResetExpires,
		LastLogin:                u.LastLogin,
		CreatedAt:                u.CreatedAt,
		UpdatedAt:                u.UpdatedAt,
	}
	if u.VetInfo != nil {
		vi := vetInfoDocument(*u.VetInfo)
		doc.VetInfo = &vi
	}
	if u.ID != "" {
		oid, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID format: %w", err)
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d *userDocument) toEntity() *entity.User {
	u := &entity.User{
		ID:                       d.ID.Hex(),
		Name:                     d.Name,
		Email:                    d.Email,
		Password:                 d.Password,
		Role:                     entity.Role(d.Role),
		Phone:                    d.Phone,
		Address:                  d.Address,
		Bio:                      d.Bio,
		ProfileImage:             d.ProfileImage,
		Permissions:              entity.Permissions(d.Permissions),
		IsActive:                 d.IsActive,
		IsBlocked:                d.IsBlocked,
		BlockedBy:                hexOrEmpty(d.BlockedBy),
		BlockedAt:                d.BlockedAt,
		BlockReason:              d.BlockReason,
		IsEmailVerified:          d.IsEmailVerified,
		EmailVerificationToken:   d.EmailVerificationToken,
		EmailVerificationExpires: d.EmailVerificationExpires,
		PasswordResetToken:       d.PasswordResetToken,
		PasswordResetExpires:     d.PasswordResetExpires,
		LastLogin:                d.LastLogin,
		CreatedAt:                d.CreatedAt,
		UpdatedAt:                d.UpdatedAt,
	}
	if d.VetInfo != nil {
		vi := entity.VetInfo(*d.VetInfo)
		u.VetInfo = &vi
	}
	return u
}

type UserMongoRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewUserMongoRepository(db *mongo.Database, logger *zap.Logger) *UserMongoRepository {
	logger = logger.Named("UserRepository")
	coll := db.Collection(usersCollectionName)
	ensureIndexes(coll, logger, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
		{Keys: bson.D{{Key: "emailVerificationToken", Value: 1}}, Options: options.Index().SetSparse(true)},
		{Keys: bson.D{{Key: "passwordResetToken", Value: 1}}, Options: options.Index().SetSparse(true)},
	})
	return &UserMongoRepository{coll: coll, logger: logger}
}

func (r *UserMongoRepository) Create(ctx context.Context, user *entity.User) (string, error) {
	doc, err := toUserDocument(user)
	if err != nil {
		return "", err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if isDuplicateKey(err) {
			r.logger.Warn("Duplicate email on user create", zap.String("email", doc.Email))
			return "", repository.ErrDuplicate
		}
		r.logger.Error("Failed to insert user", zap.String("email", doc.Email), zap.Error(err))
		return "", fmt.Errorf("failed to create user in mongo: %w", err)
	}
	r.logger.Info("User created", zap.String("userID", doc.ID.Hex()), zap.String("role", doc.Role))
	return doc.ID.Hex(), nil
}

func (r *UserMongoRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFoundOr(err, "failed to get user from mongo")
	}
	return doc.toEntity(), nil
}

func (r *UserMongoRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserMongoRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *UserMongoRepository) GetByVerificationToken(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"emailVerificationToken": token})
}

func (r *UserMongoRepository) GetByResetToken(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"passwordResetToken": token})
}

// Update replaces the mutable profile, role, permission, password and token
// fields. Block state is written by SetBlocked only.
func (r *UserMongoRepository) Update(ctx context.Context, user *entity.User) error {
	doc, err := toUserDocument(user)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		return fmt.Errorf("user ID is required for update")
	}

	set := bson.M{
		"name":            doc.Name,
		"email":           doc.Email,
		"password":        doc.Password,
		"role":            doc.Role,
		"phone":           doc.Phone,
		"address":         doc.Address,
		"bio":             doc.Bio,
		"profileImage":    doc.ProfileImage,
		"vetInfo":         doc.VetInfo,
		"permissions":     doc.Permissions,
		"isActive":        doc.IsActive,
		"isEmailVerified": doc.IsEmailVerified,
		"updatedAt":       doc.UpdatedAt,
	}
	unset := bson.M{}
	setOrUnset(set, unset, "emailVerificationToken", doc.EmailVerificationToken, doc.EmailVerificationToken != "")
	setOrUnset(set, unset, "emailVerificationExpires", doc.EmailVerificationExpires, doc.EmailVerificationExpires != nil)
	setOrUnset(set, unset, "passwordResetToken", doc.PasswordResetToken, doc.PasswordResetToken != "")
	setOrUnset(set, unset, "passwordResetExpires", doc.PasswordResetExpires, doc.PasswordResetExpires != nil)

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		if isDuplicateKey(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to update user in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	r.logger.Info("User updated", zap.String("userID", user.ID))
	return nil
}

func setOrUnset(set, unset bson.M, field string, value interface{}, present bool) {
	if present {
		set[field] = value
	} else {
		unset[field] = ""
	}
}

func (r *UserMongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete user from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	r.logger.Info("User deleted", zap.String("userID", id))
	return nil
}

func buildUserFilter(f repository.UserFilter) bson.M {
	filter := bson.M{}
	if f.Role != "" {
		filter["role"] = string(f.Role)
	}
	if f.Active != nil {
		filter["isActive"] = *f.Active
	}
	if f.Blocked != nil {
		filter["isBlocked"] = *f.Blocked
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		re := containsInsensitive(s)
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"email": re},
		}
	}
	return filter
}

func (r *UserMongoRepository) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, int64, error) {
	docs, total, err := findPage[userDocument](ctx, r.coll, buildUserFilter(f), f.Page, newestFirst)
	if err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, 0, err
	}
	users := make([]*entity.User, len(docs))
	for i := range docs {
		users[i] = docs[i].toEntity()
	}
	return users, total, nil
}

// SetBlocked persists the block fields of user; an unblocked user has them removed.
func (r *UserMongoRepository) SetBlocked(ctx context.Context, user *entity.User) error {
	oid, err := objectID(user.ID)
	if err != nil {
		return err
	}

	var update bson.M
	if user.IsBlocked {
		update = bson.M{"$set": bson.M{
			"isBlocked":   true,
			"blockedBy":   refFromHex(user.BlockedBy),
			"blockedAt":   user.BlockedAt,
			"blockReason": user.BlockReason,
			"updatedAt":   user.UpdatedAt,
		}}
	} else {
		update = bson.M{
			"$set":   bson.M{"isBlocked": false, "updatedAt": user.UpdatedAt},
			"$unset": bson.M{"blockedBy": "", "blockedAt": "", "blockReason": ""},
		}
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update block state in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	r.logger.Info("User block state changed", zap.String("userID", user.ID), zap.Bool("blocked", user.IsBlocked))
	return nil
}

// ClearBlockedBy removes references to a deleted administrator from the
// blockedBy field of the users they blocked. The blocks themselves remain.
func (r *UserMongoRepository) ClearBlockedBy(ctx context.Context, blockerID string) (int64, error) {
	oid, err := objectID(blockerID)
	if err != nil {
		return 0, err
	}
	res, err := r.coll.UpdateMany(ctx, bson.M{"blockedBy": oid}, bson.M{"$unset": bson.M{"blockedBy": ""}})
	if err != nil {
		return 0, fmt.Errorf("failed to clear blockedBy in mongo: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *UserMongoRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	_, err = r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"lastLogin": at}})
	if err != nil {
		return fmt.Errorf("failed to update last login in mongo: %w", err)
	}
	return nil
}

func (r *UserMongoRepository) Stats(ctx context.Context, since time.Time) (*entity.UserStats, error) {
	stats := &entity.UserStats{ByRole: map[entity.Role]int64{}}

	counts := []struct {
		dst    *int64
		filter bson.M
	}{
		{&stats.Total, bson.M{}},
		{&stats.Active, bson.M{"isActive": true, "isBlocked": false}},
		{&stats.Blocked, bson.M{"isBlocked": true}},
		{&stats.NewThisMonth, bson.M{"createdAt": bson.M{"$gte": since}}},
	}
	for _, c := range counts {
		n, err := r.coll.CountDocuments(ctx, c.filter)
		if err != nil {
			return nil, fmt.Errorf("failed to count users in mongo: %w", err)
		}
		*c.dst = n
	}

	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$role"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user roles in mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Role  string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode user roles: %w", err)
	}
	for _, row := range rows {
		stats.ByRole[entity.Role(row.Role)] = row.Count
	}
	return stats, nil
}

var _ repository.UserRepository = (*UserMongoRepository)(nil)
