//go:build integration

package mongo

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/config"
	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
)

var testDB *mongo.Database

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "6.0",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start MongoDB resource: %s", err)
	}

	var client *mongo.Client
	cfg := &config.MongoConfig{
		URI:            fmt.Sprintf("mongodb://%s", resource.GetHostPort("27017/tcp")),
		ConnectTimeout: 5 * time.Second,
	}
	if err := pool.Retry(func() error {
		var connErr error
		client, connErr = NewMongoDBConnection(context.Background(), cfg)
		return connErr
	}); err != nil {
		log.Fatalf("Could not connect to MongoDB: %s", err)
	}
	testDB = client.Database("safetails_test")

	code := m.Run()

	_ = client.Disconnect(context.Background())
	if err := pool.Purge(resource); err != nil {
		log.Printf("Could not purge resource: %s", err)
	}
	os.Exit(code)
}

func TestUserRepository_Integration(t *testing.T) {
	ctx := context.Background()
	repo := NewUserMongoRepository(testDB, zap.NewNop())
	now := time.Now().UTC().Truncate(time.Millisecond)

	u := &entity.User{
		Name: "Rina", Email: "Rina@Example.com", Password: "hash", Role: entity.RoleUser,
		IsActive: true, Permissions: entity.DefaultPermissions(), CreatedAt: now, UpdatedAt: now,
	}
	id, err := repo.Create(ctx, u)
	require.NoError(t, err)

	_, err = repo.Create(ctx, &entity.User{Name: "Dup", Email: "rina@example.com", Role: entity.RoleUser, CreatedAt: now})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := repo.GetByEmail(ctx, "RINA@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	admin := primitive.NewObjectID().Hex()
	got.Block(admin, "spam", now)
	require.NoError(t, repo.SetBlocked(ctx, got))

	n, err := repo.ClearBlockedBy(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	reloaded, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, reloaded.IsBlocked)
	assert.Empty(t, reloaded.BlockedBy)

	stats, err := repo.Stats(ctx, entity.StartOfMonth(now))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.Blocked, int64(1))
}

func TestPetPostRepository_Integration(t *testing.T) {
	ctx := context.Background()
	repo := NewPetPostMongoRepository(testDB, zap.NewNop())
	now := time.Now().UTC()

	id, err := repo.Create(ctx, &entity.PetPost{
		UserID:       primitive.NewObjectID().Hex(),
		PostType:     entity.PostTypeMissing,
		Pet:          entity.PetDetails{Type: "dog", Name: "Kalu"},
		Description:  "Black dog",
		Location:     entity.NewLocation(90.41, 23.81, "Gulshan"),
		LastSeenDate: &now,
		Status:       entity.PostStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)

	p, err := repo.IncrementViews(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Views)
	p, err = repo.IncrementViews(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.Views)

	resolver := primitive.NewObjectID().Hex()
	resolved, err := repo.Resolve(ctx, id, resolver, now)
	require.NoError(t, err)
	assert.Equal(t, entity.PostStatusResolved, resolved.Status)

	_, err = repo.Resolve(ctx, id, primitive.NewObjectID().Hex(), now.Add(time.Hour))
	assert.ErrorIs(t, err, repository.ErrConditionFailed)

	_, err = repo.AddComment(ctx, id, entity.PostComment{UserID: resolver, Content: "late", CreatedAt: now})
	assert.ErrorIs(t, err, repository.ErrConditionFailed)

	again, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, resolver, again.ResolvedBy)

	near, total, err := repo.List(ctx, repository.PetPostFilter{
		Near: &repository.GeoFilter{Longitude: 90.40, Latitude: 23.80, RadiusKm: 5},
		Page: entity.NewPageRequest(1, 10),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, near, 1)

	_, err = repo.Resolve(ctx, primitive.NewObjectID().Hex(), resolver, now)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAdoptionRepository_Integration(t *testing.T) {
	ctx := context.Background()
	repo := NewAdoptionMongoRepository(testDB, zap.NewNop())
	now := time.Now().UTC()

	id, err := repo.Create(ctx, &entity.AdoptionListing{
		Pet:       entity.PetDetails{Name: "Tom", Type: "cat"},
		Location:  entity.NewLocation(0, 0, ""),
		City:      "Khulna",
		State:     "Khulna",
		Status:    entity.AdoptionAvailable,
		PostedBy:  primitive.NewObjectID().Hex(),
		CreatedAt: now,
	})
	require.NoError(t, err)

	applicant := primitive.NewObjectID().Hex()
	app := entity.Application{ApplicantID: applicant, Status: entity.ApplicationPending, AppliedAt: now}
	require.NoError(t, repo.AddApplication(ctx, id, app))
	assert.ErrorIs(t, repo.AddApplication(ctx, id, app), repository.ErrDuplicate)

	require.NoError(t, repo.UpdateStatus(ctx, id, entity.AdoptionAdopted, applicant))
	other := entity.Application{ApplicantID: primitive.NewObjectID().Hex(), AppliedAt: now}
	assert.ErrorIs(t, repo.AddApplication(ctx, id, other), repository.ErrConditionFailed)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, applicant, got.AdoptedBy)

	require.NoError(t, repo.UpdateStatus(ctx, id, entity.AdoptionAvailable, ""))
	got, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.AdoptionAvailable, got.Status)
	assert.Empty(t, got.AdoptedBy)
}
