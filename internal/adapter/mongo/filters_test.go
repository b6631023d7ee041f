package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildUserFilter(t *testing.T) {
	f := buildUserFilter(repository.UserFilter{
		Role:    entity.RoleVet,
		Active:  boolPtr(true),
		Blocked: boolPtr(false),
		Search:  "a.b+c",
	})

	assert.Equal(t, "vet", f["role"])
	assert.Equal(t, true, f["isActive"])
	assert.Equal(t, false, f["isBlocked"])

	or, ok := f["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)
	re := or[0].(bson.M)["name"].(primitive.Regex)
	assert.Equal(t, `a\.b\+c`, re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestBuildUserFilter_Empty(t *testing.T) {
	assert.Empty(t, buildUserFilter(repository.UserFilter{Search: "   "}))
}

func TestBuildPetPostFilter(t *testing.T) {
	uid := primitive.NewObjectID()
	f := buildPetPostFilter(repository.PetPostFilter{
		PostType: entity.PostTypeMissing,
		Status:   entity.PostStatusActive,
		City:     "Dhaka",
		UserID:   uid.Hex(),
		Search:   "tabby",
		Near:     &repository.GeoFilter{Longitude: 90.4, Latitude: 23.8, RadiusKm: 5},
	})

	assert.Equal(t, "missing", f["postType"])
	assert.Equal(t, "active", f["status"])
	assert.Equal(t, uid, f["userId"])
	assert.Equal(t, bson.M{"$search": "tabby"}, f["$text"])
	assert.Equal(t, "^Dhaka$", f["city"].(primitive.Regex).Pattern)

	geo := f["location"].(bson.M)["$geoWithin"].(bson.M)["$centerSphere"].(bson.A)
	assert.Equal(t, bson.A{90.4, 23.8}, geo[0])
	assert.InDelta(t, 5/earthRadiusKm, geo[1], 1e-12)
}

func TestBuildPetPostFilter_IgnoresMalformedUser(t *testing.T) {
	f := buildPetPostFilter(repository.PetPostFilter{UserID: "not-an-id"})
	assert.NotContains(t, f, "userId")
}

func TestBuildAlertFilter_RadiusSemantics(t *testing.T) {
	t.Run("radius alone compares coverage radius", func(t *testing.T) {
		f := buildAlertFilter(repository.AlertFilter{MaxRadiusKm: 25})
		assert.Equal(t, bson.M{"$lte": 25.0}, f["location.radius"])
		assert.NotContains(t, f, "location")
	})

	t.Run("near point adds distance restriction", func(t *testing.T) {
		f := buildAlertFilter(repository.AlertFilter{
			MaxRadiusKm: 25,
			Near:        &repository.GeoFilter{Longitude: 1, Latitude: 2, RadiusKm: 25},
		})
		assert.Contains(t, f, "location.radius")
		assert.Contains(t, f, "location")
	})

	t.Run("search spans title description city", func(t *testing.T) {
		f := buildAlertFilter(repository.AlertFilter{Search: "dog", Status: entity.AlertStatusActive})
		assert.Len(t, f["$or"], 3)
		assert.Equal(t, "active", f["status"])
	})
}

func TestBuildVetFilter(t *testing.T) {
	f := buildVetFilter(repository.VetFilter{
		Specialization: "surgery",
		Emergency:      true,
		Is24Hours:      true,
		State:          "CA",
		Verified:       boolPtr(true),
	})
	assert.Equal(t, true, f["isActive"])
	assert.Equal(t, true, f["isEmergencyAvailable"])
	assert.Equal(t, true, f["is24Hours"])
	assert.Equal(t, true, f["isVerified"])
	assert.Equal(t, "^surgery$", f["specializations"].(primitive.Regex).Pattern)
	assert.NotContains(t, f, "city")
}

func TestBuildAdoptionFilter(t *testing.T) {
	fee := 50.0
	f := buildAdoptionFilter(repository.AdoptionFilter{
		Status:       entity.AdoptionAvailable,
		GoodWithKids: boolPtr(true),
		MaxFee:       &fee,
	})
	assert.Equal(t, "available", f["status"])
	assert.Equal(t, true, f["compatibility.goodWithKids"])
	assert.Equal(t, bson.M{"$lte": 50.0}, f["adoptionFee"])
}

func TestBuildFosterFilter(t *testing.T) {
	f := buildFosterFilter(repository.FosterFilter{Duration: entity.FosterEmergency, Search: "cat"})
	assert.Equal(t, "emergency", f["duration"])
	assert.Len(t, f["$or"], 3)
}

func TestLocationRoundTrip(t *testing.T) {
	loc := entity.NewLocation(-73.9, 40.7, "NYC")
	back := toLocationDocument(loc).toEntity()
	assert.Equal(t, loc, back)

	empty := locationDocument{}.toEntity()
	assert.Equal(t, "Point", empty.Type)
	assert.Equal(t, [2]float64{0, 0}, empty.Coordinates)
}

func TestObjectID(t *testing.T) {
	_, err := objectID("zzz")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.True(t, refFromHex("").IsZero())
	assert.Empty(t, hexOrEmpty(primitive.NilObjectID))
}

func TestAdoptionStatusUpdate(t *testing.T) {
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	adopter := primitive.NewObjectID()

	got := adoptionStatusUpdate(entity.AdoptionAdopted, adopter.Hex(), at)
	assert.Equal(t, bson.M{"$set": bson.M{"status": "adopted", "updatedAt": at, "adoptedBy": adopter}}, got)

	got = adoptionStatusUpdate(entity.AdoptionAvailable, "", at)
	assert.Equal(t, bson.M{
		"$set":   bson.M{"status": "available", "updatedAt": at},
		"$unset": bson.M{"adoptedBy": ""},
	}, got)
}
