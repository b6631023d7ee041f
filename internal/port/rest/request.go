package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
)

const maxBodyBytes = 1 << 20

var errInvalidBody = entity.NewError(entity.ErrValidation, "Invalid request body")

// decode reads a JSON body into dst. Unknown fields are ignored and an empty
// body leaves dst untouched.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return entity.NewError(entity.ErrValidation, "Request body too large")
		}
		return errInvalidBody
	}
	return nil
}

// bind decodes and then validates dst.
func (v *Validator) bind(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := decode(w, r, dst); err != nil {
		return err
	}
	return v.Validate(dst)
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

func pageRequest(r *http.Request) entity.PageRequest {
	return entity.NewPageRequest(queryInt(r, "page"), queryInt(r, "limit"))
}

// queryBool returns nil unless key is exactly "true" or "false".
func queryBool(r *http.Request, key string) *bool {
	switch strings.ToLower(r.URL.Query().Get(key)) {
	case "true":
		b := true
		return &b
	case "false":
		b := false
		return &b
	}
	return nil
}

func queryFloat(r *http.Request, key string) (*float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, entity.NewValidationError(key, key+" must be a number")
	}
	return &f, nil
}

// geoFilter reads lat, lng and the radius parameter. It returns nil unless
// all three are present.
func geoFilter(r *http.Request, radiusKey string) (*repository.GeoFilter, error) {
	lat, err := queryFloat(r, "lat")
	if err != nil {
		return nil, err
	}
	lng, err := queryFloat(r, "lng")
	if err != nil {
		return nil, err
	}
	radius, err := queryFloat(r, radiusKey)
	if err != nil {
		return nil, err
	}
	if lat == nil || lng == nil || radius == nil {
		return nil, nil
	}
	loc := entity.NewLocation(*lng, *lat, "")
	if err := loc.Validate(); err != nil {
		return nil, entity.NewValidationError("lat", err.Error())
	}
	if *radius <= 0 {
		return nil, entity.NewValidationError(radiusKey, radiusKey+" must be positive")
	}
	return &repository.GeoFilter{Longitude: *lng, Latitude: *lat, RadiusKm: *radius}, nil
}

// statusParam applies the list default: empty means def, "all" disables the
// filter.
func statusParam(r *http.Request, def string) string {
	switch s := r.URL.Query().Get("status"); s {
	case "":
		return def
	case "all":
		return ""
	default:
		return s
	}
}

// latLng splits an optional [longitude, latitude] pair.
func latLng(coords []float64) (lat, lng *float64) {
	if len(coords) != 2 {
		return nil, nil
	}
	return &coords[1], &coords[0]
}

// date accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
type date struct {
	time.Time
}

func (d *date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

// ptr returns nil for an absent or zero date.
func (d *date) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.UTC()
	return &t
}

type locationRequest struct {
	Coordinates []float64 `json:"coordinates" validate:"omitempty,coordinates"`
	Address     string    `json:"address"`
}

func (l *locationRequest) split() (lat, lng *float64, address string) {
	if l == nil {
		return nil, nil, ""
	}
	lat, lng = latLng(l.Coordinates)
	return lat, lng, l.Address
}
