package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/auth"
	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository/mocks"
	"github.com/ahsanauddry027/safetails-sub000/internal/usecase"
)

const testPassword = "Secret123"

type testServer struct {
	handler      http.Handler
	tokens       *auth.TokenManager
	users        *mocks.UserRepository
	posts        *mocks.PetPostRepository
	testimonials *mocks.TestimonialRepository
	alerts       *mocks.AlertRepository
	reports      *mocks.ReportRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	s := &testServer{
		tokens:       auth.NewTokenManager("test-secret", "safetails", "safetails-web", time.Hour),
		users:        new(mocks.UserRepository),
		posts:        new(mocks.PetPostRepository),
		testimonials: new(mocks.TestimonialRepository),
		alerts:       new(mocks.AlertRepository),
		reports:      new(mocks.ReportRepository),
	}
	v := NewValidator()
	cookies := auth.CookieIssuer{MaxAge: time.Hour}

	authUC := usecase.NewAuthUseCase(s.users, s.tokens, nil, nil, "http://localhost:3000", logger)
	h := Handlers{
		Auth:   NewAuthHandler(authUC, cookies, v, logger),
		Users:  NewUserHandler(usecase.NewUserUseCase(s.users, s.posts, s.testimonials, s.reports, nil, nil, logger), v, logger),
		Posts:  NewPostHandler(usecase.NewPetPostUseCase(s.posts, nil, nil, logger), v, logger),
		Alerts: NewAlertHandler(usecase.NewAlertUseCase(s.alerts, nil, nil, logger), v, logger),
		Listings: NewListingHandler(
			usecase.NewAdoptionUseCase(new(mocks.AdoptionRepository), logger),
			usecase.NewFosterUseCase(new(mocks.FosterRepository), logger),
			v, logger,
		),
		Vets: NewVetHandler(usecase.NewVetDirectoryUseCase(new(mocks.VetDirectoryRepository), nil, 0, logger), v, logger),
		Moderation: NewModerationHandler(
			usecase.NewReportUseCase(s.reports, nil, logger),
			usecase.NewTestimonialUseCase(s.testimonials, nil, 0, logger),
			v, logger,
		),
		Media: NewMediaHandler(usecase.NewMediaUseCase(nil, logger), logger),
	}
	s.handler = NewRouter(h, RouterOptions{
		Authenticator: authUC,
		Cookies:       cookies,
		TracerName:    "test",
		Logger:        logger,
	})
	return s
}

func hashed(t *testing.T) string {
	t.Helper()
	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)
	return hash
}

func newUser(id string, role entity.Role) *entity.User {
	return &entity.User{
		ID:          id,
		Name:        "User " + id,
		Email:       id + "@example.com",
		Role:        role,
		Permissions: entity.DefaultPermissions(),
		IsActive:    true,
	}
}

// signIn registers u with the user mock and returns a session token for it.
func (s *testServer) signIn(t *testing.T, u *entity.User) string {
	t.Helper()
	s.users.On("GetByID", mock.Anything, u.ID).Return(u, nil)
	token, err := s.tokens.Issue(u)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success    bool               `json:"success"`
	Data       json.RawMessage    `json:"data"`
	Message    string             `json:"message"`
	Error      string             `json:"error"`
	Pagination *entity.Pagination `json:"pagination"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	u := newUser("u1", entity.RoleUser)
	u.Password = hashed(t)
	s.users.On("GetByEmail", mock.Anything, "u1@example.com").Return(u, nil)
	s.users.On("TouchLastLogin", mock.Anything, "u1", mock.AnythingOfType("time.Time")).Return(nil)

	rec := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "U1@example.com", "password": testPassword})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotContains(t, rec.Body.String(), `"password"`)

	rec = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "u1@example.com", "password": "Wrong1234"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decodeEnvelope(t, rec).Error)
}

func TestLogin_BlockedAccount(t *testing.T) {
	s := newTestServer(t)
	u := newUser("u1", entity.RoleUser)
	u.Password = hashed(t)
	u.Block("admin", "spam posting", time.Now())
	s.users.On("GetByEmail", mock.Anything, "u1@example.com").Return(u, nil)

	rec := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "u1@example.com", "password": testPassword})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Account is blocked", env.Error)
	assert.JSONEq(t, `{"reason":"spam posting"}`, string(env.Data))
	assert.Empty(t, rec.Result().Cookies())
}

func TestSession_RejectedOnceBlocked(t *testing.T) {
	s := newTestServer(t)
	u := newUser("u1", entity.RoleUser)
	token := s.signIn(t, u)

	rec := s.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	u.Block("admin", "spam", time.Now())
	rec = s.do(http.MethodGet, "/api/auth/me", token, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Account is blocked", env.Error)
	assert.JSONEq(t, `{"reason":"spam"}`, string(env.Data))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestMe_RequiresSession(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication required", decodeEnvelope(t, rec).Error)

	rec = s.do(http.MethodGet, "/api/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Negative(t, rec.Result().Cookies()[0].MaxAge)
}

func TestRegister_Validation(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ann", "email": "not-an-email", "password": "weak",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Data struct {
			Fields map[string]string `json:"fields"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, auth.PasswordPolicy, body.Data.Fields["password"])
	assert.Equal(t, "Please enter a valid email", body.Data.Fields["email"])
}

func missingPostBody() map[string]any {
	return map[string]any{
		"postType":    "missing",
		"petName":     "Rex",
		"petType":     "dog",
		"description": "Brown dog with a red collar",
		"location":    map[string]any{"coordinates": []float64{90.4, 23.8}, "address": "Road 12, Dhanmondi"},
		"city":        "Dhaka",
	}
}

func TestCreatePost_MissingNeedsLastSeenDate(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, newUser("u1", entity.RoleUser))

	rec := s.do(http.MethodPost, "/api/posts", token, missingPostBody())
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Error string `json:"error"`
		Data  struct {
			Step string `json:"step"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "lastSeenDate is required", body.Error)
	assert.Equal(t, "details", body.Data.Step)
	s.posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	s.posts.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.PetPost) bool {
		return p.UserID == "u1" && p.Status == entity.PostStatusActive && p.LastSeenDate != nil &&
			p.Location.Type == "Point" && p.Location.Coordinates == [2]float64{90.4, 23.8}
	})).Return("p1", nil).Once()

	withDate := missingPostBody()
	withDate["lastSeenDate"] = "2024-03-10"
	rec = s.do(http.MethodPost, "/api/posts", token, withDate)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var post entity.PetPost
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &post))
	assert.Equal(t, "p1", post.ID)
	assert.Zero(t, post.Views)
	s.posts.AssertExpectations(t)
}

func TestCreatePost_Anonymous(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodPost, "/api/posts", "", missingPostBody())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetPost_EveryReadCountsAView(t *testing.T) {
	s := newTestServer(t)
	s.posts.On("IncrementViews", mock.Anything, "p1").Return(&entity.PetPost{ID: "p1", Views: 1}, nil).Once()
	s.posts.On("IncrementViews", mock.Anything, "p1").Return(&entity.PetPost{ID: "p1", Views: 2}, nil).Once()

	var post entity.PetPost
	for i := 0; i < 2; i++ {
		rec := s.do(http.MethodGet, "/api/posts/p1", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &post))
	}
	assert.EqualValues(t, 2, post.Views)
	s.posts.AssertNumberOfCalls(t, "IncrementViews", 2)
}

func TestResolvePost_SecondResolveKeepsFirst(t *testing.T) {
	s := newTestServer(t)
	owner := newUser("u1", entity.RoleUser)
	vet := newUser("v1", entity.RoleVet)
	ownerToken := s.signIn(t, owner)
	vetToken := s.signIn(t, vet)

	resolvedAt := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	active := &entity.PetPost{ID: "p1", UserID: "u1", PostType: entity.PostTypeMissing, Status: entity.PostStatusActive}
	resolved := &entity.PetPost{ID: "p1", UserID: "u1", PostType: entity.PostTypeMissing, Status: entity.PostStatusResolved, ResolvedBy: "u1", ResolvedAt: &resolvedAt}
	s.posts.On("GetByID", mock.Anything, "p1").Return(active, nil).Once()
	s.posts.On("Resolve", mock.Anything, "p1", "u1", mock.AnythingOfType("time.Time")).Return(resolved, nil).Once()
	s.posts.On("GetByID", mock.Anything, "p1").Return(resolved, nil).Once()

	rec := s.do(http.MethodPatch, "/api/posts/p1", ownerToken, map[string]string{"action": "resolve"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPatch, "/api/posts/p1", vetToken, map[string]string{"action": "resolve"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Post is already resolved", decodeEnvelope(t, rec).Error)
	s.posts.AssertNumberOfCalls(t, "Resolve", 1)
	assert.Equal(t, "u1", resolved.ResolvedBy)
	assert.Equal(t, resolvedAt, *resolved.ResolvedAt)
}

func TestPatchPost_UnknownAction(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, newUser("u1", entity.RoleUser))
	rec := s.do(http.MethodPatch, "/api/posts/p1", token, map[string]string{"action": "explode"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid action", decodeEnvelope(t, rec).Error)
}

func TestDeletePost_AdminOnly(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, newUser("u1", entity.RoleUser))
	rec := s.do(http.MethodDelete, "/api/posts/p1", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	s.posts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestListPosts_DefaultsToActive(t *testing.T) {
	s := newTestServer(t)
	s.posts.On("List", mock.Anything, mock.MatchedBy(func(f repository.PetPostFilter) bool {
		return f.Status == entity.PostStatusActive && f.City == "Dhaka" && f.Near != nil && f.Near.RadiusKm == 5
	})).Return([]*entity.PetPost{{ID: "p1"}}, int64(1), nil).Once()
	s.posts.On("List", mock.Anything, mock.MatchedBy(func(f repository.PetPostFilter) bool {
		return f.Status == ""
	})).Return([]*entity.PetPost{}, int64(0), nil).Once()

	rec := s.do(http.MethodGet, "/api/posts?city=Dhaka&lat=23.8&lng=90.4&maxDistance=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 1, decodeEnvelope(t, rec).Pagination.Total)

	rec = s.do(http.MethodGet, "/api/posts?status=all", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	s.posts.AssertExpectations(t)
}

func TestTestimonials_SecondSubmissionRejected(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, newUser("u1", entity.RoleUser))
	s.testimonials.On("GetByUserID", mock.Anything, "u1").Return(nil, repository.ErrNotFound).Once()
	s.testimonials.On("Create", mock.Anything, mock.AnythingOfType("*entity.Testimonial")).Return("t1", nil).Once()
	s.testimonials.On("GetByUserID", mock.Anything, "u1").
		Return(&entity.Testimonial{ID: "t1", UserID: "u1", Content: "Great", Rating: 5}, nil).Once()

	body := map[string]any{"content": "Great community", "rating": 5}
	rec := s.do(http.MethodPost, "/api/comments/user", token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/comments/user", token, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You have already submitted a review", decodeEnvelope(t, rec).Error)
	s.testimonials.AssertNumberOfCalls(t, "Create", 1)
}

func TestPublicTestimonials(t *testing.T) {
	s := newTestServer(t)
	s.testimonials.On("ListApproved", mock.Anything, entity.PublicTestimonialLimit).Return(nil, nil)

	rec := s.do(http.MethodGet, "/api/comments", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(decodeEnvelope(t, rec).Data))
}

func TestAdminUsers_Pagination(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, newUser("admin", entity.RoleAdmin))
	page := make([]*entity.User, 10)
	for i := range page {
		page[i] = newUser(fmt.Sprintf("u%d", i+11), entity.RoleUser)
	}
	s.users.On("List", mock.Anything, mock.MatchedBy(func(f repository.UserFilter) bool {
		return f.Page == entity.PageRequest{Page: 2, Limit: 10} && f.Blocked == nil && f.Active == nil
	})).Return(page, int64(25), nil)

	rec := s.do(http.MethodGet, "/api/admin/users?page=2&limit=10", token, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &users))
	assert.Len(t, users, 10)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, entity.Pagination{Total: 25, Page: 2, Limit: 10, Pages: 3}, *env.Pagination)
}

func TestAdminUsers_HugePageIsClamped(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, newUser("admin", entity.RoleAdmin))
	s.users.On("List", mock.Anything, mock.MatchedBy(func(f repository.UserFilter) bool {
		return f.Page.Page == entity.MaxPage && f.Page.Skip() > 0
	})).Return(nil, int64(25), nil)

	rec := s.do(http.MethodGet, "/api/admin/users?page=9223372036854775807&limit=10", token, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, decodeEnvelope(t, rec).Pagination)
	s.users.AssertExpectations(t)
}

func TestAdminRoutes_RejectNonAdmins(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, newUser("u1", entity.RoleUser))

	rec := s.do(http.MethodGet, "/api/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(http.MethodGet, "/api/admin/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = s.do(http.MethodGet, "/api/reports", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminCreateUser(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, newUser("admin", entity.RoleAdmin))
	s.users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "new@example.com"
	})).Return("u9", nil).Once()
	s.users.On("Create", mock.Anything, mock.Anything).Return("", repository.ErrDuplicate).Once()

	body := map[string]string{"name": "New", "email": "New@example.com", "password": testPassword, "role": "vet"}
	rec := s.do(http.MethodPost, "/api/admin/users", token, body)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created map[string]any
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))
	assert.Equal(t, "u9", created["id"])
	assert.Equal(t, "vet", created["role"])
	assert.NotContains(t, created, "password")

	rec = s.do(http.MethodPost, "/api/admin/users", token, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User with this email already exists", decodeEnvelope(t, rec).Error)
}

func TestAdminDeleteSelf(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, newUser("admin", entity.RoleAdmin))
	rec := s.do(http.MethodDelete, "/api/admin/users/admin", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You cannot delete your own account", decodeEnvelope(t, rec).Error)
}

func TestAdminUpdateSelf(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, newUser("admin", entity.RoleAdmin))

	rec := s.do(http.MethodPut, "/api/admin/users/admin", token, map[string]any{"role": "user"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You cannot change your own role", decodeEnvelope(t, rec).Error)

	rec = s.do(http.MethodPut, "/api/admin/users/admin", token, map[string]any{"isActive": false})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You cannot deactivate your own account", decodeEnvelope(t, rec).Error)

	s.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAlerts_UpdateNeedsID(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, newUser("u1", entity.RoleUser))
	rec := s.do(http.MethodPut, "/api/alerts", token, map[string]string{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Alert ID is required", decodeEnvelope(t, rec).Error)
}

func TestAlerts_CreateRequiresLocationFields(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, newUser("u1", entity.RoleUser))
	rec := s.do(http.MethodPost, "/api/alerts", token, map[string]any{
		"title":       "Lost cat",
		"description": "Grey tabby",
		"urgency":     "high",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	s.alerts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestForms(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/api/forms/pet-post-wounded", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), "injuryDescription")

	rec = s.do(http.MethodGet, "/api/forms/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpload_StorageNotConfigured(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, newUser("u1", entity.RoleUser))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "pet.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("\x89PNG\r\n\x1a\n0000"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Image uploads are not configured", decodeEnvelope(t, rec).Error)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
}
