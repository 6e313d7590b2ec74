package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/modubox/lockerhub/backend-go/internal/api"
	"github.com/modubox/lockerhub/backend-go/internal/config"
	"github.com/modubox/lockerhub/backend-go/internal/database/models"
	"github.com/modubox/lockerhub/backend-go/internal/database/repository"
	"github.com/modubox/lockerhub/backend-go/internal/database/service"
	"github.com/modubox/lockerhub/backend-go/internal/handler"
	"github.com/modubox/lockerhub/backend-go/internal/middleware"
	"github.com/modubox/lockerhub/backend-go/internal/weather"
)

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
	auth   service.AuthService
}

func setupApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Station{},
		&models.Locker{},
		&models.Post{},
		&models.Comment{},
		&models.RefreshToken{},
	))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		JWTSecret:              "test_secret",
		AccessTokenExpiration:  900,
		RefreshTokenExpiration: 3600,
	}

	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	stationRepo := repository.NewStationRepository(db)
	lockerRepo := repository.NewLockerRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Weather lookups disabled (no API key), no cache attached
	weatherClient := weather.NewClient(cfg, logger)

	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg, logger)
	userService := service.NewUserService(userRepo, refreshTokenRepo, logger)
	stationService := service.NewStationService(stationRepo, weatherClient, nil, logger)
	lockerService := service.NewLockerService(lockerRepo, stationRepo, logger)
	postService := service.NewPostService(postRepo, logger)
	commentService := service.NewCommentService(commentRepo, postRepo, logger)

	authMiddleware := middleware.NewAuthMiddleware(authService, logger)

	router := api.SetupRouter(
		handler.NewAuthHandler(authService, logger),
		handler.NewUserHandler(userService, logger),
		handler.NewStationHandler(stationService, logger),
		handler.NewLockerHandler(lockerService, logger),
		handler.NewPostHandler(postService, logger),
		handler.NewCommentHandler(commentService, logger),
		authMiddleware,
	)

	return &testApp{router: router, db: db, auth: authService}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// userToken signs up a fresh USER account and returns its access token
func (a *testApp) userToken(t *testing.T, email string) string {
	t.Helper()

	_, tokens, err := a.auth.SignUp(email, "회원", "password123")
	require.NoError(t, err)
	return tokens.AccessToken
}

// adminToken signs up an account, promotes it to ADMIN and signs in again
// so the token carries the ADMIN authority claim
func (a *testApp) adminToken(t *testing.T, email string) string {
	t.Helper()

	user, _, err := a.auth.SignUp(email, "관리자", "password123")
	require.NoError(t, err)
	require.NoError(t, a.db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("authority", models.AuthorityAdmin).Error)

	_, tokens, err := a.auth.SignIn(email, "password123")
	require.NoError(t, err)
	return tokens.AccessToken
}

func TestSignUpValidation(t *testing.T) {
	app := setupApp(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"email with special character", gin.H{"email": "user!@example.com", "nickname": "회원", "password": "password123"}},
		{"email with whitespace", gin.H{"email": "user name@example.com", "nickname": "회원", "password": "password123"}},
		{"password too short", gin.H{"email": "user@example.com", "nickname": "회원", "password": "pass123"}},
		{"password too long", gin.H{"email": "user@example.com", "nickname": "회원", "password": "password12345678"}},
		{"blank nickname", gin.H{"email": "user@example.com", "nickname": "  ", "password": "password123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(t, http.MethodPost, "/api/v1/auth/sign-up", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	body := gin.H{"email": "user@example.com", "nickname": "회원", "password": "password123"}
	w := app.do(t, http.MethodPost, "/api/v1/auth/sign-up", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	// Same email again fails even with otherwise valid fields
	body["nickname"] = "다른회원"
	w = app.do(t, http.MethodPost, "/api/v1/auth/sign-up", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStationLifecycle(t *testing.T) {
	app := setupApp(t)
	admin := app.adminToken(t, "admin@example.com")

	create := gin.H{"name": "서울역", "latitude": 37.5283169, "longitude": 126.9294254}

	// Create
	w := app.do(t, http.MethodPost, "/api/v1/stations", admin, create)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Station models.Station `json:"station"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	stationID := created.Station.ID
	require.NotZero(t, stationID)

	// Duplicate create fails
	w = app.do(t, http.MethodPost, "/api/v1/stations", admin, create)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Provision lockers at the station
	for i := 0; i < 2; i++ {
		w = app.do(t, http.MethodPost, "/api/v1/lockers", admin, gin.H{"station_id": stationID})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	stationPath := fmt.Sprintf("/api/v1/stations/%d", stationID)

	// Detail is readable
	w = app.do(t, http.MethodGet, stationPath, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Delete
	w = app.do(t, http.MethodDelete, stationPath, admin, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// Gone under the default scope, lockers included
	w = app.do(t, http.MethodGet, stationPath, admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodGet, fmt.Sprintf("/api/v1/lockers?stationId=%d", stationID), admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Restore brings station and lockers back
	w = app.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/stations/restore/%d", stationID), admin, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodGet, fmt.Sprintf("/api/v1/lockers?stationId=%d", stationID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var lockers struct {
		Lockers []models.Locker `json:"lockers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lockers))
	assert.Len(t, lockers.Lockers, 2)

	// Restoring an active station fails
	w = app.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/stations/restore/%d", stationID), admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStationCreate_CoordinateBounds(t *testing.T) {
	app := setupApp(t)
	admin := app.adminToken(t, "admin@example.com")

	w := app.do(t, http.MethodPost, "/api/v1/stations", admin,
		gin.H{"name": "이상한역", "latitude": 95.0, "longitude": 126.9})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/stations", admin,
		gin.H{"name": "이상한역", "latitude": 37.5, "longitude": -181.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStationBatchCreate(t *testing.T) {
	app := setupApp(t)
	admin := app.adminToken(t, "admin@example.com")

	// Exact key set required per element
	w := app.do(t, http.MethodPost, "/api/v1/stations", admin, gin.H{
		"stations": []gin.H{
			{"name": "서울역", "latitude": 37.5283169, "longitude": 126.9294254, "color": "blue"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/stations", admin, gin.H{
		"stations": []gin.H{
			{"name": "서울역", "latitude": 37.5283169, "longitude": 126.9294254},
			{"name": "용산역", "latitude": 37.5298837, "longitude": 126.9648338},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/stations", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Stations []models.Station `json:"stations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed.Stations, 2)
}

func TestAuthorityGating(t *testing.T) {
	app := setupApp(t)
	user := app.userToken(t, "user@example.com")

	// USER on an ADMIN-only route: denied, no side effect
	w := app.do(t, http.MethodPost, "/api/v1/stations", user,
		gin.H{"name": "서울역", "latitude": 37.5283169, "longitude": 126.9294254})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, app.db.Model(&models.Station{}).Count(&count).Error)
	assert.Zero(t, count)

	// No token at all
	w = app.do(t, http.MethodGet, "/api/v1/stations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLockerReservationFlow(t *testing.T) {
	app := setupApp(t)
	admin := app.adminToken(t, "admin@example.com")
	user := app.userToken(t, "user@example.com")

	w := app.do(t, http.MethodPost, "/api/v1/stations", admin,
		gin.H{"name": "서울역", "latitude": 37.5283169, "longitude": 126.9294254})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Station models.Station `json:"station"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = app.do(t, http.MethodPost, "/api/v1/lockers", admin, gin.H{"station_id": created.Station.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	var provisioned struct {
		Locker models.Locker `json:"locker"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &provisioned))

	reserve := gin.H{"start_date": "2026-09-01T09:00:00Z", "end_date": "2026-09-03T09:00:00Z"}
	reservePath := fmt.Sprintf("/api/v1/lockers/%d/reserve", provisioned.Locker.ID)

	w = app.do(t, http.MethodPost, reservePath, user, reserve)
	require.Equal(t, http.StatusCreated, w.Code)

	// Double reservation fails
	w = app.do(t, http.MethodPost, reservePath, user, reserve)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The renter sees it as "my locker"
	w = app.do(t, http.MethodGet, "/api/v1/lockers/my", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "my locker")

	// A stranger cannot release it
	stranger := app.userToken(t, "stranger@example.com")
	releasePath := fmt.Sprintf("/api/v1/lockers/%d/release", provisioned.Locker.ID)
	w = app.do(t, http.MethodPost, releasePath, stranger, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The renter can
	w = app.do(t, http.MethodPost, releasePath, user, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPostAndCommentFlow(t *testing.T) {
	app := setupApp(t)
	admin := app.adminToken(t, "admin@example.com")
	user := app.userToken(t, "user@example.com")

	w := app.do(t, http.MethodPost, "/api/v1/posts", user,
		gin.H{"title": "문의드립니다", "content": "보관함이 열리지 않아요", "tags": []string{"고장"}})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Post models.Post `json:"post"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Blank content is rejected
	w = app.do(t, http.MethodPost, "/api/v1/comments", user,
		gin.H{"post_id": created.Post.ID, "content": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/comments", user,
		gin.H{"post_id": created.Post.ID, "content": "확인 부탁드립니다"})
	require.Equal(t, http.StatusCreated, w.Code)

	var comment struct {
		Comment models.Comment `json:"comment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))

	commentPath := fmt.Sprintf("/api/v1/comments/%d", comment.Comment.ID)
	restorePath := fmt.Sprintf("/api/v1/comments/restore/%d", comment.Comment.ID)

	// Restore of an active comment fails
	w = app.do(t, http.MethodPatch, restorePath, admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Author deletes, admin restores
	w = app.do(t, http.MethodDelete, commentPath, user, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = app.do(t, http.MethodGet, fmt.Sprintf("/api/v1/comments?postId=%d", created.Post.ID), user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "확인 부탁드립니다")

	w = app.do(t, http.MethodPatch, restorePath, admin, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodGet, fmt.Sprintf("/api/v1/comments?postId=%d", created.Post.ID), user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "확인 부탁드립니다")
}

func TestUserRestoreFlow(t *testing.T) {
	app := setupApp(t)
	admin := app.adminToken(t, "admin@example.com")

	_, _, err := app.auth.SignUp("user@example.com", "회원", "password123")
	require.NoError(t, err)

	var user models.User
	require.NoError(t, app.db.Where("email = ?", "user@example.com").First(&user).Error)

	// Restore of an active account fails
	w := app.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/users/restore/%d", user.ID), admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", user.ID), admin, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = app.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/users/restore/%d", user.ID), admin, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var restored models.User
	require.NoError(t, app.db.Where("email = ?", "user@example.com").First(&restored).Error)
	assert.Equal(t, user.ID, restored.ID)
}
