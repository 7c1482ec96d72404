package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"topup-store/middleware"
	"topup-store/models"
	"topup-store/repository"
	"topup-store/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// envelope is the JSON shape every endpoint responds with.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
}

type mockAuthService struct {
	registerFn func(ctx context.Context, req *models.RegisterRequest) (*models.Identity, string, *services.ServiceError)
	loginFn    func(ctx context.Context, req *models.LoginRequest) (*models.Identity, string, *services.ServiceError)
}

func (m *mockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.Identity, string, *services.ServiceError) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.Identity, string, *services.ServiceError) {
	return m.loginFn(ctx, req)
}

type mockOrderService struct {
	createFn       func(ctx context.Context, caller *models.Identity, req *models.CreateOrderRequest) (*models.Order, *services.ServiceError)
	getFn          func(ctx context.Context, caller *models.Identity, orderNumber string) (*models.Order, *services.ServiceError)
	listFn         func(ctx context.Context, caller *models.Identity) ([]models.Order, *services.ServiceError)
	listByStatusFn func(ctx context.Context, caller *models.Identity, status string) ([]models.Order, *services.ServiceError)
	updateStatusFn func(ctx context.Context, caller *models.Identity, orderNumber, status string) (*models.Order, *services.ServiceError)
}

func (m *mockOrderService) CreateOrder(ctx context.Context, caller *models.Identity, req *models.CreateOrderRequest) (*models.Order, *services.ServiceError) {
	return m.createFn(ctx, caller, req)
}

func (m *mockOrderService) GetOrder(ctx context.Context, caller *models.Identity, orderNumber string) (*models.Order, *services.ServiceError) {
	return m.getFn(ctx, caller, orderNumber)
}

func (m *mockOrderService) ListOrders(ctx context.Context, caller *models.Identity) ([]models.Order, *services.ServiceError) {
	return m.listFn(ctx, caller)
}

func (m *mockOrderService) ListOrdersByStatus(ctx context.Context, caller *models.Identity, status string) ([]models.Order, *services.ServiceError) {
	return m.listByStatusFn(ctx, caller, status)
}

func (m *mockOrderService) UpdateOrderStatus(ctx context.Context, caller *models.Identity, orderNumber, status string) (*models.Order, *services.ServiceError) {
	return m.updateStatusFn(ctx, caller, orderNumber, status)
}

// fixedUserRepo resolves session cookies against a fixed set of accounts.
type fixedUserRepo struct {
	users map[uuid.UUID]*models.User
}

func (f *fixedUserRepo) Create(_ context.Context, _ *models.User) error { return nil }
func (f *fixedUserRepo) Update(_ context.Context, _ *models.User) error { return nil }
func (f *fixedUserRepo) FindByEmail(_ context.Context, _ string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fixedUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// sessionHarness bundles the pieces needed to make authenticated requests.
type sessionHarness struct {
	tokens services.TokenService
	repo   *fixedUserRepo
}

func newSessionHarness() *sessionHarness {
	return &sessionHarness{
		tokens: services.NewTokenService("test-secret", time.Hour),
		repo:   &fixedUserRepo{users: map[uuid.UUID]*models.User{}},
	}
}

func (h *sessionHarness) addUser(t *testing.T, role string) (*models.User, string) {
	t.Helper()
	user := &models.User{
		ID:         uuid.New(),
		Name:       "Test " + role,
		Email:      role + "@example.com",
		Password:   "hash",
		Role:       role,
		ProfilePic: models.DefaultProfilePic,
	}
	h.repo.users[user.ID] = user
	cookie, err := h.tokens.Generate(user.ID.String(), user.Email, user.Role)
	require.NoError(t, err)
	return user, cookie
}

var _ repository.UserRepository = (*fixedUserRepo)(nil)

func performJSON(r *gin.Engine, method, path string, body interface{}, cookie string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}
