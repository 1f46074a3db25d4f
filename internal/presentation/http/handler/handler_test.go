package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/akozlenko/kasa-api/internal/application/service"
	"github.com/akozlenko/kasa-api/internal/config"
	"github.com/akozlenko/kasa-api/internal/domain/entity"
	"github.com/akozlenko/kasa-api/internal/domain/repository"
	"github.com/akozlenko/kasa-api/internal/presentation/http/handler"
	"github.com/akozlenko/kasa-api/internal/presentation/http/routes"
	"github.com/akozlenko/kasa-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUserRepo struct {
	users  map[uint]*entity.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*entity.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByLogin(_ context.Context, login string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Login == login {
			return u, nil
		}
	}
	return nil, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
	nextID   uint
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product), nextID: 1}
}

func (r *fakeProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	return r.products[name], nil
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	product.ID = r.nextID
	r.nextID++
	r.products[product.Name] = product
	return nil
}

func (r *fakeProductRepo) byID(id uint) *entity.Product {
	for _, p := range r.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

type fakeReceiptRepo struct {
	receipts   []entity.Receipt
	products   *fakeProductRepo
	nextID     uint
	lastParams *repository.ReceiptFilterParams
}

func newFakeReceiptRepo(products *fakeProductRepo) *fakeReceiptRepo {
	return &fakeReceiptRepo{products: products, nextID: 1}
}

func (r *fakeReceiptRepo) Create(_ context.Context, receipt *entity.Receipt) error {
	receipt.ID = r.nextID
	r.nextID++
	r.receipts = append(r.receipts, *receipt)
	return nil
}

// preload mirrors the Items.Product preload of the gorm repository.
func (r *fakeReceiptRepo) preload(rec entity.Receipt) entity.Receipt {
	items := make([]entity.ReceiptItem, len(rec.Items))
	copy(items, rec.Items)
	for i := range items {
		if items[i].Product.ID == 0 {
			if p := r.products.byID(items[i].ProductID); p != nil {
				items[i].Product = *p
			}
		}
	}
	rec.Items = items
	return rec
}

func (r *fakeReceiptRepo) matches(rec entity.Receipt, params *repository.ReceiptFilterParams) bool {
	if params == nil {
		return true
	}
	if params.ReceiptID != nil && rec.ID != *params.ReceiptID {
		return false
	}
	if params.StartDate != nil && rec.CreatedAt.Before(*params.StartDate) {
		return false
	}
	if params.EndDate != nil && rec.CreatedAt.After(*params.EndDate) {
		return false
	}
	if params.MinTotal != nil && rec.Total.LessThan(*params.MinTotal) {
		return false
	}
	if params.MaxTotal != nil && rec.Total.GreaterThan(*params.MaxTotal) {
		return false
	}
	if params.PaymentType != nil && rec.PaymentType != *params.PaymentType {
		return false
	}
	return true
}

func (r *fakeReceiptRepo) ListByUser(_ context.Context, userID uint, params *repository.ReceiptFilterParams) ([]entity.Receipt, error) {
	r.lastParams = params
	var out []entity.Receipt
	for _, rec := range r.receipts {
		if rec.UserID == userID && r.matches(rec, params) {
			out = append(out, r.preload(rec))
		}
	}

	if params != nil && params.Pagination != nil {
		params.Pagination.Validate()
		if params.Pagination.Offset >= len(out) {
			return nil, nil
		}
		out = out[params.Pagination.Offset:]
		if params.Pagination.Limit < len(out) {
			out = out[:params.Pagination.Limit]
		}
	}

	return out, nil
}

func (r *fakeReceiptRepo) FirstByUser(_ context.Context, userID uint) (*entity.Receipt, error) {
	for i := range r.receipts {
		if r.receipts[i].UserID == userID {
			rec := r.preload(r.receipts[i])
			return &rec, nil
		}
	}
	return nil, nil
}

type nopPrinter struct{}

func (nopPrinter) Print([]byte) error { return nil }
func (nopPrinter) IsConnected() bool  { return true }

type testEnv struct {
	router      *gin.Engine
	userRepo    *fakeUserRepo
	receiptRepo *fakeReceiptRepo
	jwtManager  *utils.JWTManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	userRepo := newFakeUserRepo()
	productRepo := newFakeProductRepo()
	receiptRepo := newFakeReceiptRepo(productRepo)
	jwtManager := utils.NewJWTManager("test-secret", 15*time.Minute, 30*time.Minute)

	authService := service.NewAuthService(userRepo, jwtManager)
	receiptService := service.NewReceiptService(receiptRepo, productRepo, nopPrinter{}, "")

	cfg := &config.Config{
		App:       config.AppConfig{Name: "kasa-api", Env: "test"},
		RateLimit: config.RateLimitConfig{Requests: 100, Duration: 1},
	}

	router := routes.Setup(&routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Receipt: handler.NewReceiptHandler(receiptService),
	}, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		UserRepo:   userRepo,
	})

	return &testEnv{router: router, userRepo: userRepo, receiptRepo: receiptRepo, jwtManager: jwtManager}
}

func (e *testEnv) do(t *testing.T, method, path, contentType, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) register(t *testing.T, login string) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/users/", "application/json",
		`{"username":"`+login+`","login":"`+login+`","password":"s3cret"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func (e *testEnv) token(t *testing.T, login string) string {
	t.Helper()
	form := url.Values{"username": {login}, "password": {"s3cret"}}
	w := e.do(t, http.MethodPost, "/token", "application/x-www-form-urlencoded", form.Encode(), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Equal(t, "bearer", out.TokenType)
	return out.AccessToken
}

func detail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.Detail
}

const basketBody = `{
	"products": [
		{"name": "Apple", "price": "0.50", "quantity": "10"},
		{"name": "Banana", "price": "0.30", "quantity": "5"}
	],
	"payment": {"type": "cash", "amount": "10.00"}
}`

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/health", "", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

func TestRegisterEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/users/", "application/json",
		`{"username":"Ostap","login":"ostap","password":"s3cret"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var user struct {
		ID             uint   `json:"id"`
		Login          string `json:"login"`
		HashedPassword string `json:"hashed_password"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.NotZero(t, user.ID)
	assert.Equal(t, "ostap", user.Login)
	assert.NotEqual(t, "s3cret", user.HashedPassword)
}

func TestRegisterDuplicateLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "ostap")

	w := env.do(t, http.MethodPost, "/users/", "application/json",
		`{"username":"Other","login":"ostap","password":"x"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Login already registered", detail(t, w))
}

func TestRegisterMissingFields(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/users/", "application/json", `{"username":"Ostap"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTokenEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "ostap")

	token := env.token(t, "ostap")

	userID, err := env.jwtManager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), userID)
}

func TestTokenWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "ostap")

	form := url.Values{"username": {"ostap"}, "password": {"wrong"}}
	w := env.do(t, http.MethodPost, "/token", "application/x-www-form-urlencoded", form.Encode(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Incorrect username or password", detail(t, w))
}

func TestCreateReceiptRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/receipts/", "application/json", basketBody, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authorization header is required", detail(t, w))
}

func TestCreateReceiptInvalidToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/receipts/", "application/json", basketBody, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token", detail(t, w))
}

func TestCreateReceiptDeletedUser(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "ostap")
	token := env.token(t, "ostap")

	delete(env.userRepo.users, 1)

	w := env.do(t, http.MethodPost, "/receipts/", "application/json", basketBody, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", detail(t, w))
}

func TestCreateReceiptEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "ostap")
	token := env.token(t, "ostap")

	w := env.do(t, http.MethodPost, "/receipts/", "application/json", basketBody, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		ID       uint `json:"id"`
		Products []struct {
			Name  string `json:"name"`
			Total string `json:"total"`
		} `json:"products"`
		Payment struct {
			Type   string `json:"type"`
			Amount string `json:"amount"`
		} `json:"payment"`
		Total string `json:"total"`
		Rest  string `json:"rest"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, uint(1), out.ID)
	assert.Equal(t, "6.50", out.Total)
	assert.Equal(t, "3.50", out.Rest)
	assert.Equal(t, "cash", out.Payment.Type)
	assert.Equal(t, "10.00", out.Payment.Amount)
	require.Len(t, out.Products, 2)
	assert.Equal(t, "5.00", out.Products[0].Total)
}

func TestCreateReceiptInsufficientPayment(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "ostap")
	token := env.token(t, "ostap")

	body := strings.Replace(basketBody, `"amount": "10.00"`, `"amount": "5.00"`, 1)
	w := env.do(t, http.MethodPost, "/receipts/", "application/json", body, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Payment amount is less than the total price of products.", detail(t, w))
}

func TestListReceiptsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "ostap")
	token := env.token(t, "ostap")

	w := env.do(t, http.MethodPost, "/receipts/", "application/json", basketBody, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/receipts/?limit=10&offset=0", "", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out []struct {
		ID    uint   `json:"id"`
		Total string `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "6.50", out[0].Total)
}

func TestListReceiptsEmpty(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "ostap")
	token := env.token(t, "ostap")

	w := env.do(t, http.MethodGet, "/receipts/", "", "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No receipts found matching the criteria", detail(t, w))
}

func TestListReceiptsFilterParsing(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "ostap")
	token := env.token(t, "ostap")

	w := env.do(t, http.MethodPost, "/receipts/", "application/json", basketBody, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet,
		"/receipts/?receipt_id=3&start_date=2026-01-01&end_date=2026-01-31&min_total=5&max_total=100&payment_type=cash&limit=5&offset=2",
		"", "", token)
	// The filters exclude the single stored receipt in the fake, but the
	// parsed values must all have reached the repository.
	params := env.receiptRepo.lastParams
	require.NotNil(t, params)

	require.NotNil(t, params.ReceiptID)
	assert.Equal(t, uint(3), *params.ReceiptID)
	require.NotNil(t, params.StartDate)
	assert.Equal(t, "2026-01-01", params.StartDate.Format("2006-01-02"))
	require.NotNil(t, params.EndDate)
	assert.Equal(t, "2026-01-31", params.EndDate.Format("2006-01-02"))
	require.NotNil(t, params.MinTotal)
	assert.Equal(t, "5", params.MinTotal.String())
	require.NotNil(t, params.MaxTotal)
	assert.Equal(t, "100", params.MaxTotal.String())
	require.NotNil(t, params.PaymentType)
	assert.Equal(t, "cash", *params.PaymentType)
	require.NotNil(t, params.Pagination)
	assert.Equal(t, 5, params.Pagination.Limit)
	assert.Equal(t, 2, params.Pagination.Offset)
}

func TestListReceiptsDefaultPagination(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "ostap")
	token := env.token(t, "ostap")

	w := env.do(t, http.MethodPost, "/receipts/", "application/json", basketBody, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/receipts/", "", "", token)
	require.Equal(t, http.StatusOK, w.Code)

	params := env.receiptRepo.lastParams
	require.NotNil(t, params)
	require.NotNil(t, params.Pagination)
	assert.Equal(t, 10, params.Pagination.Limit)
	assert.Equal(t, 0, params.Pagination.Offset)
	assert.Nil(t, params.ReceiptID)
	assert.Nil(t, params.PaymentType)
}

const cardBasketBody = `{
	"products": [
		{"name": "Wine", "price": "20.00", "quantity": "1"}
	],
	"payment": {"type": "card", "amount": "20.00"}
}`

func TestListReceiptsFiltering(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "ostap")
	token := env.token(t, "ostap")

	w := env.do(t, http.MethodPost, "/receipts/", "application/json", basketBody, token)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodPost, "/receipts/", "application/json", cardBasketBody, token)
	require.Equal(t, http.StatusOK, w.Code)

	var out []struct {
		Payment struct {
			Type string `json:"type"`
		} `json:"payment"`
		Total string `json:"total"`
	}

	w = env.do(t, http.MethodGet, "/receipts/?payment_type=card", "", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "card", out[0].Payment.Type)
	assert.Equal(t, "20.00", out[0].Total)

	w = env.do(t, http.MethodGet, "/receipts/?payment_type=cash&max_total=10", "", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "6.50", out[0].Total)

	// A total floor above every receipt matches nothing.
	w = env.do(t, http.MethodGet, "/receipts/?min_total=100", "", "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No receipts found matching the criteria", detail(t, w))
}

func TestListReceiptsInvalidFilterValues(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "ostap")
	token := env.token(t, "ostap")

	tests := []struct {
		query string
		want  string
	}{
		{"start_date=garbage", "Invalid start_date"},
		{"end_date=31-01-2026", "Invalid end_date"},
		{"min_total=abc", "Invalid min_total"},
		{"max_total=ten", "Invalid max_total"},
		{"receipt_id=first", "Invalid receipt_id"},
		{"limit=lots", "Invalid limit"},
		{"offset=-x", "Invalid offset"},
	}

	for _, tt := range tests {
		w := env.do(t, http.MethodGet, "/receipts/?"+tt.query, "", "", token)
		assert.Equal(t, http.StatusBadRequest, w.Code, tt.query)
		assert.Equal(t, tt.want, detail(t, w))
	}
}

func TestReceiptTextEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "ostap")
	token := env.token(t, "ostap")

	w := env.do(t, http.MethodPost, "/receipts/", "application/json", basketBody, token)
	require.Equal(t, http.StatusOK, w.Code)

	// The text view is public: no token required.
	w = env.do(t, http.MethodGet, "/receipts/1", "", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "ФОП Джонсонок Борис\n"))
	assert.Contains(t, body, "Apple 10 x 0.50 5.00\n")
	assert.Contains(t, body, "Banana 5 x 0.30 1.50\n")
	assert.Contains(t, body, "СУМА 6.50\n")
	assert.Contains(t, body, "Решта 3.50\n")
	assert.True(t, strings.HasSuffix(body, "Дякуємо за покупку!"))
}

func TestReceiptTextUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/receipts/99", "", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPrintReceiptEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "ostap")
	token := env.token(t, "ostap")

	w := env.do(t, http.MethodPost, "/receipts/", "application/json", basketBody, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/receipts/1/print", "", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"printed":true`)
}

func TestPrintReceiptRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/receipts/1/print", "", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
