package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	ledgerapp "github.com/fintrack/backend/internal/application/ledger"
	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/interfaces/http/middleware"
)

// fakeAccountRepo is an in-memory ledger.AccountRepository
type fakeAccountRepo struct {
	accounts map[uuid.UUID]*ledger.Account
	hasTx    map[uuid.UUID]bool
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		accounts: make(map[uuid.UUID]*ledger.Account),
		hasTx:    make(map[uuid.UUID]bool),
	}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *ledger.Account) error {
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *ledger.Account) error {
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	account, ok := r.accounts[id]
	if !ok || account.OwnerID != ownerID {
		return shared.ErrNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r *fakeAccountRepo) FindByID(_ context.Context, ownerID, id uuid.UUID) (*ledger.Account, error) {
	account, ok := r.accounts[id]
	if !ok || account.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	return account, nil
}

func (r *fakeAccountRepo) List(_ context.Context, ownerID uuid.UUID, includeArchived bool) ([]*ledger.Account, error) {
	var out []*ledger.Account
	for _, account := range r.accounts {
		if account.OwnerID != ownerID {
			continue
		}
		if account.Archived && !includeArchived {
			continue
		}
		out = append(out, account)
	}
	return out, nil
}

func (r *fakeAccountRepo) BalanceDelta(_ context.Context, _, _ uuid.UUID, _ time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *fakeAccountRepo) HasTransactions(_ context.Context, _, accountID uuid.UUID) (bool, error) {
	return r.hasTx[accountID], nil
}

var _ ledger.AccountRepository = (*fakeAccountRepo)(nil)

func newAccountTestRouter(repo *fakeAccountRepo, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Next()
	})

	service := ledgerapp.NewAccountService(repo, zap.NewNop())
	h := NewAccountHandler(service)
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestAccountHandler_Create(t *testing.T) {
	repo := newFakeAccountRepo()
	router := newAccountTestRouter(repo, uuid.New())

	body := `{"name":"Checking","type":"CHECKING","currency":"EUR","initial_balance":"1500.00","snapshot_date":"2026-01-01T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"Checking"`)
	assert.Len(t, repo.accounts, 1)
}

func TestAccountHandler_Create_InvalidBody(t *testing.T) {
	router := newAccountTestRouter(newFakeAccountRepo(), uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewBufferString(`{"type":"CHECKING"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountHandler_List(t *testing.T) {
	ownerID := uuid.New()
	repo := newFakeAccountRepo()
	router := newAccountTestRouter(repo, ownerID)

	active, err := ledger.NewAccount(ownerID, "Checking", ledger.AccountTypeChecking, "EUR",
		decimal.NewFromInt(100), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	archived, err := ledger.NewAccount(ownerID, "Old savings", ledger.AccountTypeSavings, "EUR",
		decimal.NewFromInt(50), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	archived.Archive()
	require.NoError(t, repo.Create(context.Background(), active))
	require.NoError(t, repo.Create(context.Background(), archived))

	t.Run("active only", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data []json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Data, 1)
	})

	t.Run("include archived", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/accounts?include_archived=true", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data []json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Data, 2)
	})
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	router := newAccountTestRouter(newFakeAccountRepo(), uuid.New())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/accounts/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestAccountHandler_Get_InvalidID(t *testing.T) {
	router := newAccountTestRouter(newFakeAccountRepo(), uuid.New())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/accounts/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountHandler_Delete_WithHistory(t *testing.T) {
	ownerID := uuid.New()
	repo := newFakeAccountRepo()
	router := newAccountTestRouter(repo, ownerID)

	account, err := ledger.NewAccount(ownerID, "Checking", ledger.AccountTypeChecking, "EUR",
		decimal.NewFromInt(100), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), account))
	repo.hasTx[account.ID] = true

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/accounts/"+account.ID.String(), nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ACCOUNT_IN_USE")
	assert.Len(t, repo.accounts, 1)
}

func TestAccountHandler_ArchiveUnarchive(t *testing.T) {
	ownerID := uuid.New()
	repo := newFakeAccountRepo()
	router := newAccountTestRouter(repo, ownerID)

	account, err := ledger.NewAccount(ownerID, "Savings", ledger.AccountTypeSavings, "EUR",
		decimal.NewFromInt(500), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), account))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/accounts/"+account.ID.String()+"/archive", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, repo.accounts[account.ID].Archived)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/accounts/"+account.ID.String()+"/unarchive", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, repo.accounts[account.ID].Archived)
}
