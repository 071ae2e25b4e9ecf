package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fluidstake/liquid-staking-pool/internal/clients/custody"
	"github.com/fluidstake/liquid-staking-pool/internal/clients/receipt"
	"github.com/fluidstake/liquid-staking-pool/internal/clients/stakeclient"
	"github.com/fluidstake/liquid-staking-pool/internal/config"
	"github.com/fluidstake/liquid-staking-pool/internal/db/model"
	"github.com/fluidstake/liquid-staking-pool/internal/observability/tracing"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
	"github.com/fluidstake/liquid-staking-pool/internal/queue"
	"github.com/fluidstake/liquid-staking-pool/internal/services"
	"github.com/fluidstake/liquid-staking-pool/internal/types"
	"github.com/fluidstake/liquid-staking-pool/tests/mocks"
)

const (
	authority = "authority"
	alice     = "alice"
)

type testAPI struct {
	router  http.Handler
	db      *mocks.DbInterface
	custody *custody.Ledger
	stake   *stakeclient.SubLedger
}

func newTestAPI(t *testing.T, devMode bool) *testAPI {
	t.Helper()

	a := &testAPI{
		db:      mocks.NewDbInterface(t),
		custody: custody.NewLedger(),
		stake:   stakeclient.NewSubLedger(),
	}
	issuer := receipt.NewIssuer()

	// persistence is exercised by the services tests
	a.db.On("SavePoolState", mock.Anything, mock.Anything).Return(nil).Maybe()
	a.db.On("SaveLedgerEvent", mock.Anything, mock.Anything).Return(nil).Maybe()

	settings := pool.Settings{PoolID: "pool-1", CustodyAccount: "custody", StakingAccount: "staking"}
	ledger := pool.NewLedger(settings, a.custody, issuer, a.stake, nil)
	service := services.NewService(&config.Config{Pool: config.PoolConfig{PoolID: "pool-1"}}, a.db, ledger, queue.NoopPublisher{})

	h := &Handler{
		service: service,
		dev:     &DevTools{Custody: a.custody, Receipts: issuer, Stake: a.stake},
	}
	a.router = h.Router(devMode)
	return a
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func (a *testAPI) initialize(t *testing.T) {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/v1/pool/initialize", InitializePoolRequest{Authority: authority})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestPoolLifecycle(t *testing.T) {
	a := newTestAPI(t, false)
	require.NoError(t, a.custody.Credit(alice, 5_000_000_000))

	rec := a.do(t, http.MethodGet, "/v1/pool", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, string(types.Conflict), decode[ErrorResponse](t, rec).ErrorCode)

	a.initialize(t)

	rec = a.do(t, http.MethodPost, "/v1/validators", RegisterValidatorRequest{
		Caller: authority, Identity: "val-a", AllocationPercentage: 60,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	validator := decode[ValidatorResponse](t, rec)
	assert.Equal(t, "pool-1/validator/0", validator.ID)
	assert.Equal(t, types.ValidatorStatusActive, validator.Status)

	rec = a.do(t, http.MethodPost, "/v1/deposits", AmountRequest{Caller: alice, Amount: 1_000_000_000})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, uint64(1_000_000_000), decode[DepositResponse](t, rec).ReceiptMinted)

	rec = a.do(t, http.MethodPost, "/v1/delegations", DelegateRequest{
		Caller: authority, ValidatorIndex: 0, Amount: 600_000_000, Slot: 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, stakeclient.PositionID("val-a", 1), decode[DelegationResponse](t, rec).ID)

	rec = a.do(t, http.MethodPost, "/v1/rewards", AmountRequest{Caller: authority, Amount: 100_000_000})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	split := decode[RewardSplitResponse](t, rec)
	assert.Equal(t, uint64(10_000_000), split.ProtocolFee)
	assert.Equal(t, "1.090000000000000000", split.NewRate)

	rec = a.do(t, http.MethodPost, "/v1/withdrawals", AmountRequest{Caller: alice, Amount: 100_000_000})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	withdrawal := decode[WithdrawResponse](t, rec)
	assert.Equal(t, uint64(109_000_000), withdrawal.Gross)
	assert.Equal(t, uint64(327_000), withdrawal.Fee)

	rec = a.do(t, http.MethodPost, "/v1/fees/withdraw", AmountRequest{Caller: authority, Amount: 10_000_000})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, uint64(327_000), decode[PoolResponse](t, rec).ProtocolFeesEarned)

	rec = a.do(t, http.MethodPost, "/v1/validators/0/deactivate", CallerRequest{Caller: authority})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do(t, http.MethodGet, "/v1/validators", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	validators := decode[[]ValidatorResponse](t, rec)
	require.Len(t, validators, 1)
	assert.Equal(t, types.ValidatorStatusInactive, validators[0].Status)
	assert.Len(t, validators[0].Delegations, 1)
}

func TestErrorResponses(t *testing.T) {
	a := newTestAPI(t, false)
	a.initialize(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   types.ErrorCode
	}{
		{"already initialized", http.MethodPost, "/v1/pool/initialize", InitializePoolRequest{Authority: authority}, http.StatusConflict, types.Conflict},
		{"not authority", http.MethodPost, "/v1/rebalance", CallerRequest{Caller: alice}, http.StatusForbidden, types.Forbidden},
		{"missing caller", http.MethodPost, "/v1/deposits", AmountRequest{Amount: 1}, http.StatusBadRequest, types.ValidationError},
		{"below minimum", http.MethodPost, "/v1/deposits", AmountRequest{Caller: alice, Amount: 1}, http.StatusBadRequest, types.ValidationError},
		{"unfunded depositor", http.MethodPost, "/v1/deposits", AmountRequest{Caller: alice, Amount: 1_000_000_000}, http.StatusBadGateway, types.BadGateway},
		{"pool custody as depositor", http.MethodPost, "/v1/deposits", AmountRequest{Caller: "custody", Amount: 1_000_000_000}, http.StatusForbidden, types.Forbidden},
		{"pool staking account withdrawing", http.MethodPost, "/v1/withdrawals", AmountRequest{Caller: "staking", Amount: 1_000_000}, http.StatusForbidden, types.Forbidden},
		{"bad index", http.MethodPost, "/v1/validators/x/activate", CallerRequest{Caller: authority}, http.StatusBadRequest, types.BadRequest},
		{"unknown validator", http.MethodPost, "/v1/validators/3/harvest", CallerRequest{Caller: authority}, http.StatusBadRequest, types.ValidationError},
		{"unknown field", http.MethodPost, "/v1/rebalance", map[string]any{"caller": authority, "force": true}, http.StatusBadRequest, types.BadRequest},
		{"empty body", http.MethodPost, "/v1/rebalance", nil, http.StatusBadRequest, types.BadRequest},
		{"page too large", http.MethodGet, "/v1/events?limit=501", nil, http.StatusBadRequest, types.BadRequest},
		{"malformed from", http.MethodGet, "/v1/events?from=-1", nil, http.StatusBadRequest, types.BadRequest},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := a.do(t, c.method, c.path, c.body)
			assert.Equal(t, c.status, rec.Code, rec.Body.String())
			assert.Equal(t, string(c.code), decode[ErrorResponse](t, rec).ErrorCode)
		})
	}
}

func TestGetLedgerEvents(t *testing.T) {
	a := newTestAPI(t, false)

	page := []*model.LedgerEventDocument{
		{ID: "pool-1/event/4", Sequence: 4, Type: types.EventDeposit},
		{ID: "pool-1/event/5", Sequence: 5, Type: types.EventDelegation},
	}
	a.db.On("GetLedgerEvents", mock.Anything, "pool-1", uint64(4), int64(2)).Return(page, nil).Once()

	rec := a.do(t, http.MethodGet, "/v1/events?from=4&limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[EventsResponse](t, rec)
	assert.Len(t, resp.Events, 2)
	assert.Equal(t, uint64(6), resp.NextSequence)

	a.db.On("GetLedgerEvents", mock.Anything, "pool-1", uint64(1), int64(defaultEventsPageSize)).
		Return(nil, errors.New("cursor closed")).Once()
	rec = a.do(t, http.MethodGet, "/v1/events", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthcheck(t *testing.T) {
	a := newTestAPI(t, false)

	a.db.On("Ping", mock.Anything).Return(nil).Once()
	rec := a.do(t, http.MethodGet, "/healthcheck", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	a.db.On("Ping", mock.Anything).Return(errors.New("no reachable servers")).Once()
	rec = a.do(t, http.MethodGet, "/healthcheck", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestTraceIDHeader(t *testing.T) {
	a := newTestAPI(t, false)
	a.db.On("Ping", mock.Anything).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(tracing.TraceIDHeader, "trace-123")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	assert.Equal(t, "trace-123", rec.Header().Get(tracing.TraceIDHeader))

	rec = a.do(t, http.MethodGet, "/healthcheck", nil)
	assert.NotEmpty(t, rec.Header().Get(tracing.TraceIDHeader))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestDevEndpoints(t *testing.T) {
	t.Run("hidden unless dev mode", func(t *testing.T) {
		a := newTestAPI(t, false)
		rec := a.do(t, http.MethodPost, "/v1/dev/accounts/alice/credit", CreditRequest{Amount: 1})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("fund, stake and harvest", func(t *testing.T) {
		a := newTestAPI(t, true)
		a.initialize(t)

		rec := a.do(t, http.MethodPost, "/v1/dev/accounts/alice/credit", CreditRequest{Amount: 2_000_000_000})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, uint64(2_000_000_000), decode[AccountResponse](t, rec).Balance)

		a.do(t, http.MethodPost, "/v1/validators", RegisterValidatorRequest{Caller: authority, Identity: "val-a", AllocationPercentage: 100})
		a.do(t, http.MethodPost, "/v1/deposits", AmountRequest{Caller: alice, Amount: 1_000_000_000})
		rec = a.do(t, http.MethodPost, "/v1/delegations", DelegateRequest{Caller: authority, Amount: 500_000_000, Slot: 1})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		ref := decode[DelegationResponse](t, rec)

		rec = a.do(t, http.MethodPost, "/v1/validators/0/harvest", CallerRequest{Caller: authority})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.False(t, decode[HarvestResponse](t, rec).Harvested)

		rec = a.do(t, http.MethodPost, "/v1/dev/delegations/accrue", AccrueRequest{DelegationID: ref.ID, Rewards: 50_000_000})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = a.do(t, http.MethodPost, "/v1/validators/0/harvest", CallerRequest{Caller: authority})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		harvest := decode[HarvestResponse](t, rec)
		assert.True(t, harvest.Harvested)
		require.NotNil(t, harvest.Rewards)
		assert.Equal(t, uint64(5_000_000), harvest.Rewards.ProtocolFee)

		rec = a.do(t, http.MethodGet, "/v1/dev/accounts/alice", nil)
		assert.Equal(t, uint64(1_000_000_000), decode[AccountResponse](t, rec).ReceiptBalance)

		rec = a.do(t, http.MethodPost, "/v1/dev/delegations/accrue", AccrueRequest{DelegationID: "missing", Rewards: 1})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
