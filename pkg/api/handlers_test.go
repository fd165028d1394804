package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainActivity/internal/logger"
	"github.com/goran-ethernal/ChainActivity/pkg/store"
	"github.com/goran-ethernal/ChainActivity/pkg/store/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")

func serve(t *testing.T, s store.Store, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	cfg := testAPIConfig(false)
	srv := NewServer(cfg, s, logger.NewNopLogger())

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestListEvents(t *testing.T) {
	t.Parallel()

	s := mocks.NewStore(t)
	rows := []*store.EventRow{{ID: 3}, {ID: 2}, {ID: 1}}
	s.EXPECT().ListAllEvents(mock.Anything, store.Page{Limit: 3, Offset: 4}).Return(rows, nil).Once()

	w := serve(t, s, http.MethodGet, "/api/v1/events?limit=2&offset=4")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	resp := decode[EventsResponse](t, w)
	require.Len(t, resp.Events, 2)
	require.Equal(t, int64(3), resp.Events[0].ID)
	require.Equal(t, PaginationResult{Limit: 2, Offset: 4, HasMore: true}, resp.Pagination)
}

func TestListEvents_LastPage(t *testing.T) {
	t.Parallel()

	s := mocks.NewStore(t)
	s.EXPECT().ListAllEvents(mock.Anything, store.Page{Limit: defaultLimit + 1}).Return(nil, nil).Once()

	w := serve(t, s, http.MethodGet, "/api/v1/events")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"events":[],"pagination":{"limit":100,"offset":0,"has_more":false}}`, w.Body.String())
}

func TestListEvents_InvalidPage(t *testing.T) {
	t.Parallel()

	for _, target := range []string{
		"/api/v1/events?limit=0",
		"/api/v1/events?limit=1001",
		"/api/v1/events?limit=abc",
		"/api/v1/events?offset=-1",
		"/api/v1/users?limit=-3",
	} {
		w := serve(t, mocks.NewStore(t), http.MethodGet, target)
		require.Equal(t, http.StatusBadRequest, w.Code, target)
		require.Equal(t, http.StatusBadRequest, decode[ErrorResponse](t, w).Code)
	}
}

func TestListUsers(t *testing.T) {
	t.Parallel()

	s := mocks.NewStore(t)
	s.EXPECT().ListUsersPaginated(mock.Anything, store.Page{Limit: 11}).
		Return([]*store.UserRecord{{Address: alice, TotalRewards: decimal.RequireFromString("1000000000000000000000")}}, nil).
		Once()

	w := serve(t, s, http.MethodGet, "/api/v1/users?limit=10")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[UsersResponse](t, w)
	require.Len(t, resp.Users, 1)
	require.Equal(t, alice, resp.Users[0].Address)
	require.Equal(t, "1000000000000000000000", resp.Users[0].TotalRewards.String())
	require.False(t, resp.Pagination.HasMore)
}

func TestGetUser(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		s := mocks.NewStore(t)
		s.EXPECT().GetUser(mock.Anything, alice).Return(&store.UserRecord{Address: alice, TotalReferrals: 4}, nil).Once()

		w := serve(t, s, http.MethodGet, "/api/v1/users/"+alice.Hex())
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, int64(4), decode[store.UserRecord](t, w).TotalReferrals)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		s := mocks.NewStore(t)
		s.EXPECT().GetUser(mock.Anything, alice).Return(nil, store.Wrap("get user", store.ErrNotFound)).Once()

		w := serve(t, s, http.MethodGet, "/api/v1/users/"+alice.Hex())
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid address", func(t *testing.T) {
		t.Parallel()

		w := serve(t, mocks.NewStore(t), http.MethodGet, "/api/v1/users/not-an-address")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		s := mocks.NewStore(t)
		s.EXPECT().GetUser(mock.Anything, alice).Return(nil, errors.New("connection reset")).Once()

		w := serve(t, s, http.MethodGet, "/api/v1/users/"+alice.Hex())
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Equal(t, "failed to get user", decode[ErrorResponse](t, w).Message)
	})
}

func TestListUserEvents(t *testing.T) {
	t.Parallel()

	s := mocks.NewStore(t)
	s.EXPECT().ListEventsByUser(mock.Anything, alice, store.Page{Limit: 6, Offset: 0}).
		Return([]*store.EventRow{{ID: 1, UserAddress: alice}}, nil).Once()

	w := serve(t, s, http.MethodGet, "/api/v1/users/"+alice.Hex()+"/events?limit=5")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[EventsResponse](t, w)
	require.Len(t, resp.Events, 1)
	require.Equal(t, alice, resp.Events[0].UserAddress)
}

func TestSummaryAndHealth(t *testing.T) {
	t.Parallel()

	s := mocks.NewStore(t)
	s.EXPECT().Summary(mock.Anything).Return(&store.Summary{
		TotalUsers:   2,
		TotalEvents:  5,
		EventsByType: map[string]int64{"Transfer": 5},
		TotalRewards: decimal.NewFromInt(9),
		LastBlock:    77,
	}, nil).Twice()

	w := serve(t, s, http.MethodGet, "/api/v1/summary")
	require.Equal(t, http.StatusOK, w.Code)
	sum := decode[store.Summary](t, w)
	require.Equal(t, int64(5), sum.TotalEvents)
	require.Equal(t, "9", sum.TotalRewards.String())

	w = serve(t, s, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	health := decode[HealthResponse](t, w)
	require.Equal(t, "ok", health.Status)
	require.True(t, health.Store)
	require.Equal(t, uint64(77), health.LastBlock)
}

func TestHealth_StoreDown(t *testing.T) {
	t.Parallel()

	s := mocks.NewStore(t)
	s.EXPECT().Summary(mock.Anything).Return(nil, errors.New("database is locked")).Once()

	w := serve(t, s, http.MethodGet, "/health")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.False(t, decode[HealthResponse](t, w).Store)
}

func TestRespondJSON_EncodingFailure(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respondJSON(w, http.StatusOK, map[string]any{"bad": make(chan int)})

	require.Equal(t, http.StatusInternalServerError, w.Code)
}
