package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"paquexpress-service/internal/apperr"
	"paquexpress-service/internal/domain"
	"paquexpress-service/internal/http/handlers"
	"paquexpress-service/internal/http/middleware"
)

type stubPackageUsecase struct {
	listFn func(ctx context.Context, actor *domain.User, userID int64) ([]domain.Package, error)
}

func (s *stubPackageUsecase) ListAssigned(ctx context.Context, actor *domain.User, userID int64) ([]domain.Package, error) {
	if s.listFn == nil {
		panic("ListAssigned not expected in this test")
	}
	return s.listFn(ctx, actor, userID)
}

func listRequest(id string, actor *domain.User) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/packages/assigned/"+id, nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("userId", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	if actor != nil {
		ctx = middleware.WithUser(ctx, actor)
	}
	return req.WithContext(ctx)
}

type packageBody struct {
	ID           int64    `json:"id"`
	TrackingCode string   `json:"tracking_code"`
	Address      string   `json:"address"`
	State        string   `json:"state"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
}

func TestPackageHandler_ListAssigned_OK(t *testing.T) {
	t.Parallel()

	dest, err := domain.NewCoordinates(19.4326077, -99.133208)
	require.NoError(t, err)

	uc := &stubPackageUsecase{
		listFn: func(_ context.Context, actor *domain.User, userID int64) ([]domain.Package, error) {
			require.Equal(t, int64(5), actor.ID)
			require.Equal(t, int64(5), userID)
			return []domain.Package{
				{ID: 1, TrackingCode: "PKG-1", Address: "Calle 1", State: domain.StatePending, Destination: &dest},
				{ID: 2, TrackingCode: "PKG-2", Address: "Calle 2", State: domain.StatePending},
			}, nil
		},
	}
	h := handlers.NewPackageHandler(testLogger(), uc)

	rr := httptest.NewRecorder()
	h.ListAssigned(rr, listRequest("5", &domain.User{ID: 5}))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"lat":19.4326077`)

	body := decodeBody[[]packageBody](t, rr)
	require.Len(t, body, 2)
	require.Equal(t, "PKG-1", body[0].TrackingCode)
	require.Equal(t, "pendiente", body[0].State)
	require.NotNil(t, body[0].Lat)
	require.InDelta(t, 19.4326077, *body[0].Lat, 1e-9)
	require.InDelta(t, -99.133208, *body[0].Lng, 1e-9)
	require.Nil(t, body[1].Lat)
	require.Nil(t, body[1].Lng)
}

func TestPackageHandler_ListAssigned_EmptyIsArray(t *testing.T) {
	t.Parallel()

	uc := &stubPackageUsecase{
		listFn: func(context.Context, *domain.User, int64) ([]domain.Package, error) { return nil, nil },
	}
	h := handlers.NewPackageHandler(testLogger(), uc)

	rr := httptest.NewRecorder()
	h.ListAssigned(rr, listRequest("5", &domain.User{ID: 5}))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `[]`, rr.Body.String())
}

func TestPackageHandler_ListAssigned_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		id     string
		actor  *domain.User
		err    error
		status int
	}{
		{"other agent", "7", &domain.User{ID: 5}, apperr.ErrForbidden, http.StatusForbidden},
		{"zero id", "0", &domain.User{ID: 5}, apperr.ErrForbidden, http.StatusForbidden},
		{"negative id", "-7", &domain.User{ID: 5}, apperr.ErrForbidden, http.StatusForbidden},
		{"bad id", "abc", &domain.User{ID: 5}, nil, http.StatusBadRequest},
		{"fractional id", "5.5", &domain.User{ID: 5}, nil, http.StatusBadRequest},
		{"no user in context", "5", nil, nil, http.StatusUnauthorized},
		{"store failure", "5", &domain.User{ID: 5}, errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			uc := &stubPackageUsecase{
				listFn: func(context.Context, *domain.User, int64) ([]domain.Package, error) {
					require.NotNil(t, tc.err, "usecase must not be called")
					return nil, tc.err
				},
			}
			h := handlers.NewPackageHandler(testLogger(), uc)

			rr := httptest.NewRecorder()
			h.ListAssigned(rr, listRequest(tc.id, tc.actor))

			require.Equal(t, tc.status, rr.Code)
			require.NotContains(t, rr.Body.String(), "tracking_code")
		})
	}
}
