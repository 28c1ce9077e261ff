package resource_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/capigrow/internal/adapters/logger"
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/core/ports/mocks"
	"go.trai.ch/capigrow/internal/engine/query"
	"go.trai.ch/capigrow/internal/resources/resource"
	"go.uber.org/mock/gomock"
)

type item struct {
	ID string `json:"id"`
}

func TestGet_BuildsRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)

	gw.EXPECT().Call(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req domain.APIRequest) (*domain.APIResponse, error) {
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, "/investments", req.Path)
			assert.Equal(t, "low", req.Query.Get("riskLevel"))
			return &domain.APIResponse{Status: http.StatusOK, Payload: []byte(`[{"id":"1"},{"id":"4"}]`)}, nil
		})

	fetch := resource.Get[[]item](gw, "/investments", map[string]string{"riskLevel": "low"})
	got, err := fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "1"}, {ID: "4"}}, got)
}

func TestCall_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)

	failure := domain.NewServerError(http.StatusBadGateway, "upstream down")
	gw.EXPECT().Call(gomock.Any(), gomock.Any()).Return(nil, failure)
	_, err := resource.Call[item](context.Background(), gw, domain.APIRequest{Method: http.MethodGet, Path: "/x"})
	assert.Same(t, failure, err)

	gw.EXPECT().Call(gomock.Any(), gomock.Any()).Return(&domain.APIResponse{Payload: []byte(`{"id":`)}, nil)
	_, err = resource.Call[item](context.Background(), gw, domain.APIRequest{Method: http.MethodGet, Path: "/x"})
	var gwErr *domain.GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, domain.KindParse, gwErr.Kind)
}

func TestRead_TokenGate(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	sessions := mocks.NewMockSessionStore(ctrl)
	log := logger.NewWithWriter(io.Discard)
	d := &resource.Deps{
		Gateway:  gw,
		Query:    query.NewClient(log, nil, nil, query.Settings{}),
		Sessions: sessions,
		Logger:   log,
	}
	key := domain.Key("things")
	fetch := resource.Get[item](gw, "/things", nil)

	// Signed out: the fetcher never runs.
	sessions.EXPECT().Load().Return(domain.Session{}, nil)
	res := resource.Read(context.Background(), d, key, fetch)
	assert.Equal(t, domain.QueryIdle, res.Status)

	// Unreadable session counts as signed out.
	sessions.EXPECT().Load().Return(domain.Session{}, errors.New("corrupt"))
	assert.False(t, d.Authenticated())

	sessions.EXPECT().Load().Return(domain.Session{AccessToken: "token"}, nil)
	gw.EXPECT().Call(gomock.Any(), gomock.Any()).Return(&domain.APIResponse{Payload: []byte(`{"id":"7"}`)}, nil)
	res = resource.Read(context.Background(), d, key, fetch)
	require.NoError(t, res.Err)
	assert.Equal(t, item{ID: "7"}, res.Data)

	// A false condition disables the read even with a token.
	sessions.EXPECT().Load().Return(domain.Session{AccessToken: "token"}, nil)
	res = resource.Read(context.Background(), d, domain.Key("things", "other"), fetch, d.EnabledIf(false))
	assert.Equal(t, domain.QueryIdle, res.Status)
}
