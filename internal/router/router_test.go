package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"bizcardx/internal/config"
	"bizcardx/internal/handler"
	"bizcardx/internal/router"
	"bizcardx/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func setup(authEnabled bool) (*gin.Engine, *mocks.MockCardService) {
	authSvc := new(mocks.MockAuthService)
	authSvc.On("Enabled").Return(authEnabled)
	cardSvc := new(mocks.MockCardService)

	cfg := &config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}}
	r := router.Setup(cfg, zap.NewNop(), authSvc,
		handler.NewAuthHandler(authSvc),
		handler.NewCardHandler(cardSvc),
		handler.NewHealthHandler(okPinger{}),
	)
	return r, cardSvc
}

func TestRouter_Health(t *testing.T) {
	r, _ := setup(true)
	for _, path := range []string{"/healthz", "/readyz"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRouter_CardsRequireTokenWhenAuthEnabled(t *testing.T) {
	r, cardSvc := setup(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cards/names", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	cardSvc.AssertNotCalled(t, "ListNames", mock.Anything)
}

func TestRouter_CardsOpenWhenAuthDisabled(t *testing.T) {
	r, cardSvc := setup(false)
	cardSvc.On("ListNames", mock.Anything).Return([]string{"Jane Doe"}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cards/names", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	cardSvc.AssertExpectations(t)
}

func TestRouter_StaticRoutesBeatIDParam(t *testing.T) {
	r, cardSvc := setup(false)
	cardSvc.On("GetByName", mock.Anything, "Jane Doe").Return(nil, assert.AnError)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cards/lookup?name=Jane+Doe", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	cardSvc.AssertExpectations(t)
}

func TestRouter_SwaggerDoc(t *testing.T) {
	r, _ := setup(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/cards/extract")
}
