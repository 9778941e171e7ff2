package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/controle-fiscal/internal/domain/fiscal"
	"github.com/hugohenrick/controle-fiscal/internal/domain/settings"
	"github.com/hugohenrick/controle-fiscal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsRepo struct {
	current *settings.Settings
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*settings.Settings, error) {
	if r.current == nil {
		r.current = settings.NewSettings()
	}
	return r.current, nil
}

func (r *fakeSettingsRepo) Save(ctx context.Context, s *settings.Settings) error {
	r.current = s
	return nil
}

func newSettingsRouter(repo *fakeSettingsRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewSettingsController(repo, fiscal.AnexoI(), logger.NewLogger())

	router := gin.New()
	router.GET("/settings", ctrl.Get)
	router.PUT("/settings", ctrl.Update)
	return router
}

func TestSettingsGetCreatesDefault(t *testing.T) {
	router := newSettingsRouter(&fakeSettingsRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Anexo I", body["annex"])
	assert.Equal(t, 0.0, body["rbt12"])
	assert.Equal(t, 0.12, body["difal_rate"])
	assert.Equal(t, "SP", body["home_uf"])
}

func TestSettingsUpdateRecomputesEffectiveRate(t *testing.T) {
	repo := &fakeSettingsRepo{}
	router := newSettingsRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader(`{"rbt12": 180000}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0.04, body["effective_rate"])
	assert.Equal(t, 180000.0, body["rbt12"])

	// A resposta reflete o que foi persistido
	assert.True(t, repo.current.EffectiveRate.Equal(repo.current.FiscalParams().EffectiveRate))
}

func TestSettingsUpdateRejectsNegativeRBT12(t *testing.T) {
	repo := &fakeSettingsRepo{}
	router := newSettingsRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader(`{"rbt12": -1}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	// O valor vigente permanece intacto
	cfg, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, cfg.RBT12.IsZero())
}

func TestSettingsUpdatePartialKeepsOtherFields(t *testing.T) {
	repo := &fakeSettingsRepo{}
	router := newSettingsRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader(`{"home_uf": "MG"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "MG", body["home_uf"])
	assert.Equal(t, 0.12, body["difal_rate"])
}
