package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattctl/poet/pkg/control"
	"github.com/wattctl/poet/pkg/numeric"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestController(t *testing.T) *control.Controller {
	t.Helper()
	table := []control.SystemState{
		{Speedup: numeric.Const(1), Cost: numeric.Const(1)},
		{Speedup: numeric.Const(2), Cost: numeric.Const(3)},
	}
	ctrl, err := control.Init(control.Config{
		Table:          table,
		Goal:           numeric.Const(1.5),
		ConstraintType: control.Performance,
		Period:         10,
		ApplyStates:    struct{}{},
		Apply:          func(control.ApplyStates, int, int, int, uint64, bool) {},
		Current:        func(control.ApplyStates, int) (int, error) { return 1, nil },
	})
	require.NoError(t, err)
	return ctrl
}

func TestHealthEndpointReportsOK(t *testing.T) {
	ctrl := newTestController(t)
	router := NewRouter(ctrl)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestStatusEndpointReflectsControllerSnapshot(t *testing.T) {
	ctrl := newTestController(t)
	require.NoError(t, ctrl.ApplyControl(0, numeric.Const(1.4), numeric.Const(1.2)))
	router := NewRouter(ctrl)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"constraint_type":"PERFORMANCE"`)
}

func TestStatusEndpointNeverMutatesController(t *testing.T) {
	ctrl := newTestController(t)
	router := NewRouter(ctrl)

	before := ctrl.Snapshot()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)
	after := ctrl.Snapshot()

	assert.Equal(t, before, after)
}
