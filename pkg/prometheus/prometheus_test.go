package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/giftgroup/backend/internal/common"
	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	common.PromCounters[common.DrawsPerformedTotal].WithLabelValues(common.DrawResultSuccess).Inc()

	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `draws_performed_total{result="success"}`)
}
