package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xxz807/bookkeeping/internal/platform/apperr"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type sampleReq struct {
	Name   string          `json:"name" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
}

func newContext(body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestBindJSON(t *testing.T) {
	c, _ := newContext(`{"name":"widget","amount":12.5}`)
	var req sampleReq
	require.NoError(t, BindJSON(c, &req))
	assert.Equal(t, "widget", req.Name)
	assert.True(t, req.Amount.Equal(decimal.RequireFromString("12.5")))
}

func TestBindJSON_Invalid(t *testing.T) {
	for _, body := range []string{``, `{`, `{"amount":1}`} {
		c, _ := newContext(body)
		var req sampleReq
		err := BindJSON(c, &req)
		assert.ErrorIs(t, err, apperr.ErrInvalid, "body %q", body)
	}
}

func TestRespondError(t *testing.T) {
	c, w := newContext(`{}`)
	RespondError(c, zap.NewNop(), apperr.Invalid("qty", "must be positive"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"qty: must be positive"}`, w.Body.String())

	c, w = newContext(`{}`)
	RespondError(c, zap.NewNop(), errors.New("connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestDecimalMarshalsAsNumber(t *testing.T) {
	c, w := newContext(`{}`)
	c.JSON(http.StatusOK, gin.H{"v": decimal.RequireFromString("6.5")})
	assert.JSONEq(t, `{"v":6.5}`, w.Body.String())
}
