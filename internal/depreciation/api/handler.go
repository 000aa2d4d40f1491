package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xxz807/bookkeeping/internal/depreciation"
	"github.com/xxz807/bookkeeping/internal/platform/httpx"
)

// ScheduleReq 缺失或非正的字段交给 depreciation.Schedule 校验
type ScheduleReq struct {
	AssetValue decimal.Decimal `json:"asset_value"`
	LifeYears  int             `json:"life_years"`
	Salvage    decimal.Decimal `json:"salvage"`
}

type DepreciationHandler struct {
	logger *zap.Logger
}

func NewDepreciationHandler(logger *zap.Logger) *DepreciationHandler {
	return &DepreciationHandler{logger: logger}
}

func (h *DepreciationHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/depreciation", h.Schedule)
}

// Schedule POST /api/depreciation
func (h *DepreciationHandler) Schedule(c *gin.Context) {
	var req ScheduleReq
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	rows, err := depreciation.Schedule(depreciation.Params{
		AssetValue: req.AssetValue,
		LifeYears:  req.LifeYears,
		Salvage:    req.Salvage,
	})
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": rows})
}
