package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xxz807/bookkeeping/internal/inventory/domain"
	"github.com/xxz807/bookkeeping/internal/inventory/service"
	ledger "github.com/xxz807/bookkeeping/internal/ledger/service"
	"github.com/xxz807/bookkeeping/internal/platform/apperr"
	"github.com/xxz807/bookkeeping/internal/platform/httpx"
)

type InventoryHandler struct {
	svc    *service.InventoryService
	logger *zap.Logger
}

func NewInventoryHandler(svc *service.InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{svc: svc, logger: logger}
}

func (h *InventoryHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/items", h.ListItems)
	r.POST("/items", h.CreateItem)
	r.GET("/items/:id/txns", h.ListTxns)
	r.POST("/inventory/txn", h.RecordTxn)
}

// ListItems GET /api/items
func (h *InventoryHandler) ListItems(c *gin.Context) {
	items, err := h.svc.ListItems(c.Request.Context())
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateItem POST /api/items
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req CreateItemReq
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	id, err := h.svc.CreateItem(c.Request.Context(), service.CreateItemRequest{
		SKU:     req.SKU,
		Name:    req.Name,
		Qty:     req.Qty,
		AvgCost: req.AvgCost,
	})
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ListTxns GET /api/items/:id/txns
func (h *InventoryHandler) ListTxns(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpx.RespondError(c, h.logger, apperr.Invalid("id", "%q is not a valid item id", c.Param("id")))
		return
	}

	txns, err := h.svc.ListTxns(c.Request.Context(), id)
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

// RecordTxn 进货 / 销货，同时生成凭证
// POST /api/inventory/txn
func (h *InventoryHandler) RecordTxn(c *gin.Context) {
	var req RecordTxnReq
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	svcReq := service.RecordTxnRequest{
		ItemID:   req.ItemID,
		Type:     domain.TxnType(req.Type),
		Qty:      req.Qty,
		UnitCost: req.UnitCost,
		Date:     req.Date,
	}
	for _, l := range req.JournalLines {
		svcReq.JournalLines = append(svcReq.JournalLines, ledger.PostingLine{
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
		})
	}

	entryID, err := h.svc.RecordTxn(c.Request.Context(), svcReq)
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "entryId": entryID})
}
