package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xxz807/bookkeeping/internal/ledger/domain"
	"github.com/xxz807/bookkeeping/internal/ledger/service"
	"github.com/xxz807/bookkeeping/internal/platform/httpx"
)

type LedgerHandler struct {
	svc    *service.LedgerService
	logger *zap.Logger
}

func NewLedgerHandler(svc *service.LedgerService, logger *zap.Logger) *LedgerHandler {
	return &LedgerHandler{svc: svc, logger: logger}
}

// RegisterRoutes 注册路由
func (h *LedgerHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/accounts", h.ListAccounts)
	r.POST("/accounts", h.CreateAccount)
	r.GET("/journal", h.ListJournal)
	r.POST("/journal", h.PostJournal)
	r.GET("/trial-balance", h.TrialBalance)
}

// ListAccounts 科目表
// GET /api/accounts
func (h *LedgerHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.svc.ListAccounts(c.Request.Context())
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// CreateAccount 新建科目
// POST /api/accounts
func (h *LedgerHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountReq
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	id, err := h.svc.CreateAccount(c.Request.Context(), service.CreateAccountRequest{
		Code: req.Code,
		Name: req.Name,
		Type: domain.AccountType(req.Type),
	})
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ListJournal 凭证列表，分录带科目代码和名称
// GET /api/journal
func (h *LedgerHandler) ListJournal(c *gin.Context) {
	entries, err := h.svc.ListEntries(c.Request.Context())
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// PostJournal 记账接口
// POST /api/journal
func (h *LedgerHandler) PostJournal(c *gin.Context) {
	var req PostJournalReq

	// 1. 参数绑定与基础校验
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	// 2. DTO 转换 (API Layer -> Service Layer)
	svcReq := service.PostingRequest{
		Date:        req.Date,
		Description: req.Description,
		Lines:       make([]service.PostingLine, len(req.Lines)),
	}
	for i, l := range req.Lines {
		svcReq.Lines[i] = service.PostingLine{
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
		}
	}

	// 3. 调用业务逻辑
	entryID, err := h.svc.PostEntry(c.Request.Context(), svcReq)
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	// 4. 返回成功响应
	c.JSON(http.StatusOK, gin.H{"ok": true, "entryId": entryID})
}

// TrialBalance 试算平衡表
// GET /api/trial-balance
func (h *LedgerHandler) TrialBalance(c *gin.Context) {
	tb, err := h.svc.TrialBalance(c.Request.Context())
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tb)
}
