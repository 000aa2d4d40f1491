package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	depreciationapi "github.com/xxz807/bookkeeping/internal/depreciation/api"
	inventoryrepo "github.com/xxz807/bookkeeping/internal/inventory/adapter/repo"
	inventoryapi "github.com/xxz807/bookkeeping/internal/inventory/api"
	inventorydomain "github.com/xxz807/bookkeeping/internal/inventory/domain"
	inventoryservice "github.com/xxz807/bookkeeping/internal/inventory/service"
	ledgerrepo "github.com/xxz807/bookkeeping/internal/ledger/adapter/repo"
	ledgerapi "github.com/xxz807/bookkeeping/internal/ledger/api"
	ledgerdomain "github.com/xxz807/bookkeeping/internal/ledger/domain"
	ledgerservice "github.com/xxz807/bookkeeping/internal/ledger/service"
	"github.com/xxz807/bookkeeping/internal/platform/config"
	"github.com/xxz807/bookkeeping/internal/platform/database"
	"github.com/xxz807/bookkeeping/internal/platform/logger"
	"github.com/xxz807/bookkeeping/internal/platform/server"
)

// app 进程级依赖：配置、日志、数据库，以及在其上组装的各模块
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB

	ledger    *ledgerservice.LedgerService
	inventory *inventoryservice.InventoryService
}

// newApp 加载配置并初始化基础设施 (Infra)，然后依赖注入 (Wiring)
func newApp(configPath string) (*app, error) {
	// 1. 加载配置
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	// 2. 初始化基础设施
	log, err := logger.NewLogger(cfg.Server.Mode)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	db, err := database.Open(cfg.Database, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	// 3. 依赖注入
	ledgerSvc := ledgerservice.NewLedgerService(db, ledgerrepo.NewAccountRepo(db), ledgerrepo.NewEntryRepo(db), log)
	inventorySvc := inventoryservice.NewInventoryService(
		db,
		inventoryrepo.NewItemRepo(db),
		inventoryrepo.NewTxnRepo(db),
		ledgerSvc,
		cfg.Inventory,
		log,
	)

	return &app{
		cfg:       cfg,
		logger:    log,
		db:        db,
		ledger:    ledgerSvc,
		inventory: inventorySvc,
	}, nil
}

// migrate 建表，并在科目表为空时写入标准科目
func (a *app) migrate(ctx context.Context) (int, error) {
	models := append(ledgerdomain.Models(), inventorydomain.Models()...)
	if err := database.Migrate(a.db, models...); err != nil {
		return 0, err
	}
	return a.ledger.SeedChart(ctx)
}

// server 将各模块 Handler 注入到 Server 中
func (a *app) server() *server.Server {
	return server.NewServer(
		a.logger,
		a.cfg.Server,
		ledgerapi.NewLedgerHandler(a.ledger, a.logger),
		inventoryapi.NewInventoryHandler(a.inventory, a.logger),
		depreciationapi.NewDepreciationHandler(a.logger),
	)
}

func (a *app) Close() {
	if err := database.Close(a.db); err != nil {
		a.logger.Warn("closing database", zap.Error(err))
	}
	_ = a.logger.Sync()
}
