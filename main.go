package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/meshquery-inc/meshquery-engine/pkg/config"
	"github.com/meshquery-inc/meshquery-engine/pkg/datasource"
	"github.com/meshquery-inc/meshquery-engine/pkg/engine"
	"github.com/meshquery-inc/meshquery-engine/pkg/handlers"
	"github.com/meshquery-inc/meshquery-engine/pkg/llm"
	"github.com/meshquery-inc/meshquery-engine/pkg/logging"
	mcpserver "github.com/meshquery-inc/meshquery-engine/pkg/mcp"
	"github.com/meshquery-inc/meshquery-engine/pkg/mcp/tools"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("warehouse", cfg.Warehouse.Type),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.Bool("ai_available", cfg.AI.IsAvailable()))

	ctx := context.Background()

	warehouse, err := newWarehouse(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect warehouse", zap.Error(err))
	}
	defer func() { _ = warehouse.Close() }()

	client, err := llm.NewFromConfig(&cfg.AI, logger)
	if err != nil {
		logger.Fatal("Failed to create completion client", zap.Error(err))
	}
	if client == nil {
		logger.Info("No completion provider configured, running heuristics only")
	}

	eng := engine.New(warehouse, client, cfg, logger.Named("engine"))

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(cfg, logger)
	healthHandler.RegisterRoutes(mux)

	askHandler := handlers.NewAskHandler(eng, logger)
	askHandler.RegisterRoutes(mux)

	mcpSrv := mcpserver.NewServer("meshquery-engine", cfg.Version, logger.Named("mcp"))
	tools.RegisterAskTool(mcpSrv.MCP(), eng)
	tools.RegisterExplainTool(mcpSrv.MCP(), eng)
	tools.RegisterListTablesTool(mcpSrv.MCP(), warehouse)
	tools.RegisterTableWikiTool(mcpSrv.MCP(), warehouse)
	tools.RegisterHealthTool(mcpSrv.MCP(), cfg.Version)
	mux.Handle("/mcp", mcpSrv.NewStreamableHTTPServer())

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting meshquery-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newWarehouse selects the data source adapter from configuration.
func newWarehouse(ctx context.Context, cfg *config.Config, logger *zap.Logger) (datasource.Warehouse, error) {
	switch cfg.Warehouse.Type {
	case "postgres":
		return datasource.NewPostgresWarehouse(ctx, cfg.Warehouse.ConnectionString(), logger)
	case "mssql":
		return datasource.NewMSSQLWarehouse(ctx, cfg.Warehouse.ConnectionString(), logger)
	default:
		return datasource.NewDremioWarehouse(ctx, &datasource.DremioConfig{
			Endpoint: cfg.Warehouse.Endpoint,
			Username: cfg.Warehouse.User,
			Password: cfg.Warehouse.Password,
		}, logger)
	}
}
