package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/familybank/familybank-api/internal/config"
	"github.com/familybank/familybank-api/internal/domain/catalog"
	"github.com/familybank/familybank-api/internal/domain/checklist"
	"github.com/familybank/familybank-api/internal/domain/ledger"
	"github.com/familybank/familybank-api/internal/domain/member"
	"github.com/familybank/familybank-api/internal/middleware"
	"github.com/familybank/familybank-api/internal/pkg/database"
	pkgresponse "github.com/familybank/familybank-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Family Points Bank API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	// ---------- Repositories ----------
	memberRepo := member.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	ledgerRepo := ledger.NewRepository(db)
	checklistRepo := checklist.NewRepository(db)

	// ---------- Services ----------
	catalogCache := catalog.NewCache(redis, cfg.CatalogCacheTTL)
	catalogService := catalog.NewService(catalogRepo, catalogCache)

	ledgerService := ledger.NewService(ledgerRepo, &ledgerCatalogAdapter{svc: catalogService}, cfg.HistoryDefaultLimit, cfg.HistoryMaxLimit)
	checklistService := checklist.NewService(checklistRepo, &checklistItemAdapter{svc: catalogService})
	memberService := member.NewService(memberRepo, &memberRewardAdapter{svc: catalogService})

	// ---------- Handlers ----------
	memberHandler := member.NewHandler(memberService)
	catalogHandler := catalog.NewHandler(catalogService)
	ledgerHandler := ledger.NewHandler(ledgerService)
	checklistHandler := checklist.NewHandler(checklistService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/members", memberHandler.Routes())
		r.Mount("/catalog", catalogHandler.Routes())
		r.Mount("/ledger", ledgerHandler.Routes())
		r.Mount("/checklist", checklistHandler.Routes())
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}

// Adapter implementations to bridge interface mismatches

// ledgerCatalogAdapter adapts the catalog service to ledger.CatalogStore.
// Lookups go straight to the repository-backed reads, never the TTL cache.
type ledgerCatalogAdapter struct {
	svc *catalog.Service
}

func (a *ledgerCatalogAdapter) GetMission(ctx context.Context, id uuid.UUID) (*ledger.Mission, error) {
	m, err := a.svc.GetMission(ctx, id)
	if err != nil || m == nil {
		return nil, err
	}
	return &ledger.Mission{
		ID:           m.ID,
		Title:        m.Title,
		PointsReward: m.PointsReward,
		Active:       m.Active,
	}, nil
}

func (a *ledgerCatalogAdapter) GetReward(ctx context.Context, id uuid.UUID) (*ledger.Reward, error) {
	rw, err := a.svc.GetReward(ctx, id)
	if err != nil || rw == nil {
		return nil, err
	}
	return &ledger.Reward{
		ID:        rw.ID,
		Name:      rw.Name,
		PointCost: rw.PointCost,
		Active:    rw.Active,
	}, nil
}

// checklistItemAdapter adapts the catalog service to checklist.ItemSource
type checklistItemAdapter struct {
	svc *catalog.Service
}

func (a *checklistItemAdapter) ListActiveItems(ctx context.Context, memberID uuid.UUID) ([]checklist.Item, error) {
	items, err := a.svc.ListActiveChecklistItems(ctx, memberID)
	if err != nil {
		return nil, err
	}
	out := make([]checklist.Item, 0, len(items))
	for _, item := range items {
		out = append(out, checklist.Item{
			ID:              item.ID,
			Content:         item.Content,
			DeductionPoints: item.DeductionPoints,
		})
	}
	return out, nil
}

// memberRewardAdapter adapts the catalog service to member.RewardCatalog
type memberRewardAdapter struct {
	svc *catalog.Service
}

func (a *memberRewardAdapter) ListActiveRewards(ctx context.Context) ([]member.Reward, error) {
	rewards, err := a.svc.ListRewards(ctx, false)
	if err != nil {
		return nil, err
	}
	out := make([]member.Reward, 0, len(rewards))
	for _, rw := range rewards {
		out = append(out, member.Reward{
			ID:          rw.ID,
			Name:        rw.Name,
			Description: rw.Description,
			Category:    rw.Category,
			PointCost:   rw.PointCost,
		})
	}
	return out, nil
}
