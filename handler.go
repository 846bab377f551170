package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Handler carries the shared database pool and the per-user check-in locks.
// One instance serves all requests.
type Handler struct {
	db *pgxpool.Pool

	mu           sync.Mutex
	checkInLocks map[int]*sync.Mutex
}

func NewHandler(db *pgxpool.Pool) *Handler {
	return &Handler{db: db, checkInLocks: make(map[int]*sync.Mutex)}
}

// checkInLock returns the mutex guarding check-in submission for one user.
// Holding it makes snapshot read-decide-write sequences atomic per user.
func (h *Handler) checkInLock(userID int) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	l, ok := h.checkInLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		h.checkInLocks[userID] = l
	}
	return l
}

/* ─── Query helpers ──────────────────────────────────────────────────── */

func queryOne[T any](h *Handler, ctx context.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := h.db.Query(ctx, sql, args)
	if err != nil {
		var zero T
		return zero, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
}

func queryMany[T any](h *Handler, ctx context.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := h.db.Query(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

func (h *Handler) exec(ctx context.Context, sql string, args pgx.NamedArgs) error {
	_, err := h.db.Exec(ctx, sql, args)
	return err
}

/* ─── Plumbing ───────────────────────────────────────────────────────── */

func apiError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func getDBPool(ctx context.Context) (*pgxpool.Pool, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return pool, nil
}

func (h *Handler) registerRoutes(r *gin.Engine) {
	r.POST("/api/login", h.login)

	api := r.Group("/api", h.authMiddleware)

	api.GET("/coach/form", h.getCoachForm)
	api.PUT("/coach/form", h.putCoachForm)

	api.POST("/coach/macros", h.createSnapshot)
	api.GET("/coach/macros/latest", h.getLatestSnapshot)
	api.GET("/coach/macros/history", h.getSnapshotHistory)
	api.GET("/coach/markers", h.getCoachMarkers)

	api.POST("/coach/check-in", h.postCheckIn)
	api.GET("/coach/countdown", h.getCountdown)

	api.GET("/weight-log", h.listWeightEntries)
	api.POST("/weight-log", h.upsertWeightEntry)
	api.PUT("/weight-log/:id", h.updateWeightEntry)
	api.DELETE("/weight-log/:id", h.deleteWeightEntry)
	api.GET("/weight-log/averages", h.getWeightAverages)

	api.POST("/macro-totals", h.upsertMacroTotals)
	api.GET("/macro-totals/weekly-average", h.getWeeklyMacroAverage)
}
