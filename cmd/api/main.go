package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "library-circulation/internal/adapter/http"
	mw "library-circulation/internal/adapter/middleware"
	"library-circulation/internal/adapter/repository/gormrepo"
	"library-circulation/internal/config"
	"library-circulation/internal/infrastructure/cache"
	"library-circulation/internal/infrastructure/db"
	booksvc "library-circulation/internal/usecase/book"
	"library-circulation/internal/usecase/circulation"
	finesvc "library-circulation/internal/usecase/fine"
	loansvc "library-circulation/internal/usecase/loan"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), db.LogLevel(cfg.DBLogLevel))
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	registry := booksvc.NewUsecase(gormrepo.NewBookRepository(gdb))
	loans := gormrepo.NewLoanRepository(gdb)
	tx := gormrepo.NewGormUoW(gdb)
	ledger := loansvc.NewUsecase(loans, tx, loansvc.WithPeriod(cfg.LoanPeriod()))
	accrual := finesvc.NewUsecase(gormrepo.NewFineRepository(gdb), loans, tx, ledger,
		finesvc.WithPenaltyRate(cfg.FinePenaltyRate),
		finesvc.WithDueAfter(cfg.FineDueAfter()),
	)
	coord := circulation.NewCoordinator(ledger, accrual)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatalf("db handle: %v", err)
	}
	health := httpadp.NewHealthHandler(map[string]httpadp.Pinger{
		"db":    sqlDB.PingContext,
		"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	})

	httpadp.Register(e,
		health,
		httpadp.NewCirculationHandler(coord),
		httpadp.NewBookHandler(registry),
		mw.Auth(cfg.JWTSecret),
		mw.CheckoutReplay(rdb, cfg.IdempotencyTTL()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.SweepInterval > 0 {
		go runSweeps(ctx, accrual, cfg.SweepInterval)
	}

	addr := ":" + cfg.AppPort
	go func() {
		log.Printf("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// runSweeps refreshes overdue flags and accrues fines on a fixed interval.
// Accrual sweeps first, so one call covers both.
func runSweeps(ctx context.Context, accrual *finesvc.Usecase, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := accrual.AccrueForOverdueLoans(ctx)
			if err != nil {
				log.Printf("sweep: %v", err)
				continue
			}
			log.Printf("sweep: %d fines accrued", n)
		}
	}
}
