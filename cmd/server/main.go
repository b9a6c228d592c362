package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	wsevents "idletycoon/internal/adapter/events/ws"
	httpadapter "idletycoon/internal/adapter/http"
	metricsinmem "idletycoon/internal/adapter/metrics/inmemory"
	filestore "idletycoon/internal/adapter/repo/file"
	gormrepo "idletycoon/internal/adapter/repo/gorm"
	"idletycoon/internal/adapter/repo/memory"
	sqliterepo "idletycoon/internal/adapter/repo/sqlite"
	"idletycoon/internal/app/game"
	"idletycoon/internal/app/gameclock"
	"idletycoon/internal/app/ports"
	"idletycoon/internal/app/savestate"
	"idletycoon/internal/config"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func main() {
	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	variant, err := cfg.Game.ResolveVariant()
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}

	store, closeStore, err := openStore(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("open %s store: %v", cfg.Storage.Driver, err)
	}
	defer closeStore()

	codec := savestate.NewCodec(store)
	codec.KeyPrefix = cfg.Game.KeyPrefix

	hub := wsevents.NewHub()
	kpiRecorder := metricsinmem.NewRecorder()
	kpiRecorder.ObserveStream(hub)
	session := game.NewSession(game.Options{
		Variant:     variant,
		Codec:       codec,
		PricePolicy: savestate.PricePolicy(cfg.Game.PricePolicy),
		Events:      hub,
		Metrics:     kpiRecorder,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started, err := session.Start(ctx)
	if err != nil {
		log.Fatalf("start session: %v", err)
	}
	hlog.Infof("session %s started (variant=%s loaded=%t schema=v%d offline_bonus=%d)",
		session.ID(), variant.Name, started.Loaded, started.SchemaVersion, started.CatchUp.Amount)

	clock := gameclock.Clock{
		AccrualInterval:  cfg.Game.AccrualInterval(),
		AutosaveInterval: cfg.Game.AutosaveInterval(),
		OnAccrual: func(ctx context.Context) {
			_, _ = session.AccrueTick(ctx)
		},
		OnAutosave: func(ctx context.Context) {
			_ = session.Save(ctx)
		},
	}
	clockDone := make(chan struct{})
	go func() {
		defer close(clockDone)
		_ = clock.Run(ctx)
	}()

	eventsSrv := &http.Server{Addr: cfg.EventsAddr, Handler: hub.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		hlog.Infof("event stream listening on %s/events", cfg.EventsAddr)
		if err := eventsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			hlog.Errorf("event stream server: %v", err)
		}
	}()

	h := httpadapter.Handler{Game: session, KPI: kpiRecorder}
	s := server.Default(server.WithHostPorts(cfg.HTTPAddr))
	h.RegisterRoutes(s)
	s.OnShutdown = append(s.OnShutdown, func(shutdownCtx context.Context) {
		cancel()
		<-clockDone
		if err := session.Save(shutdownCtx); err != nil {
			hlog.Warnf("final save: %v", err)
		}
		_ = eventsSrv.Shutdown(shutdownCtx)
	})

	hlog.Infof("idle tycoon server listening on %s (store=%s)", cfg.HTTPAddr, cfg.Storage.Driver)
	s.Spin()
}

func loadConfig(getenv func(string) string) (config.Config, error) {
	cfg, err := config.Load(getenv("TYCOON_CONFIG"))
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv(getenv)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func openStore(ctx context.Context, cfg config.Storage) (ports.SaveStore, func(), error) {
	noop := func() {}
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(), noop, nil
	case config.DriverFile:
		st, err := filestore.NewStore(cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		return st, noop, nil
	case config.DriverSQLite:
		st, err := sqliterepo.Open(cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		return st, func() { _ = st.Close() }, nil
	case config.DriverPostgres:
		db, err := gormrepo.OpenPostgres(cfg.DSN)
		if err != nil {
			return nil, noop, err
		}
		if err := gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir); err != nil {
			return nil, noop, fmt.Errorf("apply migrations from %s: %w", cfg.MigrationsDir, err)
		}
		return gormrepo.NewSaveStore(db), func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
