package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sage-portal/auth"
	"sage-portal/cache"
	"sage-portal/confs"
	"sage-portal/db"
	"sage-portal/geo"
	"sage-portal/logger"
	"sage-portal/server"
	"sage-portal/services"
	"sage-portal/storage"
	"sage-portal/ws"
	"sage-portal/zones"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// load config
	settings, err := confs.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if err := logger.Init(logger.Settings{
		Level:      settings.LogLevel,
		FilePath:   settings.LogFile,
		MaxSize:    settings.LogMaxSize,
		MaxBackups: settings.LogMaxBackups,
		MaxAge:     settings.LogMaxAge,
	}); err != nil {
		log.Fatalf("Error initialising logger: %v", err)
	}
	zlog := logger.L()
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, settings, zlog); err != nil {
		zlog.Fatal("portal stopped with error", zap.Error(err))
	}
}

func run(ctx context.Context, settings *confs.Settings, zlog *zap.Logger) error {
	database, err := db.Connect(settings, zlog)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	catalog := zones.DefaultCatalog()
	if settings.ZonesFile != "" {
		catalog, err = zones.LoadCatalogFile(settings.ZonesFile)
		if err != nil {
			return err
		}
		zlog.Info("zone catalog loaded", zap.String("file", settings.ZonesFile), zap.Int("zones", len(catalog.Zones())))
	}

	files, err := storage.NewLocalStore(settings.StorageDir, settings.PublicBaseURL)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	var locationCache cache.LocationCache
	if settings.RedisAddr != "" {
		rdb, err := cache.ConnectRedis(ctx, settings.RedisAddr, settings.RedisPassword, settings.RedisDB)
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		locationCache = cache.NewRedisLocationCache(rdb, settings.GeoCacheTTL, zlog)
		zlog.Info("using redis location cache", zap.String("addr", settings.RedisAddr))
	} else {
		memory := cache.NewMemoryLocationCache(settings.GeoCacheTTL)
		locationCache = memory
		zlog.Info("using in-memory location cache")
		g.Go(func() error {
			services.RunEvery(ctx, time.Minute, func(context.Context) {
				if n := memory.Purge(); n > 0 {
					zlog.Debug("expired locations purged", zap.Int("count", n))
				}
			})
			return nil
		})
	}

	keepAlive := services.NewKeepAlive(database, settings.KeepAliveEvery, zlog)
	srv := server.NewServer(server.Deps{
		Settings:      settings,
		DB:            database,
		Catalog:       catalog,
		IPLocator:     geo.NewIPAPIClient(settings.GeoIPURL, settings.GeoTimeout),
		Reverse:       geo.NewBigDataCloudClient(settings.GeoReverseURL, settings.GeoTimeout),
		LocationCache: locationCache,
		Files:         files,
		Tokens:        auth.NewTokenManager(settings.JWTSecret, settings.JWTExpiry()),
		Hub:           ws.NewManager(),
		KeepAlive:     keepAlive,
		Log:           zlog,
	})

	g.Go(func() error { return srv.Run(ctx) })
	g.Go(func() error { return keepAlive.Run(ctx) })

	return g.Wait()
}
