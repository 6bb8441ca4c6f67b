// Package academy собирает приложение: хранилище, миграции, кэш, сервисы,
// маршруты и жизненный цикл HTTP-сервера.
package academy

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/crypto-academy/internal/cache"
	"github.com/magabrotheeeer/crypto-academy/internal/config"
	"github.com/magabrotheeeer/crypto-academy/internal/discord"
	"github.com/magabrotheeeer/crypto-academy/internal/lib/jwt"
	"github.com/magabrotheeeer/crypto-academy/internal/lib/password"
	"github.com/magabrotheeeer/crypto-academy/internal/lib/sl"
	"github.com/magabrotheeeer/crypto-academy/internal/migrations"
	"github.com/magabrotheeeer/crypto-academy/internal/models"
	authservice "github.com/magabrotheeeer/crypto-academy/internal/services/auth"
	contentservice "github.com/magabrotheeeer/crypto-academy/internal/services/content"
	entitlementservice "github.com/magabrotheeeer/crypto-academy/internal/services/entitlement"
	"github.com/magabrotheeeer/crypto-academy/internal/storage/repository"
)

// Учетная запись, создаваемая при первом старте на пустой базе.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "Admin123!"
)

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New инициализирует хранилище, применяет миграции, засевает дефолтные
// записи и собирает все сервисы с маршрутами.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString, logger)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}
	if err = seedDefaults(ctx, db, logger); err != nil {
		return nil, err
	}

	// Без redis приложение работает, контент читается напрямую из базы.
	var contentCache contentservice.Cache
	if cfg.AddressRedis != "" {
		cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			logger.Warn("redis unavailable, content cache disabled", sl.Err(err))
		} else {
			contentCache = cacheRedis
		}
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	discordClient := discord.NewClient(cfg.Discord)

	authSvc := authservice.NewService(db, jwtMaker, cfg.JWTSecretKey)
	contentSvc := contentservice.NewService(db, contentCache, logger)
	entitlementSvc := entitlementservice.New(logger, db, db, discordClient)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authSvc, contentSvc, entitlementSvc)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// seedDefaults создаёт административную учётную запись и тексты hero-блока,
// если их ещё нет. Выполняется один раз после миграций.
func seedDefaults(ctx context.Context, db *repository.Storage, logger *slog.Logger) error {
	hash, err := password.GetHash(defaultAdminPassword)
	if err != nil {
		return err
	}
	created, err := db.EnsureDefaultAdmin(ctx, defaultAdminUsername, hash)
	if err != nil {
		return err
	}
	if created {
		logger.Info("default admin account created", slog.String("username", defaultAdminUsername))
	}

	return db.EnsureDefaultHero(ctx, models.HeroContent{
		Title:             "Master the Art of Cryptocurrency Trading",
		Subtitle:          "TRADING CRYPTO ACADEMY",
		Description:       "The best trading education platform with experienced mentors.",
		WhatsappNumber:    "6281234567890",
		DiscordInviteLink: "https://discord.gg/your-invite-code",
	})
}

// Run запускает HTTP-сервер и блокируется до остановки по контексту.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
