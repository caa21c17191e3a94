package main

import (
	"context"
	"log/slog"
	"os"

	"larder/config"
	"larder/internal/delivery"
	"larder/internal/delivery/http"
	"larder/internal/delivery/http/middleware"
	"larder/internal/delivery/http/router/handler"
	"larder/internal/delivery/worker"
	"larder/internal/domain/repository"
	"larder/internal/domain/service"
	"larder/internal/infra/auth"
	"larder/internal/infra/clock"
	logs "larder/internal/infra/log"
	"larder/internal/infra/mail"
	"larder/internal/infra/persistence/jsonfile"
	"larder/internal/infra/persistence/postgres"
	"larder/internal/infra/pubsub"
	"larder/internal/usecase"
	"larder/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			registerBootstrap,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
		),
		mail.Module,
		pubsub.Module,
	)
}

type persistenceParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// newPersistence selects the storage backend. A configured Postgres block
// wins; otherwise everything lives in the local JSON document store.
func newPersistence(params persistenceParams) (
	repository.InventoryRepository,
	repository.HistoryRepository,
	repository.ReminderRepository,
	repository.ConfigRepository,
	repository.UserRepository,
	repository.TransactionManager,
	error,
) {
	if params.Config.Postgres != nil {
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, nil, nil, nil, nil, nil, err
		}

		return postgres.NewInventoryRepository(db),
			postgres.NewHistoryRepository(db),
			postgres.NewReminderRepository(db),
			postgres.NewConfigRepository(db),
			postgres.NewUserRepository(db),
			postgres.NewTransactionManager(db),
			nil
	}

	store, err := jsonfile.NewStore(params.Config.LocalStore.Path, params.Logger)
	if err != nil {
		return nil, nil, nil, nil, nil, nil, err
	}

	return jsonfile.NewInventoryRepository(store),
		jsonfile.NewHistoryRepository(store),
		jsonfile.NewReminderRepository(store),
		jsonfile.NewConfigRepository(store),
		jsonfile.NewUserRepository(store),
		jsonfile.NewTransactionManager(store),
		nil
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newPersistence,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newPasswordHasher,
			auth.NewJWTService,
			clock.NewSystemClock,
		),
	)
}

// newPasswordHasher creates the bcrypt hasher with the configured cost
func newPasswordHasher(cfg *config.Config) service.PasswordHasher {
	if cfg.Auth != nil && cfg.Auth.BcryptCost > 0 {
		return auth.NewBcryptHasherWithCost(cfg.Auth.BcryptCost)
	}

	return auth.NewBcryptHasher()
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewInventoryService,
			impl.NewNotificationService,
			impl.NewMutationNotifier,
			impl.NewHistoryService,
			impl.NewStatsService,
			impl.NewSeedService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewInventoryHandler,
			handler.NewNotificationHandler,
			handler.NewHistoryHandler,
			handler.NewStatsHandler,
			handler.NewSeedHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewNotifier,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// registerBootstrap ensures the built-in admin exists before the server
// accepts requests, and seeds example data when enabled.
func registerBootstrap(
	lc fx.Lifecycle,
	cfg *config.Config,
	logger *slog.Logger,
	userUc usecase.UserUsecase,
	seedUc usecase.SeedUsecase,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := userUc.EnsureBootstrapAdmin(ctx); err != nil {
				return err
			}

			if !cfg.Seed.Enabled {
				return nil
			}

			result, err := seedUc.SeedExampleData(ctx)
			if err != nil {
				return err
			}
			logger.Info("Example data seeded",
				slog.Int("units", result.Units),
				slog.Int("items", result.Items),
				slog.Int("history", result.History))

			return nil
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
