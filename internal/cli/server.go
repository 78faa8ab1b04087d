package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quizzapp-service/internal/app"
	"quizzapp-service/internal/config"
	"quizzapp-service/internal/infra/media"
	"quizzapp-service/internal/infra/memory"
	mongostore "quizzapp-service/internal/infra/mongo"
	pgstore "quizzapp-service/internal/infra/postgres"
	rediscache "quizzapp-service/internal/infra/redis"
	"quizzapp-service/internal/logging"
	transport "quizzapp-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

// stores is the persistence picked from config plus whatever must be closed on exit.
type stores struct {
	users     app.UserRepository
	questions app.QuestionRepository
	closers   []func()
}

func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openStores prefers MongoDB, then Postgres, then the in-memory maps.
func openStores(ctx context.Context, cfg config.Config) (*stores, error) {
	l := logging.L()
	switch {
	case cfg.Mongo.URI != "":
		client, err := mongostore.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.Mongo.Database)
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		l.Info().Str("database", cfg.Mongo.Database).Msg("using mongodb store")
		return &stores{
			users:     mongostore.NewUserStore(db),
			questions: mongostore.NewQuestionStore(db),
			closers:   []func(){func() { _ = client.Disconnect(context.Background()) }},
		}, nil
	case cfg.Postgres.URL != "":
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		l.Info().Msg("using postgres store")
		return &stores{
			users:     pgstore.NewUserStore(pool),
			questions: pgstore.NewQuestionStore(pool),
			closers:   []func(){pool.Close},
		}, nil
	default:
		l.Warn().Msg("no database configured, data is kept in memory")
		return &stores{
			users:     memory.NewUserStore(),
			questions: memory.NewQuestionStore(),
		}, nil
	}
}

func openMediaStore(ctx context.Context, cfg config.Config) (app.MediaStore, error) {
	if cfg.Media.Driver == config.MediaS3 {
		return media.NewS3Store(ctx, cfg.Media.S3, cfg.Upload.MaxBytes)
	}
	return media.NewLocalStore(cfg.Media.Dir, cfg.Media.URLPrefix, cfg.Upload.MaxBytes)
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logging.Init(cfg.Log)
	l := logging.L()

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "3000"
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	feed := app.NewQuestionFeed()
	var events app.EventPublisher = feed
	questions := st.questions

	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		ttl := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)
		questions = rediscache.NewQuestionCache(redisClient, questions, ttl)

		relay := rediscache.NewFeedRelay(redisClient, cfg.Redis.Channel, feed)
		ready := make(chan struct{})
		go func() {
			if err := relay.Run(runCtx, ready); err != nil && !errors.Is(err, context.Canceled) {
				l.Error().Err(err).Msg("question feed relay stopped")
			}
		}()
		select {
		case <-ready:
			events = relay
		case <-time.After(5 * time.Second):
			l.Warn().Msg("redis relay not ready, question events stay local")
		}
	}

	avatars, err := openMediaStore(ctx, cfg)
	if err != nil {
		return err
	}

	accounts := app.NewAccountService(st.users, avatars, app.WithMaxAvatarBytes(cfg.Upload.MaxBytes))
	questionService := app.NewQuestionService(questions, events)

	router := transport.NewRouter(transport.RouterConfig{
		Accounts:  transport.NewAccountHandler(accounts),
		Questions: transport.NewQuestionHandler(questionService),
		Feed:      transport.NewFeedHandler(feed),
		Logger:    l,
		PublicDir: cfg.Server.PublicDir,
	})

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		l.Info().Str("addr", server.Addr).Msg("starting quizzapp service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error().Err(err).Msg("failed to start server")
			cancelRun()
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		l.Info().Msg("shutting down server...")
	case <-runCtx.Done():
		l.Info().Msg("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = server.Shutdown(shutdownCtx)
	cancelRun()
	return err
}
