package app

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"github.com/go-redis/redis/v8"
	"runtime"
	"shopledger/internal/app/apperr"
	"shopledger/internal/app/config"
	"shopledger/internal/app/logger"
	"shopledger/internal/app/model"
	"shopledger/internal/app/service/catalog"
	"shopledger/internal/app/service/ledger"
	"shopledger/internal/app/service/notifier"
	"shopledger/internal/app/service/review"
	"shopledger/internal/app/session"
	"shopledger/internal/app/storage"
	"shopledger/internal/app/storage/memory"
	"shopledger/internal/app/storage/postgres"
	"shopledger/pkg/opsnotify"
	"strings"
	"time"
)

type App struct {
	config       config.Config
	logger       logger.Logger
	db           *sql.DB
	redis        *redis.Client
	txm          storage.TxManager
	accounts     storage.AccountRepository
	transactions storage.TransactionRepository
	items        storage.ItemRepository
	session      session.Manager
	notifier     *notifier.Service
	ledger       *ledger.Service
	review       *review.Service
	catalog      *catalog.Service
	stopCh       chan struct{}
}

func New(cfg config.Config, logger logger.Logger, e embed.FS) (*App, error) {
	a := &App{
		config: cfg,
		logger: logger,
		stopCh: make(chan struct{}),
	}

	var err error
	if cfg.Database.DSN != "" {
		err = a.initPostgres(e)
	} else {
		err = a.initMemory()
	}
	if err != nil {
		return nil, err
	}

	if err := a.initSession(); err != nil {
		return nil, err
	}

	if err := a.initServices(); err != nil {
		return nil, err
	}

	if err := a.seedAdmin(context.Background()); err != nil {
		return nil, fmt.Errorf("admin seed: %w", err)
	}

	go func() {
		<-a.stopCh
		a.logger.Info().Msg("Shutting down application")
	}()

	return a, nil
}

func (a *App) initPostgres(e embed.FS) error {
	db, err := sql.Open("postgres", a.config.Database.DSN)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	db.SetMaxOpenConns(a.config.Database.MaxOpenConn)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}

	if err := applyMigrations(e, db); err != nil {
		return fmt.Errorf("db migrate: %w", err)
	}

	txm, err := postgres.NewTxManager(db, a.config.Database.TxAttempts)
	if err != nil {
		return fmt.Errorf("tx manager init: %w", err)
	}

	accounts, err := postgres.NewAccountRepository(db)
	if err != nil {
		return fmt.Errorf("account repository init: %w", err)
	}

	transactions, err := postgres.NewTransactionRepository(db)
	if err != nil {
		return fmt.Errorf("transaction repository init: %w", err)
	}

	items, err := postgres.NewItemRepository(db)
	if err != nil {
		return fmt.Errorf("item repository init: %w", err)
	}

	a.db = db
	a.txm = txm
	a.accounts = accounts
	a.transactions = transactions
	a.items = items

	a.logger.Info().Msg("Using postgres storage")

	return nil
}

func (a *App) initMemory() error {
	store := memory.New()

	accounts, err := memory.NewAccountRepository(store)
	if err != nil {
		return fmt.Errorf("account repository init: %w", err)
	}

	transactions, err := memory.NewTransactionRepository(store)
	if err != nil {
		return fmt.Errorf("transaction repository init: %w", err)
	}

	items, err := memory.NewItemRepository(store)
	if err != nil {
		return fmt.Errorf("item repository init: %w", err)
	}

	a.txm = store
	a.accounts = accounts
	a.transactions = transactions
	a.items = items

	a.logger.Warn().Msg("DATABASE_URI is empty, using in-memory storage")

	return nil
}

func (a *App) initSession() error {
	if a.config.Redis.Addr == "" {
		a.session = session.NewMemory(a.config.SecretKey, a.accounts)
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     a.config.Redis.Addr,
		Password: a.config.Redis.Password,
		DB:       a.config.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("redis ping: %w", err)
	}

	a.redis = client
	a.session = session.NewRedis(a.config.SecretKey, client, a.accounts)

	a.logger.Info().Str("redis_addr", a.config.Redis.Addr).Msg("Using redis sessions")

	return nil
}

func (a *App) initServices() error {
	var sender notifier.Sender = notifier.LogSender{}
	if a.config.Notify.URL != "" {
		s, err := opsnotify.NewService(a.config.Notify.URL, opsnotify.WithLogger(a.logger.Logger))
		if err != nil {
			return fmt.Errorf("opsnotify init: %w", err)
		}
		sender = s
	}

	workers := a.config.Notify.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	ns, err := notifier.New(sender, workers,
		notifier.WithQueueSize(a.config.Notify.QueueSize),
		notifier.WithRetry(a.config.Notify.MaxAttempts, a.config.Notify.RetryDelay),
		notifier.WithRecipient(a.config.Admin.Email),
	)
	if err != nil {
		return fmt.Errorf("notifier init: %w", err)
	}
	a.notifier = ns

	ls, err := ledger.New(a.txm, a.accounts, a.transactions,
		ledger.WithNotifier(ns),
		ledger.WithMinDeposit(a.config.Ledger.MinDepositAmount()),
		ledger.WithCurrency(a.config.Ledger.Currency),
	)
	if err != nil {
		return fmt.Errorf("ledger init: %w", err)
	}
	a.ledger = ls

	rs, err := review.New(ls)
	if err != nil {
		return fmt.Errorf("review init: %w", err)
	}
	a.review = rs

	cs, err := catalog.New(a.txm, a.items, ls)
	if err != nil {
		return fmt.Errorf("catalog init: %w", err)
	}
	a.catalog = cs

	return nil
}

// seedAdmin creates the configured administrator unless it already exists
func (a *App) seedAdmin(ctx context.Context) error {
	if a.config.Admin.Email == "" || a.config.Admin.Password == "" {
		return nil
	}

	m, err := a.accounts.Create(ctx, &model.Account{
		Name:     a.config.Admin.Name,
		Email:    strings.ToLower(a.config.Admin.Email),
		Password: a.config.Admin.Password,
		Role:     model.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			a.logger.Debug().Str("email", a.config.Admin.Email).Msg("Admin account exists")
			return nil
		}
		return err
	}

	a.logger.Info().Str("account_id", m.ID.String()).Msg("Admin account created")

	return nil
}

func (a *App) Stop() {
	close(a.stopCh)
	a.notifier.Stop()

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Err(err).Msg("Redis close failed")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Err(err).Msg("DB close failed")
		}
	}
}
