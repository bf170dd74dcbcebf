package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"qgate/core/auth"
	"qgate/core/config"
	"qgate/core/cookie"
	"qgate/core/email"
	"qgate/core/gateway"
	"qgate/core/health"
	"qgate/core/logger"
	"qgate/core/report"
	"qgate/core/server"
	"qgate/core/session"
	"qgate/core/sheet"
	"qgate/core/storage"
	"qgate/core/upload"
	"qgate/integration/auth/ldap"
	"qgate/integration/auth/progdb"
	localchecker "qgate/integration/checker/local"
	remotechecker "qgate/integration/checker/remote"
	"qgate/integration/database/pg"
	redisdb "qgate/integration/database/redis"
	postmarkmail "qgate/integration/email/postmark"
	smtpmail "qgate/integration/email/smtp"
	filestore "qgate/integration/sessionstore/file"
	redisstore "qgate/integration/sessionstore/redis"
	"qgate/integration/sheets"
	localstorage "qgate/integration/storage/local"
	s3storage "qgate/integration/storage/s3"
	"qgate/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg) // panic on error

	log := newLogger(cfg)

	var dbCfg pg.Config
	config.MustLoad(&dbCfg)
	pool, err := pg.Connect(ctx, dbCfg)
	if err != nil {
		log.Error("failed to connect to the program database", logger.Component("database"), logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	// The credential table is often managed by the observatory DBAs,
	// so a migration failure is reported but does not stop the boot:
	// the gateway can still authenticate against the directory.
	if err := progdb.Migrate(ctx, pool); err != nil {
		log.Warn("program database migration failed", logger.Component("database.migration"), logger.Error(err))
	}

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		log.Error("failed to create cookie manager", logger.Component("cookie"), logger.Error(err))
		os.Exit(1)
	}

	readiness := map[string]func(context.Context) error{
		"postgres": pg.Healthcheck(pool),
	}

	store, storeCheck, err := newSessionStore(ctx, cfg)
	if err != nil {
		log.Error("failed to set up the session store", logger.Component("session"), logger.Error(err))
		os.Exit(1)
	}
	if storeCheck != nil {
		readiness["session_store"] = storeCheck
	}

	sessions, err := session.New(store, session.WithTTL(cfg.SessionTTL), session.WithLogger(log))
	if err != nil {
		log.Error("failed to create session manager", logger.Component("session"), logger.Error(err))
		os.Exit(1)
	}

	var ldapCfg ldap.Config
	config.MustLoad(&ldapCfg)
	directory, err := ldap.New(ldapCfg)
	if err != nil {
		log.Error("failed to set up the directory backend", logger.Component("auth"), logger.Error(err))
		os.Exit(1)
	}

	programs, err := progdb.New(pool)
	if err != nil {
		log.Error("failed to set up the program database backend", logger.Component("auth"), logger.Error(err))
		os.Exit(1)
	}

	authenticator, err := auth.New(directory, programs, auth.WithLogger(log))
	if err != nil {
		log.Error("failed to create authenticator", logger.Component("auth"), logger.Error(err))
		os.Exit(1)
	}

	checker, err := newChecker(cfg)
	if err != nil {
		log.Error("failed to set up the spreadsheet checker", logger.Component("checker"), logger.Error(err))
		os.Exit(1)
	}

	files, err := newStorage(ctx, cfg)
	if err != nil {
		log.Error("failed to set up upload storage", logger.Component("storage"), logger.Error(err))
		os.Exit(1)
	}

	uploadOpts := []upload.Option{upload.WithLogger(log)}
	sender, err := newMailSender(cfg)
	if err != nil {
		log.Error("failed to set up the mail sender", logger.Component("mail"), logger.Error(err))
		os.Exit(1)
	}
	switch {
	case sender != nil && cfg.MailNotify != "":
		uploadOpts = append(uploadOpts, upload.WithNotifier(sender, cfg.MailNotify))
	case sender != nil:
		log.Warn("MAIL_DRIVER is set but MAIL_NOTIFY is empty; upload notifications disabled",
			logger.Component("mail"))
	}

	uploads, err := upload.New(files, uploadOpts...)
	if err != nil {
		log.Error("failed to create upload manager", logger.Component("upload"), logger.Error(err))
		os.Exit(1)
	}

	deps := gateway.Deps{
		Sessions:  sessions,
		Cookies:   cookies,
		Auth:      authenticator,
		Checker:   checker,
		Uploads:   uploads,
		Storage:   files,
		Formatter: report.NewFormatter(),
		Logger:    log,
	}
	if cfg.SheetsExportURL != "" {
		var sheetsCfg sheets.Config
		config.MustLoad(&sheetsCfg)
		fetcher, err := sheets.New(sheetsCfg)
		if err != nil {
			log.Error("failed to set up the sheet fetcher", logger.Component("sheets"), logger.Error(err))
			os.Exit(1)
		}
		deps.Sheets = fetcher
	}

	gw, err := gateway.New(deps, gateway.WithCookieName(cfg.CookieName))
	if err != nil {
		log.Error("failed to create gateway", logger.Component("gateway"), logger.Error(err))
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", gw.Home)
	mux.HandleFunc("POST /submit", gw.Submit)
	mux.HandleFunc("GET /healthz", health.Liveness())
	mux.HandleFunc("GET /readyz", health.Readiness(log, readiness))

	isProbe := func(r *http.Request) bool {
		return r.URL.Path == "/healthz" || r.URL.Path == "/readyz"
	}
	var h http.Handler = mux
	h = middleware.LoggingWithConfig(middleware.LoggingConfig{Logger: log, Skip: isProbe})(h)
	h = middleware.BodyLimit(cfg.BodyLimit)(h)
	h = middleware.SecurityHeaders()(h)
	h = middleware.ClientIP()(h)
	h = middleware.RequestID()(h)

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		log.Error("failed to create server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(srv.Run(ctx, h))
	if cfg.SessionStore == "file" {
		// Redis expires session records natively; only the file store
		// needs a periodic sweep.
		eg.Go(sweepSessions(ctx, sessions, cfg.SessionSweep, log))
	}

	log.Info("gateway started",
		logger.Component("main"),
		slog.String("addr", cfg.Server.Addr),
		slog.String("session_store", cfg.SessionStore),
		slog.String("storage", cfg.StorageDriver))

	if err := eg.Wait(); err != nil {
		log.Error("gateway stopped with error", logger.Component("main"), logger.Error(err))
		os.Exit(1)
	}
	log.Info("gateway stopped", logger.Component("main"))
}

func newLogger(cfg Config) *slog.Logger {
	if cfg.Environment == "development" {
		return logger.New(logger.WithDevelopment(cfg.AppName))
	}
	return logger.New(logger.WithProduction(cfg.AppName))
}

// newSessionStore builds the configured session store and, for drivers
// backed by an external service, a readiness check for it.
func newSessionStore(ctx context.Context, cfg Config) (session.Store, func(context.Context) error, error) {
	switch cfg.SessionStore {
	case "redis":
		var redisCfg redisdb.Config
		config.MustLoad(&redisCfg)
		client, err := redisdb.Connect(ctx, redisCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		st, err := redisstore.New(client)
		if err != nil {
			return nil, nil, err
		}
		return st, redisdb.Healthcheck(client), nil
	case "file":
		st, err := filestore.New(cfg.SessionDir)
		if err != nil {
			return nil, nil, err
		}
		return st, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown SESSION_STORE driver %q", cfg.SessionStore)
	}
}

func newStorage(ctx context.Context, cfg Config) (storage.Storage, error) {
	switch cfg.StorageDriver {
	case "s3":
		var s3Cfg s3storage.Config
		config.MustLoad(&s3Cfg)
		return s3storage.New(ctx, s3Cfg)
	case "local":
		return localstorage.New(cfg.StorageDir)
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}

func newChecker(cfg Config) (sheet.Checker, error) {
	if cfg.CheckerURL == "" {
		return localchecker.New(), nil
	}
	var remoteCfg remotechecker.Config
	config.MustLoad(&remoteCfg)
	return remotechecker.New(remoteCfg)
}

// newMailSender returns nil without error when notifications are off.
func newMailSender(cfg Config) (email.Sender, error) {
	switch cfg.MailDriver {
	case "off", "":
		return nil, nil
	case "dev":
		return email.NewDevSender(cfg.MailDevDir), nil
	case "smtp":
		var smtpCfg smtpmail.Config
		config.MustLoad(&smtpCfg)
		return smtpmail.New(smtpCfg)
	case "postmark":
		var pmCfg postmarkmail.Config
		config.MustLoad(&pmCfg)
		return postmarkmail.New(pmCfg)
	default:
		return nil, fmt.Errorf("unknown MAIL_DRIVER %q", cfg.MailDriver)
	}
}

// sweepSessions periodically removes expired session records so the
// file store does not grow without bound.
func sweepSessions(ctx context.Context, sessions *session.Manager, every time.Duration, log *slog.Logger) func() error {
	return func() error {
		if every <= 0 {
			<-ctx.Done()
			return nil
		}
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				n, err := sessions.CleanupExpired(ctx)
				if err != nil {
					log.Warn("session sweep failed", logger.Component("session"), logger.Error(err))
					continue
				}
				if n > 0 {
					log.Info("expired sessions removed", logger.Component("session"), slog.Int("count", n))
				}
			}
		}
	}
}
