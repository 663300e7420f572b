package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"

	"github.com/sbilibin2017/amanah-wallet/docs"
	"github.com/sbilibin2017/amanah-wallet/internal/chain"
	"github.com/sbilibin2017/amanah-wallet/internal/facades"
	"github.com/sbilibin2017/amanah-wallet/internal/handlers"
	"github.com/sbilibin2017/amanah-wallet/internal/jwt"
	"github.com/sbilibin2017/amanah-wallet/internal/live"
	"github.com/sbilibin2017/amanah-wallet/internal/logger"
	"github.com/sbilibin2017/amanah-wallet/internal/metrics"
	"github.com/sbilibin2017/amanah-wallet/internal/middlewares"
	"github.com/sbilibin2017/amanah-wallet/internal/repositories"
	"github.com/sbilibin2017/amanah-wallet/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	pb "github.com/sbilibin2017/proto-exchange/exchange"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// Price feed sources
const (
	priceSourceHTTP = "http"
	priceSourceGRPC = "grpc"
)

// config holds every setting read from the environment.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	RedisExp          time.Duration

	GWHost string
	GWPort string

	JWTSecretKey string
	JWTExp       time.Duration

	ChainRPCURL         string
	ChainRPCRateLimit   float64
	ChainConfirmations  uint64
	ConfirmationTimeout time.Duration

	BalancePollInterval time.Duration

	PriceFeedSource   string
	PriceFeedURL      string
	PriceFeedInterval time.Duration
	PriceAsset        string

	ZakatAddress string

	KafkaBrokers []string
	KafkaTopic   string
}

// @title amanah-wallet API
// @version 1.0.0
// @description Custodial wallet service with transfers, Zakat payments and live balance updates
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}
	getSeconds := func(key, defaultValue string) (time.Duration, error) {
		v, err := getInt(key, defaultValue)
		return time.Duration(v) * time.Second, err
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}
	if cfg.RedisExp, err = getSeconds("REDIS_EXP_SECOND", "600"); err != nil {
		return
	}

	// gRPC config
	cfg.GWHost = getEnv("GW_EXCHANGER_HOST", "localhost")
	cfg.GWPort = getEnv("GW_EXCHANGER_PORT", "50051")

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.JWTExp, err = getSeconds("JWT_EXP_SECOND", "86400"); err != nil {
		return
	}

	// Chain config
	cfg.ChainRPCURL = getEnv("CHAIN_RPC_URL", "https://api.avax-test.network/ext/bc/C/rpc")
	if cfg.ChainRPCRateLimit, err = strconv.ParseFloat(getEnv("CHAIN_RPC_RATE_LIMIT", "10"), 64); err != nil {
		err = fmt.Errorf("CHAIN_RPC_RATE_LIMIT: %w", err)
		return
	}
	if cfg.ChainConfirmations, err = strconv.ParseUint(getEnv("CHAIN_CONFIRMATIONS", "2"), 10, 64); err != nil {
		err = fmt.Errorf("CHAIN_CONFIRMATIONS: %w", err)
		return
	}
	if cfg.ConfirmationTimeout, err = getSeconds("CHAIN_CONFIRMATION_TIMEOUT_SECOND", "30"); err != nil {
		return
	}
	if cfg.BalancePollInterval, err = getSeconds("BALANCE_POLL_INTERVAL_SECOND", "30"); err != nil {
		return
	}

	// Price feed config
	cfg.PriceFeedSource = getEnv("PRICE_FEED_SOURCE", priceSourceHTTP)
	if cfg.PriceFeedSource != priceSourceHTTP && cfg.PriceFeedSource != priceSourceGRPC {
		err = fmt.Errorf("PRICE_FEED_SOURCE: unknown source %q", cfg.PriceFeedSource)
		return
	}
	cfg.PriceFeedURL = getEnv("PRICE_FEED_URL", facades.DefaultPriceFeedURL)
	cfg.PriceAsset = getEnv("PRICE_ASSET", "avalanche-2")
	if cfg.PriceFeedInterval, err = getSeconds("PRICE_FEED_INTERVAL_SECOND", "300"); err != nil {
		return
	}

	cfg.ZakatAddress = getEnv("ZAKAT_ADDRESS", services.DefaultZakatAddress)

	// Kafka config
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "transactions")

	return
}

// routes are the HTTP handlers mounted by newRouter.
type routes struct {
	auth func(http.Handler) http.Handler

	register     http.HandlerFunc
	login        http.HandlerFunc
	logout       http.HandlerFunc
	user         http.HandlerFunc
	createWallet http.HandlerFunc
	listWallets  http.HandlerFunc
	transactions http.HandlerFunc
	send         http.HandlerFunc
	payZakat     http.HandlerFunc
	assessZakat  http.HandlerFunc
	price        http.HandlerFunc
	live         http.HandlerFunc
	swagger      http.HandlerFunc
}

// newRouter mounts public and authenticated routes.
func newRouter(h routes) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(middlewares.MetricsMiddleware)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/logout", h.logout)

		// Protected routes with JWT middleware
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/user", h.user)
			r.Post("/wallets", h.createWallet)
			r.Get("/wallets", h.listWallets)
			r.Get("/transactions", h.transactions)
			r.Post("/transactions/send", h.send)
			r.Post("/transactions/zakat", h.payZakat)
			r.Get("/zakat", h.assessZakat)
			r.Get("/price", h.price)
		})
	})

	r.With(h.auth).Get("/ws", h.live)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", h.swagger)

	return r
}

// run initializes the logger, database, Redis, price source, chain client and
// HTTP server, starts the pollers and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infow("logger initialized", "level", cfg.LogLevel)

	metrics.Init()

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infow("connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := repositories.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection error: %w", err)
	}
	defer rdb.Close()

	// Price source
	var priceSource services.PriceSource
	switch cfg.PriceFeedSource {
	case priceSourceGRPC:
		grpcAddr := fmt.Sprintf("%s:%s", cfg.GWHost, cfg.GWPort)
		conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return fmt.Errorf("failed to connect to gRPC service at %s: %w", grpcAddr, err)
		}
		defer conn.Close()
		priceSource = facades.NewExchangeRatesGRPCFacade(pb.NewExchangeServiceClient(conn))
	default:
		priceSource = facades.NewPriceHTTPFacade(cfg.PriceFeedURL, 10*time.Second)
	}

	// Chain client
	chainClient, err := chain.Dial(cfg.ChainRPCURL, 15*time.Second, chain.WithRateLimit(cfg.ChainRPCRateLimit))
	if err != nil {
		return err
	}

	// Kafka writer, optional
	var events services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		writer := &kafka.Writer{
			Addr:     kafka.TCP(cfg.KafkaBrokers...),
			Topic:    cfg.KafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer writer.Close()
		events = writer
	}

	// Initialize JWT service
	tokens := jwt.New(jwt.WithSecretKey(cfg.JWTSecretKey), jwt.WithExpiration(cfg.JWTExp))

	// Initialize repositories
	txManager := repositories.NewTxManager(db)
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	walletReadRepo := repositories.NewWalletReadRepository(db)
	walletWriteRepo := repositories.NewWalletWriteRepository(db, repositories.GetTxFromContext)
	txnReadRepo := repositories.NewTransactionReadRepository(db)
	txnWriteRepo := repositories.NewTransactionWriteRepository(db, repositories.GetTxFromContext)
	priceCache := repositories.NewPriceCacheRepository(rdb, cfg.RedisExp)

	// Initialize services
	hub := live.NewHub()
	defer hub.Close()

	priceTracker := services.NewPriceTracker(priceSource, priceCache, cfg.PriceAsset, cfg.PriceFeedInterval)
	dispatcher := services.NewDispatcher(chainClient, txManager, walletWriteRepo, txnWriteRepo, hub, events,
		services.WithConfirmations(cfg.ChainConfirmations),
		services.WithConfirmationTimeout(cfg.ConfirmationTimeout),
	)
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokens)
	walletService := services.NewWalletService(walletReadRepo, walletWriteRepo, walletWriteRepo,
		chain.KeyGenerator{}, chainClient, chain.LogFaucet{}, priceTracker)
	transferService := services.NewTransferService(userReadRepo, walletReadRepo, chainClient, dispatcher)
	zakatService := services.NewZakatService(walletReadRepo, chainClient, priceTracker, dispatcher, cfg.ZakatAddress)
	transactionService := services.NewTransactionService(txnReadRepo)
	balancePoller := services.NewBalancePoller(walletReadRepo, walletWriteRepo, chainClient, hub, cfg.BalancePollInterval)

	// Setup router
	docs.SwaggerInfo.Host = fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort)
	router := newRouter(routes{
		auth:         middlewares.AuthMiddleware(tokens),
		register:     handlers.NewRegisterHandler(authService),
		login:        handlers.NewLoginHandler(authService, cfg.JWTExp),
		logout:       handlers.NewLogoutHandler(),
		user:         handlers.NewGetUserHandler(authService),
		createWallet: handlers.NewCreateWalletHandler(walletService),
		listWallets:  handlers.NewListWalletsHandler(walletService),
		transactions: handlers.NewListTransactionsHandler(transactionService),
		send:         handlers.NewSendHandler(transferService),
		payZakat:     handlers.NewPayZakatHandler(zakatService),
		assessZakat:  handlers.NewAssessZakatHandler(zakatService),
		price:        handlers.NewGetPriceHandler(priceTracker),
		live:         live.NewServeWSHandler(hub),
		swagger: httpSwagger.Handler(
			httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
		),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: router,
	}

	// Graceful shutdown
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	g, gctx := errgroup.WithContext(ctxShutdown)

	g.Go(func() error {
		logger.Log.Infow("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return priceTracker.Run(gctx)
	})
	g.Go(func() error {
		return balancePoller.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("shutdown signal received, stopping HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		hub.Close()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorw("HTTP server shutdown error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
