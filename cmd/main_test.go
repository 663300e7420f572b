package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

// resetEnv clears env vars used by parseConfig
func resetEnv() {
	os.Clearenv()
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	configPath := parseFlags()
	expected := "config.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	configPath := parseFlags()
	expected := "myconfig.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestPrintBuildInfo_Output(t *testing.T) {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2025-09-26"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	output := buf.String()
	os.Stdout = oldStdout

	if !contains(output, "Version: v1.0.0") ||
		!contains(output, "Commit: abcd1234") ||
		!contains(output, "Build: 2025-09-26") {
		t.Errorf("printBuildInfo output unexpected:\n%s", output)
	}
}

// Helper function to check substring
func contains(s, substr string) bool {
	return bytes.Contains([]byte(s), []byte(substr))
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv()

	cfg, err := parseConfig("nonexistent.env")
	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	// Application
	if cfg.AppHost != "localhost" || cfg.AppPort != "8080" || cfg.LogLevel != "info" {
		t.Errorf("unexpected app config: %v/%v/%v", cfg.AppHost, cfg.AppPort, cfg.LogLevel)
	}

	// PostgreSQL
	if cfg.PGHost != "localhost" || cfg.PGPort != 5432 || cfg.PGUser != "user" || cfg.PGPassword != "password" ||
		cfg.PGDB != "database" || cfg.PGMaxOpenConns != 16 || cfg.PGMaxIdleConns != 8 {
		t.Errorf("unexpected postgres config")
	}

	// Redis
	if cfg.RedisHost != "localhost" || cfg.RedisPort != 6379 || cfg.RedisDB != 0 || cfg.RedisPassword != "" ||
		cfg.RedisPoolSize != 10 || cfg.RedisMinIdleConns != 2 || cfg.RedisExp != 10*time.Minute {
		t.Errorf("unexpected redis config")
	}

	// gRPC
	if cfg.GWHost != "localhost" || cfg.GWPort != "50051" {
		t.Errorf("unexpected grpc config")
	}

	// JWT
	if cfg.JWTSecretKey != "my_super_secret_key" || cfg.JWTExp != 24*time.Hour {
		t.Errorf("unexpected jwt config")
	}

	// Chain and pollers
	if cfg.ChainConfirmations != 2 || cfg.ConfirmationTimeout != 30*time.Second ||
		cfg.BalancePollInterval != 30*time.Second || cfg.PriceFeedInterval != 5*time.Minute {
		t.Errorf("unexpected chain config: %+v", cfg)
	}
	if cfg.PriceFeedSource != priceSourceHTTP || cfg.ZakatAddress != "0x1234567890123456789012345678901234567890" {
		t.Errorf("unexpected price or zakat config")
	}
	if cfg.KafkaBrokers != nil {
		t.Errorf("expected no kafka brokers, got %v", cfg.KafkaBrokers)
	}
}

func TestParseConfig_CustomEnv(t *testing.T) {
	resetEnv()
	os.Setenv("APP_HOST", "127.0.0.1")
	os.Setenv("APP_PORT", "9090")
	os.Setenv("APP_LOG_LEVEL", "debug")

	os.Setenv("POSTGRES_HOST", "pg.example.com")
	os.Setenv("POSTGRES_PORT", "5433")
	os.Setenv("POSTGRES_USER", "admin")
	os.Setenv("POSTGRES_PASSWORD", "secret")
	os.Setenv("POSTGRES_DB", "mydb")
	os.Setenv("POSTGRES_MAX_OPEN_CONNS", "20")
	os.Setenv("POSTGRES_MAX_IDLE_CONNS", "10")

	os.Setenv("REDIS_HOST", "redis.example.com")
	os.Setenv("REDIS_PORT", "6380")
	os.Setenv("REDIS_DB", "2")
	os.Setenv("REDIS_PASSWORD", "redispass")
	os.Setenv("REDIS_POOL_SIZE", "15")
	os.Setenv("REDIS_MIN_IDLE_CONNS", "5")
	os.Setenv("REDIS_EXP_SECOND", "120")

	os.Setenv("GW_EXCHANGER_HOST", "grpc.example.com")
	os.Setenv("GW_EXCHANGER_PORT", "50052")

	os.Setenv("JWT_SECRET_KEY", "supersecret")
	os.Setenv("JWT_EXP_SECOND", "300")

	os.Setenv("CHAIN_RPC_URL", "http://node:8545")
	os.Setenv("CHAIN_RPC_RATE_LIMIT", "2.5")
	os.Setenv("CHAIN_CONFIRMATIONS", "3")
	os.Setenv("CHAIN_CONFIRMATION_TIMEOUT_SECOND", "45")
	os.Setenv("BALANCE_POLL_INTERVAL_SECOND", "10")
	os.Setenv("PRICE_FEED_SOURCE", "grpc")
	os.Setenv("PRICE_FEED_INTERVAL_SECOND", "60")
	os.Setenv("PRICE_ASSET", "ethereum")
	os.Setenv("ZAKAT_ADDRESS", "0x00000000000000000000000000000000000000aa")
	os.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	os.Setenv("KAFKA_TOPIC", "wallet-events")

	cfg, err := parseConfig("nonexistent.env")
	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	if cfg.AppHost != "127.0.0.1" || cfg.AppPort != "9090" || cfg.LogLevel != "debug" {
		t.Errorf("unexpected app config")
	}
	if cfg.PGHost != "pg.example.com" || cfg.PGPort != 5433 || cfg.PGUser != "admin" || cfg.PGPassword != "secret" ||
		cfg.PGDB != "mydb" || cfg.PGMaxOpenConns != 20 || cfg.PGMaxIdleConns != 10 {
		t.Errorf("unexpected postgres config")
	}
	if cfg.RedisHost != "redis.example.com" || cfg.RedisPort != 6380 || cfg.RedisDB != 2 || cfg.RedisPassword != "redispass" ||
		cfg.RedisPoolSize != 15 || cfg.RedisMinIdleConns != 5 || cfg.RedisExp != 120*time.Second {
		t.Errorf("unexpected redis config")
	}
	if cfg.GWHost != "grpc.example.com" || cfg.GWPort != "50052" {
		t.Errorf("unexpected grpc config")
	}
	if cfg.JWTSecretKey != "supersecret" || cfg.JWTExp != 300*time.Second {
		t.Errorf("unexpected jwt config")
	}
	if cfg.ChainRPCURL != "http://node:8545" || cfg.ChainRPCRateLimit != 2.5 || cfg.ChainConfirmations != 3 ||
		cfg.ConfirmationTimeout != 45*time.Second || cfg.BalancePollInterval != 10*time.Second {
		t.Errorf("unexpected chain config")
	}
	if cfg.PriceFeedSource != priceSourceGRPC || cfg.PriceFeedInterval != time.Minute || cfg.PriceAsset != "ethereum" {
		t.Errorf("unexpected price config")
	}
	if cfg.ZakatAddress != "0x00000000000000000000000000000000000000aa" {
		t.Errorf("unexpected zakat address")
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" || cfg.KafkaTopic != "wallet-events" {
		t.Errorf("unexpected kafka config: %v %s", cfg.KafkaBrokers, cfg.KafkaTopic)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"POSTGRES_PORT":                     "abc",
		"CHAIN_CONFIRMATIONS":               "-1",
		"CHAIN_CONFIRMATION_TIMEOUT_SECOND": "soon",
		"PRICE_FEED_SOURCE":                 "carrier-pigeon",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			resetEnv()
			os.Setenv(key, value)

			if _, err := parseConfig("nonexistent.env"); err == nil {
				t.Errorf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestNewRouter(t *testing.T) {
	named := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(name))
		}
	}
	denyAll := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}

	router := newRouter(routes{
		auth:         denyAll,
		register:     named("register"),
		login:        named("login"),
		logout:       named("logout"),
		user:         named("user"),
		createWallet: named("createWallet"),
		listWallets:  named("listWallets"),
		transactions: named("transactions"),
		send:         named("send"),
		payZakat:     named("payZakat"),
		assessZakat:  named("assessZakat"),
		price:        named("price"),
		live:         named("live"),
		swagger:      named("swagger"),
	})

	public := []struct{ method, path, body string }{
		{http.MethodPost, "/api/register", "register"},
		{http.MethodPost, "/api/login", "login"},
		{http.MethodPost, "/api/logout", "logout"},
		{http.MethodGet, "/swagger/index.html", "swagger"},
	}
	for _, tt := range public {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, tt.path)
		assert.Equal(t, tt.body, rr.Body.String(), tt.path)
	}

	protected := []struct{ method, path string }{
		{http.MethodGet, "/api/user"},
		{http.MethodPost, "/api/wallets"},
		{http.MethodGet, "/api/wallets"},
		{http.MethodGet, "/api/transactions"},
		{http.MethodPost, "/api/transactions/send"},
		{http.MethodPost, "/api/transactions/zakat"},
		{http.MethodGet, "/api/zakat"},
		{http.MethodGet, "/api/price"},
		{http.MethodGet, "/ws"},
	}
	for _, tt := range protected {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, tt.path)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

// ------------------ Full integration test ------------------
func TestRun_Success(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	// ------------------ Postgres container ------------------
	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "user"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: pgReq, Started: true})
	require.NoError(t, err)
	defer pgContainer.Terminate(ctx)

	pgHost, _ := pgContainer.Host(ctx)
	pgPort, _ := pgContainer.MappedPort(ctx, "5432")

	// ------------------ Redis container ------------------
	redisReq := testcontainers.ContainerRequest{
		Image:        "redis:7",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: redisReq, Started: true})
	require.NoError(t, err)
	defer redisContainer.Terminate(ctx)

	redisHost, _ := redisContainer.Host(ctx)
	redisPort, _ := redisContainer.MappedPort(ctx, "6379")

	// ------------------ Fake price feed and node ------------------
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"avalanche-2":{"usd":31.5}}`))
	}))
	defer feed.Close()

	node := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer node.Close()

	cfg, err := parseConfig("nonexistent.env")
	require.NoError(t, err)

	cfg.AppHost, cfg.AppPort = "127.0.0.1", "8086"
	cfg.LogLevel = "debug"
	cfg.PGHost, cfg.PGPort, cfg.PGUser, cfg.PGPassword, cfg.PGDB = pgHost, pgPort.Int(), "user", "password", "testdb"
	cfg.RedisHost, cfg.RedisPort = redisHost, redisPort.Int()
	cfg.PriceFeedURL = feed.URL
	cfg.ChainRPCURL = node.URL
	cfg.JWTSecretKey = "testsecret"

	// ------------------ Run ------------------
	testCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(testCtx, cfg)
	}()

	base := fmt.Sprintf("http://%s:%s/api", cfg.AppHost, cfg.AppPort)
	post := func(path string, body any) *http.Response {
		b, _ := json.Marshal(body)
		resp, err := http.Post(base+path, "application/json", bytes.NewReader(b))
		require.NoError(t, err)
		return resp
	}

	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://%s:%s/metrics", cfg.AppHost, cfg.AppPort))
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 10*time.Second, 100*time.Millisecond)

	resp := post("/register", map[string]string{
		"username": "john_doe", "password": "secret123", "email": "john@example.com",
		"phone": "+60123456789", "fullName": "John Doe", "country": "Malaysia",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = post("/login", map[string]string{"username": "john_doe", "password": "secret123"})
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	resp.Body.Close()
	require.NotEmpty(t, login.Token)

	req, _ := http.NewRequest(http.MethodGet, base+"/price", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	var quote map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&quote))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "31.5", quote["price"])

	cancel()
	select {
	case <-time.After(15 * time.Second):
		t.Fatal("run did not stop")
	case err := <-errCh:
		require.NoError(t, err)
	}
}
