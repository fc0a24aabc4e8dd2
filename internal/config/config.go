package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	SignServiceURL    string
	StorefrontURL     string
	CheckoutURL       string
	OrderReceivedURL  string
	OrderKeySecret    string
	TestNetwork       string
	AmountDecimals    int
	VerifyTimeout     time.Duration
	ReconcileInterval time.Duration
	ReconcileBatch    int
	WorkerPoolSize    int
	ShutdownTimeout   time.Duration
	LogVerbose        bool
}

const (
	defaultRunAddress        = ":8080"
	defaultSignServiceURL    = "https://sign.wooreq.com/checktxid"
	defaultOrderKeySecret    = "change-me-in-production"
	defaultTestNetwork       = "rinkeby"
	defaultAmountDecimals    = 18
	defaultVerifyTimeout     = 15 * time.Second
	defaultReconcileInterval = time.Minute
	defaultReconcileBatch    = 32
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		SignServiceURL:    getString(lookup, "SIGN_SERVICE_URL", defaultSignServiceURL),
		StorefrontURL:     getString(lookup, "STOREFRONT_URL", ""),
		CheckoutURL:       getString(lookup, "CHECKOUT_URL", ""),
		OrderReceivedURL:  getString(lookup, "ORDER_RECEIVED_URL", ""),
		OrderKeySecret:    getString(lookup, "ORDER_KEY_SECRET", defaultOrderKeySecret),
		TestNetwork:       getString(lookup, "TEST_NETWORK", defaultTestNetwork),
		AmountDecimals:    getInt(lookup, "AMOUNT_DECIMALS", defaultAmountDecimals),
		VerifyTimeout:     getDuration(lookup, "VERIFY_TIMEOUT", defaultVerifyTimeout),
		ReconcileInterval: getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		ReconcileBatch:    getInt(lookup, "RECONCILE_BATCH", defaultReconcileBatch),
		WorkerPoolSize:    getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogVerbose:        getBool(lookup, "LOG_VERBOSE", false),
	}

	fs := flag.NewFlagSet("reqpay", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		verifyTimeoutStr     = cfg.VerifyTimeout.String()
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.SignServiceURL, "s", cfg.SignServiceURL, "Transaction verification endpoint")
	fs.StringVar(&cfg.StorefrontURL, "storefront-url", cfg.StorefrontURL, "Storefront webhook base URL (optional)")
	fs.StringVar(&cfg.CheckoutURL, "checkout-url", cfg.CheckoutURL, "Buyer-facing checkout URL")
	fs.StringVar(&cfg.OrderReceivedURL, "order-received-url", cfg.OrderReceivedURL, "Buyer-facing order received URL")
	fs.StringVar(&cfg.OrderKeySecret, "order-key-secret", cfg.OrderKeySecret, "Secret for signing order keys")
	fs.StringVar(&cfg.TestNetwork, "test-network", cfg.TestNetwork, "Network identifier that bypasses verification")
	fs.IntVar(&cfg.AmountDecimals, "amount-decimals", cfg.AmountDecimals, "Smallest-unit decimals for amount normalization")
	fs.StringVar(&verifyTimeoutStr, "verify-timeout", verifyTimeoutStr, "Timeout for verification requests")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between reconciliation polls")
	fs.IntVar(&cfg.ReconcileBatch, "reconcile-batch", cfg.ReconcileBatch, "Maximum orders per reconciliation batch")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconciliation workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.BoolVar(&cfg.LogVerbose, "verbose", cfg.LogVerbose, "Enable verbose diagnostic logging")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.VerifyTimeout, err = time.ParseDuration(verifyTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid verify timeout: %w", err)
	}

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("ORDER_KEY_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read order key secret file: %w", err)
		}
		cfg.OrderKeySecret = string(content)
	}

	if cfg.AmountDecimals <= 0 {
		cfg.AmountDecimals = defaultAmountDecimals
	}

	if cfg.VerifyTimeout <= 0 {
		cfg.VerifyTimeout = defaultVerifyTimeout
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.ReconcileBatch <= 0 {
		cfg.ReconcileBatch = defaultReconcileBatch
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.SignServiceURL == "" {
		return nil, fmt.Errorf("verification endpoint must be provided")
	}

	if cfg.CheckoutURL == "" {
		return nil, fmt.Errorf("checkout URL must be provided")
	}

	if cfg.OrderReceivedURL == "" {
		cfg.OrderReceivedURL = cfg.CheckoutURL
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
