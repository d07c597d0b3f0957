package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreMySQL  = "mysql"
	StoreMemory = "memory"
)

// Env is read once at startup and passed by value; nothing reads os.Getenv after LoadEnv.
type Env struct {
	AppAddr          string
	GinMode          string
	JWTSecret        []byte
	TokenTTL         time.Duration
	AuthHeader       string
	StoreDriver      string
	DatabaseDSN      string
	QueryTimeout     time.Duration
	PageLimitDefault int
	PageLimitMax     int
	CORSOrigins      []string
}

var ErrMissingSecret = errors.New("JWT_SECRET is required")

func LoadEnv() (Env, error) {
	return loadEnv(os.Getenv)
}

func loadEnv(getenv func(string) string) (Env, error) {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	appAddr := get("APP_ADDR")
	if appAddr == "" {
		if port := get("PORT"); port != "" {
			appAddr = ":" + port
		} else {
			appAddr = ":8080"
		}
	}

	secret := get("JWT_SECRET")
	if secret == "" {
		return Env{}, ErrMissingSecret
	}

	ttl, err := durationOr(get("TOKEN_TTL"), time.Hour)
	if err != nil {
		return Env{}, fmt.Errorf("TOKEN_TTL: %w", err)
	}
	queryTimeout, err := durationOr(get("DB_QUERY_TIMEOUT"), 5*time.Second)
	if err != nil {
		return Env{}, fmt.Errorf("DB_QUERY_TIMEOUT: %w", err)
	}

	limitDefault, err := intOr(get("PAGE_LIMIT_DEFAULT"), 10)
	if err != nil {
		return Env{}, fmt.Errorf("PAGE_LIMIT_DEFAULT: %w", err)
	}
	limitMax, err := intOr(get("PAGE_LIMIT_MAX"), 100)
	if err != nil {
		return Env{}, fmt.Errorf("PAGE_LIMIT_MAX: %w", err)
	}
	if limitDefault > limitMax {
		limitDefault = limitMax
	}

	driver := strings.ToLower(get("STORE_DRIVER"))
	if driver == "" {
		driver = StoreMySQL
	}
	dsn := get("DATABASE_DSN")
	switch driver {
	case StoreMySQL:
		if dsn == "" {
			return Env{}, errors.New("DATABASE_DSN is required when STORE_DRIVER=mysql")
		}
	case StoreMemory:
	default:
		return Env{}, fmt.Errorf("unknown STORE_DRIVER %q", driver)
	}

	authHeader := get("AUTH_HEADER")
	if authHeader == "" {
		authHeader = "Authorization"
	}

	origins := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
		"http://localhost:5173",
		"http://127.0.0.1:5173",
	}
	if raw := get("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins = origins[:0:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Env{
		AppAddr:          appAddr,
		GinMode:          get("GIN_MODE"),
		JWTSecret:        []byte(secret),
		TokenTTL:         ttl,
		AuthHeader:       authHeader,
		StoreDriver:      driver,
		DatabaseDSN:      dsn,
		QueryTimeout:     queryTimeout,
		PageLimitDefault: limitDefault,
		PageLimitMax:     limitMax,
		CORSOrigins:      origins,
	}, nil
}

func durationOr(raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", raw)
	}
	return d, nil
}

func intOr(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("must be at least 1, got %d", n)
	}
	return n, nil
}
