package config

import (
	"errors"
	"testing"
	"time"
)

func fakeEnv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadEnvDefaults(t *testing.T) {
	env, err := loadEnv(fakeEnv(map[string]string{
		"JWT_SECRET":   "s3cret",
		"STORE_DRIVER": "memory",
	}))
	if err != nil {
		t.Fatalf("loadEnv: %v", err)
	}
	if env.AppAddr != ":8080" {
		t.Errorf("AppAddr = %q", env.AppAddr)
	}
	if env.TokenTTL != time.Hour || env.QueryTimeout != 5*time.Second {
		t.Errorf("durations = %s, %s", env.TokenTTL, env.QueryTimeout)
	}
	if env.PageLimitDefault != 10 || env.PageLimitMax != 100 {
		t.Errorf("page limits = %d/%d", env.PageLimitDefault, env.PageLimitMax)
	}
	if env.AuthHeader != "Authorization" {
		t.Errorf("AuthHeader = %q", env.AuthHeader)
	}
	if len(env.CORSOrigins) != 4 {
		t.Errorf("CORSOrigins = %v", env.CORSOrigins)
	}
	if string(env.JWTSecret) != "s3cret" {
		t.Errorf("JWTSecret = %q", env.JWTSecret)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	env, err := loadEnv(fakeEnv(map[string]string{
		"JWT_SECRET":           "s3cret",
		"PORT":                 "9000",
		"TOKEN_TTL":            "15m",
		"PAGE_LIMIT_DEFAULT":   "200",
		"PAGE_LIMIT_MAX":       "50",
		"DATABASE_DSN":         "user:pw@tcp(localhost:3306)/todos",
		"AUTH_HEADER":          "X-Auth-Token",
		"CORS_ALLOWED_ORIGINS": " https://a.example , ,https://b.example",
	}))
	if err != nil {
		t.Fatalf("loadEnv: %v", err)
	}
	if env.AppAddr != ":9000" {
		t.Errorf("AppAddr = %q", env.AppAddr)
	}
	if env.TokenTTL != 15*time.Minute {
		t.Errorf("TokenTTL = %s", env.TokenTTL)
	}
	if env.PageLimitDefault != 50 || env.PageLimitMax != 50 {
		t.Errorf("default limit should be capped: %d/%d", env.PageLimitDefault, env.PageLimitMax)
	}
	if env.StoreDriver != StoreMySQL || env.AuthHeader != "X-Auth-Token" {
		t.Errorf("driver/header = %q/%q", env.StoreDriver, env.AuthHeader)
	}
	if len(env.CORSOrigins) != 2 || env.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", env.CORSOrigins)
	}
}

func TestLoadEnvErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"missing dsn":    {"JWT_SECRET": "x"},
		"unknown driver": {"JWT_SECRET": "x", "STORE_DRIVER": "postgres"},
		"bad ttl":        {"JWT_SECRET": "x", "STORE_DRIVER": "memory", "TOKEN_TTL": "soon"},
		"negative ttl":   {"JWT_SECRET": "x", "STORE_DRIVER": "memory", "TOKEN_TTL": "-1m"},
		"zero limit":     {"JWT_SECRET": "x", "STORE_DRIVER": "memory", "PAGE_LIMIT_MAX": "0"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := loadEnv(fakeEnv(vars)); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	_, err := loadEnv(fakeEnv(map[string]string{"STORE_DRIVER": "memory"}))
	if !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("err = %v, want ErrMissingSecret", err)
	}
}
