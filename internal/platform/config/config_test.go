package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), WithEnvMap(nil), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.TemplatesDir != "templates" || cfg.Server.PublicDir != "public" {
		t.Errorf("unexpected dirs: %q %q", cfg.Server.TemplatesDir, cfg.Server.PublicDir)
	}
	if cfg.Site.Name != "Phương Cosmectics" {
		t.Errorf("unexpected site name %q", cfg.Site.Name)
	}
	if cfg.Site.DefaultLocale != "vi" {
		t.Errorf("expected vi default locale, got %s", cfg.Site.DefaultLocale)
	}
	if cfg.Site.Production() || cfg.Session.Secure {
		t.Errorf("local environment must not be production or secure")
	}
	if cfg.Cart.PubSubTopic != "" {
		t.Errorf("expected in-memory cart by default, got topic %q", cfg.Cart.PubSubTopic)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected info log level, got %s", cfg.Log.Level)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"PORT":                           "9000",
		"STOREFRONT_PORT":                "9090",
		"STOREFRONT_READ_TIMEOUT":        "20s",
		"STOREFRONT_BASE_URL":            "https://phuongcosmetics.vn/",
		"STOREFRONT_ENV":                 "PROD",
		"STOREFRONT_SESSION_SIGNING_KEY": "s3cret",
		"STOREFRONT_CART_PUBSUB_PROJECT": "phuong-prod",
		"STOREFRONT_CART_PUBSUB_TOPIC":   "cart-events",
		"STOREFRONT_DEV":                 "yes",
		"STOREFRONT_GA_MEASUREMENT_ID":   "G-TEST",
		"LOG_LEVEL":                      "debug",
	}

	cfg, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("prefixed port should win, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 20*time.Second {
		t.Errorf("unexpected read timeout %s", cfg.Server.ReadTimeout)
	}
	if cfg.Site.BaseURL != "https://phuongcosmetics.vn" {
		t.Errorf("base url should be trimmed, got %s", cfg.Site.BaseURL)
	}
	if !cfg.Site.Production() || !cfg.Session.Secure {
		t.Errorf("prod environment should enable secure cookies")
	}
	if !cfg.Server.DevMode {
		t.Errorf("expected dev mode")
	}
	if cfg.Cart.PubSubTopic != "cart-events" || cfg.Cart.PubSubProjectID != "phuong-prod" {
		t.Errorf("unexpected cart config %+v", cfg.Cart)
	}
	if cfg.Log.ProjectID != "phuong-prod" {
		t.Errorf("log project should default to the cart project, got %q", cfg.Log.ProjectID)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("unexpected log level %s", cfg.Log.Level)
	}
	if cfg.Analytics.GA4MeasurementID != "G-TEST" {
		t.Errorf("unexpected analytics %+v", cfg.Analytics)
	}
}

func TestLoadReadsDotEnvWithLowerPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# local overrides\nSTOREFRONT_SITE_NAME=\"Phương Dev\"\nexport STOREFRONT_PORT=7070\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}

	cfg, err := Load(context.Background(),
		WithEnvFile(path),
		WithoutSystemEnv(),
		WithEnvMap(map[string]string{"STOREFRONT_PORT": "9191"}),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Site.Name != "Phương Dev" {
		t.Errorf("expected dotenv site name, got %q", cfg.Site.Name)
	}
	if cfg.Server.Port != "9191" {
		t.Errorf("explicit map should override dotenv, got %s", cfg.Server.Port)
	}
}

func TestLoadIgnoresMissingDotEnv(t *testing.T) {
	_, err := Load(context.Background(), WithEnvFile(filepath.Join(t.TempDir(), "missing.env")), WithoutSystemEnv())
	if err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	env := map[string]string{
		"STOREFRONT_PORT":              "http",
		"STOREFRONT_BASE_URL":          "not a url",
		"STOREFRONT_ENV":               "prod",
		"STOREFRONT_CART_PUBSUB_TOPIC": "cart-events",
	}
	_, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err == nil {
		t.Fatal("expected validation error")
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	want := map[string]bool{
		"Server.Port":          true,
		"Site.BaseURL":         true,
		"Session.SigningKey":   true,
		"Cart.PubSubProjectID": true,
	}
	fields := vErr.Fields()
	if len(fields) != len(want) {
		t.Fatalf("unexpected fields %v", fields)
	}
	for _, f := range fields {
		if !want[f] {
			t.Errorf("unexpected invalid field %s", f)
		}
	}
}
