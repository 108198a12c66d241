package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Pricing.TaxRate != 0.0825 {
		t.Errorf("tax rate = %v, want 0.0825", cfg.Pricing.TaxRate)
	}
	if cfg.Pricing.LoyaltyThreshold != 50 || cfg.Pricing.LoyaltyRedeemCost != 50 {
		t.Errorf("loyalty rule = %+v", cfg.Pricing)
	}
	if cfg.Catalog.CupSmallID != 23 || cfg.Catalog.CupMediumID != 24 || cfg.Catalog.CupLargeID != 22 {
		t.Errorf("cup ids = %+v", cfg.Catalog)
	}
	if cfg.Catalog.ScaleIngredientName != "Ice" {
		t.Errorf("scale ingredient = %q, want Ice", cfg.Catalog.ScaleIngredientName)
	}
	if cfg.Reports.LowStockThreshold != 50 || cfg.Reports.CardFeeRate != 0.02 {
		t.Errorf("reports = %+v", cfg.Reports)
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error without a JWT secret")
	}
}

func TestLoadAppliesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte("server:\n  port: \"9090\"\npricing:\n  tax_rate: 0.10\nauth:\n  jwt_secret: file-secret\n")
	if err := os.WriteFile(path, yaml, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("TAX_RATE", "0.0825")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090 from file", cfg.Server.Port)
	}
	if cfg.Pricing.TaxRate != 0.0825 {
		t.Errorf("tax rate = %v, want env override 0.0825", cfg.Pricing.TaxRate)
	}
	if cfg.Auth.JWTSecret != "file-secret" {
		t.Errorf("jwt secret = %q, want file value", cfg.Auth.JWTSecret)
	}
	if cfg.Database.Host == "" {
		t.Error("defaults lost after file merge")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
