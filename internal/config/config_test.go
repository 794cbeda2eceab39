package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("unmarshal defaults failed: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("server port want 8080 got %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("database driver want sqlite got %s", cfg.Database.Driver)
	}
	if cfg.Cart.Store != "sql" || cfg.Cart.GuestTTLHours != 720 {
		t.Fatalf("unexpected cart defaults: %+v", cfg.Cart)
	}
	if cfg.Pricing.TaxRate != "0.15" || cfg.Pricing.FreeShippingThreshold != "200" || cfg.Pricing.FlatShipping != "50" {
		t.Fatalf("unexpected pricing defaults: %+v", cfg.Pricing)
	}
	if cfg.Queue.Queues["critical"] != 5 {
		t.Fatalf("critical queue weight want 5 got %d", cfg.Queue.Queues["critical"])
	}
	found := false
	for _, header := range cfg.CORS.AllowedHeaders {
		if header == "X-Guest-Token" {
			found = true
		}
	}
	if !found {
		t.Fatalf("cors headers should allow X-Guest-Token: %v", cfg.CORS.AllowedHeaders)
	}
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("PRICING_TAX_RATE", "0.2")
	t.Setenv("CART_STORE", "mongo")

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if cfg.Pricing.TaxRate != "0.2" {
		t.Fatalf("tax rate want 0.2 got %s", cfg.Pricing.TaxRate)
	}
	if cfg.Cart.Store != "mongo" {
		t.Fatalf("cart store want mongo got %s", cfg.Cart.Store)
	}
}
