package config

import (
	"net/netip"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DATASET_SOURCE", "")
	t.Setenv("SCATTER_PAYLOAD_FILTER", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr() != "127.0.0.1:8050" {
		t.Fatalf("unexpected default addr: %s", cfg.Server.Addr())
	}
	if cfg.Dataset.Source != DatasetSourceCSV {
		t.Fatalf("expected csv source, got %s", cfg.Dataset.Source)
	}
	if cfg.Dataset.Path != "spacex_launch_dash.csv" {
		t.Fatalf("unexpected dataset path: %s", cfg.Dataset.Path)
	}
	if cfg.Dashboard.ScatterFilterMode != "legacy" {
		t.Fatalf("expected legacy scatter filter by default, got %s", cfg.Dashboard.ScatterFilterMode)
	}
	if len(cfg.Security.AllowedOrigins) != 2 || cfg.Security.AllowedOrigins[0] != "http://localhost:8050" {
		t.Fatalf("unexpected allowed origins: %v", cfg.Security.AllowedOrigins)
	}
	if len(cfg.Security.TrustedProxies) != 0 {
		t.Fatalf("expected no trusted proxies by default, got %v", cfg.Security.TrustedProxies)
	}
}

func TestLoadTrustedProxies(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1,::1, 192.168.1.7/16")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("127.0.0.1/32"),
		netip.MustParsePrefix("::1/128"),
		netip.MustParsePrefix("192.168.0.0/16"),
	}
	if len(cfg.Security.TrustedProxies) != len(want) {
		t.Fatalf("unexpected trusted proxies: %v", cfg.Security.TrustedProxies)
	}
	for i := range want {
		if cfg.Security.TrustedProxies[i] != want[i] {
			t.Fatalf("proxy %d: want %s, got %s", i, want[i], cfg.Security.TrustedProxies[i])
		}
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"unknown source", "DATASET_SOURCE", "ftp", "unsupported DATASET_SOURCE"},
		{"s3 without bucket", "DATASET_SOURCE", "s3", "DATASET_S3_BUCKET is required"},
		{"bad scatter mode", "SCATTER_PAYLOAD_FILTER", "loose", "invalid SCATTER_PAYLOAD_FILTER"},
		{"bad rps", "RATE_LIMIT_RPS", "fast", "invalid RATE_LIMIT_RPS"},
		{"bad trusted proxy", "TRUSTED_PROXIES", "10.0.0.0/33", "invalid TRUSTED_PROXIES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATASET_S3_BUCKET", "")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" http://a:1 , ,http://b:2,")
	if len(got) != 2 || got[0] != "http://a:1" || got[1] != "http://b:2" {
		t.Fatalf("unexpected split result: %v", got)
	}
}
