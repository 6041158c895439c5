package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testYAML = `
server:
  port: 9090
database:
  url: "postgres://test"
email:
  smtp_host: "smtp.test"
  smtp_port: 2525
  smtp_user: "u"
  smtp_password: "p"
  from_email: "no-reply@test"
jwt:
  secret_key: "k"
  access_token_minutes: 5
reset_password:
  cooldown_minutes: 1
verification:
  length: 4
redis:
  addr: "localhost:6379"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	cfg := LoadConfigFile(writeConfig(t, testYAML))

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Database.DSN != "postgres://test" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
	if cfg.JWT.AccessTokenMinutes != 5 {
		t.Errorf("access minutes = %d", cfg.JWT.AccessTokenMinutes)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("redis addr = %q", cfg.Redis.Addr)
	}

	// explicit values survive, the rest is defaulted
	if cfg.ResetPassword.CooldownMinutes != 1 {
		t.Errorf("reset cooldown = %d", cfg.ResetPassword.CooldownMinutes)
	}
	if cfg.ResetPassword.Length != 8 || cfg.ResetPassword.ValidityMinutes != 15 {
		t.Errorf("reset defaults not applied: %+v", cfg.ResetPassword)
	}
	if cfg.ResetPassword.Alphabet != DefaultResetOtpAlphabet {
		t.Errorf("reset alphabet = %q", cfg.ResetPassword.Alphabet)
	}
	if cfg.Verification.Length != 4 {
		t.Errorf("verification length = %d", cfg.Verification.Length)
	}
	if cfg.Verification.Alphabet != DefaultVerificationOtpAlphabet {
		t.Errorf("verification alphabet = %q", cfg.Verification.Alphabet)
	}
	if cfg.JWT.RefreshTokenMinutes != 30*24*60 {
		t.Errorf("refresh minutes default = %d", cfg.JWT.RefreshTokenMinutes)
	}
	if cfg.RateLimitPerMin != 10 {
		t.Errorf("rate limit default = %d", cfg.RateLimitPerMin)
	}
}

func TestOtpConfigDurations(t *testing.T) {
	cfg := OtpConfig{CooldownMinutes: 2, ValidityMinutes: 15}
	if cfg.Cooldown() != 2*time.Minute {
		t.Errorf("cooldown = %v", cfg.Cooldown())
	}
	if cfg.Validity() != 15*time.Minute {
		t.Errorf("validity = %v", cfg.Validity())
	}
}

func TestLoadConfigFilePanicsOnMissingFile(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for missing file")
		}
	}()
	LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
}
