package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultResetOtpAlphabet        = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	DefaultVerificationOtpAlphabet = "0123456789"
)

type OtpConfig struct {
	Length          int    `yaml:"length"`
	Alphabet        string `yaml:"alphabet"`
	CooldownMinutes int    `yaml:"cooldown_minutes"`
	ValidityMinutes int    `yaml:"validity_minutes"`
}

func (c OtpConfig) Cooldown() time.Duration {
	return time.Duration(c.CooldownMinutes) * time.Minute
}

func (c OtpConfig) Validity() time.Duration {
	return time.Duration(c.ValidityMinutes) * time.Minute
}

type JWTConfig struct {
	SecretKey           string `yaml:"secret_key"`
	AccessTokenMinutes  int    `yaml:"access_token_minutes"`
	RefreshTokenMinutes int    `yaml:"refresh_token_minutes"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"` // empty disables the rate limiter
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	JWT             JWTConfig   `yaml:"jwt"`
	ResetPassword   OtpConfig   `yaml:"reset_password"`
	Verification    OtpConfig   `yaml:"verification"`
	Redis           RedisConfig `yaml:"redis"`
	RateLimitPerMin int         `yaml:"rate_limit_per_minute"`
}

func LoadConfig() *Config {
	return LoadConfigFile("config/config.yaml")
}

func LoadConfigFile(path string) *Config {
	f, err := os.Open(path)
	if err != nil {
		panic("Failed to open " + path + ": " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse " + path + ": " + err.Error())
	}

	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.JWT.AccessTokenMinutes == 0 {
		c.JWT.AccessTokenMinutes = 15
	}
	if c.JWT.RefreshTokenMinutes == 0 {
		c.JWT.RefreshTokenMinutes = 30 * 24 * 60
	}
	if c.ResetPassword.Length == 0 {
		c.ResetPassword.Length = 8
	}
	if c.ResetPassword.Alphabet == "" {
		c.ResetPassword.Alphabet = DefaultResetOtpAlphabet
	}
	if c.ResetPassword.CooldownMinutes == 0 {
		c.ResetPassword.CooldownMinutes = 2
	}
	if c.ResetPassword.ValidityMinutes == 0 {
		c.ResetPassword.ValidityMinutes = 15
	}
	if c.Verification.Length == 0 {
		c.Verification.Length = 6
	}
	if c.Verification.Alphabet == "" {
		c.Verification.Alphabet = DefaultVerificationOtpAlphabet
	}
	if c.Verification.CooldownMinutes == 0 {
		c.Verification.CooldownMinutes = 2
	}
	if c.Verification.ValidityMinutes == 0 {
		c.Verification.ValidityMinutes = 15
	}
	if c.RateLimitPerMin == 0 {
		c.RateLimitPerMin = 10
	}
}
