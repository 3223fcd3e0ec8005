package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		BaseURL      string `yaml:"base_url"` // links in outbound mail
	} `yaml:"email"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Reward struct {
		ReferralBonus       float64 `yaml:"referral_bonus"`
		SuspiciousInvites   int     `yaml:"suspicious_invites"`
		RegistrationDeposit float64 `yaml:"registration_deposit"`
		// Level -> upgrade price. Level 1 is the signup default and has no price.
		LevelPrices map[int]float64 `yaml:"level_prices"`
	} `yaml:"reward"`

	Dashboard struct {
		BroadcastIntervalSec int `yaml:"broadcast_interval_sec"`
	} `yaml:"dashboard"`

	FirstAdminEmail    string `yaml:"-"`
	FirstAdminPassword string `yaml:"-"`
}

var AppConfig *Config

// LoadConfig reads config.yaml (CONFIG_PATH overrides the location) and then
// applies environment overrides. A .env file is honored when present.
func LoadConfig() {
	_ = godotenv.Load()

	cfg := &Config{}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil {
			f.Close()
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}
		f.Close()
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	AppConfig = cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		cfg.Server.Port, _ = strconv.Atoi(v)
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Email.SMTPPassword = v
	}
	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.Reward.ReferralBonus == 0 {
		cfg.Reward.ReferralBonus = 1000
	}
	if cfg.Reward.SuspiciousInvites == 0 {
		cfg.Reward.SuspiciousInvites = 50
	}
	if cfg.Reward.LevelPrices == nil {
		cfg.Reward.LevelPrices = map[int]float64{
			2: 5000,
			3: 15000,
			4: 40000,
			5: 100000,
		}
	}
	if cfg.Dashboard.BroadcastIntervalSec == 0 {
		cfg.Dashboard.BroadcastIntervalSec = 30
	}
}
