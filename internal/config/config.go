package config

import (
	"log"
	"os"
	"strconv"

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

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Email struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		AdminEmail   string `yaml:"admin_email"` // получатель алертов о входах
	} `yaml:"email"`

	Security struct {
		AppSecret     string `yaml:"app_secret"`     // ключ шифрования сессий
		AntiLogSecret string `yaml:"antilog_secret"` // секрет подписанной antilog-куки
		TokenLength   int    `yaml:"token_length"`

		Argon2 struct {
			Memory  uint32 `yaml:"memory"` // KiB
			Time    uint32 `yaml:"time"`
			Threads uint8  `yaml:"threads"`
		} `yaml:"argon2"`

		SessionTTLMinutes  int    `yaml:"session_ttl_minutes"`
		SessionCookieName  string `yaml:"session_cookie"`
		RememberCookieName string `yaml:"remember_cookie"`
		AntiLogCookieName  string `yaml:"antilog_cookie"`
	} `yaml:"security"`

	Logging struct {
		DBEnabled bool `yaml:"db_enabled"`
		Level     int  `yaml:"level"` // порог: пишем записи с level <= Level
	} `yaml:"logging"`

	App struct {
		Maintenance          bool   `yaml:"maintenance"`
		RegistrationEnabled  bool   `yaml:"registration_enabled"`
		BlockedUsernamesFile string `yaml:"blocked_usernames_file"`
		OnlineTTLSeconds     int    `yaml:"online_ttl_seconds"`
		OwnerUsername        string `yaml:"owner_username"`
		OwnerPassword        string `yaml:"owner_password"`
	} `yaml:"app"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		log.Println("Загрузка из config.yaml (режим НЕ-тест)")

		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("Загрузка конфигурации из ПЕРЕМЕННЫХ ОКРУЖЕНИЯ (режим теста)")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Security.AppSecret = os.Getenv("APP_SECRET")
	cfg.Security.AntiLogSecret = os.Getenv("ANTILOG_SECRET")

	cfg.Email.Enabled = false
	cfg.Email.SMTPHost = "smtp.test.com"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "noreply@adminkit.local"
	cfg.Email.AdminEmail = "admin@adminkit.local"

	cfg.Logging.DBEnabled = true
	cfg.App.RegistrationEnabled = true

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Security.TokenLength == 0 {
		cfg.Security.TokenLength = 32
	}
	if cfg.Security.Argon2.Memory == 0 {
		cfg.Security.Argon2.Memory = 64 * 1024
	}
	if cfg.Security.Argon2.Time == 0 {
		cfg.Security.Argon2.Time = 3
	}
	if cfg.Security.Argon2.Threads == 0 {
		cfg.Security.Argon2.Threads = 2
	}
	if cfg.Security.SessionTTLMinutes == 0 {
		cfg.Security.SessionTTLMinutes = 120
	}
	if cfg.Security.SessionCookieName == "" {
		cfg.Security.SessionCookieName = "adminkit_session"
	}
	if cfg.Security.RememberCookieName == "" {
		cfg.Security.RememberCookieName = "adminkit_remember"
	}
	if cfg.Security.AntiLogCookieName == "" {
		cfg.Security.AntiLogCookieName = "adminkit_antilog"
	}
	if cfg.Logging.Level == 0 {
		cfg.Logging.Level = 4
	}
	if cfg.App.OnlineTTLSeconds == 0 {
		cfg.App.OnlineTTLSeconds = 300
	}
	if cfg.App.BlockedUsernamesFile == "" {
		cfg.App.BlockedUsernamesFile = "config/blocked_usernames.json"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
