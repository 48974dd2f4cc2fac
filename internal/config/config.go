// Package config содержит логику чтения конфигурации сервиса.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config содержит конфигурацию приложения.
// Приоритет: env переменные > флаги > дефолтные значения.
type Config struct {
	RunAddress  string `env:"RUN_ADDRESS"`
	DatabaseURI string `env:"DATABASE_URI"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// JWT
	JWTSecret   string        `env:"JWT_SECRET" envDefault:"default-secret-key-change-in-production"`
	JWTTokenTTL time.Duration `env:"JWT_TOKEN_TTL" envDefault:"24h"`

	// Поставщик
	SupplierAPIURL  string        `env:"SUPPLIER_API_URL"`
	SupplierAPIKey  string        `env:"SUPPLIER_API_KEY"`
	SupplierTimeout time.Duration `env:"SUPPLIER_TIMEOUT" envDefault:"30s"`

	// Леджер: курс эквити и наценка
	EquityValue          int64 `env:"EQUITY_VALUE" envDefault:"10"`
	MarkupPercent        int64 `env:"MARKUP_PERCENT" envDefault:"20"`
	ReferralBonusPercent int64 `env:"REFERRAL_BONUS_PERCENT" envDefault:"10"`

	// Депозиты: границы и реквизиты для ручного перевода
	DepositMin        float64 `env:"DEPOSIT_MIN" envDefault:"500"`
	DepositMax        float64 `env:"DEPOSIT_MAX" envDefault:"500000"`
	BankName          string  `env:"BANK_NAME" envDefault:"Moniepoint MFB"`
	BankAccountName   string  `env:"BANK_ACCOUNT_NAME"`
	BankAccountNumber string  `env:"BANK_ACCOUNT_NUMBER"`

	// Администратор (сверяется со статической конфигурацией, не с БД)
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Telegram-алерты оператору (необязательно)
	TelegramBotToken    string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramAdminChatID int64  `env:"TELEGRAM_ADMIN_CHAT_ID"`

	// Синхронизация каталога при старте процесса
	SyncOnStart bool `env:"SYNC_ON_START" envDefault:"true"`

	// Валидация
	MinPasswordLength int `env:"MIN_PASSWORD_LENGTH" envDefault:"6"`
}

// Load загружает конфигурацию из .env файла, переменных окружения и флагов
func Load() (*Config, error) {
	// .env необязателен, отсутствие файла не ошибка
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envSupplierURL := cfg.SupplierAPIURL

	flag.StringVar(&cfg.RunAddress, "a", ":8080", "address and port to run server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.SupplierAPIURL, "s", "", "supplier API URL")
	flag.Parse()

	// Переменные окружения имеют приоритет над флагами
	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envSupplierURL != "" {
		cfg.SupplierAPIURL = envSupplierURL
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate проверяет обязательные параметры и диапазоны
func (c *Config) validate() error {
	if c.DatabaseURI == "" {
		return fmt.Errorf("database URI is required (use -d flag or DATABASE_URI env)")
	}
	if c.SupplierAPIURL == "" {
		return fmt.Errorf("supplier API URL is required (use -s flag or SUPPLIER_API_URL env)")
	}
	if c.SupplierAPIKey == "" {
		return fmt.Errorf("supplier API key is required (SUPPLIER_API_KEY env)")
	}
	if c.AdminPassword == "" {
		return fmt.Errorf("admin password is required (ADMIN_PASSWORD env)")
	}
	if c.EquityValue <= 0 {
		return fmt.Errorf("equity value must be positive, got %d", c.EquityValue)
	}
	if c.MarkupPercent < 0 {
		return fmt.Errorf("markup percent must not be negative, got %d", c.MarkupPercent)
	}
	if c.DepositMin <= 0 || c.DepositMax < c.DepositMin {
		return fmt.Errorf("invalid deposit bounds: [%v, %v]", c.DepositMin, c.DepositMax)
	}
	return nil
}
