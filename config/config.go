// Package config загружает настройки сервиса из переменных окружения.
//
// Переменные окружения:
//   - DASH_HTTP_ADDR: адрес HTTP-сервера (default: :8080)
//   - DASH_DATA_SOURCE: file, http или mysql (default: file)
//   - DASH_DAY_DATA, DASH_META_DATA: путь или URL данных по дням и метаданных
//   - DASH_FAMILY_ATTRIBUTES, DASH_MARRIAGES, DASH_BUSINESS: таблицы матрицы семей
//   - DASH_MYSQL_HOST, DASH_MYSQL_PORT, DASH_MYSQL_USER, DASH_MYSQL_PASSWORD,
//     DASH_MYSQL_DB, DASH_MYSQL_TABLE: источник данных по дням в MySQL
//   - DASH_FETCH_TIMEOUT: таймаут HTTP-клиента источников (default: 30s)
//   - DASH_SESSION_IDLE: время простоя сессии до отключения (default: 2m)
//   - DASH_SWEEP_INTERVAL: интервал проверки простаивающих сессий (default: 30s)
//   - DASH_RENDER_CACHE_SIZE: размер кэша отрисовки (default: 256)
//   - DASH_LOG_VERBOSE, DASH_LOG_FILE: настройки логирования
//   - DASH_OTEL_ENDPOINT: OTLP/HTTP endpoint трассировки, пусто = выключено
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Источники данных
const (
	SourceFile  = "file"
	SourceHTTP  = "http"
	SourceMySQL = "mysql"
)

// Config содержит конфигурацию сервиса панелей
type Config struct {
	HTTPAddr   string `env:"DASH_HTTP_ADDR" envDefault:":8080" validate:"required"`
	DataSource string `env:"DASH_DATA_SOURCE" envDefault:"file" validate:"oneof=file http mysql"`

	// Данные панели опроса
	DayData  string `env:"DASH_DAY_DATA" envDefault:"data/perDayData.json"`
	MetaData string `env:"DASH_META_DATA" envDefault:"data/myWorldFields.json" validate:"required"`

	// Данные матрицы семей
	FamilyAttributes string `env:"DASH_FAMILY_ATTRIBUTES" envDefault:"data/florentine-family-attributes.json" validate:"required"`
	Marriages        string `env:"DASH_MARRIAGES" envDefault:"data/florentine-family-marriages.json" validate:"required"`
	Business         string `env:"DASH_BUSINESS" envDefault:"data/florentine-family-business.json" validate:"required"`

	MySQL MySQLConfig `envPrefix:"DASH_MYSQL_"`

	FetchTimeout    time.Duration `env:"DASH_FETCH_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	SessionIdle     time.Duration `env:"DASH_SESSION_IDLE" envDefault:"2m" validate:"gt=0"`
	SweepInterval   time.Duration `env:"DASH_SWEEP_INTERVAL" envDefault:"30s" validate:"gt=0"`
	RenderCacheSize int           `env:"DASH_RENDER_CACHE_SIZE" envDefault:"256" validate:"min=1"`

	LogVerbose bool   `env:"DASH_LOG_VERBOSE" envDefault:"false"`
	LogFile    string `env:"DASH_LOG_FILE"`

	OTelEndpoint string `env:"DASH_OTEL_ENDPOINT"`
}

// MySQLConfig содержит настройки подключения к базе данных опроса
type MySQLConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"3306" validate:"min=1,max=65535"`
	User     string `env:"USER" envDefault:"root"`
	Password string `env:"PASSWORD"`
	DBName   string `env:"DB" envDefault:"myworld"`
	Table    string `env:"TABLE" envDefault:"survey_responses" validate:"required"`
}

// DSN формирует строку подключения для go-sql-driver/mysql
func (c MySQLConfig) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	cfg.DBName = c.DBName
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// Load читает .env (если он есть), переменные окружения и проверяет результат
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора переменных окружения: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("неверная конфигурация: %w", err)
	}
	if c.DataSource != SourceMySQL && c.DayData == "" {
		return fmt.Errorf("неверная конфигурация: DASH_DAY_DATA обязателен для источника %s", c.DataSource)
	}
	return nil
}
