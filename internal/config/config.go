package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Backend   BackendConfig
	Printer   PrinterConfig
	Ticket    TicketConfig
	Surcharge SurchargeConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// DatabaseConfig describes the terminal-local store used for the catalog
// cache, in-progress drafts and idempotency keys. sqlite is the default on
// terminal hardware; postgres is available for shared deployments.
type DatabaseConfig struct {
	Driver   string // "sqlite" or "postgres"
	Path     string // sqlite file path
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

// BackendConfig points at the central restaurant backend REST API.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// PrinterConfig is the default printer profile registered at startup.
type PrinterConfig struct {
	Type        string // "network", "usb", "serial" or "none"
	Address     string // TCP address for network printers, e.g. "192.168.1.50:9100"
	DevicePath  string // device file for usb/serial printers, e.g. "/dev/rfcomm0"
	ChunkSize   int    // bytes per write on the link
	ChunkDelay  time.Duration
	MaxPrinters int
}

// TicketConfig holds the receipt layout profile.
type TicketConfig struct {
	Width        int // characters per line (32 for 58mm paper)
	BusinessName string
	Tagline      string
	FooterLines  []string
}

// SurchargeConfig externalizes the delivery surcharge policy: which
// categories never generate tapers, and which catalog products back the
// synthetic taper and delivery-charge line items.
type SurchargeConfig struct {
	ExemptCategoryIDs   []uint
	TaperProductName    string
	DeliveryProductName string
	DeliveryLineName    string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "pos-terminal")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_PATH", "pos-terminal.db")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "pos_terminal")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "America/Lima")
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:4000/api")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 10)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_DEVICE_PATH", "")
	viper.SetDefault("PRINTER_CHUNK_SIZE", 20)
	viper.SetDefault("PRINTER_CHUNK_DELAY_MS", 10)
	viper.SetDefault("PRINTER_MAX_PRINTERS", 3)
	viper.SetDefault("TICKET_WIDTH", 32)
	viper.SetDefault("TICKET_BUSINESS_NAME", "MAREA PICANTE")
	viper.SetDefault("TICKET_TAGLINE", "Restaurante")
	viper.SetDefault("TICKET_FOOTER_LINES", []string{"Gracias por su preferencia!", "Vuelva pronto"})
	viper.SetDefault("SURCHARGE_EXEMPT_CATEGORY_IDS", []int{10, 11})
	viper.SetDefault("SURCHARGE_TAPER_PRODUCT", "Taper")
	viper.SetDefault("SURCHARGE_DELIVERY_PRODUCT", "Delivery")
	viper.SetDefault("SURCHARGE_DELIVERY_LINE_NAME", "Cargo por delivery")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	exempt := viper.GetIntSlice("SURCHARGE_EXEMPT_CATEGORY_IDS")
	exemptIDs := make([]uint, 0, len(exempt))
	for _, id := range exempt {
		if id > 0 {
			exemptIDs = append(exemptIDs, uint(id))
		}
	}

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Path:     viper.GetString("DB_PATH"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		Backend: BackendConfig{
			BaseURL: viper.GetString("BACKEND_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("BACKEND_TIMEOUT_SECONDS")) * time.Second,
		},
		Printer: PrinterConfig{
			Type:        viper.GetString("PRINTER_TYPE"),
			Address:     viper.GetString("PRINTER_ADDRESS"),
			DevicePath:  viper.GetString("PRINTER_DEVICE_PATH"),
			ChunkSize:   viper.GetInt("PRINTER_CHUNK_SIZE"),
			ChunkDelay:  time.Duration(viper.GetInt("PRINTER_CHUNK_DELAY_MS")) * time.Millisecond,
			MaxPrinters: viper.GetInt("PRINTER_MAX_PRINTERS"),
		},
		Ticket: TicketConfig{
			Width:        viper.GetInt("TICKET_WIDTH"),
			BusinessName: viper.GetString("TICKET_BUSINESS_NAME"),
			Tagline:      viper.GetString("TICKET_TAGLINE"),
			FooterLines:  viper.GetStringSlice("TICKET_FOOTER_LINES"),
		},
		Surcharge: SurchargeConfig{
			ExemptCategoryIDs:   exemptIDs,
			TaperProductName:    viper.GetString("SURCHARGE_TAPER_PRODUCT"),
			DeliveryProductName: viper.GetString("SURCHARGE_DELIVERY_PRODUCT"),
			DeliveryLineName:    viper.GetString("SURCHARGE_DELIVERY_LINE_NAME"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
