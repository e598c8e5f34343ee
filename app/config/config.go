package config

import (
	"log"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Printer  PrinterConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env     string
	Port    string
	Debug   bool
	DataDir string
}

// DatabaseConfig holds database connection settings. Driver selects the
// backend: "postgres" for the store database, "sqlite" for local use.
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Path     string
}

// PrinterConfig holds default rendering settings for print jobs. Type
// selects the transport: "system", "usb", "serial", "network" or "file".
type PrinterConfig struct {
	Name      string
	Type      string
	Method    string
	FontSize  int
	PaperSize string
	Address   string
	Port      int
	DPI       int
}

// Load reads configuration from .env (if present) and the environment,
// applying sensible defaults for everything else.
func Load() *Config {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", false)
	viper.SetDefault("APP_DATA_DIR", ".")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "receiptreprint")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_PATH", "receiptreprint.db")
	viper.SetDefault("PRINTER_NAME", "")
	viper.SetDefault("PRINTER_TYPE", "system")
	viper.SetDefault("PRINTER_METHOD", "driver")
	viper.SetDefault("PRINTER_FONT_SIZE", 10)
	viper.SetDefault("PRINTER_PAPER_SIZE", "A4")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_PORT", 9100)
	viper.SetDefault("PRINTER_DPI", 203)

	return &Config{
		App: AppConfig{
			Env:     viper.GetString("APP_ENV"),
			Port:    viper.GetString("APP_PORT"),
			Debug:   viper.GetBool("APP_DEBUG"),
			DataDir: viper.GetString("APP_DATA_DIR"),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			Path:     viper.GetString("DB_PATH"),
		},
		Printer: PrinterConfig{
			Name:      viper.GetString("PRINTER_NAME"),
			Type:      viper.GetString("PRINTER_TYPE"),
			Method:    viper.GetString("PRINTER_METHOD"),
			FontSize:  viper.GetInt("PRINTER_FONT_SIZE"),
			PaperSize: viper.GetString("PRINTER_PAPER_SIZE"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			Port:      viper.GetInt("PRINTER_PORT"),
			DPI:       viper.GetInt("PRINTER_DPI"),
		},
	}
}

// LogDir returns where daily log files are written.
func (c *Config) LogDir() string {
	return filepath.Join(c.App.DataDir, "logs")
}
