package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the GORM/pgx data source name.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the database URL used by golang-migrate.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// JWTConfig holds token verification settings for the identity resolver.
type JWTConfig struct {
	Secret string
	Issuer string
}

// KafkaConfig holds event broker settings.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// ServiceConfig holds all configuration for the rental service.
type ServiceConfig struct {
	Port        string
	AppEnv      string
	DBConfig    DatabaseConfig
	JWTConfig   JWTConfig
	KafkaConfig KafkaConfig
}

// Load reads configuration from RENTAL_-prefixed environment variables with
// sensible development defaults.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("RENTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("SERVICE_PORT", "8084")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "rental")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_ISSUER", "fieldshare")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC", "rental.booking.events")

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("RENTAL_JWT_SECRET is required")
	}

	port := v.GetString("SERVICE_PORT")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	return &ServiceConfig{
		Port:   port,
		AppEnv: v.GetString("APP_ENV"),
		DBConfig: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWTConfig: JWTConfig{
			Secret: secret,
			Issuer: v.GetString("JWT_ISSUER"),
		},
		KafkaConfig: KafkaConfig{
			Brokers: strings.Split(v.GetString("KAFKA_BROKERS"), ","),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
	}, nil
}
