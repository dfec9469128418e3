package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Env          string             `mapstructure:"env"`
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Provisioning ProvisioningConfig `mapstructure:"provisioning"`
	NATS         NATSConfig         `mapstructure:"nats"`
	Kafka        KafkaConfig        `mapstructure:"kafka"`
}

type ServerConfig struct {
	Port         string   `mapstructure:"port"`
	ReadTimeout  int      `mapstructure:"read_timeout_seconds"`
	WriteTimeout int      `mapstructure:"write_timeout_seconds"`
	IdleTimeout  int      `mapstructure:"idle_timeout_seconds"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            string `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time_seconds"`
}

type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
}

// ProvisioningConfig carries the tunables of the bulk credential pipeline.
// Batch size is configuration rather than a literal so it can be matched to
// the store's write-batch limits.
type ProvisioningConfig struct {
	BatchSize       int    `mapstructure:"batch_size"`
	StudentIDPrefix string `mapstructure:"student_id_prefix"`
	StudentIDWidth  int    `mapstructure:"student_id_width"`
	StaffIDPrefix   string `mapstructure:"staff_id_prefix"`
	StaffIDWidth    int    `mapstructure:"staff_id_width"`
	PasswordLength  int    `mapstructure:"password_length"`
	BcryptCost      int    `mapstructure:"bcrypt_cost"`
}

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

func Load() (*Config, error) {
	// Get environment from ENV, default to "local"
	env := os.Getenv("ENV")
	if env == "" {
		env = "local"
	}

	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/configs")   // Kubernetes mount
	viper.AddConfigPath("./configs")  // run from repo root
	viper.AddConfigPath("../configs") // IDE from cmd/

	// Config file is optional - ENV variables can carry everything
	if err := viper.ReadInConfig(); err != nil {
		fmt.Printf("No config file found (will use ENV variables): %v\n", err)
	}

	// Environment variable overrides take precedence over the config file
	viper.AutomaticEnv()

	viper.BindEnv("database.user", "DB_USER")
	viper.BindEnv("database.password", "DB_PASSWORD")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyProvisioningDefaults(&config.Provisioning)

	return &config, nil
}

func applyProvisioningDefaults(p *ProvisioningConfig) {
	if p.BatchSize <= 0 {
		p.BatchSize = 500
	}
	if p.StudentIDPrefix == "" {
		p.StudentIDPrefix = "ADM"
	}
	if p.StudentIDWidth <= 0 {
		p.StudentIDWidth = 4
	}
	if p.StaffIDPrefix == "" {
		p.StaffIDPrefix = "STF"
	}
	if p.StaffIDWidth <= 0 {
		p.StaffIDWidth = 3
	}
	if p.PasswordLength <= 0 {
		p.PasswordLength = 10
	}
}
