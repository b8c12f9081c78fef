package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "BITTA"

type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis" validate:"required"`
	JWT      JWTConfig      `mapstructure:"jwt" validate:"required"`
	S3       S3Config       `mapstructure:"s3"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Member   MemberConfig   `mapstructure:"member"`
}

type ServerConfig struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	Mode     string `mapstructure:"mode" validate:"oneof=debug release test"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

type DatabaseConfig struct {
	Driver      string `mapstructure:"driver" validate:"oneof=mysql postgres"`
	DSN         string `mapstructure:"dsn" validate:"required"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

type JWTConfig struct {
	AccessSecret  string        `mapstructure:"access_secret" validate:"required,min=16"`
	RefreshSecret string        `mapstructure:"refresh_secret" validate:"required,min=16"`
	AccessTTL     time.Duration `mapstructure:"access_ttl" validate:"gt=0"`
	RefreshTTL    time.Duration `mapstructure:"refresh_ttl" validate:"gt=0"`
}

type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
}

type KafkaConfig struct {
	Brokers  []string      `mapstructure:"brokers"`
	Topic    string        `mapstructure:"topic"`
	Interval time.Duration `mapstructure:"interval"`
	Batch    int           `mapstructure:"batch"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type MemberConfig struct {
	DefaultProfileImageURL string `mapstructure:"default_profile_image_url" validate:"required"`
}

// Enabled 未配置 broker 时 outbox 只落库不投递
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 && k.Topic != "" }

func (s SMTPConfig) Enabled() bool { return s.Host != "" }

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.access_ttl", 30*time.Minute)
	v.SetDefault("jwt.refresh_ttl", 24*time.Hour)
	v.SetDefault("s3.region", "ap-northeast-2")
	v.SetDefault("kafka.topic", "bitta.events")
	v.SetDefault("kafka.interval", time.Second)
	v.SetDefault("kafka.batch", 200)
	v.SetDefault("smtp.port", 587)
	v.SetDefault("member.default_profile_image_url", "/static/default-profile.png")
}

// Load 读取 .env、config.yaml 和 BITTA_ 前缀环境变量，环境变量优先
func Load(paths ...string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv 只对已知 key 生效，没有默认值的 key 需要显式绑定
	for _, key := range []string{
		"database.dsn", "redis.password", "jwt.access_secret", "jwt.refresh_secret",
		"s3.bucket", "s3.endpoint", "s3.access_key_id", "s3.secret_access_key", "s3.public_base_url",
		"kafka.brokers", "smtp.host", "smtp.username", "smtp.password", "smtp.from",
	} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
