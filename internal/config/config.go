package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`

	// AppBaseURL is the externally reachable address of this API, used to
	// build confirmation links.
	AppBaseURL string `mapstructure:"APP_BASE_URL"`

	// Redis (token revocation). Optional: logout degrades to a no-op.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// Media storage root. Originals live directly under it, with
	// rescaled/, profilepics/ and deleted/ subfolders.
	UploadDir string `mapstructure:"UPLOAD_DIR"`

	// SMTP (confirmation mail)
	SMTPHost string `mapstructure:"SMTP_HOST"`
	SMTPPort int    `mapstructure:"SMTP_PORT"`
	SMTPUser string `mapstructure:"SMTP_USER"`
	SMTPPass string `mapstructure:"SMTP_PASS"`
	SMTPFrom string `mapstructure:"SMTP_FROM"`

	// OpenConversationReads switches conversation metadata and message
	// fetches to an open-read mode where any authenticated caller may read
	// them, instead of the default participant gate.
	OpenConversationReads bool `mapstructure:"OPEN_CONVERSATION_READS"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("SMTP_PORT", 587)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}
}
