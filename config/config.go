package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Slot store. STORE_BACKEND selects "firestore" (default) or "mongo".
	StoreBackend            string `mapstructure:"STORE_BACKEND"`
	DatabaseURL             string `mapstructure:"DATABASE_URL"`
	MongoDB                 string `mapstructure:"MONGO_DB"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Stripe.
	StripeSecretKey     string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	Currency            string `mapstructure:"CURRENCY"`
	FrontendBaseURL     string `mapstructure:"FRONTEND_BASE_URL"`

	// Redis, used for webhook event deduplication.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDedupDB  int    `mapstructure:"REDIS_DEDUP_DB"`

	// Notifications.
	MailAPIURL    string `mapstructure:"MAIL_API_URL"`
	MailAPIKey    string `mapstructure:"MAIL_API_KEY"`
	MailFrom      string `mapstructure:"MAIL_FROM"`
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminFCMToken string `mapstructure:"ADMIN_FCM_TOKEN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("STORE_BACKEND", "firestore")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "barberbook")
	viper.SetDefault("CURRENCY", "pln")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:5173")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DEDUP_DB", 0)
	viper.SetDefault("MAIL_API_URL", "https://api.resend.com/emails")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	validateConfig()
}

// validateConfig fails the process early rather than serving traffic with a
// half-configured payment provider or store.
func validateConfig() {
	if AppConfig.StripeSecretKey == "" {
		log.Fatalf("config: STRIPE_SECRET_KEY is required")
	}
	if AppConfig.StripeWebhookSecret == "" {
		log.Fatalf("config: STRIPE_WEBHOOK_SECRET is required")
	}
	switch AppConfig.StoreBackend {
	case "firestore":
		if AppConfig.FirebaseCredentialsFile == "" {
			log.Fatalf("config: FIREBASE_CREDENTIALS_FILE is required for the firestore backend")
		}
	case "mongo":
		if AppConfig.DatabaseURL == "" {
			log.Fatalf("config: DATABASE_URL is required for the mongo backend")
		}
	default:
		log.Fatalf("config: unknown STORE_BACKEND %q", AppConfig.StoreBackend)
	}
	if AppConfig.AdminEmail == "" {
		log.Fatalf("config: ADMIN_EMAIL is required")
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
