// internal/infra/config/config.go
package config

import "os"

// Config holds the environment configuration for the service.
type Config struct {
	Port string

	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string

	// Stripe secret key: env wins; when empty the DI layer resolves
	// StripeSecretName from Secret Manager.
	StripeSecretKey        string
	StripeSecretName       string
	StripeWebhookSecret    string
	StripeWebhookSecretRef string

	SendGridAPIKey string
	SendGridFrom   string

	ListingImageBucket string

	CORSAllowedOrigin string
}

// Load reads the environment into a Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "noms-development")

	return &Config{
		Port: getenvDefault("PORT", "8080"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		StripeSecretKey:        os.Getenv("STRIPE_SECRET_KEY"),
		StripeSecretName:       getenvDefault("STRIPE_SECRET_NAME", "stripe-secret-key"),
		StripeWebhookSecret:    os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripeWebhookSecretRef: getenvDefault("STRIPE_WEBHOOK_SECRET_NAME", "stripe-webhook-secret"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		SendGridFrom:   os.Getenv("SENDGRID_FROM"),

		ListingImageBucket: os.Getenv("LISTING_IMAGE_BUCKET"),

		CORSAllowedOrigin: getenvDefault("CORS_ALLOWED_ORIGIN", "*"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
