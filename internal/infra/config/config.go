// internal/infra/config/config.go
package config

import "os"

// Config holds process-wide environment configuration.
type Config struct {
	Port string

	// GCP
	FirestoreProjectID       string
	FirebaseProjectID        string
	FirestoreCredentialsFile string
	GCPCreds                 string
	GCSBucket                string

	// Mail (SendGrid). APIKey may be empty; the secret can instead be
	// resolved from Secret Manager via SendGridSecretName.
	SendGridAPIKey     string
	SendGridFrom       string
	SendGridSecretName string

	// CORS origin for the web client ("*" in development).
	AllowedOrigin string
}

// Load reads configuration from environment variables.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT"))

	return &Config{
		Port: getenvDefault("PORT", "8080"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		GCSBucket:                os.Getenv("GCS_BUCKET"),

		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridFrom:       getenvDefault("SENDGRID_FROM", "invoices@tradespace.app"),
		SendGridSecretName: getenvDefault("SENDGRID_SECRET_NAME", "tradespace-sendgrid-api-key"),

		AllowedOrigin: getenvDefault("ALLOWED_ORIGIN", "*"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
