// internal/platform/di/shared/infra.go
package shared

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"cloud.google.com/go/storage"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	appcfg "tradespace/internal/infra/config"
)

// Infra is shared runtime infrastructure for DI.
//   - owns external clients (Firestore/FirebaseAuth/GCS/SecretManager)
//   - owns env/config-resolved runtime settings (bucket name, mail secret)
//
// Infra must NOT depend on routers, handlers, or queries.
type Infra struct {
	Config    *appcfg.Config
	ProjectID string

	// Clients (owned; Close-managed)
	Firestore     *firestore.Client
	GCS           *storage.Client
	FirebaseApp   *firebase.App
	FirebaseAuth  *firebaseauth.Client
	SecretManager *secretmanager.Client

	// Runtime settings (resolved once)
	ImageBucket    string
	SendGridAPIKey string
	SendGridFrom   string
}

// NewInfra initializes shared infra.
// Firestore/GCS are strict (return error).
// Firebase/Auth and SecretManager are best-effort (warn + continue).
func NewInfra(ctx context.Context) (*Infra, error) {
	cfg := appcfg.Load()
	if cfg == nil {
		return nil, errors.New("shared.infra: config is nil")
	}

	projectID := resolveProjectID(cfg)
	if projectID == "" {
		return nil, errors.New("shared.infra: projectID is empty (set FIRESTORE_PROJECT_ID or GOOGLE_CLOUD_PROJECT)")
	}

	inf := &Infra{
		Config:    cfg,
		ProjectID: projectID,
	}

	// Credentials file (optional; mainly for local dev)
	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	if credFile == "" {
		credFile = strings.TrimSpace(cfg.GCPCreds)
	}
	var clientOpts []option.ClientOption
	if credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Printf("[shared.infra] using credentials file for GCP clients: %s", redactPath(credFile))
	} else {
		log.Printf("[shared.infra] using Application Default Credentials")
	}

	// 1) Optional: Secret Manager client (SendGrid key resolve)
	{
		sm, err := secretmanager.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[shared.infra] WARN: secretmanager.NewClient failed: %v (mail may be disabled)", err)
			sm = nil
		}
		inf.SecretManager = sm
	}

	// 2) Firestore (strict)
	{
		fsClient, err := firestore.NewClient(ctx, inf.ProjectID, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("shared.infra: firestore.NewClient failed (project=%s): %w", inf.ProjectID, err)
		}
		inf.Firestore = fsClient
		log.Printf("[shared.infra] Firestore connected project=%s", inf.ProjectID)
	}

	// 3) GCS (strict)
	{
		gcsClient, err := storage.NewClient(ctx, clientOpts...)
		if err != nil {
			_ = inf.Firestore.Close()
			return nil, fmt.Errorf("shared.infra: storage.NewClient failed: %w", err)
		}
		inf.GCS = gcsClient
		log.Printf("[shared.infra] GCS storage client initialized")
	}

	// 4) Firebase App/Auth (best-effort; protected routes 401 without it)
	{
		fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: inf.ProjectID}, clientOpts...)
		if err != nil {
			log.Printf("[shared.infra] WARN: firebase app init failed: %v", err)
		} else {
			inf.FirebaseApp = fbApp
			authClient, err := fbApp.Auth(ctx)
			if err != nil {
				log.Printf("[shared.infra] WARN: firebase auth init failed: %v", err)
			} else {
				inf.FirebaseAuth = authClient
				log.Printf("[shared.infra] Firebase Auth initialized")
			}
		}
	}

	// 5) Image bucket
	inf.ImageBucket = strings.TrimSpace(cfg.GCSBucket)
	if inf.ImageBucket == "" {
		log.Printf("[shared.infra] WARN: GCS_BUCKET is empty (image upload features may fail)")
	}

	// 6) SendGrid key: env first, Secret Manager fallback
	inf.SendGridFrom = strings.TrimSpace(cfg.SendGridFrom)
	inf.SendGridAPIKey = strings.TrimSpace(cfg.SendGridAPIKey)
	if inf.SendGridAPIKey == "" && inf.SecretManager != nil {
		key, err := accessSecret(ctx, inf.SecretManager, inf.ProjectID, cfg.SendGridSecretName)
		if err != nil {
			log.Printf("[shared.infra] WARN: sendgrid key not resolved from Secret Manager: %v (invoice mail disabled)", err)
		} else {
			inf.SendGridAPIKey = key
			log.Printf("[shared.infra] SendGrid key resolved from Secret Manager")
		}
	}

	if inf.Firestore == nil {
		_ = inf.Close()
		return nil, errors.New("shared.infra: firestore client is nil after initialization (unexpected)")
	}
	if inf.GCS == nil {
		_ = inf.Close()
		return nil, errors.New("shared.infra: gcs client is nil after initialization (unexpected)")
	}

	return inf, nil
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	if i.Firestore != nil {
		_ = i.Firestore.Close()
	}
	if i.GCS != nil {
		_ = i.GCS.Close()
	}
	if i.SecretManager != nil {
		_ = i.SecretManager.Close()
	}
	return nil
}

func resolveProjectID(cfg *appcfg.Config) string {
	if cfg != nil {
		if v := strings.TrimSpace(cfg.FirestoreProjectID); v != "" {
			return v
		}
	}

	for _, k := range []string{
		"FIRESTORE_PROJECT_ID",
		"GCP_PROJECT_ID",
		"GOOGLE_CLOUD_PROJECT",
		"FIREBASE_PROJECT_ID",
	} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}

	return ""
}

func accessSecret(ctx context.Context, sm *secretmanager.Client, projectID, secretName string) (string, error) {
	name := strings.TrimSpace(secretName)
	if name == "" {
		return "", errors.New("secret name is empty")
	}
	full := "projects/" + projectID + "/secrets/" + name + "/versions/latest"
	resp, err := sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: full})
	if err != nil {
		return "", fmt.Errorf("AccessSecretVersion failed (%s): %w", full, err)
	}
	if resp == nil || resp.Payload == nil {
		return "", fmt.Errorf("empty payload (%s)", full)
	}
	return strings.TrimSpace(string(resp.Payload.Data)), nil
}

func redactPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	parts := strings.Split(p, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***/" + last
}
