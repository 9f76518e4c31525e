// internal/platform/di/infra.go
package di

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	appcfg "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/infra/config"
	firestoreinfra "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/infra/firestore"
)

// Infra owns the external clients and the runtime settings resolved
// once at startup.
//
// Firestore is strict (startup fails without it). Firebase Auth, GCS,
// Secret Manager, Stripe and SendGrid settings are best-effort: a
// missing one disables its feature with a WARN instead of refusing to
// boot, which keeps local development possible without every secret.
type Infra struct {
	Config    *appcfg.Config
	ProjectID string

	Firestore     *firestore.Client
	GCS           *storage.Client
	FirebaseApp   *firebase.App
	FirebaseAuth  *firebaseauth.Client
	SecretManager *secretmanager.Client

	// resolved once
	StripeSecretKey     string
	StripeWebhookSecret string
	ListingImageBucket  string
}

func NewInfra(ctx context.Context) (*Infra, error) {
	cfg := appcfg.Load()

	projectID := strings.TrimSpace(cfg.FirestoreProjectID)
	if projectID == "" {
		return nil, errors.New("di: project id is empty (set FIRESTORE_PROJECT_ID or GCP_PROJECT_ID)")
	}

	inf := &Infra{
		Config:             cfg,
		ProjectID:          projectID,
		ListingImageBucket: strings.TrimSpace(cfg.ListingImageBucket),
	}

	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	var clientOpts []option.ClientOption
	if credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
	}

	// Firestore (strict)
	fsw, err := firestoreinfra.NewClient(ctx, projectID, credFile)
	if err != nil {
		return nil, fmt.Errorf("di: %w", err)
	}
	inf.Firestore = fsw.Client

	// Secret Manager (best-effort)
	{
		sm, err := secretmanager.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[di] WARN: secretmanager.NewClient failed: %v (secret-backed settings fall back to env)", err)
			sm = nil
		}
		inf.SecretManager = sm
	}

	// GCS (best-effort; only listing images need it)
	{
		gcs, err := storage.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[di] WARN: storage.NewClient failed: %v (listing image upload disabled)", err)
			gcs = nil
		}
		inf.GCS = gcs
	}

	// Firebase App/Auth (best-effort; protected routes 401 without it)
	{
		fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: strings.TrimSpace(cfg.FirebaseProjectID)}, clientOpts...)
		if err != nil {
			log.Printf("[di] WARN: firebase app init failed: %v", err)
		} else {
			inf.FirebaseApp = fbApp
			authClient, err := fbApp.Auth(ctx)
			if err != nil {
				log.Printf("[di] WARN: firebase auth init failed: %v", err)
			} else {
				inf.FirebaseAuth = authClient
			}
		}
	}

	// Stripe settings: env wins, Secret Manager fallback.
	inf.StripeSecretKey = inf.resolveSecret(ctx, cfg.StripeSecretKey, cfg.StripeSecretName, "stripe secret key")
	inf.StripeWebhookSecret = inf.resolveSecret(ctx, cfg.StripeWebhookSecret, cfg.StripeWebhookSecretRef, "stripe webhook secret")

	if inf.ListingImageBucket == "" {
		log.Printf("[di] WARN: LISTING_IMAGE_BUCKET is empty (listing image upload disabled)")
	}

	return inf, nil
}

// resolveSecret prefers the env value and falls back to Secret Manager
// version "latest". Returns "" when neither source yields a value.
func (i *Infra) resolveSecret(ctx context.Context, envValue, secretName, label string) string {
	if v := strings.TrimSpace(envValue); v != "" {
		return v
	}
	if i.SecretManager == nil || strings.TrimSpace(secretName) == "" {
		log.Printf("[di] WARN: %s is not configured", label)
		return ""
	}

	name := "projects/" + i.ProjectID + "/secrets/" + strings.TrimSpace(secretName) + "/versions/latest"
	resp, err := i.SecretManager.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		log.Printf("[di] WARN: AccessSecretVersion failed for %s (%s): %v", label, name, err)
		return ""
	}
	if resp == nil || resp.Payload == nil {
		log.Printf("[di] WARN: empty secret payload for %s (%s)", label, name)
		return ""
	}
	return strings.TrimSpace(string(resp.Payload.Data))
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
