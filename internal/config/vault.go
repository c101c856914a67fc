package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/vault/api"
)

// SecretManager wraps the Vault API client for reading secrets.
type SecretManager struct {
	client *api.Client
}

// NewSecretManager creates a Vault client pointed at the given address and
// authenticated with the provided token.
func NewSecretManager(address, token string) (*SecretManager, error) {
	cfg := api.DefaultConfig()
	cfg.Address = address

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault client initialization failed: %w", err)
	}
	client.SetToken(token)

	return &SecretManager{client: client}, nil
}

// GetKV2 reads from a KV v2 backend and returns the inner "data" map,
// unwrapping the v2 envelope automatically.
func (s *SecretManager) GetKV2(path string) (map[string]interface{}, error) {
	secret, err := s.client.Logical().Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret at %s: %w", path, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("no data found at %s", path)
	}
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected data format at %s", path)
	}
	return data, nil
}

// ApplyVaultOverrides loads DATABASE_URL / NATS_URL from Vault when
// VAULT_ADDR is set, overriding the env-derived values. Deployments without
// Vault keep the plain env configuration.
func ApplyVaultOverrides(cfg *Config) error {
	vaultAddr := os.Getenv("VAULT_ADDR")
	if vaultAddr == "" {
		return nil
	}
	vaultToken := os.Getenv("VAULT_TOKEN")
	if vaultToken == "" {
		vaultToken = "root"
	}
	secretPath := os.Getenv("VAULT_SECRET_PATH")
	if secretPath == "" {
		secretPath = "secret/data/soc/triage-service"
	}

	manager, err := NewSecretManager(vaultAddr, vaultToken)
	if err != nil {
		return err
	}
	secrets, err := manager.GetKV2(secretPath)
	if err != nil {
		return err
	}

	if v, ok := secrets["DATABASE_URL"].(string); ok && v != "" {
		cfg.DatabaseURL = v
	}
	if v, ok := secrets["NATS_URL"].(string); ok && v != "" {
		cfg.NATSURL = v
	}
	return nil
}
