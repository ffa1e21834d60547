// Package vault reads the environment variables stored in the HashiCorp Vault.
//
// The secrets are kept in the KV version 2 engine. Each key of the secret is
// an environment variable.
package vault

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/ahmetson/envboot/configuration"
	"github.com/ahmetson/envboot/log"
	"github.com/ahmetson/envboot/proxy"
	hashicorp "github.com/hashicorp/vault/api"
	"github.com/hashicorp/vault/api/auth/approle"
)

const (
	AddrKey            = "ENVBOOT_VAULT_ADDR"
	TokenKey           = "ENVBOOT_VAULT_TOKEN"
	RoleIDKey          = "ENVBOOT_VAULT_APPROLE_ROLE_ID"
	SecretIDKey        = "ENVBOOT_VAULT_APPROLE_SECRET_ID"
	ApproleMountKey    = "ENVBOOT_VAULT_APPROLE_MOUNT_PATH"
	KVMountKey         = "ENVBOOT_VAULT_KV_MOUNT"
	RequestTimeoutKey  = "ENVBOOT_VAULT_TIMEOUT"
	defaultRequestTime = 10 * time.Second
)

// Vault is the wrapper around hashicorp vault client
// along with the secret engine parameters.
type Vault struct {
	logger  *log.Logger
	client  *hashicorp.Client
	kvMount string
	timeout time.Duration

	// connection parameters
	token            string
	approleRoleID    string
	approleSecretID  string
	approleMountPath string
}

// DefaultConfigurations are setting the default configuration parameters.
//
// The values are the default values if it wasn't provided by the user
// Set the default value to nil, if the parameter is required from the user
var DefaultConfigurations = configuration.DefaultConfig{
	Title: "Vault",
	Parameters: map[string]interface{}{
		AddrKey:           "http://127.0.0.1:8200",
		ApproleMountKey:   "approle",
		KVMountKey:        "secret",
		RequestTimeoutKey: defaultRequestTime.String(),
		TokenKey:          nil,
		RoleIDKey:         nil,
		SecretIDKey:       nil,
	},
}

// New vault client. The client is not authenticated until Login is called.
//
// The outbound requests go through the proxy of the configuration.
func New(config *configuration.Config, logger *log.Logger) (*Vault, error) {
	config.SetDefaults(DefaultConfigurations)

	timeout := config.GetDuration(RequestTimeoutKey)
	if timeout <= 0 {
		timeout = defaultRequestTime
	}

	hashicorpConfig := hashicorp.DefaultConfig()
	if hashicorpConfig.Error != nil {
		return nil, fmt.Errorf("hashicorp.DefaultConfig: %w", hashicorpConfig.Error)
	}
	hashicorpConfig.Address = config.GetString(AddrKey)
	hashicorpConfig.Timeout = timeout
	if transport, ok := hashicorpConfig.HttpClient.Transport.(*http.Transport); ok {
		transport.Proxy = proxy.Func(config.Lookup)
	}

	client, err := hashicorp.NewClient(hashicorpConfig)
	if err != nil {
		return nil, fmt.Errorf("hashicorp.NewClient: %w", err)
	}

	return &Vault{
		logger:           logger,
		client:           client,
		kvMount:          config.GetString(KVMountKey),
		timeout:          timeout,
		token:            config.GetString(TokenKey),
		approleRoleID:    config.GetString(RoleIDKey),
		approleSecretID:  config.GetString(SecretIDKey),
		approleMountPath: config.GetString(ApproleMountKey),
	}, nil
}

// Login authenticates the client.
// The token has the priority, otherwise AppRole auth method is used.
// If neither is given, the token that the client picked from VAULT_TOKEN is used.
func (v *Vault) Login(ctx context.Context) error {
	if len(v.token) > 0 {
		v.client.SetToken(v.token)
		return nil
	}
	if len(v.approleRoleID) > 0 {
		ctx, cancel := context.WithTimeout(ctx, v.timeout)
		defer cancel()

		_, err := v.login(ctx)
		return err
	}
	if len(v.client.Token()) > 0 {
		return nil
	}

	return fmt.Errorf("missing '%s' or '%s' environment variable", TokenKey, RoleIDKey)
}

// A combination of a RoleID and a SecretID is required to log into Vault
// with AppRole authentication method.
//
// ref: https://learn.hashicorp.com/tutorials/vault/approle-best-practices?in=vault/auth-methods#secretid-delivery-best-practices
func (v *Vault) login(ctx context.Context) (*hashicorp.Secret, error) {
	v.logger.Info("Vault login: begin", "mount", v.approleMountPath)

	approleSecretID := &approle.SecretID{
		FromString: v.approleSecretID,
	}

	appRoleAuth, err := approle.NewAppRoleAuth(
		v.approleRoleID,
		approleSecretID,
		approle.WithMountPath(v.approleMountPath),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize approle authentication method: %w", err)
	}

	authInfo, err := v.client.Auth().Login(ctx, appRoleAuth)
	if err != nil {
		return nil, fmt.Errorf("unable to login using approle auth method: %w", err)
	}
	if authInfo == nil {
		return nil, fmt.Errorf("no approle info was returned after login")
	}

	v.logger.Info("Vault login: success!")

	return authInfo, nil
}

// Pull returns the key-values of the secret.
// The values that are not string are formatted.
func (v *Vault) Pull(ctx context.Context, secretPath string) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	secret, err := v.client.KVv2(v.kvMount).Get(ctx, secretPath)
	if err != nil {
		return nil, fmt.Errorf("vault.client.KVv2('%s').Get('%s'): %w", v.kvMount, secretPath, err)
	}

	vars := make(map[string]string, len(secret.Data))
	for key, raw := range secret.Data {
		switch value := raw.(type) {
		case string:
			vars[key] = value
		case nil:
			vars[key] = ""
		default:
			vars[key] = fmt.Sprintf("%v", value)
		}
	}

	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	v.logger.Info("secret pulled", "path", secretPath, "keys", keys)

	return vars, nil
}
