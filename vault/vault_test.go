package vault

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ahmetson/envboot/configuration"
	"github.com/ahmetson/envboot/env"
	"github.com/ahmetson/envboot/log"
	"github.com/stretchr/testify/suite"
)

const testToken = "s.test-token"

// Define the suite, and absorb the built-in basic suite
// functionality from testify - including a T() method which
// returns the current testing context
type TestVaultSuite struct {
	suite.Suite
	server *httptest.Server
	dir    string
	logger *log.Logger
	logins int
}

// fakeVault replies like the Vault server with the approle and kv-v2 engines enabled
func (suite *TestVaultSuite) fakeVault(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPut || r.Method == http.MethodPost:
		if r.URL.Path != "/v1/auth/approle/login" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"errors":[]}`)
			return
		}
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["role_id"] != "role" || body["secret_id"] != "secret-id" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"errors":["invalid role or secret ID"]}`)
			return
		}
		suite.logins++
		_, _ = io.WriteString(w, `{"auth":{"client_token":"`+testToken+`","policies":["default"],"lease_duration":3600,"renewable":true}}`)
	case r.Method == http.MethodGet && r.URL.Path == "/v1/secret/data/app":
		if r.Header.Get("X-Vault-Token") != testToken {
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, `{"errors":["permission denied"]}`)
			return
		}
		_, _ = io.WriteString(w, `{
			"request_id": "1",
			"lease_id": "",
			"renewable": false,
			"lease_duration": 0,
			"data": {
				"data": {"API_KEY": "abc", "PORT": 8080, "DEBUG": true},
				"metadata": {
					"created_time": "2023-03-22T02:24:06.945319214Z",
					"custom_metadata": null,
					"deletion_time": "",
					"destroyed": false,
					"version": 1
				}
			}
		}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"errors":[]}`)
	}
}

func (suite *TestVaultSuite) SetupTest() {
	suite.restoreEnv()
	suite.logins = 0
	suite.server = httptest.NewServer(http.HandlerFunc(suite.fakeVault))
	suite.dir = suite.T().TempDir()

	// the client shouldn't pick the token of the developer
	suite.T().Setenv("VAULT_TOKEN", "")

	logger, err := log.NewWithOutput(io.Discard, "test_suite", log.WithoutTimestamp)
	suite.Require().NoError(err)
	suite.logger = logger
}

// restoreEnv resets the process environment after the test,
// since loading the environment files sets the variables.
func (suite *TestVaultSuite) restoreEnv() {
	snapshot := os.Environ()
	suite.T().Cleanup(func() {
		os.Clearenv()
		for _, pair := range snapshot {
			key, value, _ := strings.Cut(pair, "=")
			_ = os.Setenv(key, value)
		}
	})
}

func (suite *TestVaultSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *TestVaultSuite) vault(envFile string) *Vault {
	err := os.WriteFile(filepath.Join(suite.dir, ".env"), []byte(envFile), 0644)
	suite.Require().NoError(err)

	loaded := env.Load(suite.dir, env.Default, suite.logger)
	config, err := configuration.New(suite.logger, loaded)
	suite.Require().NoError(err)

	v, err := New(config, suite.logger)
	suite.Require().NoError(err)
	return v
}

func (suite *TestVaultSuite) TestDefaults() {
	v := suite.vault("")
	suite.Require().Equal("secret", v.kvMount)
	suite.Require().Equal("approle", v.approleMountPath)
	suite.Require().Equal(defaultRequestTime, v.timeout)
	suite.Require().Equal("http://127.0.0.1:8200", v.client.Address())

	err := v.Login(context.Background())
	suite.Require().Error(err)
}

func (suite *TestVaultSuite) TestPullWithToken() {
	v := suite.vault("ENVBOOT_VAULT_ADDR=" + suite.server.URL + "\nENVBOOT_VAULT_TOKEN=" + testToken + "\n")
	suite.Require().NoError(v.Login(context.Background()))

	vars, err := v.Pull(context.Background(), "app")
	suite.Require().NoError(err)
	suite.Require().Equal(map[string]string{"API_KEY": "abc", "PORT": "8080", "DEBUG": "true"}, vars)
	suite.Require().Zero(suite.logins)

	_, err = v.Pull(context.Background(), "missing")
	suite.Require().Error(err)
}

func (suite *TestVaultSuite) TestPullWithApprole() {
	v := suite.vault("ENVBOOT_VAULT_ADDR=" + suite.server.URL + "\n" +
		"ENVBOOT_VAULT_APPROLE_ROLE_ID=role\n" +
		"ENVBOOT_VAULT_APPROLE_SECRET_ID=secret-id\n")
	suite.Require().NoError(v.Login(context.Background()))
	suite.Require().Equal(1, suite.logins)

	vars, err := v.Pull(context.Background(), "app")
	suite.Require().NoError(err)
	suite.Require().Equal("abc", vars["API_KEY"])
}

func (suite *TestVaultSuite) TestInvalidApprole() {
	v := suite.vault("ENVBOOT_VAULT_ADDR=" + suite.server.URL + "\n" +
		"ENVBOOT_VAULT_APPROLE_ROLE_ID=role\n" +
		"ENVBOOT_VAULT_APPROLE_SECRET_ID=wrong\n")
	suite.Require().Error(v.Login(context.Background()))
}

func (suite *TestVaultSuite) TestPermissionDenied() {
	v := suite.vault("ENVBOOT_VAULT_ADDR=" + suite.server.URL + "\nENVBOOT_VAULT_TOKEN=wrong\n")
	suite.Require().NoError(v.Login(context.Background()))

	_, err := v.Pull(context.Background(), "app")
	suite.Require().Error(err)
}

// In order for 'go test' to run this suite, we need to create
// a normal test function and pass our suite to suite.Run
func TestVault(t *testing.T) {
	suite.Run(t, new(TestVaultSuite))
}
