package google

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testCredentials returns service-account credentials with a fresh RSA key.
// The PEM is stored with escaped newlines, the way it arrives from env vars.
func testCredentials(t *testing.T, tokenURI string) (Credentials, *rsa.PrivateKey) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	pemKey := string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))

	return Credentials{
		Type:                "service_account",
		ProjectID:           "proj",
		PrivateKeyID:        "kid-1",
		PrivateKey:          strings.ReplaceAll(pemKey, "\n", `\n`),
		ClientEmail:         "bot@proj.iam.gserviceaccount.com",
		ClientID:            "123",
		AuthURI:             "https://accounts.google.com/o/oauth2/auth",
		TokenURI:            tokenURI,
		AuthProviderCertURL: "https://www.googleapis.com/oauth2/v1/certs",
		ClientCertURL:       "https://www.googleapis.com/robot/v1/metadata/x509/bot",
	}, key
}
