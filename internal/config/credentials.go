package config

import (
	"net/url"

	"github.com/sells-group/leadflow/pkg/google"
)

// robotCertURL is the x509 metadata endpoint for service-account certs.
const robotCertURL = "https://www.googleapis.com/robot/v1/metadata/x509/"

// ServiceAccount assembles the Google service-account key from the
// individual GOOGLE_* settings. Escaped newlines in the private key are
// expanded. A blank client cert URL is derived from the client email.
func (c *Config) ServiceAccount() google.Credentials {
	g := c.Google
	certURL := g.ClientCertURL
	if certURL == "" && g.ClientEmail != "" {
		certURL = robotCertURL + url.QueryEscape(g.ClientEmail)
	}
	return google.Credentials{
		Type:                g.Type,
		ProjectID:           g.ProjectID,
		PrivateKeyID:        g.PrivateKeyID,
		PrivateKey:          google.NormalizePrivateKey(g.PrivateKey),
		ClientEmail:         g.ClientEmail,
		ClientID:            g.ClientID,
		AuthURI:             g.AuthURI,
		TokenURI:            g.TokenURI,
		AuthProviderCertURL: g.AuthProviderCertURL,
		ClientCertURL:       certURL,
	}
}
