package google

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rotisserie/eris"
)

// SheetsScope grants read/write access to spreadsheets.
const SheetsScope = "https://www.googleapis.com/auth/spreadsheets"

const (
	jwtBearerGrant = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	assertionTTL   = time.Hour
	// tokens are refreshed this long before they expire
	expiryDelta = time.Minute
)

// tokenSource exchanges a signed service-account assertion for an OAuth2
// access token and reuses it until shortly before expiry.
type tokenSource struct {
	creds Credentials
	key   *rsa.PrivateKey
	scope string
	http  *http.Client
	now   func() time.Time

	mu     sync.Mutex
	token  string
	expiry time.Time
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

func newTokenSource(creds Credentials, scope string, hc *http.Client) (*tokenSource, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(NormalizePrivateKey(creds.PrivateKey)))
	if err != nil {
		return nil, eris.Wrap(err, "google: parse private key")
	}
	return &tokenSource{
		creds: creds,
		key:   key,
		scope: scope,
		http:  hc,
		now:   time.Now,
	}, nil
}

// Token returns a valid access token, fetching a new one when needed.
func (ts *tokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.token != "" && ts.now().Add(expiryDelta).Before(ts.expiry) {
		return ts.token, nil
	}

	assertion, err := ts.assertion()
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", jwtBearerGrant)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.creds.TokenURI, strings.NewReader(form.Encode()))
	if err != nil {
		return "", eris.Wrap(err, "google: create token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "google: send token request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "google: read token response")
	}

	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("google: token exchange status %d: %s", resp.StatusCode, string(body))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", eris.Wrap(err, "google: unmarshal token response")
	}
	if tr.AccessToken == "" {
		return "", eris.New("google: token response has no access_token")
	}

	ts.token = tr.AccessToken
	ts.expiry = ts.now().Add(time.Duration(tr.ExpiresIn) * time.Second)

	return ts.token, nil
}

func (ts *tokenSource) assertion() (string, error) {
	now := ts.now()
	claims := jwt.MapClaims{
		"iss":   ts.creds.ClientEmail,
		"scope": ts.scope,
		"aud":   ts.creds.TokenURI,
		"iat":   now.Unix(),
		"exp":   now.Add(assertionTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = ts.creds.PrivateKeyID

	signed, err := tok.SignedString(ts.key)
	if err != nil {
		return "", eris.Wrap(err, "google: sign assertion")
	}
	return signed, nil
}
