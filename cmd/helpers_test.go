package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadflow/internal/config"
)

// fakeSheets is an in-memory Sheets API with a token endpoint.
type fakeSheets struct {
	srv  *httptest.Server
	mu   sync.Mutex
	rows [][]any
}

func newFakeSheets(t *testing.T) *fakeSheets {
	t.Helper()
	fs := &fakeSheets{}
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"test-token","expires_in":3600}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":append") {
			body, _ := io.ReadAll(r.Body)
			var vr struct {
				Values [][]any `json:"values"`
			}
			_ = json.Unmarshal(body, &vr)
			fs.mu.Lock()
			fs.rows = append(fs.rows, vr.Values...)
			fs.mu.Unlock()
			_, _ = w.Write([]byte(`{}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	fs.srv = httptest.NewServer(mux)
	t.Cleanup(fs.srv.Close)
	return fs
}

func (fs *fakeSheets) appended() [][]any {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([][]any(nil), fs.rows...)
}

func testPrivateKey(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	pemKey := string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
	// Keys are stored in env vars with escaped newlines.
	return strings.ReplaceAll(pemKey, "\n", `\n`)
}

// testConfig returns a config valid for every mode, with the sheets sink
// pointed at baseURL.
func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	return &config.Config{
		Sink: config.SinkConfig{Driver: "sheets"},
		Google: config.GoogleConfig{
			Type:                "service_account",
			ProjectID:           "proj",
			PrivateKeyID:        "kid",
			PrivateKey:          testPrivateKey(t),
			ClientEmail:         "svc@proj.iam.gserviceaccount.com",
			ClientID:            "123",
			AuthURI:             "https://accounts.google.com/o/oauth2/auth",
			TokenURI:            baseURL + "/token",
			AuthProviderCertURL: "https://www.googleapis.com/oauth2/v1/certs",
			ClientCertURL:       "https://www.googleapis.com/robot/v1/metadata/x509/svc",
			SpreadsheetID:       "sheet-123",
			SheetName:           "Sheet1",
			SheetsBaseURL:       baseURL,
			TimeoutSecs:         5,
		},
		LLM:      config.LLMConfig{Provider: "openai", TimeoutSecs: 5, MaxTokens: 100},
		OpenAI:   config.OpenAIConfig{Key: "sk-test", BaseURL: baseURL, Model: "gpt-test"},
		SMTP:     config.SMTPConfig{Host: "127.0.0.1", Port: 2525, User: "me@example.com", Password: "pw", TimeoutSecs: 1},
		Outreach: config.OutreachConfig{Subject: "Free 15-Min Workflow Audit", Industries: []string{"Technology", "Healthcare"}},
		Server:   config.ServerConfig{Host: "127.0.0.1", Port: 8501},
		Log:      config.LogConfig{Level: "info", Format: "json"},
	}
}

// withConfig swaps the global config for the duration of a test.
func withConfig(t *testing.T, c *config.Config) {
	t.Helper()
	old := cfg
	cfg = c
	t.Cleanup(func() { cfg = old })
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
