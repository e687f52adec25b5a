package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onesignal/pkg/export"
	"github.com/dmitrymomot/onesignal/pkg/notification"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func setCredentials(t *testing.T, baseURL string) {
	t.Helper()
	t.Setenv("ONESIGNAL_APP_ID", "app-1")
	t.Setenv("ONESIGNAL_REST_API_KEY", "key-1")
	t.Setenv("ONESIGNAL_BASE_URL", baseURL)
}

func TestBuildNotification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		channel notification.Channel
		attrs   map[string]any
		wantErr error
	}{
		{name: "push", channel: notification.ChannelPush, attrs: map[string]any{"contents": map[string]any{"en": "Hi"}}},
		{name: "email", channel: notification.ChannelEmail, attrs: map[string]any{"email_subject": "S", "email_body": "B"}},
		{name: "sms", channel: notification.ChannelSMS, attrs: map[string]any{"contents": map[string]any{"en": "Hi"}}},
		{name: "push without content", channel: notification.ChannelPush, attrs: map[string]any{"name": "x"}, wantErr: notification.ErrMissingContent},
		{name: "unknown channel", channel: "pigeon", attrs: map[string]any{"name": "x"}, wantErr: notification.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n, err := buildNotification(tt.channel, tt.attrs)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.channel, n.Channel())
		})
	}
}

func TestReadAttributes(t *testing.T) {
	t.Parallel()

	yamlFile := writeFile(t, "n.yaml", "contents:\n  en: Hello\nfilters:\n  - field: tag\n    key: level\n    relation: \">\"\n    value: \"10\"\n")
	jsonFile := writeFile(t, "n.json", `{"contents":{"en":"Hello"},"priority":10}`)

	attrs, err := readAttributes(yamlFile)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"en": "Hello"}, attrs["contents"])
	assert.Len(t, attrs["filters"], 1)

	attrs, err = readAttributes(jsonFile)
	require.NoError(t, err)
	assert.Equal(t, 10, attrs["priority"])

	_, err = readAttributes(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = readAttributes(writeFile(t, "bad.yaml", "- a\n- b\n"))
	assert.Error(t, err)
}

func TestSendCmd_DryRun(t *testing.T) {
	t.Parallel()

	file := writeFile(t, "n.yaml", "contents:\n  en: Hello\n")

	out, err := execute(t, "send", "--file", file, "--segment", "Active Users", "--dry-run")
	require.NoError(t, err)
	assert.JSONEq(t, `{"contents":{"en":"Hello"},"included_segments":["Active Users"]}`, out)
}

func TestSendCmd(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notifications", r.URL.Path)
		assert.Equal(t, "Basic key-1", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"id":"n-1","recipients":3}`)
	}))
	t.Cleanup(server.Close)
	setCredentials(t, server.URL)

	file := writeFile(t, "n.json", `{"contents":{"en":"Hello"}}`)
	out, err := execute(t, "send", "-f", file, "--external-user-id", "u-1", "--idempotent")
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"n-1","recipients":3}`, out)
	assert.Equal(t, "app-1", body["app_id"])
	assert.Equal(t, []any{"u-1"}, body["include_external_user_ids"])
	assert.NotEmpty(t, body["external_id"])
}

func TestSendCmd_NoRecipients(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"","recipients":0,"errors":["All included players are not subscribed"]}`)
	}))
	t.Cleanup(server.Close)
	setCredentials(t, server.URL)

	file := writeFile(t, "n.json", `{"contents":{"en":"Hello"}}`)
	out, err := execute(t, "send", "-f", file)
	require.Error(t, err)
	assert.Contains(t, out, "All included players are not subscribed")
}

func TestExportCmd(t *testing.T) {
	var csv bytes.Buffer
	zw := gzip.NewWriter(&csv)
	_, _ = io.WriteString(zw, "id,identifier\np-1,t-1\np-2,t-2\n")
	require.NoError(t, zw.Close())

	var attempts atomic.Int32
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/players/csv_export":
			assert.Equal(t, "app-1", r.URL.Query().Get("app_id"))
			_, _ = io.WriteString(w, `{"csv_file_url":"`+server.URL+`/files/players.csv.gz"}`)
		case r.URL.Path == "/files/players.csv.gz":
			if attempts.Add(1) == 1 {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write(csv.Bytes())
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	setCredentials(t, server.URL)

	dir := t.TempDir()
	out, err := execute(t, "export", "--sink", "local", "--dir", dir, "--wait", "5s", "--interval", "10ms", "--count")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, filepath.Join(dir, "players.csv.gz"), lines[0])
	assert.Equal(t, "2 players", lines[1])
	assert.Equal(t, int32(2), attempts.Load())
}

func TestExportCmd_NoDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"csv_file_url":"https://cdn.example.com/p.csv.gz"}`)
	}))
	t.Cleanup(server.Close)
	setCredentials(t, server.URL)

	out, err := execute(t, "export", "--no-download", "--extra-field", "country")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/p.csv.gz\n", out)
}

func TestExportCmd_UnknownSink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"csv_file_url":"https://cdn.example.com/p.csv.gz"}`)
	}))
	t.Cleanup(server.Close)
	setCredentials(t, server.URL)

	_, err := execute(t, "export", "--sink", "ftp")
	assert.ErrorContains(t, err, "unknown sink")
}

func TestRootCmd_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	file := writeFile(t, "n.yaml", "contents:\n  en: Hello\n")
	_, err := execute(t, "send", "--file", file, "--dry-run", "--log-level", "loud")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestSendCmd_LogsCarryCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"n-1"}`)
	}))
	t.Cleanup(server.Close)
	setCredentials(t, server.URL)

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"send", "-f", writeFile(t, "n.json", `{"contents":{"en":"Hi"}}`), "--log-level", "debug"})
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, errOut.String(), "command=send")
	assert.Contains(t, errOut.String(), `msg="request finished"`)
}

func TestSendCmd_DryRunLocalizedShorthand(t *testing.T) {
	t.Parallel()

	file := writeFile(t, "n.yaml", "contents: Hi\nheadings:\n  en: Title\n  es: Titulo\n")
	out, err := execute(t, "send", "--file", file, "--dry-run")
	require.NoError(t, err)
	assert.JSONEq(t, `{"contents":{"en":"Hi"},"headings":{"en":"Title","es":"Titulo"}}`, out)

	file = writeFile(t, "bad.yaml", "contents:\n  es: hola\n")
	_, err = execute(t, "send", "--file", file, "--dry-run")
	assert.ErrorIs(t, err, notification.ErrMissingDefaultText)
}

func TestExportCmd_S3Sink(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(t.TempDir(), "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(t.TempDir(), "credentials"))

	var uploaded atomic.Value
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/players/csv_export":
			_, _ = io.WriteString(w, `{"csv_file_url":"`+server.URL+`/files/players.csv.gz"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/files/players.csv.gz":
			_, _ = io.WriteString(w, "id\np-1\n")
		case r.Method == http.MethodPut:
			_, _ = io.Copy(io.Discard, r.Body)
			uploaded.Store(r.URL.Path)
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	setCredentials(t, server.URL)
	t.Setenv("EXPORT_S3_BUCKET", "exports")
	t.Setenv("EXPORT_S3_REGION", "us-east-1")
	t.Setenv("EXPORT_S3_ACCESS_KEY_ID", "AKID")
	t.Setenv("EXPORT_S3_SECRET_KEY", "secret")
	t.Setenv("EXPORT_S3_ENDPOINT", server.URL)
	t.Setenv("EXPORT_S3_FORCE_PATH_STYLE", "true")

	out, err := execute(t, "export", "--sink", "s3", "--upload-timeout", "10s")
	require.NoError(t, err)
	assert.Equal(t, "s3://exports/onesignal/exports/players.csv.gz\n", out)
	assert.Equal(t, "/exports/onesignal/exports/players.csv.gz", uploaded.Load())

	_, err = execute(t, "export", "--sink", "s3", "--aws-profile", "missing-profile")
	assert.ErrorIs(t, err, export.ErrFailedToLoadConfig)
}
