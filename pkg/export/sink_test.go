package export_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onesignal/pkg/export"
)

func TestTempFileSink(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink := export.NewTempFileSink(dir)

	path, err := sink.Store(context.Background(), "players.csv.gz", strings.NewReader("data"))
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, "players.csv.gz"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))
}

func TestTempFileSink_CanceledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	location, err := export.NewTempFileSink(dir).Store(ctx, "players.csv.gz", strings.NewReader("data"))
	assert.ErrorIs(t, err, export.ErrOperationCanceled)
	assert.Empty(t, location)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "partial file must be removed")
}

func TestLocalSink(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink, err := export.NewLocalSink(dir)
	require.NoError(t, err)

	tests := []struct {
		name    string
		file    string
		want    string
		wantErr error
	}{
		{name: "plain name", file: "players.csv.gz", want: filepath.Join(dir, "players.csv.gz")},
		{name: "nested", file: "2024/01/players.csv.gz", want: filepath.Join(dir, "2024", "01", "players.csv.gz")},
		{name: "traversal", file: "../escape.csv.gz", wantErr: export.ErrInvalidPath},
		{name: "hidden traversal", file: "a/../../escape.csv.gz", wantErr: export.ErrInvalidPath},
		{name: "base dir itself", file: ".", wantErr: export.ErrInvalidPath},
		{name: "empty", file: " ", wantErr: export.ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := sink.Store(context.Background(), tt.file, strings.NewReader("x"))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.FileExists(t, got)
		})
	}
}

func TestLocalSink_FailedWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink, err := export.NewLocalSink(dir)
	require.NoError(t, err)

	location, err := sink.Store(context.Background(), "players.csv.gz", iotest.ErrReader(errors.New("connection reset")))
	assert.ErrorIs(t, err, export.ErrFailedToWriteFile)
	assert.Empty(t, location)
	assert.NoFileExists(t, filepath.Join(dir, "players.csv.gz"))
}

func TestNewLocalSink_EmptyDir(t *testing.T) {
	t.Parallel()

	_, err := export.NewLocalSink("")
	assert.ErrorIs(t, err, export.ErrInvalidConfig)
}
