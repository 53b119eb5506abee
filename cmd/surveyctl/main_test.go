package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kaanoztekin99/3d-object-generation/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCatalogCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
questions:
  - id: chair
    text: Which chair?
    item_a: a.glb
    item_b: b.glb
`), 0644))

	out, err := run(t, "catalog", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "chair\tWhich chair?")
	assert.Contains(t, out, "1 questions, 2 rating fields per submission")
}

func TestCatalogCommandInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	require.NoError(t, os.WriteFile(path, []byte("questions: []\n"), 0644))

	_, err := run(t, "catalog", "-f", path)
	assert.Error(t, err)
}

func TestSubmitCommand(t *testing.T) {
	var got client.SaveRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "rows.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rows":[["Alice","F","25","Beginner","q1","Model A","4"]]}`), 0644))

	out, err := run(t, "submit", "-f", path, "--endpoint", srv.URL+"/save")
	require.NoError(t, err)
	assert.Contains(t, out, "submitted 1 rows")
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "Model A", got.Rows[0][5])
}

func TestSubmitCommandServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid row"}`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "rows.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rows":[["Alice"]]}`), 0644))

	_, err := run(t, "submit", "-f", path, "--endpoint", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid row")
}
