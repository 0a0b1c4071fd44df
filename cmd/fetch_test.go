package cmd

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nile-cgpa/terminal/internal/core"
)

func runFetch(t *testing.T, handler http.HandlerFunc) (string, error) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	serverURL = server.URL
	logger = zap.NewNop()
	fetchFromEnv = true
	t.Cleanup(func() {
		serverURL = ""
		fetchFromEnv = false
	})

	var out bytes.Buffer
	fetchCmd.SetOut(&out)
	fetchCmd.SetContext(context.Background())
	err := fetchCmd.RunE(fetchCmd, nil)
	return out.String(), err
}

func TestFetchPrintsRecords(t *testing.T) {
	t.Setenv("STUDENT_ID", "20210001")
	t.Setenv("PASSWORD", "secret")

	out, err := runFetch(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"course": "CSC101", "grade": "A"}]`)
	})
	require.NoError(t, err)
	assert.Equal(t, "course: CSC101\ngrade: A\n   \n", out)
}

func TestFetchReportsHTTPError(t *testing.T) {
	t.Setenv("STUDENT_ID", "20210001")
	t.Setenv("PASSWORD", "wrong")

	out, err := runFetch(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	assert.ErrorIs(t, err, errFetchFailed)
	assert.Equal(t, "Error: HTTP error! status: 401\n", out)
}

func TestFetchRequiresEnvironmentCredentials(t *testing.T) {
	t.Setenv("STUDENT_ID", "")
	t.Setenv("PASSWORD", "secret")

	called := false
	out, err := runFetch(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	assert.ErrorIs(t, err, errFetchFailed)
	assert.False(t, called)
	assert.Equal(t, core.MissingEnvCredentialLines[0]+"\n"+core.MissingEnvCredentialLines[1]+"\n", out)
}

func TestValidateServerURL(t *testing.T) {
	assert.NoError(t, validateServerURL(""))
	assert.NoError(t, validateServerURL("https://cgpa.example.edu"))
	assert.Error(t, validateServerURL("localhost"))
	assert.Error(t, validateServerURL("/relative"))
}
