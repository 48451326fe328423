package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erp/accounting/tests/testutil"
	"github.com/stretchr/testify/require"
)

// apiClient sends authenticated requests to a fresh test server
type apiClient struct {
	t     *testing.T
	srv   *testutil.TestServer
	token string
}

func newAPIClient(t *testing.T) *apiClient {
	t.Helper()
	srv := testutil.NewTestServer(t)
	return &apiClient{t: t, srv: srv, token: srv.Token(t, "ADMIN")}
}

func (a *apiClient) get(path string) *httptest.ResponseRecorder {
	return a.srv.Do(a.t, http.MethodGet, path, a.token, nil)
}

func (a *apiClient) post(path string, body any) *httptest.ResponseRecorder {
	return a.srv.Do(a.t, http.MethodPost, path, a.token, body)
}

func (a *apiClient) put(path string, body any) *httptest.ResponseRecorder {
	return a.srv.Do(a.t, http.MethodPut, path, a.token, body)
}

func (a *apiClient) delete(path string) *httptest.ResponseRecorder {
	return a.srv.Do(a.t, http.MethodDelete, path, a.token, nil)
}

// mustCreate posts body and requires 201
func (a *apiClient) mustCreate(path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	w := a.post(path, body)
	require.Equal(a.t, http.StatusCreated, w.Code, "POST %s: %s", path, w.Body.String())
	return w
}
