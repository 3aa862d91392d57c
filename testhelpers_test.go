package arcanum

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	userJSON      = `{"id":7,"netId":"alice","name":"Alice","authorities":["USER","ADMIN"]}`
	vaultJSON     = `{"id":1,"name":"Prod","description":"P"}`
	secretJSON    = `{"id":42,"name":"database","azureId":"kv-42","fields":["username","password"],"vault":` + vaultJSON + `,"owner":` + userJSON + `}`
	projectJSON   = `{"id":3,"name":"Billing","description":"Billing service","slug":"billing","owner":` + userJSON + `,"secrets":[` + secretJSON + `]}`
	tokenJSON     = `{"principal":"ci-bot","apiKey":"ak","apiSecret":"as","userToken":false,"owner":` + userJSON + `,"expiry":4102444800,"authorities":["USER"]}`
	selfJSON      = `{"principal":"ci-bot","encryptedSecret":"enc","userToken":true,"owner":` + userJSON + `,"expiry":1000,"authorities":["USER"]}`
	decryptedJSON = `{"name":"database","slug":"database","description":"DB","vault":"Prod","fields":[{"name":"Username","slug":"username","value":"admin"},{"name":"Password","slug":"password","value":"hunter2"}]}`
)

// reply is a canned response.
type reply struct {
	status int
	body   string
	header map[string]string
}

// recorded is a request as seen by the test server.
type recorded struct {
	Method      string
	Path        string
	Body        string
	ContentType string
}

// fakeAPI routes "METHOD escaped-path" to canned replies and records every
// request. Unknown routes answer 404.
type fakeAPI struct {
	mu       sync.Mutex
	routes   map[string]reply
	requests []recorded
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recorded{
		Method:      r.Method,
		Path:        r.URL.EscapedPath(),
		Body:        string(body),
		ContentType: r.Header.Get("Content-Type"),
	})
	rep, ok := f.routes[r.Method+" "+r.URL.EscapedPath()]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"no route"}`))
		return
	}
	for k, v := range rep.header {
		w.Header().Set(k, v)
	}
	if rep.status == 0 {
		rep.status = http.StatusOK
	}
	w.WriteHeader(rep.status)
	w.Write([]byte(rep.body))
}

func (f *fakeAPI) Requests() []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recorded(nil), f.requests...)
}

func newFakeClient(t *testing.T, routes map[string]reply) (*Client, *fakeAPI) {
	t.Helper()
	return newFakeClientWith(t, routes)
}

func newFakeClientWith(t *testing.T, routes map[string]reply, opts ...Option) (*Client, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{routes: routes}
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	opts = append([]Option{WithBaseURL(server.URL + "/api/")}, opts...)
	client, err := New("test-key", "test-secret", opts...)
	require.NoError(t, err)
	return client, api
}
