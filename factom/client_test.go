package factom_test

import (
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Factom-Asset-Tokens/factom-wrapper/factom"
)

// recorded is a request received by a fakeService.
type recorded struct {
	Method      string
	Path        string // Unescaped path below /v1/.
	RawPath     string
	Query       string
	ContentType string
	Body        string
	User        string // From BasicAuth.
}

// fakeService answers every v1 request with the body registered for its
// unescaped path and records the request.
type fakeService struct {
	mu        sync.Mutex
	responses map[string]string
	status    int
	requests  []recorded
}

func newFakeService() *fakeService {
	return &fakeService{responses: make(map[string]string)}
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := r.URL.Path[len("/v1/"):]
	user, _, _ := r.BasicAuth()
	f.mu.Lock()
	f.requests = append(f.requests, recorded{
		Method:      r.Method,
		Path:        path,
		RawPath:     r.URL.EscapedPath(),
		Query:       r.URL.RawQuery,
		ContentType: r.Header.Get("Content-Type"),
		Body:        string(body),
		User:        user,
	})
	res, ok := f.responses[path]
	status := f.status
	f.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	if status != 0 {
		w.WriteHeader(status)
	}
	io.WriteString(w, res)
}

func (f *fakeService) set(path, response string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[path] = response
}

func (f *fakeService) setStatus(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

func (f *fakeService) last() recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return recorded{}
	}
	return f.requests[len(f.requests)-1]
}

// newTestClient returns a Client pointed at fake factomd and factom-walletd
// servers which are closed when the test ends.
func newTestClient(t *testing.T) (*factom.Client, *fakeService, *fakeService) {
	factomd, walletd := newFakeService(), newFakeService()
	fSrv := httptest.NewServer(factomd)
	wSrv := httptest.NewServer(walletd)
	t.Cleanup(fSrv.Close)
	t.Cleanup(wSrv.Close)
	c := factom.NewClient()
	c.FactomdServer = fSrv.URL
	c.WalletdServer = wSrv.URL
	return c, factomd, walletd
}

// closedServer returns the URL of a server that is no longer listening.
func closedServer() string {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

const (
	ecAdr = "EC1m9mouvUQeEidmqpUYpYtXg8fvTYi6GNHaKg8KMLbdMBrFfmUa"
	faAdr = "FA1y5ZGuHSLmf2TqNf6hVMkPiNGyQpQDTFJvDLRkKQaoPo4bmbgu"
)

var hexEC = hex.EncodeToString([]byte(ecAdr))
