// Package fastlyapi is an in-memory fake of the parts of the Fastly API used
// by fastly-mutate. It is served over HTTP so the real API client is exercised.
package fastlyapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Operations recorded by the fake API.
const (
	OpListServices     = "ListServices"
	OpGetServiceDetail = "GetServiceDetail"
	OpCloneVersion     = "CloneServiceVersion"
	OpActivateVersion  = "ActivateServiceVersion"
	OpListVCL          = "ListCustomVcl"
	OpCreateVCL        = "CreateCustomVcl"
	OpUpdateVCL        = "UpdateCustomVcl"
	OpListBackends     = "ListBackends"
	OpCreateBackend    = "CreateBackend"
	OpUpdateBackend    = "UpdateBackend"
	OpListDomains      = "ListDomains"
	OpCreateDomain     = "CreateDomain"
	OpUpdateDomain     = "UpdateDomain"
)

type failure struct {
	status int
	msg    string
}

// Server is the fake API.
type Server struct {
	mu       sync.Mutex
	key      string
	services []*Service
	failures map[string]failure
	calls    []string
	keys     []string

	srv *httptest.Server
}

// New starts a fake API that accepts the given API key.
// The server is closed when the test finishes.
func New(t testing.TB, key string) *Server {
	t.Helper()

	s := &Server{
		key:      key,
		failures: map[string]failure{},
	}
	s.srv = httptest.NewServer(s.routes())
	t.Cleanup(s.srv.Close)

	return s
}

// URL is the base URL of the fake API.
func (s *Server) URL() string {
	return s.srv.URL
}

// AddService registers a service. Versions are copied.
func (s *Server) AddService(svc Service) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc.Type == "" {
		svc.Type = "vcl"
	}
	versions := make([]*Version, 0, len(svc.Versions))
	for _, v := range svc.Versions {
		c := v.Copy()
		if c.Active {
			c.Locked = true
		}
		versions = append(versions, c)
	}
	svc.Versions = versions

	s.services = append(s.services, &svc)
}

// Fail makes every call of the operation respond with status and msg.
func (s *Server) Fail(op string, status int, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[op] = failure{status: status, msg: msg}
}

// Calls returns the operations called so far, in order.
func (s *Server) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.calls...)
}

// Called reports whether the operation was called.
func (s *Server) Called(op string) bool {
	for _, c := range s.Calls() {
		if c == op {
			return true
		}
	}
	return false
}

// APIKeys returns the Fastly-Key header of every request received.
func (s *Server) APIKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.keys...)
}

// Version returns a copy of the service's version.
func (s *Server) Version(serviceID string, number int32) (*Version, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc := s.service(serviceID)
	if svc == nil {
		return nil, false
	}
	v := svc.version(number)
	if v == nil {
		return nil, false
	}

	return v.Copy(), true
}

// VersionCount returns how many versions the service has.
func (s *Server) VersionCount(serviceID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc := s.service(serviceID); svc != nil {
		return len(svc.Versions)
	}
	return 0
}

func (s *Server) service(id string) *Service {
	for _, svc := range s.services {
		if svc.ID == id {
			return svc
		}
	}
	return nil
}

func (svc *Service) version(number int32) *Version {
	for _, v := range svc.Versions {
		if v.Number == number {
			return v
		}
	}
	return nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.authenticate)

	r.Get("/service", s.op(OpListServices, s.listServices))
	r.Route("/service/{service_id}", func(r chi.Router) {
		r.Get("/details", s.op(OpGetServiceDetail, s.getServiceDetail))
		r.Route("/version/{version_id}", func(r chi.Router) {
			r.Put("/clone", s.op(OpCloneVersion, s.cloneVersion))
			r.Put("/activate", s.op(OpActivateVersion, s.activateVersion))

			r.Get("/vcl", s.op(OpListVCL, s.listVCL))
			r.Post("/vcl", s.op(OpCreateVCL, s.createVCL))
			r.Put("/vcl/{name}", s.op(OpUpdateVCL, s.updateVCL))

			r.Get("/backend", s.op(OpListBackends, s.listBackends))
			r.Post("/backend", s.op(OpCreateBackend, s.createBackend))
			r.Put("/backend/{name}", s.op(OpUpdateBackend, s.updateBackend))

			r.Get("/domain", s.op(OpListDomains, s.listDomains))
			r.Post("/domain", s.op(OpCreateDomain, s.createDomain))
			r.Put("/domain/{name}", s.op(OpUpdateDomain, s.updateDomain))
		})
	})

	return r
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("Fastly-Key")

		s.mu.Lock()
		s.keys = append(s.keys, key)
		s.mu.Unlock()

		if key != s.key {
			writeError(w, http.StatusUnauthorized, "Provided credentials are missing or invalid")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handler is called with the lock held.
type handler func(w http.ResponseWriter, r *http.Request)

func (s *Server) op(name string, h handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.calls = append(s.calls, name)

		if f, ok := s.failures[name]; ok {
			writeError(w, f.status, f.msg)
			return
		}
		h(w, r)
	}
}

// lookup resolves the service and version named in the path.
// A nil version means a response was already written.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*Service, *Version) {
	svc := s.service(chi.URLParam(r, "service_id"))
	if svc == nil || svc.Deleted {
		writeError(w, http.StatusNotFound, "Record not found")
		return nil, nil
	}

	number, err := strconv.ParseInt(chi.URLParam(r, "version_id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid version")
		return nil, nil
	}
	v := svc.version(int32(number))
	if v == nil {
		writeError(w, http.StatusNotFound, "Record not found")
		return nil, nil
	}

	return svc, v
}

// editable resolves the version and rejects changes to locked versions.
func (s *Server) editable(w http.ResponseWriter, r *http.Request) (*Service, *Version) {
	svc, v := s.lookup(w, r)
	if v == nil {
		return nil, nil
	}
	if v.Locked {
		writeError(w, http.StatusBadRequest, "Version locked")
		return nil, nil
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form")
		return nil, nil
	}
	return svc, v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"msg": msg})
}
