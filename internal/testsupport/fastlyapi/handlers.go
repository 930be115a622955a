package fastlyapi

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (s *Server) listServices(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 20)

	var live []*Service
	for _, svc := range s.services {
		if !svc.Deleted {
			live = append(live, svc)
		}
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(live) {
		start = len(live)
	}
	if end > len(live) {
		end = len(live)
	}

	items := []map[string]any{}
	for _, svc := range live[start:end] {
		items = append(items, map[string]any{
			"id":   svc.ID,
			"name": svc.Name,
			"type": svc.Type,
		})
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) getServiceDetail(w http.ResponseWriter, r *http.Request) {
	svc := s.service(chi.URLParam(r, "service_id"))
	if svc == nil || svc.Deleted {
		writeError(w, http.StatusNotFound, "Record not found")
		return
	}

	versions := []map[string]any{}
	for _, v := range svc.Versions {
		versions = append(versions, versionJSON(svc, v))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":       svc.ID,
		"name":     svc.Name,
		"type":     svc.Type,
		"versions": versions,
	})
}

func (s *Server) cloneVersion(w http.ResponseWriter, r *http.Request) {
	svc, v := s.lookup(w, r)
	if v == nil {
		return
	}

	var latest int32
	for _, existing := range svc.Versions {
		if existing.Number > latest {
			latest = existing.Number
		}
	}

	clone := v.Copy()
	clone.Number = latest + 1
	clone.Active = false
	clone.Locked = false
	svc.Versions = append(svc.Versions, clone)

	writeJSON(w, http.StatusOK, versionJSON(svc, clone))
}

func (s *Server) activateVersion(w http.ResponseWriter, r *http.Request) {
	svc, v := s.lookup(w, r)
	if v == nil {
		return
	}

	for _, existing := range svc.Versions {
		existing.Active = false
	}
	v.Active = true
	v.Locked = true

	writeJSON(w, http.StatusOK, versionJSON(svc, v))
}

func (s *Server) listVCL(w http.ResponseWriter, r *http.Request) {
	svc, v := s.lookup(w, r)
	if v == nil {
		return
	}

	items := []map[string]any{}
	for _, name := range sortedKeys(v.VCLs) {
		items = append(items, vclJSON(svc, v, v.VCLs[name]))
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) createVCL(w http.ResponseWriter, r *http.Request) {
	svc, v := s.editable(w, r)
	if v == nil {
		return
	}

	vcl := VCL{
		Name:    r.PostForm.Get("name"),
		Content: r.PostForm.Get("content"),
		Main:    formBool(r, "main"),
	}
	if vcl.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if _, ok := v.VCLs[vcl.Name]; ok {
		writeError(w, http.StatusConflict, "Duplicate record")
		return
	}
	setMainVCL(v, vcl)

	writeJSON(w, http.StatusOK, vclJSON(svc, v, vcl))
}

func (s *Server) updateVCL(w http.ResponseWriter, r *http.Request) {
	svc, v := s.editable(w, r)
	if v == nil {
		return
	}

	vcl, ok := v.VCLs[chi.URLParam(r, "name")]
	if !ok {
		writeError(w, http.StatusNotFound, "Record not found")
		return
	}
	if r.PostForm.Has("content") {
		vcl.Content = r.PostForm.Get("content")
	}
	if r.PostForm.Has("main") {
		vcl.Main = formBool(r, "main")
	}
	setMainVCL(v, vcl)

	writeJSON(w, http.StatusOK, vclJSON(svc, v, vcl))
}

// setMainVCL stores the VCL. Only one VCL per version can be main.
func setMainVCL(v *Version, vcl VCL) {
	if vcl.Main {
		for name, existing := range v.VCLs {
			existing.Main = false
			v.VCLs[name] = existing
		}
	}
	v.VCLs[vcl.Name] = vcl
}

func (s *Server) listBackends(w http.ResponseWriter, r *http.Request) {
	svc, v := s.lookup(w, r)
	if v == nil {
		return
	}

	items := []map[string]any{}
	for _, name := range sortedKeys(v.Backends) {
		items = append(items, backendJSON(svc, v, v.Backends[name]))
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) createBackend(w http.ResponseWriter, r *http.Request) {
	svc, v := s.editable(w, r)
	if v == nil {
		return
	}

	b := Backend{Name: r.PostForm.Get("name")}
	if b.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if _, ok := v.Backends[b.Name]; ok {
		writeError(w, http.StatusConflict, "Duplicate record")
		return
	}
	applyBackendForm(r, &b)
	v.Backends[b.Name] = b

	writeJSON(w, http.StatusOK, backendJSON(svc, v, b))
}

func (s *Server) updateBackend(w http.ResponseWriter, r *http.Request) {
	svc, v := s.editable(w, r)
	if v == nil {
		return
	}

	name := chi.URLParam(r, "name")
	b, ok := v.Backends[name]
	if !ok {
		writeError(w, http.StatusNotFound, "Record not found")
		return
	}
	applyBackendForm(r, &b)
	if newName := r.PostForm.Get("name"); newName != "" && newName != name {
		delete(v.Backends, name)
		b.Name = newName
	}
	v.Backends[b.Name] = b

	writeJSON(w, http.StatusOK, backendJSON(svc, v, b))
}

func applyBackendForm(r *http.Request, b *Backend) {
	form := r.PostForm
	if form.Has("address") {
		b.Address = form.Get("address")
	}
	if form.Has("port") {
		b.Port = formInt32(r, "port")
	}
	if form.Has("use_ssl") {
		b.UseSSL = formBool(r, "use_ssl")
	}
	if form.Has("ssl_cert_hostname") {
		b.SSLCertHostname = form.Get("ssl_cert_hostname")
	}
	if form.Has("ssl_sni_hostname") {
		b.SSLSNIHostname = form.Get("ssl_sni_hostname")
	}
	if form.Has("ssl_ca_cert") {
		b.SSLCACert = form.Get("ssl_ca_cert")
	}
	if form.Has("ssl_check_cert") {
		b.SSLCheckCert = formBool(r, "ssl_check_cert")
	}
	if form.Has("first_byte_timeout") {
		b.FirstByteTimeout = formInt32(r, "first_byte_timeout")
	}
}

func (s *Server) listDomains(w http.ResponseWriter, r *http.Request) {
	svc, v := s.lookup(w, r)
	if v == nil {
		return
	}

	items := []map[string]any{}
	for _, name := range sortedKeys(v.Domains) {
		items = append(items, domainJSON(svc, v, v.Domains[name]))
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) createDomain(w http.ResponseWriter, r *http.Request) {
	svc, v := s.editable(w, r)
	if v == nil {
		return
	}

	d := Domain{
		Name:    r.PostForm.Get("name"),
		Comment: r.PostForm.Get("comment"),
	}
	if d.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if _, ok := v.Domains[d.Name]; ok {
		writeError(w, http.StatusConflict, "Duplicate record")
		return
	}
	v.Domains[d.Name] = d

	writeJSON(w, http.StatusOK, domainJSON(svc, v, d))
}

func (s *Server) updateDomain(w http.ResponseWriter, r *http.Request) {
	svc, v := s.editable(w, r)
	if v == nil {
		return
	}

	d, ok := v.Domains[chi.URLParam(r, "name")]
	if !ok {
		writeError(w, http.StatusNotFound, "Record not found")
		return
	}
	if r.PostForm.Has("comment") {
		d.Comment = r.PostForm.Get("comment")
	}
	v.Domains[d.Name] = d

	writeJSON(w, http.StatusOK, domainJSON(svc, v, d))
}

func versionJSON(svc *Service, v *Version) map[string]any {
	return map[string]any{
		"number":     v.Number,
		"active":     v.Active,
		"locked":     v.Locked,
		"service_id": svc.ID,
	}
}

func vclJSON(svc *Service, v *Version, vcl VCL) map[string]any {
	return map[string]any{
		"name":       vcl.Name,
		"content":    vcl.Content,
		"main":       vcl.Main,
		"service_id": svc.ID,
		"version":    v.Number,
	}
}

func backendJSON(svc *Service, v *Version, b Backend) map[string]any {
	return map[string]any{
		"name":               b.Name,
		"address":            b.Address,
		"port":               b.Port,
		"use_ssl":            b.UseSSL,
		"ssl_cert_hostname":  b.SSLCertHostname,
		"ssl_sni_hostname":   b.SSLSNIHostname,
		"ssl_check_cert":     b.SSLCheckCert,
		"first_byte_timeout": b.FirstByteTimeout,
		"service_id":         svc.ID,
		"version":            v.Number,
	}
}

func domainJSON(svc *Service, v *Version, d Domain) map[string]any {
	return map[string]any{
		"name":       d.Name,
		"comment":    d.Comment,
		"service_id": svc.ID,
		"version":    v.Number,
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func queryInt(r *http.Request, name string, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func formBool(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.PostForm.Get(name))
	return b
}

func formInt32(r *http.Request, name string) int32 {
	n, _ := strconv.ParseInt(r.PostForm.Get(name), 10, 32)
	return int32(n)
}
