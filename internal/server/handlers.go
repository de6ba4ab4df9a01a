package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/boxwire/pkg/buildinfo"
	"github.com/matzehuels/boxwire/pkg/diagram"
	"github.com/matzehuels/boxwire/pkg/errors"
	"github.com/matzehuels/boxwire/pkg/export"
	bwio "github.com/matzehuels/boxwire/pkg/io"
	"github.com/matzehuels/boxwire/pkg/script"
	"github.com/matzehuels/boxwire/pkg/store"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"diagrams": names})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	etag := strconv.Quote(store.Hash(data))
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", export.FormatJSON.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// put validates the document and stores it re-encoded, so stored documents
// are always canonical.
func (s *Server) put(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !store.ValidName(name) {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid diagram name %q", name))
		return
	}
	d, err := bwio.ReadJSON(http.MaxBytesReader(w, r.Body, maxBody), s.diagramOpts...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if _, err := s.store.Get(r.Context(), name); store.IsNotFound(err) {
		status = http.StatusCreated
	}
	etag, err := s.save(r, name, d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("ETag", strconv.Quote(etag))
	writeJSON(w, status, map[string]string{"name": name, "etag": etag})
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type changeJSON struct {
	Kind   string   `json:"kind"`
	Phase  string   `json:"phase"`
	ID     string   `json:"id"`
	Rect   []string `json:"rect,omitempty"`
	Order  []string `json:"order,omitempty"`
	Offset string   `json:"offset,omitempty"`
	Path   []string `json:"path,omitempty"`
}

type replayJSON struct {
	Steps   int          `json:"steps"`
	Armed   int          `json:"armed"`
	Commits int          `json:"commits"`
	Cancels int          `json:"cancels"`
	Changes []changeJSON `json:"changes"`
	Saved   bool         `json:"saved"`
	ETag    string       `json:"etag,omitempty"`
}

func (s *Server) replay(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read script"))
		return
	}
	sc, err := script.Parse(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.load(r, name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := script.Replay(r.Context(), d, sc, s.gestureOpts...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := replayJSON{
		Steps:   res.Steps,
		Armed:   res.Armed,
		Commits: res.Commits(),
		Cancels: res.Cancels(),
		Changes: make([]changeJSON, 0, len(res.Changes)),
	}
	for _, c := range res.Changes {
		out.Changes = append(out.Changes, fromChange(c))
	}
	if dry, _ := strconv.ParseBool(r.URL.Query().Get("dry_run")); !dry {
		if out.ETag, err = s.save(r, name, d); err != nil {
			s.writeError(w, r, err)
			return
		}
		out.Saved = true
	}
	writeJSON(w, http.StatusOK, out)
}

func fromChange(c diagram.Change) changeJSON {
	out := changeJSON{Kind: c.Kind.String(), Phase: c.Phase.String(), ID: c.ID}
	switch c.Kind {
	case diagram.KindResize:
		out.Rect = []string{c.Rect.Left.String(), c.Rect.Top.String(), c.Rect.Width.String(), c.Rect.Height.String()}
	case diagram.KindReorder:
		out.Order = c.Order
	case diagram.KindOffset:
		out.Offset = c.Offset.String()
	case diagram.KindRearrange:
		for _, l := range c.Path {
			out.Path = append(out.Path, l.String())
		}
	}
	return out
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	f, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.load(r, chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := export.Render(r.Context(), d, f, s.exportOpts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", f.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) load(r *http.Request, name string) (*diagram.Diagram, error) {
	data, err := s.store.Get(r.Context(), name)
	if err != nil {
		return nil, err
	}
	return bwio.Unmarshal(data, s.diagramOpts...)
}

func (s *Server) save(r *http.Request, name string, d *diagram.Diagram) (string, error) {
	data, err := bwio.Marshal(d)
	if err != nil {
		return "", err
	}
	if err := s.store.Put(r.Context(), name, data); err != nil {
		return "", err
	}
	return store.Hash(data), nil
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, map[string]errorBody{
		"error": {Code: string(code), Message: errors.UserMessage(err)},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf("encode response: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}
