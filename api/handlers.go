package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/tb-digital/formrelay"
	"github.com/tb-digital/formrelay/domain"
)

// Server holds the handlers for both the public submit endpoint and the dashboard group.
type Server struct {
	relay *formrelay.Relay
}

func NewServer(relay *formrelay.Relay) *Server {
	return &Server{relay: relay}
}

// SubmitForm accepts a public form submission for the kind named in the URL. The
// response status distinguishes the three outcomes of the store-then-send protocol:
// 422 when validation rejected the payload (nothing was saved), 500 when the local
// write failed (nothing was saved), 201 when the record was saved and delivered, and
// 202 when it was saved locally but remote delivery is still pending.
func (s *Server) SubmitForm(w http.ResponseWriter, r *http.Request) {
	kind := domain.FormKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		writeError(w, http.StatusNotFound, "unknown form kind")
		return
	}

	var values map[string]string
	if err := readJSON(r, &values); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields, err := domain.FieldsFromValues(kind, values)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown form kind")
		return
	}

	result, err := s.relay.Submit(r.Context(), fields)
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error": validationErr.Error(),
				"field": validationErr.Field,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "could not save submission")
		return
	}

	status := http.StatusCreated
	if !result.Synced {
		status = http.StatusAccepted
	}
	writeJSON(w, status, map[string]any{
		"id":     result.ID,
		"synced": result.Synced,
	})
}

// Login checks the configured dashboard credentials and issues a token.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	dashboard := s.relay.Config.Dashboard
	if req.Email != dashboard.Email ||
		bcrypt.CompareHashAndPassword([]byte(dashboard.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := GenerateToken(dashboard.JWTSecret, req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"token": token,
		"email": req.Email,
	})
}

// ListSubmissions serves the filtered customer-service view. The search, status and
// origin query parameters mirror the dashboard filter controls; absent filters match
// everything.
func (s *Server) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	statusFilter := query.Get("status")
	if statusFilter == "" {
		statusFilter = formrelay.FilterAll
	}
	originFilter := query.Get("origin")
	if originFilter == "" {
		originFilter = formrelay.FilterAll
	}

	subs := s.relay.Filtered(query.Get("search"), statusFilter, originFilter)
	writeJSON(w, http.StatusOK, map[string]any{
		"submissions": subs,
		"total":       len(subs),
	})
}

// GetSubmission serves one submission with its responses.
func (s *Server) GetSubmission(w http.ResponseWriter, r *http.Request) {
	sub, err := s.relay.Repo.GetSubmission(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrSubmissionNotFound) {
			writeError(w, http.StatusNotFound, "submission not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not read submission")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// Stats serves the customer-service roll-up alongside the store-level sync split.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	service := s.relay.ServiceStats()

	store, err := s.relay.Repo.CountStats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not read store stats")
		return
	}

	responses, err := s.relay.Repo.CountResponses()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not read store stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"service":   service,
		"store":     store,
		"responses": responses,
	})
}

// UpdateStatus sets the workflow status of a submission.
func (s *Server) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status := domain.Status(req.Status)
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.relay.Repo.UpdateStatus(id, status); err != nil {
		writeError(w, http.StatusInternalServerError, "could not update status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":     id,
		"status": req.Status,
	})
}

// AppendResponse records a customer-service reply against a submission. The store
// forces the submission's status to responded as part of the same write.
func (s *Server) AppendResponse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subject string `json:"subject"`
		Message string `json:"message"`
		SentTo  string `json:"sentTo"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Subject == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "subject and message are required")
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.relay.Repo.AppendResponse(id, req.Subject, req.Message, req.SentTo); err != nil {
		writeError(w, http.StatusInternalServerError, "could not record response")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// Sync triggers a batch delivery of all pending submissions and reports the summary.
func (s *Server) Sync(w http.ResponseWriter, r *http.Request) {
	report, err := s.relay.SyncAllPending(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not read pending submissions")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Logs serves the sync activity log.
func (s *Server) Logs(w http.ResponseWriter, r *http.Request) {
	logs, err := s.relay.Repo.GetSyncLogs()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not read sync logs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"logs":  logs,
		"total": len(logs),
	})
}

// GetFilters serves the saved dashboard filter preferences.
func (s *Server) GetFilters(w http.ResponseWriter, r *http.Request) {
	filters, err := s.relay.Repo.GetFilters()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not read filters")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"filters": filters})
}

// SetFilters replaces the saved dashboard filter preferences.
func (s *Server) SetFilters(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filters []string `json:"filters"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.relay.Repo.SetFilters(req.Filters); err != nil {
		writeError(w, http.StatusInternalServerError, "could not save filters")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"filters": req.Filters})
}

// Health reports liveness without touching the store.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
