// Package httpapi exposes the REST surface over the application services.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	app "github.com/micropost/micropost/internal/app"
	"github.com/micropost/micropost/internal/app/domain/account"
	"github.com/micropost/micropost/internal/app/domain/message"
	"github.com/micropost/micropost/internal/app/storage"
	"github.com/micropost/micropost/pkg/logger"
)

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app *app.Application
	log *logger.Logger
}

// NewHandler returns the router exposing the core REST API. Middleware
// belongs on this router (Router.Use) so route templates are visible to it.
func NewHandler(application *app.Application, log *logger.Logger) *mux.Router {
	if log == nil {
		log = logger.NewDefault("httpapi")
	}
	h := &handler{app: application, log: log}

	r := mux.NewRouter()
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.HandleFunc("/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/login", h.login).Methods(http.MethodPost)
	r.HandleFunc("/messages", h.createMessage).Methods(http.MethodPost)
	r.HandleFunc("/messages", h.listMessages).Methods(http.MethodGet)
	r.HandleFunc("/messages/{id}", h.getMessage).Methods(http.MethodGet)
	r.HandleFunc("/messages/{id}", h.updateMessage).Methods(http.MethodPatch)
	r.HandleFunc("/messages/{id}", h.deleteMessage).Methods(http.MethodDelete)
	r.HandleFunc("/accounts/{id}/messages", h.accountMessages).Methods(http.MethodGet)
	return r
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// register handles POST /register. Any validation or persistence failure
// collapses to a bare 400.
func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var payload account.Account
	if err := decodeJSON(r.Body, &payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	created, err := h.app.Accounts.Register(r.Context(), payload)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// login handles POST /login. Unknown username, password mismatch, malformed
// body and store failure all collapse to a bare 401.
func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var payload account.Account
	if err := decodeJSON(r.Body, &payload); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	authed, err := h.app.Accounts.Authenticate(r.Context(), payload)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, authed)
}

func (h *handler) createMessage(w http.ResponseWriter, r *http.Request) {
	var payload message.Message
	if err := decodeJSON(r.Body, &payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	created, err := h.app.Messages.Create(r.Context(), payload)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// listMessages handles GET /messages. A store failure is logged and answered
// with an empty sequence; the caller never sees an error.
func (h *handler) listMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.app.Messages.List(r.Context())
	if err != nil {
		h.log.WithError(err).Errorf("list messages failed")
		writeJSON(w, http.StatusOK, []message.Message{})
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

// getMessage handles GET /messages/{id}. Absence and store failure are both
// answered with 200 and an empty body, indistinguishable to the caller.
func (h *handler) getMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	msg, err := h.app.Messages.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			h.log.WithError(err).Errorf("get message %d failed", id)
		}
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (h *handler) updateMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var payload message.Message
	if err := decodeJSON(r.Body, &payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	updated, err := h.app.Messages.UpdateText(r.Context(), id, payload.Text)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// deleteMessage handles DELETE /messages/{id}, returning the pre-deletion
// snapshot. Absence and store failure collapse to 200 with an empty body.
func (h *handler) deleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	snapshot, err := h.app.Messages.Delete(r.Context(), id)
	if err != nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *handler) accountMessages(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	msgs, err := h.app.Messages.ListByAccount(r.Context(), id)
	if err != nil {
		h.log.WithError(err).Errorf("list messages for account %d failed", id)
		writeJSON(w, http.StatusOK, []message.Message{})
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
