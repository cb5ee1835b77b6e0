package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (a *API) handleListMessages(w http.ResponseWriter, r *http.Request) {
	views, err := a.messages.List(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (a *API) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	view, err := a.messages.Post(r.Context(), userID(r), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (a *API) handleToggleMessageLike(w http.ResponseWriter, r *http.Request) {
	if err := a.messages.ToggleLike(r.Context(), userID(r), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (a *API) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := a.messages.Delete(r.Context(), userID(r), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Message deleted"})
}
