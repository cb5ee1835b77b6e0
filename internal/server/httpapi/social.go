package httpapi

import (
	"net/http"
)

func (a *API) handleClassmates(w http.ResponseWriter, r *http.Request) {
	views, err := a.social.Classmates(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (a *API) handleUserProfile(w http.ResponseWriter, r *http.Request) {
	targetID, err := pathUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	view, err := a.social.Profile(r.Context(), userID(r), targetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *API) handleToggleUserLike(w http.ResponseWriter, r *http.Request) {
	targetID, err := pathUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	view, err := a.social.ToggleLike(r.Context(), userID(r), targetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
