package httpapi

import (
	"fmt"
	"net/http"

	"flax/internal/common"
)

func (a *API) handleListClasses(w http.ResponseWriter, r *http.Request) {
	views, err := a.classes.List(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (a *API) handleJoinClass(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClassID string `json:"classId"`
		Code    string `json:"code"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !common.IsDigitString(req.Code, common.ClassCodeLength) {
		writeError(w, fmt.Errorf("malformed class code: %w", common.ErrValidation))
		return
	}

	if err := a.classes.Join(r.Context(), userID(r), req.ClassID, req.Code); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (a *API) handleSelectClass(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClassID string `json:"classId"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := a.classes.Select(r.Context(), userID(r), req.ClassID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
