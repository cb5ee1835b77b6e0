package httpapi

import (
	"net/http"
)

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		Username  string `json:"username"`
		Password  string `json:"password"`
		ClassCode string `json:"classCode"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID, err := a.users.Register(r.Context(), req.Name, req.Username, req.Password, req.ClassCode)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Registered successfully",
		"userId":  userID,
	})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	token, err := a.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	profile, err := a.users.Me(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
