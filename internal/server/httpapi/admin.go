package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"flax/internal/server/services"
)

func (a *API) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := a.admin.Verify(r.Context(), req.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (a *API) handleChangeAdminPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := a.admin.ChangePassword(r.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Admin password updated"})
}

func (a *API) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	views, err := a.admin.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (a *API) handleAdminUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	targetID, err := pathUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := a.admin.UpdateUserRole(r.Context(), targetID, req.Role); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Status updated"})
}

func (a *API) handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	targetID, err := pathUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := a.admin.DeleteUser(r.Context(), targetID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

func (a *API) handleAdminListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := a.admin.ListClasses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

func (a *API) handleAdminCreateClass(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Code string `json:"code"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	class, err := a.admin.CreateClass(r.Context(), req.Name, req.Code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, class)
}

func (a *API) handleAdminUpdateClass(w http.ResponseWriter, r *http.Request) {
	var req services.ClassUpdate
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	class, err := a.admin.UpdateClass(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, class)
}

func (a *API) handleAdminDeleteClass(w http.ResponseWriter, r *http.Request) {
	if err := a.admin.DeleteClass(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Class deleted"})
}
