package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"flax/internal/logging"
	"flax/internal/server/config"
	"flax/internal/server/services"
	"flax/internal/server/store"
)

// API bundles the services behind the HTTP surface.
type API struct {
	users     *services.UserService
	classes   *services.ClassService
	messages  *services.MessageService
	social    *services.SocialService
	admin     *services.AdminService
	secretKey []byte
	logger    logging.Logger
}

// New wires the full service stack on top of one store manager.
func New(m *store.Manager, logger logging.Logger, cfg *config.Config) *API {
	return &API{
		users:     services.NewUserService(m, cfg),
		classes:   services.NewClassService(m),
		messages:  services.NewMessageService(m),
		social:    services.NewSocialService(m),
		admin:     services.NewAdminService(m, logger, cfg),
		secretKey: []byte(cfg.SecretKey),
		logger:    logger.With("module", "httpapi"),
	}
}

// Admin exposes the admin service for startup bootstrap.
func (a *API) Admin() *services.AdminService {
	return a.admin
}

// Router builds the route table.
func (a *API) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/auth/register", a.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", a.handleLogin).Methods(http.MethodPost)

	r.HandleFunc("/api/me", a.withUser(a.handleMe)).Methods(http.MethodGet)
	r.HandleFunc("/api/classes", a.withUser(a.handleListClasses)).Methods(http.MethodGet)
	r.HandleFunc("/api/join-class", a.withUser(a.handleJoinClass)).Methods(http.MethodPost)
	r.HandleFunc("/api/select-class", a.withUser(a.handleSelectClass)).Methods(http.MethodPost)

	r.HandleFunc("/api/messages", a.withUser(a.handleListMessages)).Methods(http.MethodGet)
	r.HandleFunc("/api/messages", a.withUser(a.handlePostMessage)).Methods(http.MethodPost)
	r.HandleFunc("/api/messages/{id}/like", a.withUser(a.handleToggleMessageLike)).Methods(http.MethodPost)
	r.HandleFunc("/api/messages/{id}", a.withUser(a.handleDeleteMessage)).Methods(http.MethodDelete)

	r.HandleFunc("/api/classmates", a.withUser(a.handleClassmates)).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{id}", a.withUser(a.handleUserProfile)).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{id}/like", a.withUser(a.handleToggleUserLike)).Methods(http.MethodPost)

	r.HandleFunc("/api/admin/login", a.handleAdminLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/change-password", a.withAdmin(a.handleChangeAdminPassword)).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/users", a.withAdmin(a.handleAdminListUsers)).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/users/{id}/status", a.withAdmin(a.handleAdminUpdateUserRole)).Methods(http.MethodPatch)
	r.HandleFunc("/api/admin/users/{id}", a.withAdmin(a.handleAdminDeleteUser)).Methods(http.MethodDelete)
	r.HandleFunc("/api/admin/classes", a.withAdmin(a.handleAdminListClasses)).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/classes", a.withAdmin(a.handleAdminCreateClass)).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/classes/{id}", a.withAdmin(a.handleAdminUpdateClass)).Methods(http.MethodPatch)
	r.HandleFunc("/api/admin/classes/{id}", a.withAdmin(a.handleAdminDeleteClass)).Methods(http.MethodDelete)

	return r
}
