package routes

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/investmatch/investmatch/application/service"
	"github.com/investmatch/investmatch/infrastructure/api/jsonapi"
	"github.com/investmatch/investmatch/infrastructure/api/middleware"
)

// NotificationsRouter serves the current user's notifications.
type NotificationsRouter struct {
	notifications *service.Notifications
	serializer    *jsonapi.Serializer
	logger        *slog.Logger
}

// NewNotificationsRouter creates a NotificationsRouter.
func NewNotificationsRouter(notifications *service.Notifications, logger *slog.Logger) *NotificationsRouter {
	return &NotificationsRouter{notifications: notifications, serializer: jsonapi.NewSerializer(), logger: logger}
}

// Routes returns the /api/notifications routes.
func (n *NotificationsRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireActor(n.logger))

	router.Get("/", n.List)
	router.Post("/read-all", n.MarkAllRead)
	router.Post("/{id}/read", n.MarkRead)

	return router
}

// List handles GET /api/notifications. Query: unread=true, limit.
func (n *NotificationsRouter) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.Actor(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, err := n.notifications.List(r.Context(), actor, parseBool(r.URL.Query().Get("unread")), limit)
	if err != nil {
		middleware.WriteError(w, r, err, n.logger)
		return
	}
	unread, err := n.notifications.UnreadCount(r.Context(), actor)
	if err != nil {
		middleware.WriteError(w, r, err, n.logger)
		return
	}

	doc := jsonapi.NewListResponse(n.serializer.NotificationResources(items))
	doc.Meta = &jsonapi.Meta{"count": len(items), "unread_count": unread}
	middleware.WriteJSON(w, http.StatusOK, doc)
}

// MarkRead handles POST /api/notifications/{id}/read.
func (n *NotificationsRouter) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := n.notifications.MarkRead(r.Context(), middleware.Actor(r.Context()), chi.URLParam(r, "id")); err != nil {
		middleware.WriteError(w, r, err, n.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead handles POST /api/notifications/read-all.
func (n *NotificationsRouter) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	updated, err := n.notifications.MarkAllRead(r.Context(), middleware.Actor(r.Context()))
	if err != nil {
		middleware.WriteError(w, r, err, n.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.Document{Data: nil, Meta: &jsonapi.Meta{"updated": updated}})
}
