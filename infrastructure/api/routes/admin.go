package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/investmatch/investmatch/application/service"
	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/infrastructure/api/jsonapi"
	"github.com/investmatch/investmatch/infrastructure/api/middleware"
)

// DashboardAttributes represents the admin dashboard counts.
// Investors counts directory entries, claimed or not.
type DashboardAttributes struct {
	Users           map[string]int64 `json:"users"`
	Startups        int64            `json:"startups"`
	Investors       int64            `json:"investors"`
	PipelineEntries int64            `json:"pipeline_entries"`
	PipelineByStage map[string]int64 `json:"pipeline_by_stage"`
	Pitches         int64            `json:"pitches"`
	Notifications   int64            `json:"notifications"`
	Payments        int64            `json:"payments"`
}

// AdminRouter serves the admin dashboards.
type AdminRouter struct {
	admin      *service.Admin
	serializer *jsonapi.Serializer
	logger     *slog.Logger
}

// NewAdminRouter creates an AdminRouter.
func NewAdminRouter(admin *service.Admin, logger *slog.Logger) *AdminRouter {
	return &AdminRouter{admin: admin, serializer: jsonapi.NewSerializer(), logger: logger}
}

// Routes returns the /api/admin routes.
func (a *AdminRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(a.logger, account.RoleAdmin))

	router.Get("/dashboard", a.Dashboard)
	router.Get("/users", a.Users)

	return router
}

// Dashboard handles GET /api/admin/dashboard.
func (a *AdminRouter) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := a.admin.Dashboard(r.Context(), middleware.Actor(r.Context()))
	if err != nil {
		middleware.WriteError(w, r, err, a.logger)
		return
	}

	byStage := make(map[string]int64, len(d.PipelineByStage))
	for st, n := range d.PipelineByStage {
		byStage[st.String()] = n
	}
	attrs := &DashboardAttributes{
		Users: map[string]int64{
			"founders":  d.Founders,
			"investors": d.InvestorUsers,
			"admins":    d.Admins,
		},
		Startups:        d.Startups,
		Investors:       d.Investors,
		PipelineEntries: d.PipelineEntries,
		PipelineByStage: byStage,
		Pitches:         d.Pitches,
		Notifications:   d.Notifications,
		Payments:        d.Payments,
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(jsonapi.NewResource("dashboard", "current", attrs)))
}

// Users handles GET /api/admin/users. Query: role, page, page_size.
func (a *AdminRouter) Users(w http.ResponseWriter, r *http.Request) {
	req := ParsePage(r)
	page, err := a.admin.Users(r.Context(), middleware.Actor(r.Context()), r.URL.Query().Get("role"), req.Number, req.Size)
	if err != nil {
		middleware.WriteError(w, r, err, a.logger)
		return
	}

	doc := jsonapi.NewListResponse(a.serializer.ProfileResources(page.Profiles))
	req.Paginate(r, doc, page.Total)
	middleware.WriteJSON(w, http.StatusOK, doc)
}
