package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/investmatch/investmatch/application/service"
	"github.com/investmatch/investmatch/infrastructure/api/jsonapi"
	"github.com/investmatch/investmatch/infrastructure/api/middleware"
	"github.com/investmatch/investmatch/infrastructure/api/routes/dto"
)

// StartupsRouter serves the startup directory.
type StartupsRouter struct {
	directory  *service.Directory
	serializer *jsonapi.Serializer
	logger     *slog.Logger
}

// NewStartupsRouter creates a StartupsRouter.
func NewStartupsRouter(directory *service.Directory, logger *slog.Logger) *StartupsRouter {
	return &StartupsRouter{directory: directory, serializer: jsonapi.NewSerializer(), logger: logger}
}

// Routes returns the /api/startups routes.
func (s *StartupsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", s.List)
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireActor(s.logger))
		r.Get("/me", s.Mine)
		r.Put("/me", s.Save)
	})
	router.Get("/{id}", s.Get)

	return router
}

// List handles GET /api/startups.
func (s *StartupsRouter) List(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r)
	if err != nil {
		middleware.WriteError(w, r, err, s.logger)
		return
	}
	startups, err := s.directory.SearchStartups(r.Context(), filter)
	if err != nil {
		middleware.WriteError(w, r, err, s.logger)
		return
	}
	doc := jsonapi.NewListResponse(s.serializer.StartupResources(startups))
	doc.Meta = &jsonapi.Meta{"count": len(startups)}
	middleware.WriteJSON(w, http.StatusOK, doc)
}

// Get handles GET /api/startups/{id}.
func (s *StartupsRouter) Get(w http.ResponseWriter, r *http.Request) {
	startup, err := s.directory.Startup(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.WriteError(w, r, err, s.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(s.serializer.StartupResource(startup)))
}

// Mine handles GET /api/startups/me.
func (s *StartupsRouter) Mine(w http.ResponseWriter, r *http.Request) {
	startup, err := s.directory.MyStartup(r.Context(), middleware.Actor(r.Context()))
	if err != nil {
		middleware.WriteError(w, r, err, s.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(s.serializer.StartupResource(startup)))
}

// Save handles PUT /api/startups/me.
func (s *StartupsRouter) Save(w http.ResponseWriter, r *http.Request) {
	var body dto.StartupRequest
	if err := decodeJSON(w, r, &body); err != nil {
		middleware.WriteError(w, r, err, s.logger)
		return
	}
	startup, err := s.directory.SaveStartup(r.Context(), middleware.Actor(r.Context()), body.Params())
	if err != nil {
		middleware.WriteError(w, r, err, s.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(s.serializer.StartupResource(startup)))
}

// InvestorsRouter serves the investor directory.
type InvestorsRouter struct {
	directory  *service.Directory
	serializer *jsonapi.Serializer
	logger     *slog.Logger
}

// NewInvestorsRouter creates an InvestorsRouter.
func NewInvestorsRouter(directory *service.Directory, logger *slog.Logger) *InvestorsRouter {
	return &InvestorsRouter{directory: directory, serializer: jsonapi.NewSerializer(), logger: logger}
}

// Routes returns the /api/investors routes.
func (i *InvestorsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", i.List)
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireActor(i.logger))
		r.Get("/me", i.Mine)
		r.Put("/me", i.Save)
	})
	router.Get("/{id}", i.Get)

	return router
}

// List handles GET /api/investors.
func (i *InvestorsRouter) List(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r)
	if err != nil {
		middleware.WriteError(w, r, err, i.logger)
		return
	}
	investors, err := i.directory.SearchInvestors(r.Context(), filter)
	if err != nil {
		middleware.WriteError(w, r, err, i.logger)
		return
	}
	doc := jsonapi.NewListResponse(i.serializer.InvestorResources(investors))
	doc.Meta = &jsonapi.Meta{"count": len(investors)}
	middleware.WriteJSON(w, http.StatusOK, doc)
}

// Get handles GET /api/investors/{id}.
func (i *InvestorsRouter) Get(w http.ResponseWriter, r *http.Request) {
	investor, err := i.directory.Investor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.WriteError(w, r, err, i.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(i.serializer.InvestorResource(investor)))
}

// Mine handles GET /api/investors/me.
func (i *InvestorsRouter) Mine(w http.ResponseWriter, r *http.Request) {
	investor, err := i.directory.MyInvestor(r.Context(), middleware.Actor(r.Context()))
	if err != nil {
		middleware.WriteError(w, r, err, i.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(i.serializer.InvestorResource(investor)))
}

// Save handles PUT /api/investors/me.
func (i *InvestorsRouter) Save(w http.ResponseWriter, r *http.Request) {
	var body dto.InvestorRequest
	if err := decodeJSON(w, r, &body); err != nil {
		middleware.WriteError(w, r, err, i.logger)
		return
	}
	investor, err := i.directory.SaveInvestor(r.Context(), middleware.Actor(r.Context()), body.Params())
	if err != nil {
		middleware.WriteError(w, r, err, i.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(i.serializer.InvestorResource(investor)))
}
