package routes

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/investmatch/investmatch/application/service"
	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/domain/pipeline"
	"github.com/investmatch/investmatch/infrastructure/api/jsonapi"
	"github.com/investmatch/investmatch/infrastructure/api/middleware"
	"github.com/investmatch/investmatch/infrastructure/api/routes/dto"
)

// PipelineRouter serves the pipeline CRM.
type PipelineRouter struct {
	pipeline   *service.Pipeline
	directory  *service.Directory
	serializer *jsonapi.Serializer
	logger     *slog.Logger
}

// NewPipelineRouter creates a PipelineRouter.
func NewPipelineRouter(pipeline *service.Pipeline, directory *service.Directory, logger *slog.Logger) *PipelineRouter {
	return &PipelineRouter{
		pipeline:   pipeline,
		directory:  directory,
		serializer: jsonapi.NewSerializer(),
		logger:     logger,
	}
}

// Routes returns the /api/pipeline routes. The entry id may be given in
// the path or in the body.
func (p *PipelineRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireActor(p.logger))

	router.Get("/", p.List)
	router.Post("/", p.Create)
	router.Patch("/", p.Update)
	router.Delete("/", p.Delete)
	router.Patch("/{id}", p.Update)
	router.Delete("/{id}", p.Delete)

	return router
}

// List handles GET /api/pipeline.
func (p *PipelineRouter) List(w http.ResponseWriter, r *http.Request) {
	entries, err := p.pipeline.List(r.Context(), middleware.Actor(r.Context()), r.URL.Query().Get("stage"))
	if err != nil {
		middleware.WriteError(w, r, err, p.logger)
		return
	}
	doc := jsonapi.NewListResponse(p.serializer.PipelineEntryResources(entries))
	doc.Meta = &jsonapi.Meta{"count": len(entries)}
	middleware.WriteJSON(w, http.StatusOK, doc)
}

// Create handles POST /api/pipeline.
func (p *PipelineRouter) Create(w http.ResponseWriter, r *http.Request) {
	var body dto.PipelineCreateRequest
	if err := decodeJSON(w, r, &body); err != nil {
		middleware.WriteError(w, r, err, p.logger)
		return
	}
	actor := middleware.Actor(r.Context())

	investorID := body.InvestorID
	if investorID == "" && actor.Role() == account.RoleInvestor {
		own, err := p.directory.MyInvestor(r.Context(), actor)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				err = fmt.Errorf("%w: create your investor profile first", errs.ErrValidation)
			}
			middleware.WriteError(w, r, err, p.logger)
			return
		}
		investorID = own.ID()
	}

	entry, err := p.pipeline.Create(r.Context(), actor, investorID, body.StartupID)
	if err != nil {
		middleware.WriteError(w, r, err, p.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, jsonapi.NewSingleResponse(p.serializer.PipelineEntryResource(entry)))
}

// Update handles PATCH /api/pipeline. The stage is applied before the
// notes, so an invalid stage writes nothing.
func (p *PipelineRouter) Update(w http.ResponseWriter, r *http.Request) {
	var body dto.PipelineUpdateRequest
	if err := decodeJSON(w, r, &body); err != nil {
		middleware.WriteError(w, r, err, p.logger)
		return
	}
	id := entryID(r, body.ID)
	if id == "" {
		middleware.WriteError(w, r, fmt.Errorf("%w: id is required", errs.ErrValidation), p.logger)
		return
	}
	if body.Stage == nil && body.DiscussionNotes == nil {
		middleware.WriteError(w, r, fmt.Errorf("%w: stage or discussion_notes is required", errs.ErrValidation), p.logger)
		return
	}

	actor := middleware.Actor(r.Context())
	var (
		entry pipeline.Entry
		err   error
	)
	if body.Stage != nil {
		entry, err = p.pipeline.UpdateStage(r.Context(), actor, id, *body.Stage)
		if err != nil {
			middleware.WriteError(w, r, err, p.logger)
			return
		}
	}
	if body.DiscussionNotes != nil {
		entry, err = p.pipeline.UpdateNotes(r.Context(), actor, id, *body.DiscussionNotes)
		if err != nil {
			middleware.WriteError(w, r, err, p.logger)
			return
		}
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(p.serializer.PipelineEntryResource(entry)))
}

// Delete handles DELETE /api/pipeline.
func (p *PipelineRouter) Delete(w http.ResponseWriter, r *http.Request) {
	id := entryID(r, r.URL.Query().Get("id"))
	if id == "" && r.ContentLength > 0 {
		var body dto.PipelineDeleteRequest
		if err := decodeJSON(w, r, &body); err != nil {
			middleware.WriteError(w, r, err, p.logger)
			return
		}
		id = body.ID
	}
	if id == "" {
		middleware.WriteError(w, r, fmt.Errorf("%w: id is required", errs.ErrValidation), p.logger)
		return
	}

	if err := p.pipeline.Delete(r.Context(), middleware.Actor(r.Context()), id); err != nil {
		middleware.WriteError(w, r, err, p.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func entryID(r *http.Request, fallback string) string {
	if id := chi.URLParam(r, "id"); id != "" {
		return id
	}
	return fallback
}
