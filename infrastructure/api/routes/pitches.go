package routes

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/investmatch/investmatch/application/service"
	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/directory"
	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/infrastructure/api/jsonapi"
	"github.com/investmatch/investmatch/infrastructure/api/middleware"
	"github.com/investmatch/investmatch/infrastructure/api/routes/dto"
)

// Deck upload limits.
const (
	MaxDeckBytes    = 20 << 20
	multipartMemory = 8 << 20
	deckField       = "deck"
)

// PitchesRouter serves pitch sending and listings.
type PitchesRouter struct {
	pitches    *service.Pitches
	serializer *jsonapi.Serializer
	logger     *slog.Logger
}

// NewPitchesRouter creates a PitchesRouter.
func NewPitchesRouter(pitches *service.Pitches, logger *slog.Logger) *PitchesRouter {
	return &PitchesRouter{pitches: pitches, serializer: jsonapi.NewSerializer(), logger: logger}
}

// Routes returns the /api/pitches routes.
func (p *PitchesRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireActor(p.logger))

	router.Get("/", p.List)
	router.Post("/", p.Send)
	router.Patch("/{id}/recipients/{investorId}", p.UpdateRecipient)

	return router
}

// Send handles POST /api/pitches. The body is either JSON or a multipart
// form with an optional deck file.
func (p *PitchesRouter) Send(w http.ResponseWriter, r *http.Request) {
	params, cleanup, err := p.parseSend(w, r)
	if err != nil {
		middleware.WriteError(w, r, err, p.logger)
		return
	}
	defer cleanup()

	sent, err := p.pitches.Send(r.Context(), middleware.Actor(r.Context()), params)
	if err != nil {
		middleware.WriteError(w, r, err, p.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, jsonapi.NewSingleResponse(p.serializer.PitchResource(sent)))
}

// List handles GET /api/pitches: received pitches for investors, sent
// pitches for everyone else.
func (p *PitchesRouter) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.Actor(r.Context())

	var resources []*jsonapi.Resource
	if actor.Role() == account.RoleInvestor {
		received, err := p.pitches.Received(r.Context(), actor)
		if err != nil {
			middleware.WriteError(w, r, err, p.logger)
			return
		}
		resources = make([]*jsonapi.Resource, len(received))
		for i, rp := range received {
			resources[i] = p.serializer.ReceivedPitchResource(rp.Pitch, rp.Recipient)
		}
	} else {
		sent, err := p.pitches.Sent(r.Context(), actor)
		if err != nil {
			middleware.WriteError(w, r, err, p.logger)
			return
		}
		resources = make([]*jsonapi.Resource, len(sent))
		for i, sp := range sent {
			resources[i] = p.serializer.SentPitchResource(sp.Pitch, sp.Recipients)
		}
	}

	doc := jsonapi.NewListResponse(resources)
	doc.Meta = &jsonapi.Meta{"count": len(resources)}
	middleware.WriteJSON(w, http.StatusOK, doc)
}

// UpdateRecipient handles PATCH /api/pitches/{id}/recipients/{investorId}.
func (p *PitchesRouter) UpdateRecipient(w http.ResponseWriter, r *http.Request) {
	var body dto.RecipientStatusRequest
	if err := decodeJSON(w, r, &body); err != nil {
		middleware.WriteError(w, r, err, p.logger)
		return
	}
	recipient, err := p.pitches.UpdateStatus(r.Context(), middleware.Actor(r.Context()),
		chi.URLParam(r, "id"), chi.URLParam(r, "investorId"), body.Status)
	if err != nil {
		middleware.WriteError(w, r, err, p.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(p.serializer.RecipientResource(recipient)))
}

func (p *PitchesRouter) parseSend(w http.ResponseWriter, r *http.Request) (service.SendParams, func(), error) {
	noop := func() {}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var body dto.PitchRequest
		if err := decodeJSON(w, r, &body); err != nil {
			return service.SendParams{}, noop, err
		}
		return service.SendParams{Draft: body.Draft()}, noop, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxDeckBytes+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return service.SendParams{}, noop, fmt.Errorf("%w: invalid form: %v", errs.ErrValidation, err)
	}
	cleanup := func() { _ = r.MultipartForm.RemoveAll() }

	var ids []string
	for _, v := range r.MultipartForm.Value["investorIds"] {
		ids = append(ids, directory.SplitList(v)...)
	}
	params := service.SendParams{
		Draft: dto.PitchRequest{
			Subject:     r.FormValue("subject"),
			Message:     r.FormValue("message"),
			DeckURL:     r.FormValue("deckUrl"),
			InvestorIDs: ids,
		}.Draft(),
	}

	file, header, err := r.FormFile(deckField)
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return params, cleanup, nil
	case err != nil:
		cleanup()
		return service.SendParams{}, noop, fmt.Errorf("%w: read deck: %v", errs.ErrValidation, err)
	}
	if header.Size > MaxDeckBytes {
		_ = file.Close()
		cleanup()
		return service.SendParams{}, noop, fmt.Errorf("%w: deck exceeds %d MB", errs.ErrValidation, MaxDeckBytes>>20)
	}

	params.Deck = &service.Deck{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}
	return params, func() {
		_ = file.Close()
		cleanup()
	}, nil
}
