package handler

import (
	"errors"

	"github.com/akinankarali/upwork-job-api/internal/delivery/http/middleware"
	"github.com/akinankarali/upwork-job-api/internal/domain/job"
	"github.com/akinankarali/upwork-job-api/internal/pkg/response"
	"github.com/akinankarali/upwork-job-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SearchHandler struct {
	uc usecase.SearchUsecase
}

func NewSearchHandler(uc usecase.SearchUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

func (h *SearchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/search", h.HandleSearch)
}

// HandleSearch answers with a bare JSON array of listings. Errors use the
// response envelope.
func (h *SearchHandler) HandleSearch(c fiber.Ctx) error {
	if h == nil || h.uc == nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, usecase.ErrInternal)
	}

	raw := usecase.RawParams{}
	for _, name := range usecase.SearchParamNames {
		if v := c.Query(name); v != "" {
			raw[name] = v
		}
	}

	items, err := h.uc.Search(c.Context(), raw)
	if err != nil {
		return mapSearchUsecaseError(err)
	}
	if items == nil {
		items = []job.Listing{}
	}

	return c.Status(fiber.StatusOK).JSON(items)
}

func mapSearchUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, fiber.Map{"error": err.Error()}, err)
	case errors.Is(err, usecase.ErrNavigation):
		return middleware.NewAppError(fiber.StatusBadGateway, "search page could not be loaded", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
