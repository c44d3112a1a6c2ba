// Copyright (c) 2026 Biblion. All rights reserved.

package work

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tkempf/biblion/internal/platform/apperr"
	requestutil "github.com/tkempf/biblion/internal/platform/request"
	"github.com/tkempf/biblion/internal/platform/respond"
	"github.com/tkempf/biblion/pkg/pagination"
	"github.com/tkempf/biblion/pkg/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterWorkRoutes(router chi.Router) {
	router.Get("/", handler.listWorks)
	router.Get("/{id}", handler.getWork)
	router.Post("/", handler.addWork)
	router.Delete("/{id}", handler.deleteWork)
}

func (handler *Handler) RegisterContainerRoutes(router chi.Router) {
	router.Get("/", handler.listContainers)
	router.Get("/{id}", handler.getContainer)
	router.Post("/", handler.addContainer)
	router.Delete("/{id}", handler.deleteContainer)
}

// filterFromRequest maps query-string parameters onto a Filter. A request
// with no filter parameters yields the zero filter, which matches everything.
func filterFromRequest(request *http.Request) *Filter {
	query := request.URL.Query()
	return &Filter{
		Type:        query.Get("type"),
		AuthorID:    query.Get("author_id"),
		LastName:    query.Get("last_name"),
		Language:    query.Get("language"),
		Title:       query.Get("title"),
		ContainerID: query.Get("container_id"),
		Keyword:     query.Get("keyword"),
		YearPubMin:  requestutil.QueryInt(request, "year_min", 0),
		YearPubMax:  requestutil.QueryInt(request, "year_max", 0),
		Key:         query.Get("key"),
		MatchAny:    requestutil.QueryBool(request, "match_any"),
	}
}

func (handler *Handler) listWorks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	works, total, err := handler.service.GetWorks(request.Context(), filterFromRequest(request), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, works, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getWork(writer http.ResponseWriter, request *http.Request) {
	workID := requestutil.Param(request, "id")
	if !uuid.IsValid(workID) {
		respond.Error(writer, request, apperr.InvalidArgument("invalid work id"))
		return
	}

	work, err := handler.service.GetWork(request.Context(), workID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, work)
}

func (handler *Handler) addWork(writer http.ResponseWriter, request *http.Request) {
	var input Work
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.AddWork(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deleteWork(writer http.ResponseWriter, request *http.Request) {
	workID := requestutil.Param(request, "id")
	if !uuid.IsValid(workID) {
		respond.Error(writer, request, apperr.InvalidArgument("invalid work id"))
		return
	}

	if err := handler.service.DeleteWork(request.Context(), workID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listContainers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	containers, total, err := handler.service.GetContainers(request.Context(), filterFromRequest(request), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, containers, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getContainer(writer http.ResponseWriter, request *http.Request) {
	containerID := requestutil.Param(request, "id")
	if !uuid.IsValid(containerID) {
		respond.Error(writer, request, apperr.InvalidArgument("invalid container id"))
		return
	}

	container, err := handler.service.GetContainer(request.Context(), containerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, container)
}

func (handler *Handler) addContainer(writer http.ResponseWriter, request *http.Request) {
	var input Container
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.AddContainer(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deleteContainer(writer http.ResponseWriter, request *http.Request) {
	containerID := requestutil.Param(request, "id")
	if !uuid.IsValid(containerID) {
		respond.Error(writer, request, apperr.InvalidArgument("invalid container id"))
		return
	}

	if err := handler.service.DeleteContainer(request.Context(), containerID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
