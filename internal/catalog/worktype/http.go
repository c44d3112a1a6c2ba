package worktype

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	requestutil "github.com/tkempf/biblion/internal/platform/request"
	"github.com/tkempf/biblion/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listWorkTypes)
	router.Get("/{id}", handler.getWorkType)
	router.Post("/", handler.addWorkType)
	router.Delete("/{id}", handler.deleteWorkType)
}

func (handler *Handler) listWorkTypes(writer http.ResponseWriter, request *http.Request) {
	types, err := handler.service.ListWorkTypes(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, types)
}

func (handler *Handler) getWorkType(writer http.ResponseWriter, request *http.Request) {
	workType, err := handler.service.GetWorkType(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, workType)
}

func (handler *Handler) addWorkType(writer http.ResponseWriter, request *http.Request) {
	var input WorkType
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.AddWorkType(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deleteWorkType(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteWorkType(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
