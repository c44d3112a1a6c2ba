package author

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

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listAuthors)
	router.Get("/{id}", handler.getAuthor)
	router.Post("/", handler.addAuthor)
	router.Delete("/{id}", handler.deleteAuthor)
	router.Post("/prune", handler.pruneAuthors)
}

func (handler *Handler) listAuthors(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query: request.URL.Query().Get("q"),
	}

	authors, total, err := handler.service.ListAuthors(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, authors, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getAuthor(writer http.ResponseWriter, request *http.Request) {
	authorID := requestutil.Param(request, "id")
	if !uuid.IsValid(authorID) {
		respond.Error(writer, request, apperr.InvalidArgument("invalid author id"))
		return
	}

	author, err := handler.service.GetAuthor(request.Context(), authorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, author)
}

func (handler *Handler) addAuthor(writer http.ResponseWriter, request *http.Request) {
	var input Author
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.AddAuthor(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deleteAuthor(writer http.ResponseWriter, request *http.Request) {
	authorID := requestutil.Param(request, "id")
	if !uuid.IsValid(authorID) {
		respond.Error(writer, request, apperr.InvalidArgument("invalid author id"))
		return
	}

	if err := handler.service.DeleteAuthor(request.Context(), authorID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) pruneAuthors(writer http.ResponseWriter, request *http.Request) {
	pruned, err := handler.service.PruneAuthors(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"pruned": pruned})
}
