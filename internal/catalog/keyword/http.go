package keyword

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tkempf/biblion/internal/platform/apperr"
	requestutil "github.com/tkempf/biblion/internal/platform/request"
	"github.com/tkempf/biblion/internal/platform/respond"
	"github.com/tkempf/biblion/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listKeywords)
	router.Get("/{id}", handler.getKeyword)
	router.Post("/", handler.addKeyword)
	router.Delete("/{id}", handler.deleteKeyword)
	router.Post("/prune", handler.pruneKeywords)
}

func (handler *Handler) listKeywords(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Language: request.URL.Query().Get("language"),
		Query:    request.URL.Query().Get("q"),
	}

	keywords, total, err := handler.service.ListKeywords(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, keywords, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getKeyword(writer http.ResponseWriter, request *http.Request) {
	keywordID := requestutil.IntParam(request, "id")
	if keywordID <= 0 {
		respond.Error(writer, request, apperr.InvalidArgument("invalid keyword id"))
		return
	}

	keyword, err := handler.service.GetKeyword(request.Context(), keywordID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, keyword)
}

func (handler *Handler) addKeyword(writer http.ResponseWriter, request *http.Request) {
	var input Keyword
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.AddKeyword(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deleteKeyword(writer http.ResponseWriter, request *http.Request) {
	keywordID := requestutil.IntParam(request, "id")
	if keywordID <= 0 {
		respond.Error(writer, request, apperr.InvalidArgument("invalid keyword id"))
		return
	}

	if err := handler.service.DeleteKeyword(request.Context(), keywordID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) pruneKeywords(writer http.ResponseWriter, request *http.Request) {
	pruned, err := handler.service.PruneKeywords(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"pruned": pruned})
}
