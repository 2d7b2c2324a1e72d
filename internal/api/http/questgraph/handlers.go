package questgraph

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/questmap/questmap-backend/internal/questgraph/domain"
	"github.com/questmap/questmap-backend/internal/questgraph/graph/export"
	"github.com/questmap/questmap-backend/internal/questgraph/locale"
	"github.com/questmap/questmap-backend/internal/questgraph/service"
)

type Handler struct {
	svc         *service.GraphService
	defaultLang string
	log         *zap.Logger
}

func New(svc *service.GraphService, defaultLang string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, defaultLang: defaultLang, log: log}
}

func (h *Handler) lang(c *gin.Context) string {
	return c.DefaultQuery("lang", h.defaultLang)
}

func (h *Handler) FullGraph(c *gin.Context) {
	h.writeGraph(c, h.svc.Graph(), "Quests")
}

func (h *Handler) FullElements(c *gin.Context) {
	h.writeElements(c, "")
}

func (h *Handler) GetNode(c *gin.Context) {
	n, err := h.svc.Node(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// Predecessors answers for any id; an unknown id yields an empty graph
// unless some edge points at it.
func (h *Handler) Predecessors(c *gin.Context) {
	id := c.Param("id")
	h.writeGraph(c, h.svc.Predecessors(id), id)
}

func (h *Handler) PredecessorElements(c *gin.Context) {
	h.writeElements(c, c.Param("id"))
}

func (h *Handler) Reload(c *gin.Context) {
	reloaded, err := h.svc.Reload(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "reload failed: " + err.Error()})
		return
	}
	snap := h.svc.Snapshot()
	c.JSON(http.StatusOK, ReloadResponse{
		Reloaded:    reloaded,
		Fingerprint: snap.Fingerprint,
		LoadedAt:    snap.LoadedAt,
	})
}

func (h *Handler) writeElements(c *gin.Context, id string) {
	els, err := h.svc.Elements(c.Request.Context(), id, h.lang(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, els)
}

func (h *Handler) writeGraph(c *gin.Context, g *domain.Graph, title string) {
	switch format := c.DefaultQuery("format", "json"); format {
	case "json":
		c.JSON(http.StatusOK, g)
	case "yaml":
		b, err := export.EncodeYAML(g)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", b)
	case "dot":
		dot, err := export.ToDOT(g, title, h.svc.Localizer(h.lang(c)))
		if err != nil {
			h.fail(c, err)
			return
		}
		c.Data(http.StatusOK, "text/vnd.graphviz; charset=utf-8", []byte(dot))
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unsupported format " + format})
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNodeNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, locale.ErrMissingTranslation):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		h.log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
