package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/idiom-catalog/internal/adapters/http/dto"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/logging"
	"github.com/jsamuelsen/idiom-catalog/internal/ports"
	"github.com/jsamuelsen/idiom-catalog/internal/render"
)

// CatalogHandler serves the read API over the current catalog and the
// admin reload endpoint.
type CatalogHandler struct {
	reader   ports.CatalogReader
	reloader ports.CatalogReloader
}

// NewCatalogHandler creates a catalog handler. reloader may be nil, in
// which case the reload route is not registered.
func NewCatalogHandler(reader ports.CatalogReader, reloader ports.CatalogReloader) *CatalogHandler {
	return &CatalogHandler{
		reader:   reader,
		reloader: reloader,
	}
}

// ListSections handles GET /api/v1/sections.
func (h *CatalogHandler) ListSections(c *gin.Context) {
	summaries, err := h.reader.ListSections(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSectionSummaries(summaries))
}

// GetSection handles GET /api/v1/sections/:id.
func (h *CatalogHandler) GetSection(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	section, err := h.reader.GetSection(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSectionResponse(section))
}

// ListEntries handles GET /api/v1/sections/:id/entries?limit=&cursor=.
func (h *CatalogHandler) ListEntries(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var page dto.PaginationRequest
	if !bindQuery(c, &page) {
		return
	}

	entries, err := h.reader.GetEntries(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	respondPage(c, dto.NewEntryResponses(entries), &page)
}

// GetEntry handles GET /api/v1/entries/:id.
func (h *CatalogHandler) GetEntry(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	entry, err := h.reader.GetEntry(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewEntryResponse(entry))
}

// Search handles GET /api/v1/search?q=&limit=&cursor=.
func (h *CatalogHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if !bindQuery(c, &req) {
		return
	}

	entries, err := h.reader.Search(c.Request.Context(), req.Query)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	respondPage(c, dto.NewEntryResponses(entries), &req.PaginationRequest)
}

// Export handles GET /api/v1/catalog. The payload is what remote catalog
// sources read.
func (h *CatalogHandler) Export(c *gin.Context) {
	catalog, err := h.reader.Snapshot(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCatalogResponse(catalog))
}

// Render handles GET /api/v1/render?format=. The format defaults to
// markdown.
func (h *CatalogHandler) Render(c *gin.Context) {
	var req dto.RenderRequest
	if !bindQuery(c, &req) {
		return
	}

	if req.Format == "" {
		req.Format = string(render.FormatMarkdown)
	}

	format, err := render.ParseFormat(req.Format)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	catalog, err := h.reader.Snapshot(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	renderer, err := render.New(format)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	// Rendered into memory so a failure can still produce an error status.
	var buf bytes.Buffer
	if err := renderer.Render(&buf, catalog); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// Reload handles POST /api/v1/admin/reload.
func (h *CatalogHandler) Reload(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := h.reloader.Reload(ctx)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	logging.FromContext(ctx).InfoContext(ctx, "catalog reloaded via api",
		slog.Int("sections", summary.Sections),
		slog.Int("entries", summary.Entries),
	)

	c.JSON(http.StatusOK, summary)
}

// RegisterCatalogRoutes registers the read routes on rg, and the reload
// route behind the admin middleware chain.
func (h *CatalogHandler) RegisterCatalogRoutes(rg *gin.RouterGroup, admin ...gin.HandlerFunc) {
	rg.GET("/sections", h.ListSections)
	rg.GET("/sections/:id", h.GetSection)
	rg.GET("/sections/:id/entries", h.ListEntries)
	rg.GET("/entries/:id", h.GetEntry)
	rg.GET("/search", h.Search)
	rg.GET("/catalog", h.Export)
	rg.GET("/render", h.Render)

	if h.reloader != nil {
		rg.Group("/admin", admin...).POST("/reload", h.Reload)
	}
}

func bindID(c *gin.Context) (string, bool) {
	var req dto.IDRequest
	if err := dto.BindURIAndValidate(c, &req); err != nil {
		dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))
		return "", false
	}

	return req.ID, true
}

func bindQuery(c *gin.Context, v any) bool {
	if err := dto.BindQueryAndValidate(c, v); err != nil {
		dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))
		return false
	}

	return true
}

func respondPage(c *gin.Context, entries []dto.EntryResponse, req *dto.PaginationRequest) {
	page, err := dto.Paginate(entries, req, dto.EntryID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}
