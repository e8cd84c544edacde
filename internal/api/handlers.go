package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"apple-inventory/internal/collection"
	"apple-inventory/internal/kvstore"
	"apple-inventory/internal/model"
	"apple-inventory/internal/stats"
	"apple-inventory/internal/transfer"
	"apple-inventory/internal/widget"
)

// Inventory defines the collection interface needed by handlers.
type Inventory interface {
	AddOne(r *model.ProductRecord) (*model.ProductRecord, error)
	AddMany(records []*model.ProductRecord) (int, error)
	Update(r *model.ProductRecord) error
	Remove(id string) error
	ResetAll() error
	Get(id string) (*model.ProductRecord, bool)
	Records(cat model.Category) []*model.ProductRecord
	All() []*model.ProductRecord
	QueryByModel(cat model.Category, modelName string) []*model.ProductRecord
	Ranking(cat model.Category) []collection.RankEntry
	Snapshot() map[model.Category][]*model.ProductRecord
	Len() int
}

// Handlers contains all API handlers
type Handlers struct {
	inv     Inventory
	adapter *kvstore.Adapter
	log     zerolog.Logger
}

// NewHandlers creates a new handlers instance
func NewHandlers(inv Inventory, adapter *kvstore.Adapter, log zerolog.Logger) *Handlers {
	return &Handlers{
		inv:     inv,
		adapter: adapter,
		log:     log.With().Str("component", "api").Logger(),
	}
}

// HealthCheck returns the health status
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"count":  h.inv.Len(),
	})
}

// GetProducts returns records with optional category and model filters
func (h *Handlers) GetProducts(c *gin.Context) {
	category := c.Query("category")
	modelName := c.Query("model")

	var records []*model.ProductRecord
	switch {
	case category != "":
		cat, ok := model.ParseCategory(category)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
			return
		}
		if modelName != "" {
			records = h.inv.QueryByModel(cat, modelName)
		} else {
			records = h.inv.Records(cat)
		}
	case modelName != "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "model filter requires category"})
		return
	default:
		records = h.inv.All()
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.JSON(http.StatusOK, gin.H{
		"count":    len(records),
		"products": records,
	})
}

// GetProduct returns a single record by ID
func (h *Handlers) GetProduct(c *gin.Context) {
	id := c.Param("id")

	record, ok := h.inv.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// CreateProduct adds one record to the collection
func (h *Handlers) CreateProduct(c *gin.Context) {
	var req model.ProductRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	record, err := h.inv.AddOne(&req)
	if errors.Is(err, collection.ErrCapacity) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "collection is full",
			"limit": collection.MaxRecords,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, record)
}

// BulkCreateProducts adds a batch, truncating silently at the cap
func (h *Handlers) BulkCreateProducts(c *gin.Context) {
	var req struct {
		Products []*model.ProductRecord `json:"products" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	added, err := h.inv.AddMany(req.Products)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "added": added})
		return
	}

	resp := gin.H{"added": added, "truncated": added < len(req.Products)}
	if added < len(req.Products) {
		resp["warning"] = "collection reached its limit; remaining items were dropped"
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateProduct replaces the record with the path ID
func (h *Handlers) UpdateProduct(c *gin.Context) {
	var req model.ProductRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	req.ID = c.Param("id")

	err := h.inv.Update(&req)
	if errors.Is(err, collection.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, _ := h.inv.Get(req.ID)
	c.JSON(http.StatusOK, record)
}

// DeleteProduct removes the record with the path ID
func (h *Handlers) DeleteProduct(c *gin.Context) {
	err := h.inv.Remove(c.Param("id"))
	if errors.Is(err, collection.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetStats returns aggregate statistics over the current collection
func (h *Handlers) GetStats(c *gin.Context) {
	snapshot := h.inv.Snapshot()

	rankings := make(map[model.Category][]collection.RankEntry)
	for _, cat := range model.Categories() {
		if entries := h.inv.Ranking(cat); len(entries) > 0 {
			rankings[cat] = entries
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_count":     stats.TotalCount(snapshot),
		"grand_total":     stats.GrandTotal(snapshot),
		"totals":          stats.TotalValueByCategory(snapshot),
		"averages":        stats.AverageValueByCategory(snapshot),
		"count_ranking":   stats.CountRanking(snapshot),
		"value_ranking":   stats.ValueRanking(snapshot),
		"average_ranking": stats.AverageRanking(snapshot),
		"model_rankings":  rankings,
	})
}

// GetWidgetSummary returns the cached summary snapshot without
// recomputing it
func (h *Handlers) GetWidgetSummary(c *gin.Context) {
	summary, ok, err := widget.Read(h.adapter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no summary cached yet"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportCSV returns the seven per-category CSV blobs
func (h *Handlers) ExportCSV(c *gin.Context) {
	files, err := transfer.Export(h.inv)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// ImportCSV imports a set of named CSV blobs
func (h *Handlers) ImportCSV(c *gin.Context) {
	var req struct {
		Files map[string]string `json:"files" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, err := transfer.Import(h.inv, req.Files)
	if errors.Is(err, transfer.ErrBadFileName) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":          err.Error(),
			"expected_files": transfer.ExpectedFileNames(),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"added": result.Added, "truncated": result.Truncated}
	if result.Truncated {
		resp["warning"] = "collection reached its limit; remaining rows were dropped"
	}
	c.JSON(http.StatusOK, resp)
}

// ResetCollection wipes all records, keeping the accent color and
// first-launch flag
func (h *Handlers) ResetCollection(c *gin.Context) {
	if err := h.inv.ResetAll(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCatalog returns the known model names for a category
func (h *Handlers) GetCatalog(c *gin.Context) {
	cat, ok := model.ParseCategory(c.Param("category"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"category": cat,
		"models":   model.CatalogFor(cat),
	})
}

// GetAccentColor returns the widget accent color setting
func (h *Handlers) GetAccentColor(c *gin.Context) {
	color, err := h.adapter.AccentColor()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accent_color": color})
}

// SetAccentColor updates the widget accent color setting. The cached
// summary keeps the old color until the next mutation.
func (h *Handlers) SetAccentColor(c *gin.Context) {
	var req struct {
		AccentColor string `json:"accent_color" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := h.adapter.SetAccentColor(req.AccentColor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accent_color": req.AccentColor})
}
