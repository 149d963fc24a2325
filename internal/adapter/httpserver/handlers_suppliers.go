package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/domain"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/generator"
	apperrors "github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/platform/errors"
)

const (
	defaultPageLimit = 1000
	maxPageLimit     = 1000
)

type supplierListResponse struct {
	Success   bool              `json:"success"`
	Data      []domain.Supplier `json:"data"`
	Timestamp int64             `json:"timestamp,omitempty"`
	Count     int               `json:"count"`
	Total     int               `json:"total,omitempty"`
	Page      int               `json:"page,omitempty"`
	Limit     int               `json:"limit,omitempty"`
}

type supplierResponse struct {
	Success bool            `json:"success"`
	Data    domain.Supplier `json:"data"`
}

type statsData struct {
	TotalSuppliers int      `json:"totalSuppliers"`
	InStock        int      `json:"inStock"`
	Verified       int      `json:"verified"`
	AverageRating  float64  `json:"averageRating"`
	Categories     []string `json:"categories"`
	LastUpdated    int64    `json:"lastUpdated"`
	Uptime         float64  `json:"uptime"`
}

type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// handleListSuppliers returns the current snapshot. page and limit select a
// window of it; without either the whole catalog is returned.
func (s *Server) handleListSuppliers(c echo.Context) error {
	snap := s.catalog.Snapshot()

	resp := supplierListResponse{
		Success:   true,
		Data:      snap.Suppliers,
		Timestamp: snap.Timestamp,
		Count:     snap.Len(),
	}

	if c.QueryParam("page") != "" || c.QueryParam("limit") != "" {
		page, err := positiveQueryInt(c, "page", 1)
		if err != nil {
			return err
		}
		limit, err := positiveQueryInt(c, "limit", defaultPageLimit)
		if err != nil {
			return err
		}
		limit = min(limit, maxPageLimit)

		resp.Data = paginate(snap.Suppliers, page, limit)
		resp.Count = len(resp.Data)
		resp.Total = snap.Len()
		resp.Page = page
		resp.Limit = limit
	}

	s.catalogMetrics.Observe("list", resp.Count)
	return sendJSON(c, http.StatusOK, resp)
}

func (s *Server) handleGetSupplier(c echo.Context) error {
	id := c.Param("id")

	supplier, err := s.catalog.GetByID(id)
	if errors.Is(err, domain.ErrSupplierNotFound) {
		s.catalogMetrics.Observe("get", 0)
		return apperrors.NotFoundError("Supplier not found").WithField("supplier_id", id)
	}
	if err != nil {
		return apperrors.InternalError("failed to load supplier", err).WithField("supplier_id", id)
	}

	s.catalogMetrics.Observe("get", 1)
	return sendJSON(c, http.StatusOK, supplierResponse{Success: true, Data: supplier})
}

func (s *Server) handleSuppliersByCategory(c echo.Context) error {
	suppliers := s.catalog.ByCategory(c.Param("category"))

	s.catalogMetrics.Observe("category", len(suppliers))
	return sendJSON(c, http.StatusOK, supplierListResponse{
		Success: true,
		Data:    suppliers,
		Count:   len(suppliers),
	})
}

func (s *Server) handleSearchSuppliers(c echo.Context) error {
	var req domain.SearchRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return err
	}

	results := s.catalog.Search(req)

	s.catalogMetrics.Observe("search", len(results))
	return sendJSON(c, http.StatusOK, supplierListResponse{
		Success: true,
		Data:    results,
		Count:   len(results),
	})
}

func (s *Server) handleStats(c echo.Context) error {
	stats := s.catalog.Stats()

	return sendJSON(c, http.StatusOK, dataResponse{
		Success: true,
		Data: statsData{
			TotalSuppliers: stats.Total,
			InStock:        stats.InStock,
			Verified:       stats.Verified,
			AverageRating:  stats.AverageRating,
			Categories:     stats.CategoryNames,
			LastUpdated:    stats.Timestamp,
			Uptime:         s.uptime(),
		},
	})
}

func (s *Server) handleCategories(c echo.Context) error {
	return sendJSON(c, http.StatusOK, dataResponse{Success: true, Data: generator.Categories()})
}

// paginate returns the 1-based page of size limit. Pages past the end are empty.
func paginate(suppliers []domain.Supplier, page, limit int) []domain.Supplier {
	// Compared before multiplying so huge pages cannot overflow.
	if page-1 >= (len(suppliers)+limit-1)/limit {
		return []domain.Supplier{}
	}
	start := (page - 1) * limit
	end := min(start+limit, len(suppliers))
	return suppliers[start:end]
}

func positiveQueryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, apperrors.ValidationError(fmt.Sprintf("%s must be a positive integer", name)).WithField(name, raw)
	}
	return v, nil
}

// decodeJSONBody decodes the request body into v. An empty body leaves v
// untouched; unknown keys are ignored.
func decodeJSONBody(c echo.Context, v any) error {
	err := json.NewDecoder(c.Request().Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return apperrors.ValidationError("invalid JSON body").WithField("cause", err.Error())
}

func sendJSON(c echo.Context, status int, body any) error {
	if err := c.JSON(status, body); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
