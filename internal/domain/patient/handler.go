package patient

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pms/pms/internal/health"
	"github.com/pms/pms/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the REST surface under api and the dashboard
// compatibility routes (the paths the browser frontend calls) under compat.
func (h *Handler) RegisterRoutes(api, compat *echo.Group) {
	api.GET("/patients", h.ListPatients)
	api.GET("/patients/sort", h.SortPatients)
	api.GET("/patients/search", h.SearchPatients)
	api.GET("/patients/stats", h.GetStats)
	api.GET("/patients/export", h.ExportPatients)
	api.GET("/patients/:id", h.GetPatient)
	api.POST("/patients", h.CreatePatient)
	api.PUT("/patients/:id", h.UpdatePatient)
	api.DELETE("/patients/:id", h.DeletePatient)

	compat.GET("/api", h.Status)
	compat.GET("/about", h.About)
	compat.GET("/view", h.ViewAll)
	compat.GET("/patient/:id", h.GetPatient)
	compat.GET("/sort", h.SortPatients)
	compat.GET("/search", h.SearchPatients)
	compat.GET("/stats", h.GetStats)
	compat.POST("/create", h.CreatePatient)
	compat.PUT("/edit/:id", h.UpdatePatient)
	compat.DELETE("/delete/:id", h.DeletePatient)
}

func (h *Handler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Patient Management System API"})
}

func (h *Handler) About(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "A fully functional API to manage your patient records"})
}

func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// ViewAll returns every record keyed by id, the shape the dashboard table
// consumes.
func (h *Handler) ViewAll(c echo.Context) error {
	items, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	out := make(map[string]*Patient, len(items))
	for _, p := range items {
		out[p.ID] = p
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetPatient(c echo.Context) error {
	p, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &p); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Patient created successfully",
		"patient": &p,
	})
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	var upd Update
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.Update(c.Request().Context(), c.Param("id"), &upd)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Patient updated successfully",
		"patient": p,
	})
}

func (h *Handler) DeletePatient(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Patient deleted successfully"})
}

func (h *Handler) SortPatients(c echo.Context) error {
	order := c.QueryParam("order")
	if order == "" {
		order = "asc"
	}
	items, err := h.svc.Sort(c.Request().Context(), c.QueryParam("sort_by"), order)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) SearchPatients(c echo.Context) error {
	items, err := h.svc.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return httpError(err)
	}
	if items == nil {
		items = []*Patient{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetStats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// httpError maps domain errors onto HTTP status codes. Duplicate create is
// 400 to match the behavior the dashboard expects.
func httpError(err error) error {
	var ve *ValidationError
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
	case errors.Is(err, ErrDuplicateID):
		return echo.NewHTTPError(http.StatusBadRequest, "Patient already exists")
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
	case errors.Is(err, health.ErrInvalidMeasurement):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
