package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ServiceCatalog interface {
	ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	UpdateService(ctx context.Context, id string, fields map[string]any) (*models.Service, error)
	DeleteService(ctx context.Context, id string) error
}

type ServiceHandler struct {
	catalog ServiceCatalog
}

func NewServiceHandler(catalog ServiceCatalog) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Key         string  `json:"key"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

type serviceView struct {
	models.Service
	Duration int `json:"duration"`
}

// --------- Handlers ---------

// List shows active services; ?all=true adds inactive ones for super admins.
func (h *ServiceHandler) List(c *gin.Context) {
	activeOnly := strings.TrimSpace(c.Query("all")) != "true"

	services, err := h.catalog.ListServices(c.Request.Context(), activeOnly)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out := make([]serviceView, 0, len(services))
	for _, s := range services {
		out = append(out, serviceView{Service: s, Duration: domain.DurationOf(s.Key)})
	}
	httpresp.List(c, out)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	key := strings.TrimSpace(req.Key)
	if key == "" {
		key = strings.TrimSpace(req.Name)
	}

	s := models.Service{
		Key:         key,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Active:      true,
	}

	if err := h.catalog.CreateService(c.Request.Context(), &s); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, serviceView{Service: s, Duration: domain.DurationOf(s.Key)})
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			httperr.BadRequest(c, "invalid_price", "")
			return
		}
		fields["price"] = *req.Price
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}

	s, err := h.catalog.UpdateService(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, serviceView{Service: *s, Duration: domain.DurationOf(s.Key)})
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	if err := h.catalog.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
