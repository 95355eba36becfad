package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivelane/carmarket/internal/adapters/transport/http/dto"
	"github.com/drivelane/carmarket/internal/adapters/transport/http/middleware"
	"github.com/drivelane/carmarket/internal/app/catalog/service"
)

type Inquiry struct {
	svc service.InquiryService
}

func NewInquiry(svc service.InquiryService) *Inquiry {
	return &Inquiry{svc: svc}
}

func (h *Inquiry) Create(c *gin.Context) {
	var body dto.InquiryCreateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	viewer, _ := middleware.IdentityFrom(c)
	q, err := h.svc.Create(c.Request.Context(), body, viewer)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (h *Inquiry) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context(), 0)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inquiries": out})
}

func (h *Inquiry) ListForCar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	out, err := h.svc.List(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inquiries": out})
}
