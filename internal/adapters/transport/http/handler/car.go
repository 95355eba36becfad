package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/drivelane/carmarket/internal/adapters/transport/http/dto"
	"github.com/drivelane/carmarket/internal/adapters/transport/http/middleware"
	"github.com/drivelane/carmarket/internal/app/catalog/service"
)

type Car struct {
	svc service.CarService
}

func NewCar(svc service.CarService) *Car {
	return &Car{svc: svc}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *Car) List(c *gin.Context) {
	var q dto.CarListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	viewer, _ := middleware.IdentityFrom(c)
	cars, err := h.svc.List(c.Request.Context(), q, viewer)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cars": cars})
}

func (h *Car) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	car, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (h *Car) Create(c *gin.Context) {
	var body dto.CarCreateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	car, err := h.svc.Create(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, car)
}

func (h *Car) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body dto.CarUpdateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	car, err := h.svc.Update(c.Request.Context(), id, body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (h *Car) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
