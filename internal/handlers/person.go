package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peopleapp/people-api/internal/models"
	"github.com/peopleapp/people-api/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PersonHandler struct {
	peopleService services.PeopleService
	exportService *services.ExportService
}

func NewPersonHandler(peopleService services.PeopleService, exportService *services.ExportService) *PersonHandler {
	return &PersonHandler{
		peopleService: peopleService,
		exportService: exportService,
	}
}

// ListPeople returns every person
func (h *PersonHandler) ListPeople(c *gin.Context) {
	people, err := h.peopleService.FindAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, people)
}

// GetRandomPerson returns one randomly selected person
func (h *PersonHandler) GetRandomPerson(c *gin.Context) {
	person, err := h.peopleService.FindRandom()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

// GetPerson returns the person with the given ID
func (h *PersonHandler) GetPerson(c *gin.Context) {
	person, err := h.peopleService.FindOne(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

// CreatePerson creates a new person
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var req models.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	person, err := h.peopleService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, person)
}

// UpdatePerson merges the provided fields into an existing person. PUT and
// PATCH behave identically because updates are partial either way.
func (h *PersonHandler) UpdatePerson(c *gin.Context) {
	var req models.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	person, err := h.peopleService.Update(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

// DeletePerson removes the person with the given ID
func (h *PersonHandler) DeletePerson(c *gin.Context) {
	if err := h.peopleService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportPeople sends the people list as an xlsx attachment
func (h *PersonHandler) ExportPeople(c *gin.Context) {
	workbook, err := h.exportService.ExportPeople()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="people.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, workbook.Bytes())
}

// respondError maps service error kinds onto HTTP statuses
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrUnprocessable):
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{
		"success": false,
		"message": err.Error(),
	})
}
