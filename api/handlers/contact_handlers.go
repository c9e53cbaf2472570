package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nyayasetu/services"
)

// SubmitContactHandler godoc
// @Summary      Submit contact form
// @Description  Store a contact inquiry and forward it by email best-effort
// @Tags         contact
// @Accept       json
// @Param        contact  body  services.ContactInput  true  "Contact payload"
// @Produce      json
// @Success      201  {object}  map[string]string
// @Router       /contact [post]
func SubmitContactHandler(svc *services.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.ContactInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if _, err := svc.Submit(c.Request.Context(), in); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"status": "received"})
	}
}

// ListContactsHandler godoc
// @Summary      List contact submissions
// @Tags         admin
// @Produce      json
// @Success      200  {array}  models.Contact
// @Router       /admin/contacts [get]
func ListContactsHandler(svc *services.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}
