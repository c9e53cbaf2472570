package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nyayasetu/services"
)

// ListNewsHandler godoc
// @Summary      List news
// @Description  Curated news articles, highlights first
// @Tags         news
// @Produce      json
// @Success      200  {array}  models.News
// @Router       /news [get]
func ListNewsHandler(svc *services.NewsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GetNewsHandler godoc
// @Summary      Get news article
// @Tags         news
// @Param        id  path  string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  models.News
// @Router       /news/{id} [get]
func GetNewsHandler(svc *services.NewsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// CreateNewsHandler godoc
// @Summary      Create news article
// @Tags         admin
// @Accept       json
// @Param        news  body  services.NewsInput  true  "News payload"
// @Produce      json
// @Success      201  {object}  models.News
// @Router       /admin/news [post]
func CreateNewsHandler(svc *services.NewsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.NewsInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		item, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// UpdateNewsHandler godoc
// @Summary      Update news article
// @Tags         admin
// @Accept       json
// @Param        id    path  string              true  "ObjectID"
// @Param        news  body  services.NewsInput  true  "News payload"
// @Produce      json
// @Success      200  {object}  models.News
// @Router       /admin/news/{id} [put]
func UpdateNewsHandler(svc *services.NewsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.NewsInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		item, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DeleteNewsHandler godoc
// @Summary      Delete news article
// @Tags         admin
// @Param        id  path  string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /admin/news/{id} [delete]
func DeleteNewsHandler(svc *services.NewsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

// ExtractNewsInput is the admin import-from-URL payload.
type ExtractNewsInput struct {
	URL string `json:"url" binding:"required"`
}

// ExtractNewsHandler godoc
// @Summary      Extract news draft
// @Description  Fetch an article URL and return a prefilled draft for the editor
// @Tags         admin
// @Accept       json
// @Param        req  body  handlers.ExtractNewsInput  true  "Article URL"
// @Produce      json
// @Success      200  {object}  services.NewsInput
// @Router       /admin/news/extract [post]
func ExtractNewsHandler(svc *services.NewsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ExtractNewsInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		draft, err := svc.ExtractDraft(c.Request.Context(), in.URL)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, draft)
	}
}
