package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nyayasetu/services"
)

// ListStoriesHandler godoc
// @Summary      List stories
// @Description  Anonymized community stories, newest first
// @Tags         stories
// @Produce      json
// @Success      200  {array}  models.Story
// @Router       /stories [get]
func ListStoriesHandler(svc *services.StoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// SubmitStoryHandler godoc
// @Summary      Submit story
// @Description  Submit a personal story; it is anonymized by AI before storage, toxic submissions are rejected
// @Tags         stories
// @Accept       json
// @Param        story  body  services.StoryInput  true  "Story payload"
// @Produce      json
// @Success      201  {object}  models.Story
// @Failure      422  {object}  map[string]string
// @Router       /stories [post]
func SubmitStoryHandler(svc *services.StoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.StoryInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		story, err := svc.Submit(c.Request.Context(), in)
		if err != nil {
			var rejected *services.ErrStoryRejected
			if errors.As(err, &rejected) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "story rejected", "reason": rejected.Reason})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, story)
	}
}

// SupportStoryHandler godoc
// @Summary      Support story
// @Description  Increment the support counter of a story
// @Tags         stories
// @Param        id  path  string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /stories/{id}/support [post]
func SupportStoryHandler(svc *services.StoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := svc.Support(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"supports": count})
	}
}

// DeleteStoryHandler godoc
// @Summary      Delete story
// @Tags         admin
// @Param        id  path  string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /admin/stories/{id} [delete]
func DeleteStoryHandler(svc *services.StoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}
