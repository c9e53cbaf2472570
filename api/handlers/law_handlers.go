package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nyayasetu/repositories"
	"nyayasetu/services"
)

// ListLawsHandler godoc
// @Summary      Search laws
// @Description  Search published laws with filters and pagination
// @Tags         laws
// @Param        q              query  string  false  "Free text query"
// @Param        category       query  string  false  "Category"
// @Param        year           query  int     false  "Year"
// @Param        court_level    query  string  false  "Court level"
// @Param        jurisdiction   query  string  false  "Jurisdiction"
// @Param        practice_area  query  string  false  "Practice area"
// @Param        law_type       query  string  false  "statute or case"
// @Param        sort           query  string  false  "newest, year_desc, year_asc"
// @Param        page           query  int     false  "Page number (1-based)"
// @Param        page_size      query  int     false  "Page size (<=100)"
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /laws [get]
func ListLawsHandler(svc *services.LawService) gin.HandlerFunc {
	return listLawsHandler(svc, true)
}

// ListLawsAdminHandler godoc
// @Summary      List laws (admin)
// @Description  Search all laws including drafts
// @Tags         admin
// @Param        q          query  string  false  "Free text query"
// @Param        published  query  bool    false  "Filter by publish state"
// @Param        page       query  int     false  "Page number (1-based)"
// @Param        page_size  query  int     false  "Page size (<=100)"
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/laws [get]
func ListLawsAdminHandler(svc *services.LawService) gin.HandlerFunc {
	return listLawsHandler(svc, false)
}

func listLawsHandler(svc *services.LawService, publishedOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var o repositories.ListLawsOptions
		o.Query = c.Query("q")
		o.Category = c.Query("category")
		o.Year, _ = strconv.Atoi(c.Query("year"))
		o.CourtLevel = c.Query("court_level")
		o.Jurisdiction = c.Query("jurisdiction")
		o.PracticeArea = c.Query("practice_area")
		o.LawType = c.Query("law_type")
		o.Sort = c.Query("sort")
		o.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
		o.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
		o.PublishedOnly = publishedOnly
		if !publishedOnly {
			if raw, ok := c.GetQuery("published"); ok {
				if v, err := strconv.ParseBool(raw); err == nil {
					o.Published = &v
				}
			}
		}

		items, total, err := svc.List(c.Request.Context(), o)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items":     items,
			"total":     total,
			"page":      o.Page,
			"page_size": o.PageSize,
		})
	}
}

// SuggestLawsHandler godoc
// @Summary      Suggest laws
// @Description  Top 5 published matches for a partial query
// @Tags         laws
// @Param        q   query  string  true  "Partial query"
// @Produce      json
// @Success      200  {array}  models.Law
// @Router       /laws/suggest [get]
func SuggestLawsHandler(svc *services.LawService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.Suggest(c.Request.Context(), c.Query("q"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GetLawHandler godoc
// @Summary      Get law
// @Description  Get a published law by slug or ObjectID
// @Tags         laws
// @Param        idOrSlug  path  string  true  "Slug or ObjectID"
// @Produce      json
// @Success      200  {object}  models.Law
// @Router       /laws/{idOrSlug} [get]
func GetLawHandler(svc *services.LawService) gin.HandlerFunc {
	return func(c *gin.Context) {
		law, err := svc.GetPublic(c.Request.Context(), c.Param("idOrSlug"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, law)
	}
}

// GetLawAdminHandler godoc
// @Summary      Get law (admin)
// @Description  Get any law by slug or ObjectID, draft or published
// @Tags         admin
// @Param        idOrSlug  path  string  true  "Slug or ObjectID"
// @Produce      json
// @Success      200  {object}  models.Law
// @Router       /admin/laws/{idOrSlug} [get]
func GetLawAdminHandler(svc *services.LawService) gin.HandlerFunc {
	return func(c *gin.Context) {
		law, err := svc.GetAdmin(c.Request.Context(), c.Param("idOrSlug"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, law)
	}
}

// CreateLawHandler godoc
// @Summary      Create law
// @Tags         admin
// @Accept       json
// @Param        law  body  services.LawInput  true  "Law payload"
// @Produce      json
// @Success      201  {object}  models.Law
// @Router       /admin/laws [post]
func CreateLawHandler(svc *services.LawService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.LawInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		law, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, law)
	}
}

// UpdateLawHandler godoc
// @Summary      Update law
// @Tags         admin
// @Accept       json
// @Param        id   path  string             true  "ObjectID"
// @Param        law  body  services.LawInput  true  "Law payload"
// @Produce      json
// @Success      200  {object}  models.Law
// @Router       /admin/laws/{id} [put]
func UpdateLawHandler(svc *services.LawService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.LawInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		law, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, law)
	}
}

// DeleteLawHandler godoc
// @Summary      Delete law
// @Tags         admin
// @Param        id  path  string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /admin/laws/{id} [delete]
func DeleteLawHandler(svc *services.LawService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

// TogglePublishLawHandler godoc
// @Summary      Toggle publish
// @Description  Flip a law between draft and published
// @Tags         admin
// @Param        id  path  string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  models.Law
// @Router       /admin/laws/{id}/toggle-publish [post]
func TogglePublishLawHandler(svc *services.LawService) gin.HandlerFunc {
	return func(c *gin.Context) {
		law, err := svc.TogglePublish(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, law)
	}
}
