package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nyayasetu/dailylaw"
	"nyayasetu/logger"
)

// LawOfDayHandler godoc
// @Summary      Law of the day
// @Description  Latest daily law case study, generated on demand when today's record is missing
// @Tags         ai
// @Produce      json
// @Success      200  {object}  models.DailyLaw
// @Failure      503  {object}  map[string]string
// @Router       /ai/law-of-day [get]
func LawOfDayHandler(svc *dailylaw.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := svc.GetToday(c.Request.Context())
		if err != nil {
			logger.ErrorWithFields("law-of-day unavailable", logger.Fields{"error": err.Error()})
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "law of the day temporarily unavailable"})
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

// WeeklyUpdatesHandler godoc
// @Summary      Weekly updates
// @Description  Daily laws from the last seven days, newest first
// @Tags         ai
// @Produce      json
// @Success      200  {array}  models.DailyLaw
// @Router       /ai/weekly-updates [get]
func WeeklyUpdatesHandler(svc *dailylaw.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.GetWeekly(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GetDailyLawHandler godoc
// @Summary      Get daily law by id
// @Description  Get a single archived daily law by ObjectID
// @Tags         ai
// @Param        id   path   string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  models.DailyLaw
// @Router       /ai/law/{id} [get]
func GetDailyLawHandler(svc *dailylaw.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}
