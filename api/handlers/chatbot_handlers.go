package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nyayasetu/assistant"
)

// ChatInput is the chatbot request payload.
type ChatInput struct {
	Message string `json:"message" binding:"required"`
}

// AnalyzeStoryInput is the standalone story analysis payload.
type AnalyzeStoryInput struct {
	Story string `json:"story" binding:"required"`
}

// ChatHandler godoc
// @Summary      Legal assistant chat
// @Description  One-shot multilingual legal question answering
// @Tags         ai
// @Accept       json
// @Param        chat  body  handlers.ChatInput  true  "Chat payload"
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /ai/chat [post]
func ChatHandler(client *assistant.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ChatInput
		if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Message) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
			return
		}
		reply, err := client.Chat(c.Request.Context(), in.Message)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant temporarily unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reply": reply})
	}
}

// AnalyzeStoryHandler godoc
// @Summary      Analyze story
// @Description  Anonymize a story draft and return the legal insight without storing anything
// @Tags         ai
// @Accept       json
// @Param        story  body  handlers.AnalyzeStoryInput  true  "Story payload"
// @Produce      json
// @Success      200  {object}  assistant.StoryAnalysis
// @Router       /ai/analyze-story [post]
func AnalyzeStoryHandler(client *assistant.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in AnalyzeStoryInput
		if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Story) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "story is required"})
			return
		}
		analysis, err := client.AnalyzeStory(c.Request.Context(), in.Story)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant temporarily unavailable"})
			return
		}
		c.JSON(http.StatusOK, analysis)
	}
}
