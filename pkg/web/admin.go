package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SaigonStudios/GuardBotGo/pkg/database"
	"github.com/SaigonStudios/GuardBotGo/pkg/models"
	"github.com/SaigonStudios/GuardBotGo/pkg/violations"
	"github.com/gin-gonic/gin"
)

// keywordPayload is the request body for creating or updating a keyword
type keywordPayload struct {
	Keyword  string `json:"keyword" binding:"required"`
	Category string `json:"category" binding:"required"`
	Context  string `json:"context"`
	Severity string `json:"severity"`
	IsActive *bool  `json:"is_active"`
}

// settingsPayload is the request body for updating settings
type settingsPayload struct {
	Settings map[string]string `json:"settings" binding:"required"`
}

// registerAdminRoutes mounts the operator console endpoints
func registerAdminRoutes(s *Server, store *violations.Store, feed *FeedHub) {
	admin := s.Group("/api/admin")
	{
		admin.GET("/keywords", listKeywordsHandler)
		admin.POST("/keywords", createKeywordHandler)
		admin.PUT("/keywords/:id", updateKeywordHandler)
		admin.POST("/keywords/:id/toggle", toggleKeywordHandler)
		admin.DELETE("/keywords/:id", deleteKeywordHandler)

		admin.GET("/violations", violationsHandler(store))
		admin.DELETE("/violations", clearViolationsHandler(store))
		admin.GET("/stats", statsHandler(store))

		admin.GET("/settings", settingsGetHandler)
		admin.PUT("/settings", settingsPutHandler)

		admin.GET("/feed", feed.Handler())
	}
}

// listKeywordsHandler returns one page of filter keywords
func listKeywordsHandler(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	list, err := database.ListRules(c.Request.Context(), database.RuleListOptions{
		Category: category,
		Search:   c.Query("search"),
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// createKeywordHandler adds a new filter keyword
func createKeywordHandler(c *gin.Context) {
	var payload keywordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}

	entry, err := database.AddRule(
		c.Request.Context(),
		payload.Keyword,
		models.RuleCategory(payload.Category),
		payload.Context,
		"console",
		models.RuleSeverity(payload.Severity),
		isActive,
	)
	if err != nil {
		c.JSON(ruleErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// updateKeywordHandler edits an existing filter keyword
func updateKeywordHandler(c *gin.Context) {
	var payload keywordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}

	entry, err := database.UpdateRule(
		c.Request.Context(),
		c.Param("id"),
		payload.Keyword,
		models.RuleCategory(payload.Category),
		payload.Context,
		models.RuleSeverity(payload.Severity),
		isActive,
	)
	if err != nil {
		c.JSON(ruleErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// toggleKeywordHandler flips a keyword's active flag
func toggleKeywordHandler(c *gin.Context) {
	entry, err := database.ToggleRule(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(ruleErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// deleteKeywordHandler removes a keyword permanently
func deleteKeywordHandler(c *gin.Context) {
	if err := database.DeleteRule(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(ruleErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ruleErrorStatus maps rule service errors to HTTP status codes
func ruleErrorStatus(err error) int {
	switch {
	case errors.Is(err, database.ErrDuplicateRule):
		return http.StatusConflict
	case errors.Is(err, database.ErrRuleNotFound):
		return http.StatusNotFound
	case errors.Is(err, database.ErrInvalidCategory), errors.Is(err, database.ErrEmptyKeyword):
		return http.StatusBadRequest
	default:
		return http.StatusServiceUnavailable
	}
}

// violationsHandler returns recent violation records
func violationsHandler(store *violations.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
		guildID := c.Query("guild_id")
		vtype := c.Query("type")

		records := store.Window(guildID, days)
		if vtype != "" {
			filtered := make([]models.ViolationRecord, 0, len(records))
			for _, rec := range records {
				if rec.ViolationType == vtype {
					filtered = append(filtered, rec)
				}
			}
			records = filtered
		}

		c.JSON(http.StatusOK, gin.H{
			"violations": records,
			"count":      len(records),
		})
	}
}

// clearViolationsHandler erases violation data, optionally per guild
func clearViolationsHandler(store *violations.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		store.Clear(c.Query("guild_id"))
		c.JSON(http.StatusOK, gin.H{"cleared": true})
	}
}

// statsHandler returns aggregated violation statistics
func statsHandler(store *violations.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
		stats := store.Stats(c.Query("guild_id"), days)
		c.JSON(http.StatusOK, stats)
	}
}

// settingsGetHandler returns all moderation settings
func settingsGetHandler(c *gin.Context) {
	settings, err := database.AllSettings()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// settingsPutHandler updates moderation settings
func settingsPutHandler(c *gin.Context) {
	var payload settingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for key, value := range payload.Settings {
		if _, err := database.SetSetting(key, value); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
	}

	settings, err := database.AllSettings()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
