// Package web provides API routes for the web server.
package web

import (
	"net/http"

	"github.com/SaigonStudios/GuardBotGo/pkg/database"
	"github.com/SaigonStudios/GuardBotGo/pkg/discord"
	"github.com/SaigonStudios/GuardBotGo/pkg/models"
	"github.com/SaigonStudios/GuardBotGo/pkg/violations"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes sets up the API routes. The violation store backs the
// reporting endpoints; the feed hub backs the live websocket.
func SetupAPIRoutes(s *Server, store *violations.Store, feed *FeedHub) {
	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)

		// Read API for the bot and external consumers
		api.GET("/keywords", activeKeywordsHandler)
		api.GET("/settings", publicSettingsHandler)
	}

	registerAdminRoutes(s, store, feed)
}

// statusHandler returns the bot and database status
func statusHandler(c *gin.Context) {
	db := database.Get()
	client := discord.Get()

	dbStatus, dbOnline := db.GetStatus()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
	})
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "GuardBot Go is running",
	})
}

// botInfoHandler returns information about the bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "The bot is not available right now.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"guilds":        client.GuildCount(),
		"isReady":       client.IsReady(),
	})
}

// activeKeywordsHandler returns the active filter keywords grouped by category
func activeKeywordsHandler(c *gin.Context) {
	grouped, err := database.ActiveRulesByCategory(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	keywords := make(map[string][]string, len(grouped))
	for category, entries := range grouped {
		terms := make([]string, 0, len(entries))
		for _, entry := range entries {
			terms = append(terms, entry.Keyword)
		}
		keywords[string(category)] = terms
	}

	c.JSON(http.StatusOK, gin.H{"keywords": keywords})
}

// publicSettingsHandler returns the moderation settings as a flat map
func publicSettingsHandler(c *gin.Context) {
	settings, err := database.AllSettings()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// categoryParam parses an optional rule category query parameter
func categoryParam(c *gin.Context) (models.RuleCategory, bool) {
	raw := c.Query("category")
	if raw == "" {
		return "", true
	}
	category := models.RuleCategory(raw)
	return category, category.Valid()
}
