// Package main is the entry point for the GuardBot Go application.
// It initializes all systems and starts the Discord bot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SaigonStudios/GuardBotGo/internal/commands"
	"github.com/SaigonStudios/GuardBotGo/internal/events"
	"github.com/SaigonStudios/GuardBotGo/pkg/config"
	"github.com/SaigonStudios/GuardBotGo/pkg/database"
	"github.com/SaigonStudios/GuardBotGo/pkg/discord"
	"github.com/SaigonStudios/GuardBotGo/pkg/errors"
	"github.com/SaigonStudios/GuardBotGo/pkg/logger"
	"github.com/SaigonStudios/GuardBotGo/pkg/moderation"
	"github.com/SaigonStudios/GuardBotGo/pkg/mqtt"
	"github.com/SaigonStudios/GuardBotGo/pkg/violations"
	"github.com/SaigonStudios/GuardBotGo/pkg/web"
)

// snapshotRefreshInterval is how often operator rules are re-read from Mongo
const snapshotRefreshInterval = 5 * time.Minute

// retentionDays is how long violation records are kept on disk
const retentionDays = 30

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Starting GuardBot Go...", "Main")
	logger.Info(fmt.Sprintf("Working directory: %s", getCurrentDir()), "Main")

	// Initialize error handler
	var discordClient *discord.ExtendedClient
	errors.Init(cfg.ErrorWebhook, func() {
		if discordClient != nil {
			err := discordClient.Stop()
			if err != nil {
				return
			}
		}
	})

	// Initialize database
	db, err := database.Init(cfg.MongoDBURL, cfg.DBName)
	if err != nil {
		logger.Error(fmt.Sprintf("Error connecting to database: %v", err), "Main")
		// Continue without database- it will attempt to reconnect
	}
	defer func() {
		if db != nil {
			err := db.Disconnect()
			if err != nil {
				return
			}
		}
	}()

	// Initialize global DataManagers
	if db != nil {
		database.InitGlobalDataManagers(db)
	}

	// Build the moderation pipeline: operator rules from Mongo layered
	// over the built-in lists, refreshed in the background
	ruleSnapshots := moderation.NewSnapshotStore(database.RuleSource{})
	if err := ruleSnapshots.Refresh(context.Background()); err != nil {
		logger.Warn(fmt.Sprintf("Initial rule refresh failed, running on built-in lists: %v", err), "Main")
	}
	ruleSnapshots.StartAutoRefresh(snapshotRefreshInterval)
	defer ruleSnapshots.StopAutoRefresh()

	keywordEngine := moderation.NewKeywordEngine(ruleSnapshots)
	classifier := moderation.NewClassifier(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	moderationService := moderation.NewService(keywordEngine, classifier, database.AIModerationEnabled)

	// Violation store
	violationStore := violations.NewStore(cfg.ViolationsFile)

	// Retention loop: drop old violation records once a day
	stopRetention := startRetentionLoop(violationStore)
	defer stopRetention()

	// Initialize MQTT
	mqttClientID := "guardbot"
	if !cfg.IsProd() {
		mqttClientID = "guardbot_canary"
	}

	mqttClient := mqtt.Init(
		cfg.MQTTHost,
		cfg.MQTTPort,
		cfg.MQTTUser,
		cfg.MQTTPassword,
		mqttClientID,
	)
	defer mqttClient.Destroy()

	mqtt.RegisterStatsHandler(mqttClient, violationStore)

	// Initialize web server with the live violation feed
	feed := web.NewFeedHub()
	webServer := web.Init(cfg.LogsWebServerHook)
	web.SetupAPIRoutes(webServer, violationStore, feed)
	webServer.StartAsync(cfg.Port)

	// Initialize Discord client
	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}

	// Register commands using the commands package
	commands.RegisterAll(discordClient, violationStore)

	// Register events with the moderation pipeline wired in
	events.RegisterAll(discordClient, &events.Pipeline{
		Client:  discordClient,
		Service: moderationService,
		Store:   violationStore,
		Sinks: []events.ViolationSink{
			mqtt.NewViolationPublisher(mqttClient),
			feed,
		},
	})

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}
	defer func(discordClient *discord.ExtendedClient) {
		err := discordClient.Stop()
		if err != nil {

		}
	}(discordClient)

	logger.Success("GuardBot Go started successfully!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Shutting down GuardBot Go...", "Main")
}

// startRetentionLoop prunes old violations daily. The returned function
// stops the loop.
func startRetentionLoop(store *violations.Store) func() {
	ticker := time.NewTicker(24 * time.Hour)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				removed := store.Cleanup(retentionDays)
				if removed > 0 {
					logger.Info(fmt.Sprintf("Retention: removed %d old violations", removed), "Main")
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(done)
	}
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
