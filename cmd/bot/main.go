package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/hunterguild/system-bot/internal/common/clock"
	"github.com/hunterguild/system-bot/internal/common/identity"
	"github.com/hunterguild/system-bot/internal/config"
	"github.com/hunterguild/system-bot/internal/handlers/discord"
	playerRepo "github.com/hunterguild/system-bot/internal/repositories/player"
	questRepo "github.com/hunterguild/system-bot/internal/repositories/quest"
	reviewRepo "github.com/hunterguild/system-bot/internal/repositories/review"
	submissionRepo "github.com/hunterguild/system-bot/internal/repositories/submission"
	progressionService "github.com/hunterguild/system-bot/internal/services/progression"
	questService "github.com/hunterguild/system-bot/internal/services/quest"
	reviewService "github.com/hunterguild/system-bot/internal/services/review"
)

func main() {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	players, err := playerRepo.NewRedis(&playerRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create player repository: %v", err)
	}

	quests, err := questRepo.NewRedis(&questRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create quest repository: %v", err)
	}

	submissions, err := submissionRepo.NewRedis(&submissionRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create submission repository: %v", err)
	}

	reviews, err := reviewRepo.NewRedis(&reviewRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create review repository: %v", err)
	}

	clk := &clock.DefaultClock{}
	idGen := identity.New(clk)

	// Initialize services
	progressionSvc, err := progressionService.New(&progressionService.Config{
		PlayerRepo: players,
	})
	if err != nil {
		log.Fatalf("Failed to create progression service: %v", err)
	}

	questSvc, err := questService.New(&questService.Config{
		QuestRepo:  quests,
		PlayerRepo: players,
		Clock:      clk,
		IDGen:      idGen,
	})
	if err != nil {
		log.Fatalf("Failed to create quest service: %v", err)
	}

	reviewSvc, err := reviewService.New(&reviewService.Config{
		SubmissionRepo:     submissions,
		ReviewRepo:         reviews,
		ProgressionService: progressionSvc,
		QuestService:       questSvc,
		Clock:              clk,
		IDGen:              idGen,
	})
	if err != nil {
		log.Fatalf("Failed to create review service: %v", err)
	}

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Token:              cfg.Discord.Token,
		ApplicationID:      cfg.Discord.AppID,
		GuildID:            cfg.Discord.GuildID,
		HostID:             cfg.Discord.HostID,
		ProgressionService: progressionSvc,
		QuestService:       questSvc,
		ReviewService:      reviewSvc,
	})
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	// Start the bot
	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Shutdown the bot
	if err := bot.Stop(); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}

	log.Println("Bot has been shut down")
}
