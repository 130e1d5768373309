package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Bzzmn/Foundry-Raffle/controllers"
	"github.com/Bzzmn/Foundry-Raffle/db"
	"github.com/Bzzmn/Foundry-Raffle/models"
	"github.com/Bzzmn/Foundry-Raffle/oracle"
	"github.com/Bzzmn/Foundry-Raffle/routes"
	"github.com/Bzzmn/Foundry-Raffle/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	// Connect to the database
	db.ConnectDB()
	database := db.GetDB()

	// Initialize the WebSocket hub
	hub := models.NewHub()
	go hub.Run()

	// Initialize all collections
	controllers.SetAccountCollection(database)
	controllers.SetRoundCollection(database)
	controllers.SetEntryCollection(database)

	cfg := loadRaffleConfig()
	ledger := db.NewMongoLedger(db.Client, database)

	coordinator := oracle.NewCoordinator(cfg.CoordinatorID, envDuration("ORACLE_BLOCK_TIME", 2*time.Second))

	rm := controllers.NewRaffleManager(hub, cfg, ledger, coordinator)
	coordinator.SetConsumer(rm)
	controllers.CurrentRaffleManager = rm
	rm.StartTimerUpdates()

	if os.Getenv("RAFFLE_KEEPER") == "true" {
		keeper := controllers.NewKeeper(rm, envDuration("RAFFLE_KEEPER_INTERVAL", 5*time.Second))
		go keeper.Run()
		log.Println("Keeper enabled.")
	}

	// Initialize routes
	r := gin.Default()
	r.Use(cors.Default())
	r.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(hub, c.Writer, c.Request)
	})
	rc := controllers.NewRaffleController(rm)
	routes.RaffleRoutes(r, rc)
	routes.AccountRoutes(r, ledger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Println("Server running on port", port)
	r.Run(":" + port)
}

// loadRaffleConfig reads the raffle parameters once at startup; they are
// fixed for the lifetime of the process.
func loadRaffleConfig() models.RaffleConfig {
	return models.RaffleConfig{
		EntranceFee:          envInt64("RAFFLE_ENTRANCE_FEE", 100),
		Interval:             envDuration("RAFFLE_INTERVAL", 60*time.Second),
		KeyHash:              envString("RAFFLE_KEY_HASH", "default-gas-lane"),
		SubscriptionID:       uint64(envInt64("RAFFLE_SUBSCRIPTION_ID", 1)),
		RequestConfirmations: uint16(envInt64("RAFFLE_REQUEST_CONFIRMATIONS", 3)),
		CallbackGasLimit:     uint32(envInt64("RAFFLE_CALLBACK_GAS_LIMIT", 500000)),
		CoordinatorID:        envString("RAFFLE_COORDINATOR_ID", "vrf-coordinator"),
		PotAccount:           envString("RAFFLE_POT_ACCOUNT", "raffle:pot"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return parsed
}
