// controllers/raffleController.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Bzzmn/Foundry-Raffle/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RaffleController handles HTTP requests for the raffle.
type RaffleController struct {
	Manager *RaffleManagerWrapper
}

// NewRaffleController returns a new RaffleController instance.
func NewRaffleController(rm *RaffleManagerWrapper) *RaffleController {
	return &RaffleController{Manager: rm}
}

// EnterRaffle admits a player into the current round.
func (rc *RaffleController) EnterRaffle(c *gin.Context) {
	player := c.Query("player")
	if player == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Player parameter is required."})
		return
	}
	amount, err := strconv.ParseInt(c.Query("amount"), 10, 64)
	if err != nil || amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid amount parameter is required."})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := rc.Manager.Enter(ctx, player, amount); err != nil {
		switch {
		case errors.Is(err, models.ErrRaffleNotOpen):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrInsufficientEntranceFee):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Player entered the raffle.",
		"raffle":  rc.Manager.GetRaffle(),
	})
}

// PerformUpkeep advances the round when the upkeep conditions hold.
// Intentionally open to anyone, the same as the check itself.
func (rc *RaffleController) PerformUpkeep(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	requestID, err := rc.Manager.PerformUpkeep(ctx)
	if err != nil {
		var notNeeded *models.UpkeepNotNeededError
		if errors.As(err, &notNeeded) {
			c.JSON(http.StatusConflict, gin.H{"error": notNeeded.Error(), "details": notNeeded})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Upkeep performed, winner requested.",
		"request_id": requestID,
	})
}

// CheckUpkeep reports whether PerformUpkeep would currently succeed.
func (rc *RaffleController) CheckUpkeep(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	ok, err := rc.Manager.CheckUpkeep(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"upkeep_needed": ok})
}

// GetRaffle returns the current round snapshot together with the fixed
// entrance fee and the live pot balance.
func (rc *RaffleController) GetRaffle(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	balance, err := rc.Manager.PotBalance(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"raffle":       rc.Manager.GetRaffle(),
		"entrance_fee": rc.Manager.Config.EntranceFee,
		"balance":      balance,
	})
}

// GetPlayer returns the player occupying a given entry slot.
func (rc *RaffleController) GetPlayer(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid index parameter is required."})
		return
	}

	raffle := rc.Manager.GetRaffle()
	if index >= raffle.NumPlayers() {
		c.JSON(http.StatusNotFound, gin.H{"error": "No player at that index."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"index": index, "player": raffle.Player(index)})
}

// GetRounds returns the most recent completed rounds.
func (rc *RaffleController) GetRounds(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"endedAt": -1}).SetLimit(20)
	cursor, err := RoundCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var rounds []models.RoundRecord
	if err := cursor.All(ctx, &rounds); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rounds": rounds})
}
