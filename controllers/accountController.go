// controllers/accountController.go
package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// StartingBalance is credited to every newly created account.
const StartingBalance int64 = 10000

// CreateAccountHandler creates a ledger account for a player with the
// starting balance, or tops up an existing one when an amount is given.
func CreateAccountHandler(ledger Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		player := c.Query("player")
		if player == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player parameter is required"})
			return
		}

		amount := StartingBalance
		if raw := c.Query("amount"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || parsed <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "valid amount parameter is required"})
				return
			}
			amount = parsed
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		if err := ledger.Deposit(ctx, player, amount); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		balance, err := ledger.Balance(ctx, player)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "account funded",
			"player":  player,
			"balance": balance,
		})
	}
}

// GetAccountHandler returns a player's ledger balance.
func GetAccountHandler(ledger Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		player := c.Param("player")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		balance, err := ledger.Balance(ctx, player)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"player": player, "balance": balance})
	}
}
