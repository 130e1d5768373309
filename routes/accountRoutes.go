package routes

import (
	"github.com/Bzzmn/Foundry-Raffle/controllers"

	"github.com/gin-gonic/gin"
)

func AccountRoutes(r *gin.Engine, ledger controllers.Ledger) {
	r.POST("/api/accounts", controllers.CreateAccountHandler(ledger))
	r.GET("/api/accounts/:player", controllers.GetAccountHandler(ledger))
}
