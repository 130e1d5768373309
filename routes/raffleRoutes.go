package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Bzzmn/Foundry-Raffle/controllers"
)

func RaffleRoutes(r *gin.Engine, rc *controllers.RaffleController) {
	r.GET("/api/raffle", rc.GetRaffle)
	r.POST("/api/raffle/enter", rc.EnterRaffle)
	r.GET("/api/raffle/upkeep", rc.CheckUpkeep)
	r.POST("/api/raffle/upkeep", rc.PerformUpkeep)
	r.GET("/api/raffle/players/:index", rc.GetPlayer)
	r.GET("/api/raffle/rounds", rc.GetRounds)
}
