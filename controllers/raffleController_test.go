package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter(rm *RaffleManagerWrapper) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rc := NewRaffleController(rm)
	r.GET("/api/raffle", rc.GetRaffle)
	r.POST("/api/raffle/enter", rc.EnterRaffle)
	r.GET("/api/raffle/upkeep", rc.CheckUpkeep)
	r.POST("/api/raffle/upkeep", rc.PerformUpkeep)
	r.GET("/api/raffle/players/:index", rc.GetPlayer)
	return r
}

func doRequest(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestEnterRaffleEndpoint(t *testing.T) {
	rm, ledger, _ := newTestManager(100, time.Minute)
	fund(t, ledger, "alice", 500)
	r := newTestRouter(rm)

	w := doRequest(r, http.MethodPost, "/api/raffle/enter?player=alice&amount=100")
	require.Equal(t, http.StatusOK, w.Code)
	snapshot := rm.GetRaffle()
	require.Equal(t, 1, snapshot.NumPlayers())

	// Below the fee.
	w = doRequest(r, http.MethodPost, "/api/raffle/enter?player=alice&amount=5")
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Missing player.
	w = doRequest(r, http.MethodPost, "/api/raffle/enter?amount=100")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEnterRaffleEndpointWhileCalculating(t *testing.T) {
	rm, ledger, _ := newTestManager(100, time.Minute)
	fund(t, ledger, "alice", 500)
	enter(t, rm, "alice", 100)
	backdate(rm)
	_, err := rm.PerformUpkeep(context.Background())
	require.NoError(t, err)

	r := newTestRouter(rm)
	w := doRequest(r, http.MethodPost, "/api/raffle/enter?player=alice&amount=100")
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestUpkeepEndpoints(t *testing.T) {
	rm, ledger, _ := newTestManager(100, time.Minute)
	fund(t, ledger, "alice", 500)
	r := newTestRouter(rm)

	w := doRequest(r, http.MethodGet, "/api/raffle/upkeep")
	require.Equal(t, http.StatusOK, w.Code)
	var check struct {
		UpkeepNeeded bool `json:"upkeep_needed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &check))
	require.False(t, check.UpkeepNeeded)

	// Performing upkeep while ineligible returns the diagnostic snapshot.
	w = doRequest(r, http.MethodPost, "/api/raffle/upkeep")
	require.Equal(t, http.StatusConflict, w.Code)
	var resp struct {
		Details struct {
			Balance    int64  `json:"balance"`
			NumPlayers int    `json:"numPlayers"`
			State      string `json:"state"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "open", resp.Details.State)

	enter(t, rm, "alice", 100)
	backdate(rm)
	w = doRequest(r, http.MethodPost, "/api/raffle/upkeep")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGetRaffleAndPlayerEndpoints(t *testing.T) {
	rm, ledger, _ := newTestManager(100, time.Minute)
	fund(t, ledger, "alice", 500)
	enter(t, rm, "alice", 100)
	r := newTestRouter(rm)

	w := doRequest(r, http.MethodGet, "/api/raffle")
	require.Equal(t, http.StatusOK, w.Code)
	var snapshot struct {
		EntranceFee int64 `json:"entrance_fee"`
		Balance     int64 `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	require.Equal(t, int64(100), snapshot.EntranceFee)
	require.Equal(t, int64(100), snapshot.Balance)

	w = doRequest(r, http.MethodGet, "/api/raffle/players/0")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/api/raffle/players/5")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodGet, "/api/raffle/players/abc")
	require.Equal(t, http.StatusBadRequest, w.Code)
}
