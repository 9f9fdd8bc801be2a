package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"

	"github.com/krisp619/AI-Assisted-collaborative-Diagramming-Tool/config"
	"github.com/krisp619/AI-Assisted-collaborative-Diagramming-Tool/diagram"
	"github.com/krisp619/AI-Assisted-collaborative-Diagramming-Tool/hub"
	"github.com/krisp619/AI-Assisted-collaborative-Diagramming-Tool/protocol"
	ws "github.com/krisp619/AI-Assisted-collaborative-Diagramming-Tool/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.Log.Level)

	relay := hub.New()
	handler := protocol.NewHandler(relay)
	wsCfg := ws.Config{
		WriteWait:      cfg.WebSocket.WriteWait,
		PongWait:       cfg.WebSocket.PongWait,
		PingPeriod:     cfg.WebSocket.PingInterval,
		MaxMessageSize: cfg.WebSocket.MaxMessageSize,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.Static("/static", "./static")
	r.GET("/", func(c *gin.Context) {
		c.File("./static/index.html")
	})

	r.GET("/ws/draw", drawHandler(relay, handler, wsCfg))
	r.GET("/health", healthHandler(relay))
	r.GET("/stats", statsHandler(relay))
	r.POST("/diagram/cleanup", cleanupHandler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "addr", addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

func setupLogger(level string) {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}

func drawHandler(relay *hub.Hub, handler *protocol.Handler, wsCfg ws.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.Error("upgrade error", "error", err)
			return
		}

		participant := ws.NewConn(uuid.New().String(), conn, relay, handler, wsCfg)
		participant.Start()
	}
}

func healthHandler(relay *hub.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":             "healthy",
			"active_connections": relay.Count(),
		})
	}
}

func statsHandler(relay *hub.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"clients": relay.Count()})
	}
}

type cleanupRequest struct {
	ImageData string `json:"image_data" binding:"required"`
}

func cleanupHandler(c *gin.Context) {
	var req cleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	if _, err := base64.StdEncoding.DecodeString(req.ImageData); err != nil {
		slog.Error("failed to decode image", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid image data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"commands": diagram.Layout(diagram.DefaultSteps),
		"success":  true,
		"message":  "Diagram cleaned successfully",
	})
}
