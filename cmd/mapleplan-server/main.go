package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mapleplan/mapleplan/internal/calculation"
	"github.com/mapleplan/mapleplan/internal/domain"
	"github.com/mapleplan/mapleplan/internal/enrich"
	"github.com/mapleplan/mapleplan/internal/knowledge"
	"github.com/mapleplan/mapleplan/internal/planstore"
	"github.com/mapleplan/mapleplan/internal/ratelimit"
)

// zapEngineLogger adapts a sugared zap logger to the calculation.Logger
// interface.
type zapEngineLogger struct {
	log *zap.SugaredLogger
}

func (l zapEngineLogger) Debugf(format string, args ...any) { l.log.Debugf(format, args...) }
func (l zapEngineLogger) Infof(format string, args ...any)  { l.log.Infof(format, args...) }
func (l zapEngineLogger) Warnf(format string, args ...any)  { l.log.Warnf(format, args...) }
func (l zapEngineLogger) Errorf(format string, args ...any) { l.log.Errorf(format, args...) }

type server struct {
	engine    *calculation.Engine
	store     planstore.Store
	knowledge *knowledge.Base
	enricher  enrich.Enricher
	log       *zap.SugaredLogger
}

// enrichTimeout bounds the optional narrative rewrite. Past the
// deadline the deterministic plan is returned as composed.
const enrichTimeout = 5 * time.Second

type planRequest struct {
	ClientID string           `json:"clientId"`
	Strategy string           `json:"strategy"`
	Intake   domain.RawIntake `json:"intake"`
}

type planResponse struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	Metrics   domain.Metrics  `json:"metrics"`
	Plan      *domain.Plan    `json:"plan"`
	Profile   *domain.Profile `json:"profile,omitempty"`
}

func (s *server) createPlan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	engine := s.engine
	if req.Strategy != "" {
		if req.Strategy != domain.StrategyAvalanche && req.Strategy != domain.StrategySnowball {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown strategy: " + req.Strategy})
			return
		}
		scoped := *engine
		scoped.Strategy = req.Strategy
		engine = &scoped
	}

	profile, metrics, plan := engine.GeneratePlanFromIntake(req.Intake)

	if s.enricher != nil {
		if !enrich.Enrich(c.Request.Context(), s.enricher, enrichTimeout, profile, metrics, plan) {
			s.log.Warnw("plan enrichment skipped, serving deterministic plan")
		}
	}

	record := domain.PlanRecord{
		ID:        uuid.NewString(),
		ClientID:  req.ClientID,
		CreatedAt: time.Now().UTC(),
		Intake:    req.Intake,
		Plan:      plan,
	}
	if err := s.store.Save(c.Request.Context(), record); err != nil {
		s.log.Errorw("failed to persist plan", "id", record.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist plan"})
		return
	}

	c.JSON(http.StatusOK, planResponse{
		ID:        record.ID,
		CreatedAt: record.CreatedAt,
		Metrics:   metrics,
		Plan:      plan,
		Profile:   &profile,
	})
}

func (s *server) getPlan(c *gin.Context) {
	id := c.Param("id")
	record, err := s.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, planstore.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}
		s.log.Errorw("failed to load plan", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load plan"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *server) getLatestPlan(c *gin.Context) {
	clientID := c.Param("clientId")
	record, err := s.store.GetLatestByClientID(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, planstore.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no plan for client"})
			return
		}
		s.log.Errorw("failed to load latest plan", "clientId", clientID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load plan"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *server) getKnowledge(c *gin.Context) {
	slug := c.Param("slug")
	content, err := s.knowledge.Get(slug)
	if err != nil {
		if errors.Is(err, knowledge.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown topic: " + slug})
			return
		}
		s.log.Errorw("failed to load knowledge entry", "slug", slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load topic"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slug": slug, "content": content})
}

func (s *server) listKnowledge(c *gin.Context) {
	slugs, err := s.knowledge.Slugs()
	if err != nil {
		s.log.Errorw("failed to list knowledge entries", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list topics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": slugs})
}

func rateLimitMiddleware(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func requestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client", c.ClientIP(),
		)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	addr := flag.String("addr", envOr("MAPLEPLAN_ADDR", ":8080"), "listen address")
	redisAddr := flag.String("redis", os.Getenv("MAPLEPLAN_REDIS_ADDR"), "redis address; empty uses file storage")
	dataDir := flag.String("data", envOr("MAPLEPLAN_DATA_DIR", "data"), "directory for file storage")
	knowledgeDir := flag.String("knowledge", envOr("MAPLEPLAN_KNOWLEDGE_DIR", "knowledge"), "directory of knowledge topics")
	rateLimit := flag.Int("rate-limit", 30, "requests per client per minute")
	flag.Parse()

	zlog, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer zlog.Sync()
	log := zlog.Sugar()

	var store planstore.Store
	if *redisAddr != "" {
		rs := planstore.NewRedisStore(*redisAddr)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rs.Ping(ctx)
		cancel()
		if err != nil {
			log.Fatalw("redis unreachable", "addr", *redisAddr, "error", err)
		}
		store = rs
		log.Infow("using redis plan storage", "addr", *redisAddr)
	} else {
		fs, err := planstore.NewFileStore(*dataDir)
		if err != nil {
			log.Fatalw("failed to init file storage", "dir", *dataDir, "error", err)
		}
		store = fs
		log.Infow("using file plan storage", "dir", *dataDir)
	}

	engine := calculation.NewEngine()
	engine.SetLogger(zapEngineLogger{log: log})

	srv := &server{
		engine:    engine,
		store:     store,
		knowledge: knowledge.NewBase(*knowledgeDir),
		log:       log,
	}

	limiter := ratelimit.NewLimiter(*rateLimit, time.Minute)
	defer limiter.Stop()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))

	api := router.Group("/api")
	api.Use(rateLimitMiddleware(limiter))
	{
		api.POST("/plan", srv.createPlan)
		api.GET("/plan/:id", srv.getPlan)
		api.GET("/client/:clientId/plan", srv.getLatestPlan)
		api.GET("/knowledge", srv.listKnowledge)
		api.GET("/knowledge/:slug", srv.getKnowledge)
	}
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infow("server listening", "addr", *addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Errorw("server failed", "error", err)
		return
	case <-quit:
		log.Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Errorw("shutdown error", "error", err)
	}
}
