package server

import (
	_ "embed"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"pdf-qa/internal/config"
	"pdf-qa/internal/hashstore"
	"pdf-qa/internal/models"
	"pdf-qa/internal/rag"
)

//go:embed ui.html
var uiHTML string

const maxUploadSize = "32M"

// Server wires the upload, question, and history endpoints around the
// ingestion pipeline and the answering flow. The conversation history is
// in-process state; the deployment model is single-user, single-process.
type Server struct {
	echo     *echo.Echo
	ingestor *rag.Ingestor
	rag      *rag.RAG
	store    hashstore.Store
	cfg      *config.Config

	mu      sync.Mutex
	history []models.Exchange
}

func New(ingestor *rag.Ingestor, r *rag.RAG, store hashstore.Store, cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{echo: e, ingestor: ingestor, rag: r, store: store, cfg: cfg}

	e.Use(requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(maxUploadSize))

	e.GET("/", s.handleIndex)
	e.GET("/healthz", s.handleHealth)
	e.POST("/api/upload", s.handleUpload)
	e.POST("/api/ask", s.handleAsk)
	e.GET("/api/documents", s.handleDocuments)
	e.POST("/api/reset", s.handleReset)

	return s
}

func (s *Server) Start(addr string) error {
	log.Info().Str("addr", addr).Msg("Starting server")
	return s.echo.Start(addr)
}

// requestLogger tags each request with an ID and logs its outcome.
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := uuid.NewString()
		c.Response().Header().Set(echo.HeaderXRequestID, requestID)
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		log.Info().
			Str("request_id", requestID).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Int("status", c.Response().Status).
			Dur("latency", time.Since(start)).
			Msg("Request")
		return err
	}
}

func (s *Server) handleIndex(c echo.Context) error {
	return c.HTML(http.StatusOK, uiHTML)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// historySnapshot copies the conversation so the answering flow never
// reads it while a handler appends.
func (s *Server) historySnapshot() []models.Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Exchange(nil), s.history...)
}

func (s *Server) appendHistory(question, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, models.Exchange{Question: question, Answer: answer})
	if limit := s.cfg.RAG.HistoryLimit; limit > 0 && len(s.history) > limit {
		s.history = s.history[len(s.history)-limit:]
	}
}
