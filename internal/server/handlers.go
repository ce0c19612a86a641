package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"pdf-qa/internal/parser"
	"pdf-qa/internal/rag"
)

type uploadResponse struct {
	Status   string `json:"status"`
	Filename string `json:"filename"`
	Chunks   int    `json:"chunks"`
	Message  string `json:"message"`
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer     string   `json:"answer"`
	Sources    []string `json:"sources"`
	TokensUsed int      `json:"tokens_used"`
}

type documentEntry struct {
	Filename  string `json:"filename"`
	Hash      string `json:"hash"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (s *Server) handleUpload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "a file is required")
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not open upload")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read upload")
	}

	result, err := s.ingestor.Ingest(c.Request().Context(), fh.Filename, data)
	if err != nil {
		if errors.Is(err, parser.ErrUnsupported) || errors.Is(err, parser.ErrNoText) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		log.Error().Err(err).Str("filename", fh.Filename).Msg("Ingestion failed")
		return echo.NewHTTPError(http.StatusBadGateway, "ingestion failed: "+err.Error())
	}

	resp := uploadResponse{
		Status:   string(result.Status),
		Filename: result.Filename,
		Chunks:   result.Chunks,
	}
	if result.Status == rag.StatusSkipped {
		resp.Message = "This document was already ingested."
	} else {
		resp.Message = "Document ingested and indexed."
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleAsk(c echo.Context) error {
	var req askRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "question is required")
	}

	answer, err := s.rag.Answer(c.Request().Context(), req.Question, s.historySnapshot())
	if err != nil {
		log.Error().Err(err).Msg("Answering failed")
		return echo.NewHTTPError(http.StatusBadGateway, "answering failed: "+err.Error())
	}

	s.appendHistory(req.Question, answer.Content)

	sources := answer.Sources
	if sources == nil {
		sources = []string{}
	}
	return c.JSON(http.StatusOK, askResponse{
		Answer:     answer.Content,
		Sources:    sources,
		TokensUsed: answer.TokensUsed,
	})
}

func (s *Server) handleDocuments(c echo.Context) error {
	entries, err := s.store.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	docs := make([]documentEntry, 0, len(entries))
	for _, e := range entries {
		d := documentEntry{Filename: e.Filename, Hash: e.Hash}
		if !e.CreatedAt.IsZero() {
			d.CreatedAt = e.CreatedAt.Format("2006-01-02 15:04:05")
		}
		docs = append(docs, d)
	}
	return c.JSON(http.StatusOK, docs)
}

func (s *Server) handleReset(c echo.Context) error {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]string{"status": "reset"})
}
