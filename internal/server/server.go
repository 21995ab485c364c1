package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rezonia/tdd-builder/internal/codelist"
	"github.com/rezonia/tdd-builder/internal/conformance"
	"github.com/rezonia/tdd-builder/internal/model"
	"github.com/rezonia/tdd-builder/internal/service"
	"github.com/rezonia/tdd-builder/internal/ubl"
	"github.com/rezonia/tdd-builder/internal/uuid5"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config    *Config
	router    *gin.Engine
	converter *service.Converter
}

// NewServer creates a new API server
func NewServer(config *Config, converter *service.Converter) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config:    config,
		router:    router,
		converter: converter,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		// Build a TDD from a UBL invoice or credit note
		v1.POST("/tdd", s.handleBuild)

		// Conformance check of a serialized TDD
		v1.POST("/validate", s.handleValidate)

		v1.POST("/uuid5", s.handleUUID5)

		// Info endpoint
		v1.POST("/info", s.handleInfo)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleBuild accepts the query parameters type (S, R, W, D, F),
// derive_uuid, validate and format (xml or json)
func (s *Server) handleBuild(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	opts := service.Options{}
	if t := c.Query("type"); t != "" {
		code, err := codelist.ParseDocumentTypeCode(t)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid document type code", Details: err.Error()})
			return
		}
		opts.TypeCode = code
	}
	if d := c.Query("derive_uuid"); d != "" {
		derive, err := strconv.ParseBool(d)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid derive_uuid", Details: err.Error()})
			return
		}
		opts.DeriveUUID = &derive
	}
	opts.Validate = c.Query("validate") == "true"

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result, err := s.converter.Convert(ctx, body, opts)
	if err != nil {
		var report *model.ValidationReport
		if errors.As(err, &report) {
			c.JSON(http.StatusUnprocessableEntity, ViolationsResponse{
				Error:      "TDD cannot be built",
				Violations: report.Violations,
			})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read source document", Details: err.Error()})
		return
	}

	if result.Conformance != nil && !result.Conformance.OK() {
		c.JSON(http.StatusUnprocessableEntity, BuildResponse{
			UUID:        result.TaxData.UUID,
			Omitted:     result.Omitted,
			Warnings:    result.Validation.Warnings(),
			Conformance: result.Conformance,
			XML:         string(result.XML),
		})
		return
	}

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, BuildResponse{
			UUID:        result.TaxData.UUID,
			Omitted:     result.Omitted,
			Warnings:    result.Validation.Warnings(),
			Conformance: result.Conformance,
			XML:         string(result.XML),
		})
		return
	}

	c.Header(HeaderUUID, result.TaxData.UUID)
	c.Header(HeaderOmitted, strconv.FormatBool(result.Omitted))
	c.Data(http.StatusOK, "application/xml; charset=utf-8", result.XML)
}

func (s *Server) handleValidate(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	report, err := s.converter.Validate(ctx, body)
	if err != nil {
		var ce *conformance.ConformanceError
		if errors.As(err, &ce) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: ce.Message, Details: ce.Code})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ValidationResponse{
		Valid:  report.OK(),
		Report: report,
	})
}

func (s *Server) handleUUID5(c *gin.Context) {
	var req UUID5Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	ns := uuid5.PeppolViDANamespace
	if req.Namespace != "" {
		parsed, err := uuid.Parse(req.Namespace)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid namespace", Details: err.Error()})
			return
		}
		ns = parsed
	}

	var id uuid.UUID
	if len(req.Tokens) > 0 {
		id = uuid5.FromTokens(&ns, req.Tokens...)
	} else {
		id = uuid5.FromString(&ns, req.Name)
	}

	c.JSON(http.StatusOK, UUID5Response{
		Namespace: ns.String(),
		UUID:      id.String(),
	})
}

func (s *Server) handleInfo(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	kind := ubl.DetectKind(body)
	info := InfoResponse{
		Kind: string(kind),
		Size: len(body),
	}
	if name, err := ubl.RootElement(body); err == nil {
		info.Root = name.Local
		info.Namespace = name.Space
	}

	c.JSON(http.StatusOK, info)
}

// Helper functions

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return nil, false
	}

	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return nil, false
	}
	return body, true
}
