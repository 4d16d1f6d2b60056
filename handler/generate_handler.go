package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slidegen/artifact"
	"slidegen/export"
	"slidegen/outline"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// apiVersion is reported by the health endpoint.
const apiVersion = "0.1.0"

// GenerateHandler serves the presentation API: outline generation plus deck
// rendering and download.
type GenerateHandler struct {
	generator *outline.Generator
	renderers *export.Selector
	artifacts *artifact.Store
	logger    *zap.Logger
}

func NewGenerateHandler(generator *outline.Generator, renderers *export.Selector, artifacts *artifact.Store, logger *zap.Logger) *GenerateHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerateHandler{
		generator: generator,
		renderers: renderers,
		artifacts: artifacts,
		logger:    logger,
	}
}

// Register mounts the API routes.
func (h *GenerateHandler) Register(r *gin.Engine) {
	api := r.Group("/api")
	api.POST("/generate", h.Generate)
	api.GET("/download/:filename", h.Download)
	api.GET("/health", h.Health)
}

// Generate turns request text into an outline and renders it to a deck.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req outline.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, outline.GenerateResponse{
			Success: false,
			Message: "request body is not valid JSON",
		})
		return
	}

	req.ApplyDefaults()

	o, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		var vErr *outline.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusUnprocessableEntity, outline.GenerateResponse{
				Success: false,
				Message: vErr.Error(),
			})
			return
		}
		h.logger.Error("outline generation failed", zap.Error(WrapError("Presentation", "Generate", err)))
		c.JSON(http.StatusInternalServerError, outline.GenerateResponse{
			Success: false,
			Message: "failed to generate outline",
		})
		return
	}

	data, err := h.renderers.ForTemplate(req.Template).Render(o)
	if err != nil {
		h.logger.Error("deck rendering failed",
			zap.String("template", req.Template),
			zap.Error(WrapError("Presentation", "Render", err)))
		var tErr *export.TemplateNotFoundError
		if errors.As(err, &tErr) {
			c.JSON(http.StatusInternalServerError, outline.GenerateResponse{
				Success: false,
				Message: tErr.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, outline.GenerateResponse{
			Success: false,
			Message: "failed to render presentation",
		})
		return
	}

	filename, err := h.artifacts.Save(data)
	if err != nil {
		h.logger.Error("artifact save failed", zap.Error(WrapError("Presentation", "Save", err)))
		c.JSON(http.StatusInternalServerError, outline.GenerateResponse{
			Success: false,
			Message: "failed to store presentation",
		})
		return
	}

	h.logger.Info("presentation generated",
		zap.String("filename", filename),
		zap.Int("slides", len(o.Slides)),
		zap.String("template", req.Template))

	c.JSON(http.StatusOK, outline.GenerateResponse{
		Success:  true,
		Filename: filename,
		Message:  "presentation generated",
		Outline:  o,
	})
}

// Download streams a previously generated deck.
func (h *GenerateHandler) Download(c *gin.Context) {
	filename := c.Param("filename")
	path, err := h.artifacts.Resolve(filename)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "file not found"})
		return
	}
	c.Header("Content-Type", pptxContentType)
	c.FileAttachment(path, filename)
}

// Health reports liveness.
func (h *GenerateHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": apiVersion})
}
