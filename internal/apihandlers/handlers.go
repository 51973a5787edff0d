package apihandlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"taggen/internal/app"
	"taggen/internal/models"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(app *app.App) *APIHandler {
	return &APIHandler{App: app}
}

// RegisterRoutes attaches the API routes to the router. The tag endpoint
// lives under /ai to leave room for future AI routes.
func RegisterRoutes(router *gin.Engine, h *APIHandler) {
	router.GET("/health", h.HealthHandler)

	aiGroup := router.Group("/ai")
	{
		aiGroup.POST("/tag", h.TagMediaHandler)
	}
}

// HealthHandler reports the configured model and endpoint. It always returns
// 200, whether or not the model endpoint is reachable.
func (h *APIHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"model":  h.App.Config.Model.Name,
		"ollama": h.App.Config.Model.OllamaURL,
	})
}

// TagMediaHandler handles POST /ai/tag: binds the media description, runs the
// tag service and returns the normalized result. Model-call and reply-parse
// failures both collapse to a 500 carrying the underlying cause.
func (h *APIHandler) TagMediaHandler(c *gin.Context) {
	desc, err := parseTagRequest(c)
	if err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	logger := log.WithFields(log.Fields{
		"request_id": uuid.NewString(),
		"name":       desc.Name,
		"file_type":  desc.FileType,
	})
	logger.Info("Tagging request received")

	result, err := h.App.TagService.Tag(c.Request.Context(), desc)
	if err != nil {
		logger.Warnf("Tagging failed: %v", err)
		Internal(c, fmt.Sprintf("vision model error: %v", err))
		return
	}

	logger.Infof("Tagging succeeded: %d tags, %d topics, %d keywords",
		len(result.Tags), len(result.Topics), len(result.RawKeywords))
	c.JSON(http.StatusOK, result)
}

// parseTagRequest parses and validates the MediaDescription from the JSON body.
func parseTagRequest(c *gin.Context) (*models.MediaDescription, error) {
	var desc models.MediaDescription
	if err := c.ShouldBindJSON(&desc); err != nil {
		return nil, err
	}
	if desc.Name == "" || desc.FileType == "" {
		return nil, fmt.Errorf("missing required fields: name and file_type")
	}
	return &desc, nil
}
