package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Endpoint describes one route for the docs listing.
type Endpoint struct {
	Method       string `json:"method"`
	Path         string `json:"path"`
	RequiresAuth bool   `json:"requiresAuth"`
	Description  string `json:"description"`
}

type DocsController struct {
	version    string
	factoryURL string
	endpoints  []Endpoint
}

func NewDocsController(version, factoryURL string, endpoints []Endpoint) *DocsController {
	return &DocsController{version: version, factoryURL: factoryURL, endpoints: endpoints}
}

// GetDocs
// GET /api/docs
func (ctrl *DocsController) GetDocs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":   ctrl.version,
		"endpoints": ctrl.endpoints,
		"config":    gin.H{"factory": ctrl.factoryURL},
	})
}
