package httpHandler

import (
	"errors"
	"io"
	"net"
	"net/http"

	"sage-portal/usecases"

	"github.com/gin-gonic/gin"
)

type ZoneHandler struct {
	useCase *usecases.ZoneUseCase
}

func NewZoneHandler(useCase *usecases.ZoneUseCase) *ZoneHandler {
	return &ZoneHandler{useCase: useCase}
}

// GetZones handles GET /api/v1/zones
func (h *ZoneHandler) GetZones(c *gin.Context) {
	respondList(c, h.useCase.Zones())
}

// GetZone handles GET /api/v1/zones/:id
func (h *ZoneHandler) GetZone(c *gin.Context) {
	zone, err := h.useCase.GetZone(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": zone})
}

// Detect handles POST /api/v1/zones/detect. An empty body classifies the
// caller by IP address.
func (h *ZoneHandler) Detect(c *gin.Context) {
	var signal usecases.Signal
	if err := c.ShouldBindJSON(&signal); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}
	if signal.IP == "" {
		signal.IP = publicIP(c.ClientIP())
	}

	detection := h.useCase.Detect(c.Request.Context(), signal)
	c.JSON(http.StatusOK, gin.H{"data": detection})
}

// publicIP drops addresses a geolocation provider cannot resolve. The
// provider then locates the server's own egress address.
func publicIP(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil || parsed.IsLoopback() || parsed.IsPrivate() ||
		parsed.IsLinkLocalUnicast() || parsed.IsUnspecified() {
		return ""
	}
	return ip
}

type selectZoneRequest struct {
	Zone string `json:"zone" binding:"required"`
}

// Select handles POST /api/v1/zones/select
func (h *ZoneHandler) Select(c *gin.Context) {
	var req selectZoneRequest
	if !bindJSON(c, &req) {
		return
	}
	detection, err := h.useCase.SelectZone(req.Zone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": detection})
}
