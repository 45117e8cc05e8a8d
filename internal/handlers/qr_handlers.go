package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cyphera/kaia-bot/internal/qr"
)

// QRHandler serves pairing QR codes rendered during wallet connection.
// The chat client fetches the image by the id embedded in the message.
type QRHandler struct {
	cache *qr.Cache
}

// NewQRHandler creates a QR handler over the given cache.
func NewQRHandler(cache *qr.Cache) *QRHandler {
	return &QRHandler{cache: cache}
}

// HandleImage serves one cached QR PNG. The route matches "/qr/:id" where
// id carries a ".png" suffix so chat clients treat the URL as an image.
func (h *QRHandler) HandleImage(c *gin.Context) {
	id := strings.TrimSuffix(c.Param("id"), ".png")

	png, ok := h.cache.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "QR code not found or expired"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
