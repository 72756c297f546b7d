package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

const maxReportBytes = 10 << 20

// ReportHandler repassa o relatório de marketing do webhook configurado.
// Não interpreta o conteúdo.
type ReportHandler struct {
	url      string
	client   *http.Client
	maxBytes int64
}

func NewReportHandler(url string, timeout time.Duration) *ReportHandler {
	return &ReportHandler{
		url:      url,
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxReportBytes,
	}
}

func (h *ReportHandler) Get(c *gin.Context) {
	if h.url == "" {
		upstreamFailed(c)
		return
	}

	ctx := c.Request.Context()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		slog.ErrorContext(ctx, "report request", "err", err)
		upstreamFailed(c)
		return
	}

	res, err := h.client.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "report upstream unreachable", "err", err)
		upstreamFailed(c)
		return
	}
	defer res.Body.Close()

	// lê um byte a mais para detectar relatório acima do limite
	body, err := io.ReadAll(io.LimitReader(res.Body, h.maxBytes+1))
	if err != nil {
		slog.WarnContext(ctx, "report upstream read", "err", err)
		upstreamFailed(c)
		return
	}
	if int64(len(body)) > h.maxBytes {
		slog.WarnContext(ctx, "report upstream too large", "limit", h.maxBytes)
		upstreamFailed(c)
		return
	}

	contentType := res.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(res.StatusCode, contentType, body)
}

func upstreamFailed(c *gin.Context) {
	httperr.Write(c, http.StatusBadGateway, "report_upstream_failed", "Não foi possível obter o relatório.")
}

