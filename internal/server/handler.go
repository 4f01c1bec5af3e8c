package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/okabeworks/visatrans/internal/apperrors"
	"github.com/okabeworks/visatrans/internal/pipeline"
	"github.com/okabeworks/visatrans/internal/vocab"
)

// modeVisaStrict is the only supported translation mode. An absent mode
// defaults to it; any other value is rejected.
const modeVisaStrict = "visa-strict"

// Handler wires the pipeline and vocabulary into HTTP endpoints.
type Handler struct {
	pipeline *pipeline.Pipeline
	vocab    *vocab.Cached
	started  time.Time
}

// NewHandler builds the endpoint handler. pipeline may be nil when the
// translation capability is unconfigured; requests then fail with 500.
func NewHandler(p *pipeline.Pipeline, cached *vocab.Cached) *Handler {
	return &Handler{pipeline: p, vocab: cached, started: time.Now()}
}

type translateRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

// Translate handles POST /translate.
func (h *Handler) Translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWith(c, apperrors.ErrValidation)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		abortWith(c, apperrors.ErrValidation.WithMessage("text is required"))
		return
	}
	if req.Mode != "" && req.Mode != modeVisaStrict {
		abortWith(c, apperrors.ErrValidation.WithMessage("unsupported mode"))
		return
	}

	if h.pipeline == nil {
		abortWith(c, apperrors.ErrConfiguration)
		return
	}

	result, err := h.pipeline.Run(c.Request.Context(), req.Text)
	if err != nil {
		logrus.WithError(err).Error("translation pipeline failed")
		abortWith(c, apperrors.ErrInternal)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}

type glossaryTerm struct {
	Source     string `json:"source"`
	Target     string `json:"target"`
	Confidence string `json:"confidence"`
}

type glossaryCategory struct {
	Name  string         `json:"name"`
	Terms []glossaryTerm `json:"terms"`
}

type glossaryResponse struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Categories  []glossaryCategory `json:"categories"`
}

// Glossary handles GET /glossary: a read-only view of the loaded
// vocabulary so the form UI can show which terms are protected.
func (h *Handler) Glossary(c *gin.Context) {
	v := h.vocab.Vocabulary(c.Request.Context())

	resp := glossaryResponse{GeneratedAt: time.Now(), Categories: []glossaryCategory{}}
	for _, cat := range v.Categories {
		gc := glossaryCategory{Name: cat.Name, Terms: []glossaryTerm{}}
		for _, e := range cat.Entries {
			gc.Terms = append(gc.Terms, glossaryTerm{
				Source:     e.SourceTerm,
				Target:     e.Target,
				Confidence: e.Confidence,
			})
		}
		resp.Categories = append(resp.Categories, gc)
	}

	c.JSON(http.StatusOK, resp)
}

func abortWith(c *gin.Context, apiErr *apperrors.APIError) {
	c.AbortWithStatusJSON(apiErr.HTTPStatus, apiErr)
}

// warm loads the vocabulary cache ahead of the first request.
func (h *Handler) warm(ctx context.Context) {
	h.vocab.Vocabulary(ctx)
}
