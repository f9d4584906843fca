package transport

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/sirupsen/logrus"

	"go-landing-scout/internal/config"
	apperrors "go-landing-scout/internal/errors"
	"go-landing-scout/internal/logger"
	"go-landing-scout/internal/observer"
	"go-landing-scout/internal/service"
	"go-landing-scout/pkg/models"
)

const (
	version           = "1.0.0"
	emptyInputMessage = "Please upload an image file or provide a URL."
	unreadableUpload  = "Failed to read the uploaded file."
	multipartMemory   = 8 << 20
)

//go:embed templates/*.html
var templateFS embed.FS

type handler struct {
	service service.LandingService
	metrics *observer.MetricsObserver
	cfg     *config.Config
}

// NewHandler builds the gin router. metrics may be nil.
func NewHandler(svc service.LandingService, metrics *observer.MetricsObserver, cfg *config.Config) http.Handler {
	h := &handler{service: svc, metrics: metrics, cfg: cfg}

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	r.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(),
		requestSizeLimiter(cfg.MaxRequestBodySize),
	)

	r.GET("/", h.index)
	r.POST("/", h.submitForm)
	r.GET(service.ProcessedImagePath, h.processedImage)
	r.GET("/result", h.resultPage)
	r.POST("/api/analyze", h.analyzeAPI)
	r.GET("/health", h.health)

	return r
}

func (h *handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

func (h *handler) resultPage(c *gin.Context) {
	c.HTML(http.StatusOK, "result.html", gin.H{})
}

// submitForm runs the pipeline for the HTML form. Missing input is a bare
// 400 message; every other failure is reported as "An error occurred: ...".
func (h *handler) submitForm(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.RequestTimeout)
	defer cancel()

	result, err := h.analyzeForm(ctx, c)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeEmptyInput) {
			c.String(http.StatusBadRequest, "%s", apperrors.UserMessage(err))
			return
		}
		logger.FromContext(ctx).WithError(err).WithField("error_type", apperrors.TypeOf(err)).
			Warn("Landing analysis request failed")
		c.String(http.StatusBadRequest, "An error occurred: %s", apperrors.UserMessage(err))
		return
	}

	c.HTML(http.StatusOK, "result.html", gin.H{"Result": result})
}

// analyzeAPI is the JSON flavour of the form route. It accepts either a
// multipart form like the HTML page or a JSON body with a url.
func (h *handler) analyzeAPI(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.RequestTimeout)
	defer cancel()

	var (
		result *models.LandingResult
		err    error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		result, err = h.analyzeForm(ctx, c)
	} else {
		var req models.AnalysisRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil || strings.TrimSpace(req.URL) == "" {
			logger.FromContext(ctx).WithError(bindErr).Debug("Invalid analysis request body")
			err = apperrors.NewEmptyInputError(emptyInputMessage)
		} else {
			result, err = h.service.AnalyzeURL(ctx, req.URL)
		}
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// analyzeForm picks the input the way the upload form does: a named file
// part wins over a url field
func (h *handler) analyzeForm(ctx context.Context, c *gin.Context) (*models.LandingResult, error) {
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, apperrors.NewInvalidImageError(unreadableUpload, err)
	}

	if fh := uploadedFile(c.Request, "file"); fh != nil {
		data, err := readUpload(fh)
		if err != nil {
			return nil, apperrors.NewInvalidImageError(unreadableUpload, err)
		}
		return h.service.AnalyzeUpload(ctx, fh.Filename, data)
	}

	if imageURL := c.Request.PostFormValue("url"); imageURL != "" {
		return h.service.AnalyzeURL(ctx, imageURL)
	}

	return nil, apperrors.NewEmptyInputError(emptyInputMessage)
}

func (h *handler) processedImage(c *gin.Context) {
	data, err := h.service.ProcessedImage()
	if err != nil {
		c.String(apperrors.GetStatusCode(err), "%s", apperrors.UserMessage(err))
		return
	}
	// the slot is overwritten by every successful analysis
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", data)
}

func (h *handler) health(c *gin.Context) {
	resp := models.HealthResponse{
		Status:    "available",
		Version:   version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if h.metrics != nil {
		resp.Analyses = h.metrics.Snapshot()
	}

	if vm, err := mem.VirtualMemoryWithContext(c.Request.Context()); err == nil {
		resp.Memory = &models.MemoryInfo{TotalBytes: vm.Total, UsedPercent: vm.UsedPercent}
	} else {
		logger.FromContext(c.Request.Context()).WithError(err).Debug("Memory stats unavailable")
	}

	c.JSON(http.StatusOK, resp)
}

func uploadedFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 || files[0].Filename == "" {
		return nil
	}
	return files[0]
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func respondError(c *gin.Context, err error) {
	code := apperrors.GetStatusCode(err)

	logger.FromContext(c.Request.Context()).WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"error_type":  apperrors.TypeOf(err),
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   string(apperrors.TypeOf(err)),
		Message: apperrors.UserMessage(err),
	})
}
