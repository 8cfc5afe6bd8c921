package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/chenBenjamin97/footscout/pkg/analysis"
	"github.com/chenBenjamin97/footscout/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"golang.org/x/sync/semaphore"
)

//Processor validates and analyzes staged videos. *analysis.Service implements it.
type Processor interface {
	Validate(path string, minConfidence float64) analysis.ValidationResult
	Process(path string, params analysis.RunParams) (*analysis.PlayerStats, error)
}

//Options configures the web server
type Options struct {
	TempDir              string
	MaxUploadBytes       int64
	DefaultMinConfidence float64
	CORSOrigins          []string
	RateLimit            float64 //requests per second per client, 0 disables limiting
	RateBurst            int
}

//Server exposes the analysis over HTTP. At most one analysis runs at a time,
//concurrent requests wait for their turn.
type Server struct {
	processor Processor
	opts      Options
	runs      *semaphore.Weighted
}

//NewServer creates a server backed by given processor
func NewServer(processor Processor, opts Options) *Server {
	if opts.DefaultMinConfidence <= 0 {
		opts.DefaultMinConfidence = analysis.DefaultMinValidationConfidence
	}
	return &Server{processor: processor, opts: opts, runs: semaphore.NewWeighted(1)}
}

//SetRouter registers the routes on a new gin engine
func (s *Server) SetRouter() *gin.Engine {
	r := gin.Default()
	if s.opts.RateLimit > 0 {
		r.Use(RateLimitMiddleware(s.opts.RateLimit, s.opts.RateBurst))
	}

	//legacy upload route
	r.POST("/process_video", s.processVideo)

	apiRoutes := r.Group("/api")
	apiRoutes.POST("/ProcessVideo", s.processVideo)
	apiRoutes.POST("/ValidateVideo", s.validateVideo)
	apiRoutes.GET("/Health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

//Handler returns the router wrapped with CORS handling
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Origin"},
	})
	return c.Handler(s.SetRouter())
}

func (s *Server) minConfidence(ctx *gin.Context) (float64, error) {
	raw := ctx.PostForm("min_confidence")
	if raw == "" {
		return s.opts.DefaultMinConfidence, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || v > 1 {
		return 0, errors.New("min_confidence must be a number in [0, 1]")
	}
	return v, nil
}

//StatusClientClosedRequest is logged for requests whose client went away before a run slot freed up
const StatusClientClosedRequest = 499

//acquire waits for the single run slot, false (and the request aborted) if the client went away meanwhile
func (s *Server) acquire(ctx *gin.Context) bool {
	if err := s.runs.Acquire(ctx.Request.Context(), 1); err != nil {
		utils.Logf("api: Request abandoned while waiting for a run slot, got '%v'", err)
		ctx.AbortWithStatus(StatusClientClosedRequest)
		return false
	}
	return true
}

func (s *Server) processVideo(ctx *gin.Context) {
	videoPath, status, err := s.stageUpload(ctx)
	if err != nil {
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}
	defer removeStaged(videoPath)

	jersey := ctx.PostForm("jersey_number")
	if jersey == "" {
		jersey = utils.DefaultJerseyNumber
	}
	minConfidence, err := s.minConfidence(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !s.acquire(ctx) {
		return
	}
	stats, err := s.processor.Process(videoPath, analysis.RunParams{JerseyNumber: jersey, MinConfidence: minConfidence})
	s.runs.Release(1)

	if err != nil {
		var verr *analysis.ValidationError
		switch {
		case errors.As(err, &verr):
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":      "Invalid video",
				"message":    verr.Error(),
				"confidence": verr.Result.Confidence,
				"details":    verr.Result.Details,
			})
		case errors.Is(err, analysis.ErrInput):
			utils.Logf("api/ProcessVideo: Unusable video, got '%v'", err)
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			utils.Logf("api/ProcessVideo: Error processing video, got '%v'", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Processing failed"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Processing complete", "player_stats": stats})
}

func (s *Server) validateVideo(ctx *gin.Context) {
	videoPath, status, err := s.stageUpload(ctx)
	if err != nil {
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}
	defer removeStaged(videoPath)

	minConfidence, err := s.minConfidence(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !s.acquire(ctx) {
		return
	}
	result := s.processor.Validate(videoPath, minConfidence)
	s.runs.Release(1)

	ctx.JSON(http.StatusOK, result)
}
