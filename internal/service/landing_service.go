package service

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/google/uuid"

	"go-landing-scout/internal/analyzer"
	apperrors "go-landing-scout/internal/errors"
	"go-landing-scout/internal/logger"
	"go-landing-scout/internal/observer"
	"go-landing-scout/internal/repository"
	"go-landing-scout/internal/storage"
	"go-landing-scout/pkg/models"
)

// ProcessedImagePath is the route the annotated image is served from
const ProcessedImagePath = "/processed_image"

// LandingService runs the whole pipeline for one image: load, analyze,
// store the annotated picture and report the numbers
type LandingService interface {
	AnalyzeUpload(ctx context.Context, filename string, data []byte) (*models.LandingResult, error)
	AnalyzeURL(ctx context.Context, imageURL string) (*models.LandingResult, error)
	ProcessedImage() ([]byte, error)
}

// landingService implements LandingService
type landingService struct {
	imageRepo repository.ImageRepository
	analyzer  analyzer.ImageAnalyzer
	output    storage.OutputStore
	events    observer.Subject
}

// NewLandingService creates a new landing service
func NewLandingService(
	imageRepository repository.ImageRepository,
	imageAnalyzer analyzer.ImageAnalyzer,
	output storage.OutputStore,
	events observer.Subject,
) LandingService {
	return &landingService{
		imageRepo: imageRepository,
		analyzer:  imageAnalyzer,
		output:    output,
		events:    events,
	}
}

// AnalyzeUpload analyzes an uploaded file
func (s *landingService) AnalyzeUpload(ctx context.Context, filename string, data []byte) (*models.LandingResult, error) {
	start := time.Now()
	s.notify(ctx, observer.LandingEvent{EventType: observer.AnalysisStarted, Source: observer.SourceUpload, Reference: filename})

	gray, err := s.imageRepo.LoadFromUpload(ctx, data)
	if err != nil {
		return nil, s.fail(ctx, observer.SourceUpload, filename, start, err)
	}
	return s.run(ctx, observer.SourceUpload, filename, gray, start)
}

// AnalyzeURL downloads and analyzes a remote image
func (s *landingService) AnalyzeURL(ctx context.Context, imageURL string) (*models.LandingResult, error) {
	start := time.Now()
	s.notify(ctx, observer.LandingEvent{EventType: observer.AnalysisStarted, Source: observer.SourceURL, Reference: imageURL})

	gray, err := s.imageRepo.LoadFromURL(ctx, imageURL)
	if err != nil {
		s.notify(ctx, observer.LandingEvent{
			EventType:    observer.ImageFetchFailed,
			Source:       observer.SourceURL,
			Reference:    imageURL,
			ErrorType:    errorType(err),
			ErrorMessage: err.Error(),
		})
		return nil, s.fail(ctx, observer.SourceURL, imageURL, start, err)
	}
	s.notify(ctx, observer.LandingEvent{
		EventType:      observer.ImageFetched,
		Source:         observer.SourceURL,
		Reference:      imageURL,
		ProcessingTime: time.Since(start),
	})
	return s.run(ctx, observer.SourceURL, imageURL, gray, start)
}

// ProcessedImage returns the PNG bytes of the last successful analysis
func (s *landingService) ProcessedImage() ([]byte, error) {
	return s.output.Load()
}

func (s *landingService) run(ctx context.Context, source observer.Source, ref string, gray *image.Gray, start time.Time) (*models.LandingResult, error) {
	analysis, err := s.analyzer.Analyze(ctx, gray)
	if err != nil {
		if !isAppError(err) {
			err = apperrors.NewInternalError("Failed to analyze the image.", err)
		}
		return nil, s.fail(ctx, source, ref, start, err)
	}

	if err := s.output.Save(analysis.Annotated); err != nil {
		return nil, s.fail(ctx, source, ref, start, err)
	}

	elapsed := time.Since(start)
	var bestScore float64
	if len(analysis.Scan.Best) > 0 {
		bestScore = analysis.Scan.Best[0].Score
	}
	s.notify(ctx, observer.LandingEvent{
		EventType:      observer.AnalysisCompleted,
		Source:         source,
		Reference:      ref,
		ProcessingTime: elapsed,
		Altitude:       analysis.Altitude,
		BestScore:      bestScore,
	})

	return toLandingResult(source, ref, analysis, elapsed), nil
}

func (s *landingService) fail(ctx context.Context, source observer.Source, ref string, start time.Time, err error) error {
	s.notify(ctx, observer.LandingEvent{
		EventType:      observer.AnalysisFailed,
		Source:         source,
		Reference:      ref,
		ProcessingTime: time.Since(start),
		ErrorType:      errorType(err),
		ErrorMessage:   err.Error(),
	})
	return err
}

func (s *landingService) notify(ctx context.Context, event observer.LandingEvent) {
	if s.events == nil {
		return
	}
	event.RequestID = logger.RequestIDFromContext(ctx)
	s.events.NotifyObservers(ctx, event)
}

func toLandingResult(source observer.Source, ref string, analysis *analyzer.LandingAnalysis, elapsed time.Duration) *models.LandingResult {
	spots := make([]models.LandingSpot, len(analysis.Scan.Best))
	for i, spot := range analysis.Scan.Best {
		spots[i] = models.LandingSpot{
			Rank:  i + 1,
			Score: spot.Score,
			X:     spot.X(),
			Y:     spot.Y(),
		}
	}

	return &models.LandingResult{
		ID:                uuid.NewString(),
		Source:            string(source),
		Reference:         ref,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
		ProcessingTimeSec: elapsed.Seconds(),
		Altitude:          analysis.Altitude,
		RequiredThrust:    analysis.RequiredThrust,
		ActiveThrusters: models.ThrusterForces{
			Front: analysis.Thrusters.Front,
			Back:  analysis.Thrusters.Back,
			Left:  analysis.Thrusters.Left,
			Right: analysis.Thrusters.Right,
		},
		BestSpots:         spots,
		ProcessedImageURL: ProcessedImagePath,
	}
}

func isAppError(err error) bool {
	var appErr *apperrors.AppError
	return errors.As(err, &appErr)
}

func errorType(err error) string {
	return string(apperrors.TypeOf(err))
}
