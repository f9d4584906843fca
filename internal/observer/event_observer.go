package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"go-landing-scout/internal/logger"
)

// EventType represents a step in the lifecycle of one landing analysis
type EventType string

const (
	// AnalysisStarted when a request has input and loading begins
	AnalysisStarted EventType = "analysis_started"
	// AnalysisCompleted when the annotated image has been stored
	AnalysisCompleted EventType = "analysis_completed"
	// AnalysisFailed when any stage fails
	AnalysisFailed EventType = "analysis_failed"
	// ImageFetched when a remote image has been downloaded and decoded
	ImageFetched EventType = "image_fetched"
	// ImageFetchFailed when a remote image could not be downloaded or decoded
	ImageFetchFailed EventType = "image_fetch_failed"
)

// Source says where the analysed image came from
type Source string

const (
	SourceUpload Source = "upload"
	SourceURL    Source = "url"
)

// LandingEvent describes something that happened while analysing one image
type LandingEvent struct {
	EventType      EventType     `json:"event_type"`
	Timestamp      time.Time     `json:"timestamp"`
	RequestID      string        `json:"request_id,omitempty"`
	Source         Source        `json:"source"`
	Reference      string        `json:"reference,omitempty"`
	ProcessingTime time.Duration `json:"processing_time"`
	Altitude       float64       `json:"altitude,omitempty"`
	BestScore      float64       `json:"best_score,omitempty"`
	ErrorType      string        `json:"error_type,omitempty"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// Observer receives landing events
type Observer interface {
	OnEvent(ctx context.Context, event LandingEvent)
	GetObserverName() string
}

// Subject fans events out to observers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event LandingEvent)
}

// LoggingObserver writes every event to a logrus logger
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent logs the event at a level matching its outcome
func (o *LoggingObserver) OnEvent(ctx context.Context, event LandingEvent) {
	fields := logrus.Fields{
		"event_type": event.EventType,
		"source":     event.Source,
	}
	if event.RequestID != "" {
		fields["request_id"] = event.RequestID
	}
	if event.Reference != "" {
		fields["reference"] = event.Reference
	}
	if event.ProcessingTime > 0 {
		fields["processing_time_ms"] = event.ProcessingTime.Milliseconds()
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
		fields["error_type"] = event.ErrorType
	}

	entry := o.logger.WithFields(fields)
	switch event.EventType {
	case AnalysisStarted:
		entry.Info("Landing analysis started")
	case AnalysisCompleted:
		entry.WithFields(logrus.Fields{
			"altitude":   event.Altitude,
			"best_score": event.BestScore,
		}).Info("Landing analysis completed")
	case AnalysisFailed:
		entry.Error("Landing analysis failed")
	case ImageFetched:
		entry.Debug("Remote image fetched")
	case ImageFetchFailed:
		entry.Warn("Remote image fetch failed")
	default:
		entry.Info("Landing event")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsSnapshot is a point-in-time copy of the collected counters
type MetricsSnapshot struct {
	TotalAnalyses       int64            `json:"total_analyses"`
	SuccessfulAnalyses  int64            `json:"successful_analyses"`
	FailedAnalyses      int64            `json:"failed_analyses"`
	RemoteFetches       int64            `json:"remote_fetches"`
	RemoteFetchFailures int64            `json:"remote_fetch_failures"`
	FailuresByType      map[string]int64 `json:"failures_by_type"`
	AvgProcessingMillis float64          `json:"avg_processing_ms"`
	LastAltitude        float64          `json:"last_altitude"`
}

// MetricsObserver counts analyses for the health endpoint
type MetricsObserver struct {
	mu                  sync.RWMutex
	totalAnalyses       int64
	successfulAnalyses  int64
	failedAnalyses      int64
	remoteFetches       int64
	remoteFetchFailures int64
	failuresByType      map[string]int64
	totalProcessingTime time.Duration
	lastAltitude        float64
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{failuresByType: make(map[string]int64)}
}

// OnEvent updates the counters
func (o *MetricsObserver) OnEvent(ctx context.Context, event LandingEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case AnalysisStarted:
		o.totalAnalyses++
	case AnalysisCompleted:
		o.successfulAnalyses++
		o.totalProcessingTime += event.ProcessingTime
		o.lastAltitude = event.Altitude
	case AnalysisFailed:
		o.failedAnalyses++
		if event.ErrorType != "" {
			o.failuresByType[event.ErrorType]++
		}
	case ImageFetched:
		o.remoteFetches++
	case ImageFetchFailed:
		o.remoteFetches++
		o.remoteFetchFailures++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// Snapshot returns a copy of the current counters
func (o *MetricsObserver) Snapshot() MetricsSnapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()

	byType := make(map[string]int64, len(o.failuresByType))
	for k, v := range o.failuresByType {
		byType[k] = v
	}

	var avg float64
	if o.successfulAnalyses > 0 {
		avg = float64((o.totalProcessingTime / time.Duration(o.successfulAnalyses)).Microseconds()) / 1000
	}

	return MetricsSnapshot{
		TotalAnalyses:       o.totalAnalyses,
		SuccessfulAnalyses:  o.successfulAnalyses,
		FailedAnalyses:      o.failedAnalyses,
		RemoteFetches:       o.remoteFetches,
		RemoteFetchFailures: o.remoteFetchFailures,
		FailuresByType:      byType,
		AvgProcessingMillis: avg,
		LastAltitude:        o.lastAltitude,
	}
}

// EventPublisher implements Subject
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes the first observer with the same name
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers delivers the event to every observer concurrently and
// returns once all of them have handled it. A panicking observer is logged
// and does not affect the others.
func (p *EventPublisher) NotifyObservers(ctx context.Context, event LandingEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	var wg sync.WaitGroup
	for _, obs := range observers {
		obs := obs
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logger.WithFields(logrus.Fields{
						"observer":   obs.GetObserverName(),
						"event_type": event.EventType,
						"panic":      r,
					}).Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}()
	}
	wg.Wait()
}
