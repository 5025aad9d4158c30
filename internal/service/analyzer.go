package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"example/describe/internal/model"
	"example/describe/internal/resolver"
	"example/describe/internal/vision"
)

const (
	defaultMaxRetries = 4
	defaultBackoff    = 1.5
)

// Retriable service statuses: throttling plus transient server errors.
var retriableStatuses = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

type visionClient interface {
	AnalyzeFile(ctx context.Context, path string) (*vision.Analysis, error)
	AnalyzeURL(ctx context.Context, imageURL string) (*vision.Analysis, error)
}

type urlResolver interface {
	Resolve(ctx context.Context, rawURL string) (string, error)
}

// Analyzer runs the resolve+analyze sequence for one source with bounded
// retries and mandatory pacing, always producing a well-formed record.
type Analyzer struct {
	client   visionClient
	resolver urlResolver

	maxRetries int
	backoff    float64

	// sleep and pace are swapped out in tests.
	sleep func(time.Duration)
	pace  func() time.Duration
}

func NewAnalyzer(client visionClient, res urlResolver) *Analyzer {
	return &Analyzer{
		client:     client,
		resolver:   res,
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
		sleep:      time.Sleep,
		pace:       defaultPace,
	}
}

// defaultPace is the courtesy delay before every request, 2 to 6 seconds.
func defaultPace() time.Duration {
	return time.Duration((2 + 4*rand.Float64()) * float64(time.Second))
}

// AnalyzeSource processes one source to a final record. Retriable errors
// are retried with exponential backoff; everything else fails the item on
// the spot. Per-item failures never abort the run.
func (a *Analyzer) AnalyzeSource(ctx context.Context, source string) model.AnalysisRecord {
	for attempt := 0; ; attempt++ {
		a.sleep(a.pace())

		res, err := a.analyzeOnce(ctx, &source)
		if err == nil {
			return model.Succeeded(source, res.Caption, res.Tags, res.Raw)
		}
		if attempt < a.maxRetries && retriable(err) {
			a.sleep(a.backoffDelay(attempt))
			continue
		}
		return model.Failed(source, fmt.Sprintf("%s: %s", errorKind(err), err))
	}
}

// analyzeOnce rewrites *source to the resolved URL when resolution
// succeeds, so retries and the final record use the canonical location.
func (a *Analyzer) analyzeOnce(ctx context.Context, source *string) (*vision.Analysis, error) {
	if isURL(*source) {
		resolved, err := a.resolver.Resolve(ctx, *source)
		if err != nil {
			return nil, err
		}
		*source = resolved
		return a.client.AnalyzeURL(ctx, resolved)
	}
	return a.client.AnalyzeFile(ctx, *source)
}

func (a *Analyzer) backoffDelay(attempt int) time.Duration {
	return time.Duration(math.Pow(a.backoff, float64(attempt+1)) * float64(time.Second))
}

// retriable classifies an attempt error. Transport failures and
// throttling/server statuses are transient; resolution failures and
// anything unrecognized are terminal.
func retriable(err error) bool {
	var se *vision.ServiceError
	if errors.As(err, &se) {
		return retriableStatuses[se.Status]
	}
	var te *vision.TransportError
	return errors.As(err, &te)
}

func errorKind(err error) string {
	var (
		se *vision.ServiceError
		te *vision.TransportError
		re *resolver.ResolutionError
	)
	switch {
	case errors.As(err, &se):
		return "ServiceError"
	case errors.As(err, &te):
		return "TransportError"
	case errors.As(err, &re):
		return "ResolutionError"
	default:
		return "UnclassifiedError"
	}
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
