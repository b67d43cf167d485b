package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/tropicaldog17/oraclewatch/internal/errors"
	"github.com/tropicaldog17/oraclewatch/internal/models"
	"github.com/tropicaldog17/oraclewatch/internal/templates"
)

const (
	RobotsPath = "/robots.txt"
	RobotsBody = "User-agent: *\nDisallow:"
)

// Outcomes reported to the Web4Observer.
const (
	OutcomeRobots  = "robots"
	OutcomePreload = "preload"
	OutcomeRender  = "render"
	OutcomeFailed  = "failed"
)

const (
	TablePrices     = "prices"
	TableValidators = "validators"
)

type DashboardOption func(*dashboardService)

// WithClock sets the time source used for validator ages.
func WithClock(now func() time.Time) DashboardOption {
	return func(s *dashboardService) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *zap.Logger) DashboardOption {
	return func(s *dashboardService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithObserver(observer Web4Observer) DashboardOption {
	return func(s *dashboardService) {
		s.observer = observer
	}
}

type dashboardService struct {
	registry RegistryService
	parser   FeedParser
	oracleID string
	now      func() time.Time
	logger   *zap.Logger
	observer Web4Observer
}

// NewDashboardService builds the web4 handler for the dashboard of oracleID.
//
// A request is answered in one of two phases. Without preloads the handler declares the two
// oracle views it needs; the host fetches them and calls again with the bodies attached, and
// the handler renders the page. Each call is independent.
func NewDashboardService(registry RegistryService, parser FeedParser, oracleID string, opts ...DashboardOption) Web4Service {
	s := &dashboardService{
		registry: registry,
		parser:   parser,
		oracleID: oracleID,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *dashboardService) assetsURL() string {
	return fmt.Sprintf("/web4/contract/%s/get_assets", s.oracleID)
}

func (s *dashboardService) priceDataURL() string {
	return fmt.Sprintf("/web4/contract/%s/get_price_data", s.oracleID)
}

// PreloadURLs lists the oracle views needed to render, in the order they are declared.
func (s *dashboardService) PreloadURLs() []string {
	return []string{s.assetsURL(), s.priceDataURL()}
}

func (s *dashboardService) Handle(ctx context.Context, req *models.Web4Request) (*models.Web4Response, error) {
	if req == nil {
		return nil, &apperrors.ErrValidation{Field: "request", Message: "request is required"}
	}

	if req.Path == RobotsPath {
		s.observe(OutcomeRobots)
		return models.PlainResponse(RobotsBody), nil
	}

	if req.Preloads == nil {
		s.observe(OutcomePreload)
		return models.PreloadURLsResponse(s.PreloadURLs()), nil
	}

	resp, err := s.render(ctx, req.Preloads)
	if err != nil {
		s.observe(OutcomeFailed)
		s.logger.Warn("Web4 render failed", zap.String("path", req.Path), zap.Error(err))
		return nil, err
	}
	s.observe(OutcomeRender)
	return resp, nil
}

func (s *dashboardService) render(ctx context.Context, preloads map[string]models.Web4Response) (*models.Web4Response, error) {
	priceBody, err := preloadBody(preloads, s.priceDataURL())
	if err != nil {
		return nil, err
	}
	assetsBody, err := preloadBody(preloads, s.assetsURL())
	if err != nil {
		return nil, err
	}

	snapshot, err := s.parser.ParsePriceSnapshot(priceBody)
	if err != nil {
		return nil, err
	}
	assets, err := s.parser.ParseAssetReports(assetsBody)
	if err != nil {
		return nil, err
	}

	configs, err := s.registry.Lookup(ctx, referencedAssets(snapshot, assets))
	if err != nil {
		return nil, fmt.Errorf("registry lookup: %w", err)
	}

	priceRows, err := BuildPriceRows(snapshot, assets, configs)
	if err != nil {
		return nil, err
	}
	validatorRows := BuildValidatorRows(ValidatorAges(AggregateValidators(assets), s.now()))

	s.observeRows(TablePrices, len(priceRows))
	s.observeRows(TableValidators, len(validatorRows))
	s.logger.Debug("Web4 dashboard rendered",
		zap.Int("prices", len(snapshot.Prices)),
		zap.Int("assets", len(assets)),
		zap.Int("price_rows", len(priceRows)),
		zap.Int("validator_rows", len(validatorRows)))

	return models.HTMLResponse(templates.RenderIndex(RenderRows(priceRows), RenderRows(validatorRows))), nil
}

func (s *dashboardService) observe(outcome string) {
	if s.observer != nil {
		s.observer.ObserveWeb4Outcome(outcome)
	}
}

func (s *dashboardService) observeRows(table string, n int) {
	if s.observer != nil {
		s.observer.ObserveRenderedRows(table, n)
	}
}

func preloadBody(preloads map[string]models.Web4Response, url string) ([]byte, error) {
	resp, ok := preloads[url]
	if !ok {
		return nil, &apperrors.MissingPreloadError{URL: url, Reason: "not attached"}
	}
	if resp.Body == nil {
		return nil, &apperrors.MissingPreloadError{URL: url, Reason: "no body"}
	}
	return resp.Body, nil
}

// referencedAssets lists every asset id the page may need a config for, first occurrence first.
func referencedAssets(snapshot *models.PriceSnapshot, assets []models.AssetReportEntry) []string {
	seen := make(map[string]struct{}, len(snapshot.Prices)+len(assets))
	ids := make([]string, 0, len(snapshot.Prices)+len(assets))
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, p := range snapshot.Prices {
		add(p.AssetID)
	}
	for _, a := range assets {
		add(a.AssetID)
	}
	return ids
}
