package calculation

import (
	"time"

	"github.com/mapleplan/mapleplan/internal/domain"
	"github.com/mapleplan/mapleplan/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Logger is the minimal logging surface the engine emits to. Callers plug
// in whatever backs it (zap in the server, std log in the CLI).
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// Clock supplies the instant month labels are anchored to. Injected so
// two runs over the same profile produce byte-identical plans in tests.
type Clock func() time.Time

// Engine orchestrates the planning pipeline: normalize, derive metrics,
// compose. It is stateless apart from configuration; concurrent
// GeneratePlan calls share nothing.
type Engine struct {
	Strategy string
	Clock    Clock
	Logger   Logger
}

// NewEngine creates an engine with the avalanche default strategy and the
// wall clock.
func NewEngine() *Engine {
	return &Engine{
		Strategy: domain.StrategyAvalanche,
		Clock:    time.Now,
		Logger:   NopLogger{},
	}
}

// SetLogger replaces the engine logger; nil restores the no-op logger.
func (e *Engine) SetLogger(logger Logger) {
	if logger == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = logger
}

// SetClock replaces the engine clock; nil restores the wall clock.
func (e *Engine) SetClock(clock Clock) {
	if clock == nil {
		e.Clock = time.Now
		return
	}
	e.Clock = clock
}

func (e *Engine) strategy() string {
	if e.Strategy == "" {
		return domain.StrategyAvalanche
	}
	return e.Strategy
}

// GeneratePlan is the single logical operation the engine exposes: a
// pure, synchronous, total transformation of a normalized profile into a
// plan. It never fails for a structurally valid profile.
func (e *Engine) GeneratePlan(profile domain.Profile) *domain.Plan {
	metrics := e.ComputeMetrics(profile)
	e.Logger.Debugf("composing plan: surplus=%s debt=%s fund_months=%s",
		metrics.MonthlySurplus, metrics.DebtBalance, metrics.EmergencyFundMonths.Round(1))
	return ComposePlan(profile, metrics, ComposeOptions{
		Strategy: e.strategy(),
		Now:      e.Clock(),
	})
}

// GeneratePlanFromIntake normalizes raw intake and generates its plan.
func (e *Engine) GeneratePlanFromIntake(intake domain.RawIntake) (domain.Profile, domain.Metrics, *domain.Plan) {
	profile := NormalizeProfile(intake)
	metrics := e.ComputeMetrics(profile)
	plan := ComposePlan(profile, metrics, ComposeOptions{
		Strategy: e.strategy(),
		Now:      e.Clock(),
	})
	return profile, metrics, plan
}

// ComputeMetrics derives metrics and stamps the closed-form debt-free
// label against the engine clock. The label is an early estimate; the
// composed plan's DebtFreeDate comes from the simulator.
func (e *Engine) ComputeMetrics(profile domain.Profile) domain.Metrics {
	metrics := ComputeMetrics(profile)
	if metrics.DebtBalance.IsPositive() {
		metrics.DebtFreeDateLabel = dateutil.MonthLabel(e.Clock(), metrics.PayoffMonths)
	}
	return metrics
}

// ProjectPayoff runs the amortization simulation with the engine's
// configured strategy when none is given.
func (e *Engine) ProjectPayoff(debts []domain.Debt, extra decimal.Decimal, strategy string) domain.DebtProjection {
	if strategy == "" {
		strategy = e.strategy()
	}
	return ProjectDebtPayoff(debts, extra, strategy)
}
