package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"gcc-market-sync/internal/entity"
	"gcc-market-sync/internal/sync/config"
	"gcc-market-sync/internal/sync/dto"
	"gcc-market-sync/internal/sync/repository"
	"gcc-market-sync/pkg/logger"
	"gcc-market-sync/pkg/telegram"
	"gcc-market-sync/pkg/utils"

	"gorm.io/gorm"
)

// Trigger policies for repeat notifications.
const (
	TriggerPolicyEdge     = "edge"
	TriggerPolicyCooldown = "cooldown"
	TriggerPolicyAlways   = "always"
)

// Tolerance for the eq operator; prices are floating point.
const eqTolerance = 0.01

// AlertService evaluates active user alerts against the latest stored
// price and dispatches notifications for alerts that fire.
type AlertService interface {
	EvaluateAlerts(ctx context.Context, alertType string) *dto.AlertEvaluation
}

// NewAlertService creates an alert evaluator.
func NewAlertService(
	cfg *config.Config,
	log *logger.Logger,
	alertsRepo repository.AlertsRepository,
	pricesRepo repository.PricesRepository,
	notifier telegram.Notifier,
) AlertService {
	return &alertService{
		cfg:        cfg,
		logger:     log,
		alertsRepo: alertsRepo,
		pricesRepo: pricesRepo,
		notifier:   notifier,
		lastState:  make(map[int64]bool),
	}
}

type alertService struct {
	cfg        *config.Config
	logger     *logger.Logger
	alertsRepo repository.AlertsRepository
	pricesRepo repository.PricesRepository
	notifier   telegram.Notifier

	// lastState remembers each alert's previous condition result for the
	// edge policy. Process-local: after a restart the first satisfied
	// evaluation counts as a transition and fires.
	mu        sync.Mutex
	lastState map[int64]bool
}

// EvaluateAlerts loads active alerts of the given type, evaluates each
// condition against the company's latest close and records triggers. An
// alert with no price data does not trigger and is not an error.
func (s *alertService) EvaluateAlerts(ctx context.Context, alertType string) *dto.AlertEvaluation {
	result := &dto.AlertEvaluation{Errors: []string{}}

	alerts, err := s.alertsRepo.GetActive(ctx, alertType)
	if err != nil {
		s.logger.Error("Failed to load active alerts", logger.ErrorField(err))
		result.Errors = append(result.Errors, fmt.Sprintf("load alerts: %v", err))
		return result
	}

	active := make(map[int64]struct{}, len(alerts))
	for _, alert := range alerts {
		if !utils.ShouldContinue(ctx) {
			break
		}
		result.Evaluated++
		active[alert.ID] = struct{}{}

		currentPrice, err := s.pricesRepo.GetLatestClose(ctx, alert.CompanyID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			result.Skipped++
			s.setLastState(alert.ID, false)
			continue
		}
		if err != nil {
			s.logger.Error("Failed to read latest price",
				logger.ErrorField(err), logger.Field("alert_id", alert.ID))
			result.Errors = append(result.Errors, fmt.Sprintf("alert %d: %v", alert.ID, err))
			continue
		}

		satisfied := EvaluateCondition(alert.ConditionOperator, currentPrice, alert.ConditionValue)
		fire := satisfied && s.shouldNotify(&alert)

		if !fire {
			s.setLastState(alert.ID, satisfied)
			result.Skipped++
			continue
		}

		// The state flips only once the trigger is recorded; a failed
		// MarkTriggered must not consume the edge transition.
		if err := s.trigger(ctx, &alert, currentPrice); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("alert %d: %v", alert.ID, err))
			continue
		}
		s.setLastState(alert.ID, satisfied)
		result.Triggered++
	}

	// A canceled run saw only part of the alert set; pruning on it would
	// discard state for alerts that were never reached.
	if utils.ShouldContinue(ctx) {
		s.pruneLastState(active)
	}

	s.logger.Info("Alert evaluation completed",
		logger.IntField("evaluated", result.Evaluated),
		logger.IntField("triggered", result.Triggered),
		logger.IntField("skipped", result.Skipped))

	return result
}

// EvaluateCondition applies the alert predicate. Unknown operators never
// trigger.
func EvaluateCondition(operator string, currentPrice, conditionValue float64) bool {
	switch operator {
	case entity.AlertOperatorGT:
		return currentPrice > conditionValue
	case entity.AlertOperatorLT:
		return currentPrice < conditionValue
	case entity.AlertOperatorEQ:
		return math.Abs(currentPrice-conditionValue) < eqTolerance
	default:
		return false
	}
}

// shouldNotify applies the configured re-trigger policy to an alert whose
// condition currently holds.
func (s *alertService) shouldNotify(alert *entity.UserAlert) bool {
	switch s.cfg.Alert.TriggerPolicy {
	case TriggerPolicyAlways:
		return true
	case TriggerPolicyCooldown:
		if alert.LastTriggeredAt == nil {
			return true
		}
		return time.Since(*alert.LastTriggeredAt) >= s.cfg.Alert.Cooldown
	default: // edge
		s.mu.Lock()
		defer s.mu.Unlock()
		return !s.lastState[alert.ID]
	}
}

func (s *alertService) setLastState(alertID int64, satisfied bool) {
	s.mu.Lock()
	s.lastState[alertID] = satisfied
	s.mu.Unlock()
}

// pruneLastState drops state for alerts no longer active so deleted or
// deactivated alerts do not accumulate in a long-lived process.
func (s *alertService) pruneLastState(active map[int64]struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for alertID := range s.lastState {
		if _, ok := active[alertID]; !ok {
			delete(s.lastState, alertID)
		}
	}
}

func (s *alertService) trigger(ctx context.Context, alert *entity.UserAlert, currentPrice float64) error {
	now := utils.TimeNowRiyadh()

	message := telegram.FormatPriceAlert(
		alert.Company.Ticker,
		alert.Company.NameEn,
		alert.ConditionOperator,
		alert.ConditionValue,
		currentPrice,
		now,
	)
	if err := s.notifier.SendMessage(message); err != nil {
		// The trigger still counts; losing one notification must not wedge
		// the alert in an untriggered state.
		s.logger.Error("Failed to send alert notification",
			logger.ErrorField(err), logger.Field("alert_id", alert.ID))
	}

	if err := s.alertsRepo.MarkTriggered(ctx, alert.ID, now); err != nil {
		return fmt.Errorf("mark triggered: %w", err)
	}

	s.logger.Debug("Alert triggered",
		logger.Field("alert_id", alert.ID),
		logger.StringField("ticker", alert.Company.Ticker),
		logger.Float64Field("current_price", currentPrice))

	return nil
}
