package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gcc-market-sync/internal/entity"
	"gcc-market-sync/internal/sync/config"
	"gcc-market-sync/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAlertsRepo struct {
	mu        sync.Mutex
	alerts    []entity.UserAlert
	triggered map[int64]time.Time
	markErr   error
}

func newFakeAlertsRepo(alerts ...entity.UserAlert) *fakeAlertsRepo {
	return &fakeAlertsRepo{alerts: alerts, triggered: make(map[int64]time.Time)}
}

func (f *fakeAlertsRepo) GetActive(_ context.Context, alertType string) ([]entity.UserAlert, error) {
	var out []entity.UserAlert
	for _, alert := range f.alerts {
		if alert.IsActive && alert.AlertType == alertType {
			out = append(out, alert)
		}
	}
	return out, nil
}

func (f *fakeAlertsRepo) MarkTriggered(_ context.Context, alertID int64, triggeredAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return f.markErr
	}
	f.triggered[alertID] = triggeredAt
	return nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (f *fakeNotifier) SendMessage(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, text)
	return nil
}

// pricesByCompany satisfies the price lookups the evaluator needs.
type pricesByCompany struct {
	fakePricesRepo
	closes map[int64]float64
}

func (p *pricesByCompany) GetLatestClose(_ context.Context, companyID int64) (float64, error) {
	price, ok := p.closes[companyID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return price, nil
}

func priceAlert(id, companyID int64, operator string, value float64) entity.UserAlert {
	return entity.UserAlert{
		ID:                id,
		UserID:            1,
		AlertType:         entity.AlertTypePrice,
		CompanyID:         companyID,
		ConditionOperator: operator,
		ConditionValue:    value,
		IsActive:          true,
		Company:           entity.Company{ID: companyID, Ticker: "2222.SR", NameEn: "Saudi Aramco"},
	}
}

func alertFixture(t *testing.T, policy string, prices map[int64]float64, alerts ...entity.UserAlert) (AlertService, *fakeAlertsRepo, *fakeNotifier) {
	cfg := testConfig()
	cfg.Alert = config.Alert{TriggerPolicy: policy, Cooldown: time.Hour}
	repo := newFakeAlertsRepo(alerts...)
	notifier := &fakeNotifier{}
	svc := NewAlertService(cfg, newTestLogger(t), repo, &pricesByCompany{closes: prices}, notifier)
	return svc, repo, notifier
}

func TestEvaluateCondition(t *testing.T) {
	cases := []struct {
		name     string
		operator string
		current  float64
		value    float64
		want     bool
	}{
		{"gt above", entity.AlertOperatorGT, 105, 100, true},
		{"gt equal", entity.AlertOperatorGT, 100, 100, false},
		{"lt below", entity.AlertOperatorLT, 95, 100, true},
		{"lt above", entity.AlertOperatorLT, 105, 100, false},
		{"eq within tolerance", entity.AlertOperatorEQ, 100.005, 100, true},
		{"eq outside tolerance", entity.AlertOperatorEQ, 100.02, 100, false},
		{"unknown operator", "gte", 105, 100, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EvaluateCondition(tc.operator, tc.current, tc.value))
		})
	}
}

func TestEvaluateAlertsTriggersAndMarks(t *testing.T) {
	svc, repo, notifier := alertFixture(t, TriggerPolicyEdge,
		map[int64]float64{1: 105},
		priceAlert(10, 1, entity.AlertOperatorGT, 100))

	result := svc.EvaluateAlerts(context.Background(), entity.AlertTypePrice)

	assert.Equal(t, 1, result.Evaluated)
	assert.Equal(t, 1, result.Triggered)
	assert.Empty(t, result.Errors)

	_, marked := repo.triggered[10]
	assert.True(t, marked)
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "2222.SR")
	assert.Contains(t, notifier.messages[0], "Saudi Aramco")
}

func TestEvaluateAlertsNoPriceData(t *testing.T) {
	svc, repo, notifier := alertFixture(t, TriggerPolicyEdge,
		map[int64]float64{},
		priceAlert(10, 1, entity.AlertOperatorGT, 100))

	result := svc.EvaluateAlerts(context.Background(), entity.AlertTypePrice)

	assert.Equal(t, 1, result.Evaluated)
	assert.Equal(t, 0, result.Triggered)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)
	assert.Empty(t, repo.triggered)
	assert.Empty(t, notifier.messages)
}

func TestEvaluateAlertsEdgePolicy(t *testing.T) {
	prices := map[int64]float64{1: 105}
	svc, _, notifier := alertFixture(t, TriggerPolicyEdge, prices,
		priceAlert(10, 1, entity.AlertOperatorGT, 100))
	ctx := context.Background()

	// First satisfied evaluation fires.
	first := svc.EvaluateAlerts(ctx, entity.AlertTypePrice)
	assert.Equal(t, 1, first.Triggered)

	// Still satisfied: no repeat notification.
	second := svc.EvaluateAlerts(ctx, entity.AlertTypePrice)
	assert.Equal(t, 0, second.Triggered)
	assert.Equal(t, 1, second.Skipped)

	// Condition clears then holds again: fires once more.
	prices[1] = 95
	svc.EvaluateAlerts(ctx, entity.AlertTypePrice)
	prices[1] = 110
	fourth := svc.EvaluateAlerts(ctx, entity.AlertTypePrice)
	assert.Equal(t, 1, fourth.Triggered)

	assert.Len(t, notifier.messages, 2)
}

func TestEvaluateAlertsAlwaysPolicy(t *testing.T) {
	svc, _, notifier := alertFixture(t, TriggerPolicyAlways,
		map[int64]float64{1: 105},
		priceAlert(10, 1, entity.AlertOperatorGT, 100))
	ctx := context.Background()

	svc.EvaluateAlerts(ctx, entity.AlertTypePrice)
	svc.EvaluateAlerts(ctx, entity.AlertTypePrice)

	assert.Len(t, notifier.messages, 2)
}

func TestEvaluateAlertsCooldownPolicy(t *testing.T) {
	recent := utils.TimeNowRiyadh().Add(-time.Minute)
	stale := utils.TimeNowRiyadh().Add(-2 * time.Hour)

	inCooldown := priceAlert(10, 1, entity.AlertOperatorGT, 100)
	inCooldown.LastTriggeredAt = &recent
	pastCooldown := priceAlert(11, 1, entity.AlertOperatorGT, 100)
	pastCooldown.LastTriggeredAt = &stale

	svc, repo, _ := alertFixture(t, TriggerPolicyCooldown,
		map[int64]float64{1: 105}, inCooldown, pastCooldown)

	result := svc.EvaluateAlerts(context.Background(), entity.AlertTypePrice)

	assert.Equal(t, 1, result.Triggered)
	assert.Equal(t, 1, result.Skipped)
	_, marked := repo.triggered[11]
	assert.True(t, marked)
	_, marked = repo.triggered[10]
	assert.False(t, marked)
}

func TestEvaluateAlertsNotifierFailureStillMarks(t *testing.T) {
	svc, repo, notifier := alertFixture(t, TriggerPolicyEdge,
		map[int64]float64{1: 105},
		priceAlert(10, 1, entity.AlertOperatorGT, 100))
	notifier.err = errors.New("telegram unreachable")

	result := svc.EvaluateAlerts(context.Background(), entity.AlertTypePrice)

	assert.Equal(t, 1, result.Triggered)
	assert.Empty(t, result.Errors)
	_, marked := repo.triggered[10]
	assert.True(t, marked)
}

func TestEvaluateAlertsMarkFailureKeepsEdgeArmed(t *testing.T) {
	svc, repo, notifier := alertFixture(t, TriggerPolicyEdge,
		map[int64]float64{1: 105},
		priceAlert(10, 1, entity.AlertOperatorGT, 100))
	repo.markErr = errors.New("connection refused")

	first := svc.EvaluateAlerts(context.Background(), entity.AlertTypePrice)
	require.Len(t, first.Errors, 1)
	assert.Equal(t, 0, first.Triggered)

	// The store recovers; the condition still holds and last_triggered_at
	// was never stamped, so the next cycle must fire.
	repo.markErr = nil
	second := svc.EvaluateAlerts(context.Background(), entity.AlertTypePrice)
	assert.Equal(t, 1, second.Triggered)
	_, marked := repo.triggered[10]
	assert.True(t, marked)
	assert.Len(t, notifier.messages, 2)
}

func TestEvaluateAlertsPrunesRemovedAlertState(t *testing.T) {
	svc, repo, _ := alertFixture(t, TriggerPolicyEdge,
		map[int64]float64{1: 105},
		priceAlert(10, 1, entity.AlertOperatorGT, 100))
	ctx := context.Background()

	svc.EvaluateAlerts(ctx, entity.AlertTypePrice)
	inner := svc.(*alertService)
	inner.mu.Lock()
	_, tracked := inner.lastState[10]
	inner.mu.Unlock()
	require.True(t, tracked)

	// Deactivating the alert drops its state on the next run.
	repo.alerts[0].IsActive = false
	svc.EvaluateAlerts(ctx, entity.AlertTypePrice)
	inner.mu.Lock()
	_, tracked = inner.lastState[10]
	inner.mu.Unlock()
	assert.False(t, tracked)
}

func TestEvaluateAlertsMarkFailureReported(t *testing.T) {
	svc, repo, _ := alertFixture(t, TriggerPolicyEdge,
		map[int64]float64{1: 105},
		priceAlert(10, 1, entity.AlertOperatorGT, 100))
	repo.markErr = errors.New("connection refused")

	result := svc.EvaluateAlerts(context.Background(), entity.AlertTypePrice)

	assert.Equal(t, 0, result.Triggered)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "mark triggered")
}
