package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/shared"
)

const AggregateTypeSeasonRule = "SeasonRule"

const (
	EventTypeSeasonRuleCreated       = "SeasonRuleCreated"
	EventTypeSeasonRuleUpdated       = "SeasonRuleUpdated"
	EventTypeSeasonRuleStatusChanged = "SeasonRuleStatusChanged"
)

// SeasonRuleCreatedEvent is published when a rule is created
type SeasonRuleCreatedEvent struct {
	shared.BaseDomainEvent
	Name       string          `json:"name"`
	Recurrence Recurrence      `json:"recurrence"`
	Type       AdjustmentType  `json:"adjustment_type"`
	Value      decimal.Decimal `json:"adjustment_value"`
}

func NewSeasonRuleCreatedEvent(r *SeasonRule) *SeasonRuleCreatedEvent {
	return &SeasonRuleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSeasonRuleCreated, AggregateTypeSeasonRule, r.ID, r.CompanyID),
		Name:            r.Name,
		Recurrence:      r.Schedule.Recurrence,
		Type:            r.Adjustment.Type,
		Value:           r.Adjustment.Value,
	}
}

// SeasonRuleUpdatedEvent is published when a rule's definition changes
type SeasonRuleUpdatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

func NewSeasonRuleUpdatedEvent(r *SeasonRule) *SeasonRuleUpdatedEvent {
	return &SeasonRuleUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSeasonRuleUpdated, AggregateTypeSeasonRule, r.ID, r.CompanyID),
		Name:            r.Name,
	}
}

// SeasonRuleStatusChangedEvent is published on activate/deactivate
type SeasonRuleStatusChangedEvent struct {
	shared.BaseDomainEvent
	IsActive bool `json:"is_active"`
}

func NewSeasonRuleStatusChangedEvent(r *SeasonRule) *SeasonRuleStatusChangedEvent {
	return &SeasonRuleStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSeasonRuleStatusChanged, AggregateTypeSeasonRule, r.ID, r.CompanyID),
		IsActive:        r.IsActive,
	}
}
