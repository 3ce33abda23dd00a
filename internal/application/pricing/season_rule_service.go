package pricing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/pricing"
	"github.com/syncworks/backend/internal/domain/shared"
)

// SeasonRuleService manages a company's season rules
type SeasonRuleService struct {
	ruleRepo  pricing.SeasonRuleRepository
	publisher shared.EventPublisher
}

// NewSeasonRuleService creates a new SeasonRuleService
func NewSeasonRuleService(ruleRepo pricing.SeasonRuleRepository, publisher shared.EventPublisher) *SeasonRuleService {
	return &SeasonRuleService{ruleRepo: ruleRepo, publisher: publisher}
}

// Create adds a rule; names are unique per company
func (s *SeasonRuleService) Create(ctx context.Context, companyID uuid.UUID, req SeasonRuleRequest, createdBy *uuid.UUID) (*SeasonRuleResponse, error) {
	exists, err := s.ruleRepo.ExistsByName(ctx, companyID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A season rule with this name already exists")
	}

	schedule, adjustment, err := req.toDomain()
	if err != nil {
		return nil, err
	}

	rule, err := pricing.NewSeasonRule(companyID, req.Name, schedule, adjustment)
	if err != nil {
		return nil, err
	}
	if err := applyRuleOptions(rule, req); err != nil {
		return nil, err
	}
	rule.Description = strings.TrimSpace(req.Description)
	if createdBy != nil {
		rule.SetCreatedBy(*createdBy)
	}

	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}
	if err := shared.PublishAndClear(ctx, s.publisher, rule); err != nil {
		return nil, err
	}

	resp := ToSeasonRuleResponse(rule)
	return &resp, nil
}

// GetByID returns one rule
func (s *SeasonRuleService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*SeasonRuleResponse, error) {
	rule, err := s.ruleRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := ToSeasonRuleResponse(rule)
	return &resp, nil
}

// List returns a page of rules
func (s *SeasonRuleService) List(ctx context.Context, companyID uuid.UUID, filter SeasonRuleListFilter) ([]SeasonRuleResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
		domainFilter.OrderDir = "asc"
	} else {
		domainFilter.OrderBy = "priority"
		domainFilter.OrderDir = "desc"
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}
	if filter.Recurrence != "" {
		domainFilter.Filters["recurrence"] = filter.Recurrence
	}
	if filter.AdjustmentType != "" {
		domainFilter.Filters["adjustment_type"] = filter.AdjustmentType
	}

	rules, err := s.ruleRepo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.ruleRepo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSeasonRuleResponses(rules), total, nil
}

// Update replaces every editable field of a rule
func (s *SeasonRuleService) Update(ctx context.Context, companyID, id uuid.UUID, req SeasonRuleRequest) (*SeasonRuleResponse, error) {
	rule, err := s.ruleRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if rule.Name != req.Name {
		exists, err := s.ruleRepo.ExistsByName(ctx, companyID, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A season rule with this name already exists")
		}
	}

	schedule, adjustment, err := req.toDomain()
	if err != nil {
		return nil, err
	}
	if err := rule.Update(req.Name, req.Description, schedule, adjustment); err != nil {
		return nil, err
	}
	if err := applyRuleOptions(rule, req); err != nil {
		return nil, err
	}

	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}
	if err := shared.PublishAndClear(ctx, s.publisher, rule); err != nil {
		return nil, err
	}

	resp := ToSeasonRuleResponse(rule)
	return &resp, nil
}

// Activate puts a rule back into effect
func (s *SeasonRuleService) Activate(ctx context.Context, companyID, id uuid.UUID) (*SeasonRuleResponse, error) {
	return s.changeStatus(ctx, companyID, id, (*pricing.SeasonRule).Activate)
}

// Deactivate takes a rule out of effect without deleting it
func (s *SeasonRuleService) Deactivate(ctx context.Context, companyID, id uuid.UUID) (*SeasonRuleResponse, error) {
	return s.changeStatus(ctx, companyID, id, (*pricing.SeasonRule).Deactivate)
}

func (s *SeasonRuleService) changeStatus(ctx context.Context, companyID, id uuid.UUID, change func(*pricing.SeasonRule) error) (*SeasonRuleResponse, error) {
	rule, err := s.ruleRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := change(rule); err != nil {
		return nil, err
	}
	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}
	if err := shared.PublishAndClear(ctx, s.publisher, rule); err != nil {
		return nil, err
	}
	resp := ToSeasonRuleResponse(rule)
	return &resp, nil
}

// Delete removes a rule
func (s *SeasonRuleService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := s.ruleRepo.FindByIDForCompany(ctx, companyID, id); err != nil {
		return err
	}
	return s.ruleRepo.DeleteForCompany(ctx, companyID, id)
}

func (req SeasonRuleRequest) toDomain() (pricing.Schedule, pricing.Adjustment, error) {
	schedule := pricing.Schedule{
		Recurrence: pricing.Recurrence(req.Recurrence),
		DayOfMonth: req.DayOfMonth,
		Month:      req.Month,
		EndMonth:   req.EndMonth,
	}
	for _, d := range req.DaysOfWeek {
		schedule.DaysOfWeek = append(schedule.DaysOfWeek, time.Weekday(d))
	}
	if req.SpecificDate != "" {
		d, err := parseDate("specific_date", req.SpecificDate)
		if err != nil {
			return pricing.Schedule{}, pricing.Adjustment{}, err
		}
		schedule.SpecificDate = &d
	}

	adjustment := pricing.Adjustment{
		Type:  pricing.AdjustmentType(req.AdjustmentType),
		Value: req.AdjustmentValue,
	}
	return schedule, adjustment, nil
}

func applyRuleOptions(rule *pricing.SeasonRule, req SeasonRuleRequest) error {
	rule.SetPriority(req.Priority, req.Exclusive)

	var start, end *time.Time
	if req.StartDate != "" {
		d, err := parseDate("start_date", req.StartDate)
		if err != nil {
			return err
		}
		start = &d
	}
	if req.EndDate != "" {
		d, err := parseDate("end_date", req.EndDate)
		if err != nil {
			return err
		}
		end = &d
	}
	return rule.SetWindow(start, end)
}

func parseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", field+" must be a date in YYYY-MM-DD format")
	}
	return d, nil
}
