package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FleetCount is the number of trucks in one status for one company
type FleetCount struct {
	CompanyID string
	Status    string
	Count     int64
}

// FleetStatsProvider reports fleet sizes for the gauges below
type FleetStatsProvider interface {
	TruckCounts(ctx context.Context) ([]FleetCount, error)
	ActiveEmployeeCounts(ctx context.Context) (map[string]int64, error)
}

// GormFleetStatsProvider reads fleet sizes straight from the trucks and
// employees tables
type GormFleetStatsProvider struct {
	db *gorm.DB
}

func NewGormFleetStatsProvider(db *gorm.DB) *GormFleetStatsProvider {
	return &GormFleetStatsProvider{db: db}
}

func (p *GormFleetStatsProvider) TruckCounts(ctx context.Context) ([]FleetCount, error) {
	var rows []FleetCount
	err := p.db.WithContext(ctx).
		Table("trucks").
		Select("company_id, status, COUNT(*) AS count").
		Group("company_id, status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (p *GormFleetStatsProvider) ActiveEmployeeCounts(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		CompanyID string
		Count     int64
	}
	err := p.db.WithContext(ctx).
		Table("employees").
		Select("company_id, COUNT(*) AS count").
		Where("status = ?", "active").
		Group("company_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.CompanyID] = r.Count
	}
	return counts, nil
}

const fleetCollectTimeout = 5 * time.Second

// FleetMetrics publishes truck and crew gauges, read on each collection
type FleetMetrics struct {
	registration metric.Registration
}

// NewFleetMetrics registers observable gauges backed by provider
func NewFleetMetrics(meter metric.Meter, provider FleetStatsProvider, logger *zap.Logger) (*FleetMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	trucks, err := meter.Int64ObservableGauge("syncworks.fleet.trucks",
		metric.WithDescription("Trucks by status"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trucks gauge: %w", err)
	}
	employees, err := meter.Int64ObservableGauge("syncworks.fleet.active_employees",
		metric.WithDescription("Active employees"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create employees gauge: %w", err)
	}

	reg, err := meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		ctx, cancel := context.WithTimeout(ctx, fleetCollectTimeout)
		defer cancel()

		truckCounts, err := provider.TruckCounts(ctx)
		if err != nil {
			logger.Warn("failed to collect truck counts", zap.Error(err))
		}
		for _, c := range truckCounts {
			o.ObserveInt64(trucks, c.Count, metric.WithAttributes(
				AttrCompanyID.String(c.CompanyID),
				AttrTruckStatus.String(c.Status),
			))
		}

		crew, err := provider.ActiveEmployeeCounts(ctx)
		if err != nil {
			logger.Warn("failed to collect employee counts", zap.Error(err))
		}
		for company, n := range crew {
			o.ObserveInt64(employees, n, metric.WithAttributes(AttrCompanyID.String(company)))
		}
		return nil
	}, trucks, employees)
	if err != nil {
		return nil, fmt.Errorf("failed to register fleet callback: %w", err)
	}
	return &FleetMetrics{registration: reg}, nil
}

func (m *FleetMetrics) Stop() error {
	if m == nil || m.registration == nil {
		return nil
	}
	return m.registration.Unregister()
}
