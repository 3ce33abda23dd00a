package pricing

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/pricing"
	"github.com/syncworks/backend/internal/domain/shared"
	csvimport "github.com/syncworks/backend/internal/infrastructure/import"
)

const (
	maxImportRows   = 1000
	maxImportErrors = 100
)

// HolidayService manages a company's holiday calendar
type HolidayService struct {
	holidayRepo pricing.HolidayRepository
}

// NewHolidayService creates a new HolidayService
func NewHolidayService(holidayRepo pricing.HolidayRepository) *HolidayService {
	return &HolidayService{holidayRepo: holidayRepo}
}

// Create adds a holiday; one holiday per date
func (s *HolidayService) Create(ctx context.Context, companyID uuid.UUID, req HolidayRequest) (*HolidayResponse, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	exists, err := s.holidayRepo.ExistsOnDate(ctx, companyID, date)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A holiday already exists on this date")
	}

	holiday, err := pricing.NewHoliday(companyID, req.Name, date, req.RecurringYearly)
	if err != nil {
		return nil, err
	}
	if req.Observed != nil {
		holiday.Observed = *req.Observed
	}

	if err := s.holidayRepo.Save(ctx, holiday); err != nil {
		return nil, err
	}

	resp := ToHolidayResponse(holiday)
	return &resp, nil
}

// GetByID returns one holiday
func (s *HolidayService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*HolidayResponse, error) {
	holiday, err := s.holidayRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := ToHolidayResponse(holiday)
	return &resp, nil
}

// List returns a page of holidays ordered by date
func (s *HolidayService) List(ctx context.Context, companyID uuid.UUID, filter HolidayListFilter) ([]HolidayResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = "date"
	domainFilter.OrderDir = "asc"
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.From != "" {
		from, err := parseDate("from", filter.From)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Filters["from"] = from
	}
	if filter.To != "" {
		to, err := parseDate("to", filter.To)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Filters["to"] = to
	}
	if filter.RecurringYearly != nil {
		domainFilter.Filters["recurring_yearly"] = *filter.RecurringYearly
	}

	holidays, err := s.holidayRepo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.holidayRepo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]HolidayResponse, len(holidays))
	for i := range holidays {
		out[i] = ToHolidayResponse(&holidays[i])
	}
	return out, total, nil
}

// Update changes a holiday
func (s *HolidayService) Update(ctx context.Context, companyID, id uuid.UUID, req HolidayRequest) (*HolidayResponse, error) {
	holiday, err := s.holidayRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	if !date.Equal(holiday.Date) {
		exists, err := s.holidayRepo.ExistsOnDate(ctx, companyID, date)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A holiday already exists on this date")
		}
	}

	observed := holiday.Observed
	if req.Observed != nil {
		observed = *req.Observed
	}
	if err := holiday.Update(req.Name, date, req.RecurringYearly, observed); err != nil {
		return nil, err
	}

	if err := s.holidayRepo.Save(ctx, holiday); err != nil {
		return nil, err
	}

	resp := ToHolidayResponse(holiday)
	return &resp, nil
}

// Delete removes a holiday
func (s *HolidayService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := s.holidayRepo.FindByIDForCompany(ctx, companyID, id); err != nil {
		return err
	}
	return s.holidayRepo.DeleteForCompany(ctx, companyID, id)
}

// Import reads a holiday CSV and stores the valid rows. Rows whose date
// already has a holiday, in the file or in the database, are skipped and
// reported.
func (s *HolidayService) Import(ctx context.Context, companyID uuid.UUID, r io.Reader) (*HolidayImportResult, error) {
	file, err := csvimport.ParseHolidays(r, maxImportRows, maxImportErrors)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_IMPORT_FILE", err.Error())
	}

	toSave := make([]*pricing.Holiday, 0, len(file.Rows))
	for _, row := range file.Rows {
		exists, err := s.holidayRepo.ExistsOnDate(ctx, companyID, row.Date)
		if err != nil {
			return nil, err
		}
		if exists {
			file.Errors.AddDuplicate(row.Line, "date", row.Date.Format(dateLayout), true)
			continue
		}

		holiday, err := pricing.NewHoliday(companyID, row.Name, row.Date, row.Recurring)
		if err != nil {
			file.Errors.Add(csvimport.RowError{
				Row:     row.Line,
				Code:    csvimport.ErrCodeImportInvalidValue,
				Message: err.Error(),
			})
			continue
		}
		holiday.Observed = row.Observed
		toSave = append(toSave, holiday)
	}

	if len(toSave) > 0 {
		if err := s.holidayRepo.SaveBatch(ctx, toSave); err != nil {
			return nil, err
		}
	}

	result := &HolidayImportResult{
		TotalRows: file.TotalRows,
		Imported:  len(toSave),
		Skipped:   file.TotalRows - len(toSave),
		Errors:    file.Errors.Errors(),
		Truncated: file.Errors.IsTruncated(),
		Holidays:  make([]HolidayResponse, len(toSave)),
	}
	if result.Errors == nil {
		result.Errors = []csvimport.RowError{}
	}
	for i, h := range toSave {
		result.Holidays[i] = ToHolidayResponse(h)
	}
	return result, nil
}
