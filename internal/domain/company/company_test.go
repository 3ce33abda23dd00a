package company

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompany(t *testing.T) {
	c, err := NewCompany(" Lakeside-Movers ", "Lakeside Movers")
	require.NoError(t, err)
	assert.Equal(t, "lakeside-movers", c.Code)
	assert.True(t, c.IsActive())
	assert.Equal(t, "45", c.DefaultHourlyRate.String())

	_, err = NewCompany("x", "Too short code")
	assert.Error(t, err)

	_, err = NewCompany("lakeside", "")
	assert.Error(t, err)
}

func TestCompany_UpdateProfile(t *testing.T) {
	c, _ := NewCompany("lakeside", "Lakeside Movers")

	require.NoError(t, c.UpdateProfile("Lakeside Moving Co", "OFFICE@lakeside.example", "555-0000", "1 Pier Rd", "America/New_York"))
	assert.Equal(t, "office@lakeside.example", c.ContactEmail)
	assert.Equal(t, "America/New_York", c.Location().String())

	assert.Error(t, c.UpdateProfile("Lakeside", "", "", "", "Mars/Olympus"))
}

func TestCompany_Location_FallsBackToUTC(t *testing.T) {
	c, _ := NewCompany("lakeside", "Lakeside Movers")
	c.Timezone = "bogus"
	assert.Equal(t, time.UTC, c.Location())
}

func TestCompany_Rates(t *testing.T) {
	c, _ := NewCompany("lakeside", "Lakeside Movers")

	require.NoError(t, c.SetDefaultRates(decimal.NewFromInt(55), decimal.Zero))
	assert.Error(t, c.SetDefaultRates(decimal.Zero, decimal.Zero))
	assert.Error(t, c.SetDefaultRates(decimal.NewFromInt(55), decimal.NewFromInt(-1)))
}

func TestCompany_Suspend(t *testing.T) {
	c, _ := NewCompany("lakeside", "Lakeside Movers")

	require.NoError(t, c.Suspend())
	assert.False(t, c.IsActive())
	assert.Error(t, c.Suspend())
	require.NoError(t, c.Reactivate())
	assert.Error(t, c.Reactivate())
}

func TestNewReferrer(t *testing.T) {
	companyID := uuid.New()

	r, err := NewReferrer(companyID, "Oak Realty", " oak2026 ", decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.Equal(t, "OAK2026", r.ReferralCode)
	assert.True(t, r.IsActive())
	assert.Equal(t, "60", r.CommissionOn(decimal.NewFromInt(1200)).String())

	_, err = NewReferrer(companyID, "Oak Realty", "no", decimal.NewFromInt(5))
	assert.Error(t, err)

	_, err = NewReferrer(companyID, "Oak Realty", "OAK2026", decimal.NewFromInt(51))
	assert.Error(t, err)
}

func TestReferrer_Status(t *testing.T) {
	r, _ := NewReferrer(uuid.New(), "Oak Realty", "OAK2026", decimal.NewFromInt(5))

	require.NoError(t, r.Deactivate())
	assert.False(t, r.IsActive())
	assert.Error(t, r.Deactivate())
	require.NoError(t, r.Activate())
}
