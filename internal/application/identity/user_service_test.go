package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/syncworks/backend/internal/domain/company"
	"github.com/syncworks/backend/internal/domain/identity"
	"github.com/syncworks/backend/internal/domain/shared"
	"github.com/syncworks/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

type userFixture struct {
	users     *MockUserRepository
	referrers *MockReferrerRepository
	blacklist *auth.InMemoryTokenBlacklist
	publisher *recordingPublisher
	service   *UserService
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users:     new(MockUserRepository),
		referrers: new(MockReferrerRepository),
		blacklist: auth.NewInMemoryTokenBlacklist(),
		publisher: &recordingPublisher{},
	}
	f.service = NewUserService(f.users, f.referrers, f.blacklist, 7*24*time.Hour, f.publisher, zap.NewNop())
	return f
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	f := newUserFixture()

	f.users.On("ExistsByEmail", ctx, "new@example.com").Return(false, nil)
	f.users.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

	dto, err := f.service.Create(ctx, CreateUserInput{
		CompanyID:   companyID,
		Email:       "new@example.com",
		Password:    testPassword,
		DisplayName: "New Hire",
		Role:        "staff",
	})

	require.NoError(t, err)
	assert.Equal(t, companyID, dto.CompanyID)
	assert.Equal(t, "New Hire", dto.DisplayName)
	assert.Equal(t, "active", dto.Status)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, identity.EventTypeUserCreated, f.publisher.events[0].EventType())
}

func TestUserService_Create_EmailExists(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	f.users.On("ExistsByEmail", ctx, "taken@example.com").Return(true, nil)

	_, err := f.service.Create(ctx, CreateUserInput{
		CompanyID: uuid.New(),
		Email:     "taken@example.com",
		Password:  testPassword,
		Role:      "staff",
	})
	assertDomainCode(t, err, "EMAIL_EXISTS")
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Create_ReferrerUser(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	ref, err := company.NewReferrer(companyID, "Realty Partners", "REALTY1", decimal.NewFromInt(5))
	require.NoError(t, err)

	t.Run("links existing referrer", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("ExistsByEmail", ctx, "agent@example.com").Return(false, nil)
		f.referrers.On("FindByIDForCompany", ctx, companyID, ref.ID).Return(ref, nil)
		f.users.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		dto, err := f.service.Create(ctx, CreateUserInput{
			CompanyID:  companyID,
			Email:      "agent@example.com",
			Password:   testPassword,
			Role:       "referrer",
			ReferrerID: &ref.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, dto.ReferrerID)
		assert.Equal(t, ref.ID, *dto.ReferrerID)
	})

	t.Run("unknown referrer", func(t *testing.T) {
		f := newUserFixture()
		missing := uuid.New()
		f.users.On("ExistsByEmail", ctx, "agent@example.com").Return(false, nil)
		f.referrers.On("FindByIDForCompany", ctx, companyID, missing).Return(nil, shared.ErrNotFound)

		_, err := f.service.Create(ctx, CreateUserInput{
			CompanyID:  companyID,
			Email:      "agent@example.com",
			Password:   testPassword,
			Role:       "referrer",
			ReferrerID: &missing,
		})
		assertDomainCode(t, err, "REFERRER_NOT_FOUND")
	})

	t.Run("referrer role without referrer", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("ExistsByEmail", ctx, "agent@example.com").Return(false, nil)

		_, err := f.service.Create(ctx, CreateUserInput{
			CompanyID: companyID,
			Email:     "agent@example.com",
			Password:  testPassword,
			Role:      "referrer",
		})
		assertDomainCode(t, err, "REFERRER_REQUIRED")
	})
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	f := newUserFixture()
	users := []*identity.User{createTestUser(t, companyID)}

	f.users.On("FindAll", ctx, companyID, mock.MatchedBy(func(filter identity.UserFilter) bool {
		return filter.Page == 2 && filter.PageSize == 10 &&
			filter.Role != nil && *filter.Role == identity.RoleStaff &&
			filter.Status == nil
	})).Return(users, int64(11), nil)

	result, err := f.service.List(ctx, companyID, UserListFilter{Role: "staff", Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, result.Users, 1)
	assert.Equal(t, int64(11), result.Total)
	assert.Equal(t, 2, result.TotalPages)
}

func TestUserService_Update_RoleChangeRevokesSessions(t *testing.T) {
	ctx := context.Background()
	user := createTestUser(t, uuid.New())
	f := newUserFixture()

	f.users.On("FindByIDForCompany", ctx, user.CompanyID, user.ID).Return(user, nil)
	f.users.On("Update", ctx, user).Return(nil)

	role := "admin"
	name := "Dana D."
	dto, err := f.service.Update(ctx, user.CompanyID, user.ID, UpdateUserInput{Role: &role, DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, "admin", dto.Role)
	assert.Equal(t, "Dana D.", dto.DisplayName)

	revoked, err := f.blacklist.IsUserRevoked(ctx, user.ID.String(), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestUserService_Update_NameOnlyKeepsSessions(t *testing.T) {
	ctx := context.Background()
	user := createTestUser(t, uuid.New())
	f := newUserFixture()

	f.users.On("FindByIDForCompany", ctx, user.CompanyID, user.ID).Return(user, nil)
	f.users.On("Update", ctx, user).Return(nil)

	name := "Dana D."
	_, err := f.service.Update(ctx, user.CompanyID, user.ID, UpdateUserInput{DisplayName: &name})
	require.NoError(t, err)

	revoked, err := f.blacklist.IsUserRevoked(ctx, user.ID.String(), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestUserService_Deactivate(t *testing.T) {
	ctx := context.Background()
	user := createTestUser(t, uuid.New())
	f := newUserFixture()

	f.users.On("FindByIDForCompany", ctx, user.CompanyID, user.ID).Return(user, nil)
	f.users.On("Update", ctx, user).Return(nil)

	dto, err := f.service.Deactivate(ctx, user.CompanyID, user.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "deactivated", dto.Status)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, identity.EventTypeUserDeactivated, f.publisher.events[0].EventType())

	revoked, err := f.blacklist.IsUserRevoked(ctx, user.ID.String(), time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestUserService_Deactivate_Self(t *testing.T) {
	f := newUserFixture()
	id := uuid.New()

	_, err := f.service.Deactivate(context.Background(), uuid.New(), id, id)
	assertDomainCode(t, err, "CANNOT_DEACTIVATE_SELF")
}

func TestUserService_Activate_UnlocksUser(t *testing.T) {
	ctx := context.Background()
	user := createTestUser(t, uuid.New())
	user.RecordLoginFailure(1, time.Hour)
	require.True(t, user.IsLocked())
	f := newUserFixture()

	f.users.On("FindByIDForCompany", ctx, user.CompanyID, user.ID).Return(user, nil)
	f.users.On("Update", ctx, user).Return(nil)

	dto, err := f.service.Activate(ctx, user.CompanyID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", dto.Status)
	assert.Zero(t, dto.FailedAttempts)
}

func TestUserService_ResetPassword(t *testing.T) {
	ctx := context.Background()
	user := createTestUser(t, uuid.New())
	f := newUserFixture()

	f.users.On("FindByIDForCompany", ctx, user.CompanyID, user.ID).Return(user, nil)
	f.users.On("Update", ctx, user).Return(nil)

	require.NoError(t, f.service.ResetPassword(ctx, user.CompanyID, user.ID, ResetPasswordInput{Password: "Temporary99"}))
	assert.True(t, user.VerifyPassword("Temporary99"))
	assert.Empty(t, user.GetDomainEvents())
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	user := createTestUser(t, uuid.New())

	t.Run("deletes other user", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("FindByIDForCompany", ctx, user.CompanyID, user.ID).Return(user, nil)
		f.users.On("DeleteForCompany", ctx, user.CompanyID, user.ID).Return(nil)

		require.NoError(t, f.service.Delete(ctx, user.CompanyID, user.ID, uuid.New()))
		f.users.AssertExpectations(t)
	})

	t.Run("refuses self", func(t *testing.T) {
		f := newUserFixture()
		err := f.service.Delete(ctx, user.CompanyID, user.ID, user.ID)
		assertDomainCode(t, err, "CANNOT_DELETE_SELF")
	})

	t.Run("not found", func(t *testing.T) {
		f := newUserFixture()
		missing := uuid.New()
		f.users.On("FindByIDForCompany", ctx, user.CompanyID, missing).Return(nil, shared.ErrNotFound)
		err := f.service.Delete(ctx, user.CompanyID, missing, user.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
