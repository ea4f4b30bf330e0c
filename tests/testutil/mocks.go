package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/kitabayar/backend/internal/domain/billing"
	"github.com/kitabayar/backend/internal/domain/identity"
	"github.com/kitabayar/backend/internal/domain/payment"
	"github.com/kitabayar/backend/internal/domain/resident"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// MockResidentRepository is a mock implementation of resident.Repository
type MockResidentRepository struct {
	mock.Mock
}

func (m *MockResidentRepository) Create(ctx context.Context, r *resident.Resident) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockResidentRepository) Update(ctx context.Context, r *resident.Resident) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockResidentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockResidentRepository) FindByID(ctx context.Context, id uuid.UUID) (*resident.Resident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resident.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*resident.Resident, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resident.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindAll(ctx context.Context, filter resident.Filter) ([]*resident.Resident, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*resident.Resident), args.Get(1).(int64), args.Error(2)
}

func (m *MockResidentRepository) FindActive(ctx context.Context) ([]*resident.Resident, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*resident.Resident), args.Error(1)
}

func (m *MockResidentRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository is a mock implementation of billing.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *billing.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *billing.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, activeOnly bool) ([]*billing.Category, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]*billing.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockBillTypeRepository is a mock implementation of billing.BillTypeRepository
type MockBillTypeRepository struct {
	mock.Mock
}

func (m *MockBillTypeRepository) Create(ctx context.Context, bt *billing.BillType) error {
	return m.Called(ctx, bt).Error(0)
}

func (m *MockBillTypeRepository) Update(ctx context.Context, bt *billing.BillType) error {
	return m.Called(ctx, bt).Error(0)
}

func (m *MockBillTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBillTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.BillType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.BillType), args.Error(1)
}

func (m *MockBillTypeRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]*billing.BillType, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]*billing.BillType), args.Error(1)
}

func (m *MockBillTypeRepository) FindAll(ctx context.Context, activeOnly bool) ([]*billing.BillType, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]*billing.BillType), args.Error(1)
}

func (m *MockBillTypeRepository) ExistsByName(ctx context.Context, categoryID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, categoryID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockPeriodRepository is a mock implementation of billing.PeriodRepository
type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) Create(ctx context.Context, p *billing.Period) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPeriodRepository) Update(ctx context.Context, p *billing.Period) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPeriodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Period, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Period), args.Error(1)
}

func (m *MockPeriodRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]*billing.Period, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]*billing.Period), args.Error(1)
}

func (m *MockPeriodRepository) FindAll(ctx context.Context, activeOnly bool) ([]*billing.Period, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]*billing.Period), args.Error(1)
}

func (m *MockPeriodRepository) ExistsByName(ctx context.Context, categoryID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, categoryID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockBillRepository is a mock implementation of billing.BillRepository
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) Create(ctx context.Context, b *billing.Bill) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBillRepository) CreateBatch(ctx context.Context, bills []*billing.Bill) (int, error) {
	args := m.Called(ctx, bills)
	return args.Int(0), args.Error(1)
}

func (m *MockBillRepository) Update(ctx context.Context, b *billing.Bill) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindAll(ctx context.Context, filter billing.BillFilter) ([]*billing.Bill, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*billing.Bill), args.Get(1).(int64), args.Error(2)
}

func (m *MockBillRepository) Exists(ctx context.Context, residentID, billTypeID uuid.UUID, period string) (bool, error) {
	args := m.Called(ctx, residentID, billTypeID, period)
	return args.Bool(0), args.Error(1)
}

func (m *MockBillRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBillRepository) CountByStatus(ctx context.Context, periodID *uuid.UUID) (map[billing.BillStatus]int64, error) {
	args := m.Called(ctx, periodID)
	return args.Get(0).(map[billing.BillStatus]int64), args.Error(1)
}

// MockPaymentRepository is a mock implementation of payment.Repository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByGatewayOrderID(ctx context.Context, orderID string) (*payment.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter payment.Filter) ([]*payment.Record, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*payment.Record), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentRepository) FindCompletedByBills(ctx context.Context, billIDs []uuid.UUID) ([]*payment.Payment, error) {
	args := m.Called(ctx, billIDs)
	return args.Get(0).([]*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SumCompleted(ctx context.Context, billID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, billID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) LastReceipt(ctx context.Context, prefix string) (string, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentRepository) Stats(ctx context.Context, filter payment.Filter) (*payment.Stats, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Stats), args.Error(1)
}

// MockGateway is a mock implementation of payment.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateCheckout(ctx context.Context, req payment.CheckoutRequest) (*payment.Checkout, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Checkout), args.Error(1)
}

func (m *MockGateway) ParseNotification(ctx context.Context, body []byte) (*payment.Notification, error) {
	args := m.Called(ctx, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Notification), args.Error(1)
}

// PassthroughTx runs fn directly and counts calls
type PassthroughTx struct {
	Calls int
}

// Transaction implements shared.Transactor
func (t *PassthroughTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

var (
	_ identity.UserRepository    = (*MockUserRepository)(nil)
	_ resident.Repository        = (*MockResidentRepository)(nil)
	_ billing.CategoryRepository = (*MockCategoryRepository)(nil)
	_ billing.BillTypeRepository = (*MockBillTypeRepository)(nil)
	_ billing.PeriodRepository   = (*MockPeriodRepository)(nil)
	_ billing.BillRepository     = (*MockBillRepository)(nil)
	_ payment.Repository         = (*MockPaymentRepository)(nil)
	_ payment.Gateway            = (*MockGateway)(nil)
)
