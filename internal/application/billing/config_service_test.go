package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kitabayar/backend/internal/domain/billing"
	"github.com/kitabayar/backend/internal/domain/shared"
	"github.com/kitabayar/backend/tests/testutil"
)

type configMocks struct {
	categories *testutil.MockCategoryRepository
	types      *testutil.MockBillTypeRepository
	periods    *testutil.MockPeriodRepository
}

func newConfigService() (*ConfigService, configMocks) {
	m := configMocks{
		categories: new(testutil.MockCategoryRepository),
		types:      new(testutil.MockBillTypeRepository),
		periods:    new(testutil.MockPeriodRepository),
	}
	return NewConfigService(m.categories, m.types, m.periods, zap.NewNop()), m
}

func mustCategory(t *testing.T, name string) *billing.Category {
	t.Helper()
	c, err := billing.NewCategory(name, "", "#3B82F6", "")
	require.NoError(t, err)
	return c
}

func TestConfigService_CreateCategory(t *testing.T) {
	svc, m := newConfigService()
	m.categories.On("ExistsByName", mock.Anything, "Iuran Bulanan", (*uuid.UUID)(nil)).Return(false, nil)
	m.categories.On("Create", mock.Anything, mock.AnythingOfType("*billing.Category")).Return(nil)

	inactive := false
	c, err := svc.CreateCategory(context.Background(), CategoryInput{Name: " Iuran Bulanan ", Color: "#10B981", Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Iuran Bulanan", c.Name)
	assert.False(t, c.Active)
}

func TestConfigService_CreateCategory_Duplicate(t *testing.T) {
	svc, m := newConfigService()
	m.categories.On("ExistsByName", mock.Anything, "Iuran Bulanan", (*uuid.UUID)(nil)).Return(true, nil)

	_, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "Iuran Bulanan"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	m.categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConfigService_CreateCategory_InvalidColor(t *testing.T) {
	svc, _ := newConfigService()
	_, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "Kas", Color: "blue"})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INVALID_COLOR", de.Code)
}

func TestConfigService_UpdateCategory_ExcludesSelf(t *testing.T) {
	svc, m := newConfigService()
	c := mustCategory(t, "Kebersihan")
	m.categories.On("FindByID", mock.Anything, c.ID).Return(c, nil)
	m.categories.On("ExistsByName", mock.Anything, "Kebersihan", &c.ID).Return(false, nil)
	m.categories.On("Update", mock.Anything, c).Return(nil)

	got, err := svc.UpdateCategory(context.Background(), c.ID, CategoryInput{Name: "Kebersihan", Description: "Sampah"})
	require.NoError(t, err)
	assert.Equal(t, "Sampah", got.Description)
}

func TestConfigService_DeleteCategory_InUse(t *testing.T) {
	svc, m := newConfigService()
	id := uuid.New()
	inUse := shared.NewDomainError("IN_USE", "Category is referenced")
	m.categories.On("Delete", mock.Anything, id).Return(inUse)

	err := svc.DeleteCategory(context.Background(), id)
	assert.Same(t, inUse, err)
}

func TestConfigService_CreateBillType(t *testing.T) {
	svc, m := newConfigService()
	c := mustCategory(t, "Iuran")
	m.categories.On("FindByID", mock.Anything, c.ID).Return(c, nil)
	m.types.On("ExistsByName", mock.Anything, c.ID, "Keamanan", (*uuid.UUID)(nil)).Return(false, nil)
	m.types.On("Create", mock.Anything, mock.AnythingOfType("*billing.BillType")).Return(nil)

	bt, err := svc.CreateBillType(context.Background(), BillTypeInput{
		CategoryID: c.ID,
		Name:       "Keamanan",
		BaseAmount: testutil.Rupiah("50000"),
	})
	require.NoError(t, err)
	assert.Equal(t, c.ID, bt.CategoryID)
	assert.True(t, bt.BaseAmount.Equal(testutil.Rupiah("50000")))
}

func TestConfigService_CreateBillType_Rejections(t *testing.T) {
	t.Run("unknown category", func(t *testing.T) {
		svc, m := newConfigService()
		id := uuid.New()
		m.categories.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.CreateBillType(context.Background(), BillTypeInput{CategoryID: id, Name: "X", BaseAmount: testutil.Rupiah("1")})
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("non-positive base amount", func(t *testing.T) {
		svc, m := newConfigService()
		c := mustCategory(t, "Iuran")
		m.categories.On("FindByID", mock.Anything, c.ID).Return(c, nil)

		_, err := svc.CreateBillType(context.Background(), BillTypeInput{CategoryID: c.ID, Name: "X", BaseAmount: testutil.Rupiah("0")})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_AMOUNT", de.Code)
	})

	t.Run("duplicate name in category", func(t *testing.T) {
		svc, m := newConfigService()
		c := mustCategory(t, "Iuran")
		m.categories.On("FindByID", mock.Anything, c.ID).Return(c, nil)
		m.types.On("ExistsByName", mock.Anything, c.ID, "Sampah", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := svc.CreateBillType(context.Background(), BillTypeInput{CategoryID: c.ID, Name: "Sampah", BaseAmount: testutil.Rupiah("10000")})
		assert.ErrorIs(t, err, ErrBillTypeNameTaken)
	})
}

func TestConfigService_ListBillTypes_ActiveOnlyByCategory(t *testing.T) {
	svc, m := newConfigService()
	catID := uuid.New()
	a, _ := billing.NewBillType(catID, "A", "", testutil.Rupiah("1000"))
	b, _ := billing.NewBillType(catID, "B", "", testutil.Rupiah("1000"))
	b.SetActive(false)
	m.types.On("FindByCategory", mock.Anything, catID).Return([]*billing.BillType{a, b}, nil)

	items, err := svc.ListBillTypes(context.Background(), &catID, true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].Name)

	all, err := svc.ListBillTypes(context.Background(), &catID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestConfigService_CreatePeriod(t *testing.T) {
	svc, m := newConfigService()
	c := mustCategory(t, "Iuran")
	m.categories.On("FindByID", mock.Anything, c.ID).Return(c, nil)
	m.periods.On("ExistsByName", mock.Anything, c.ID, "Januari 2025", (*uuid.UUID)(nil)).Return(false, nil)
	m.periods.On("Create", mock.Anything, mock.AnythingOfType("*billing.Period")).Return(nil)

	p, err := svc.CreatePeriod(context.Background(), PeriodInput{
		CategoryID:   c.ID,
		Name:         "Januari 2025",
		StartDate:    testutil.Date(2025, time.January, 1),
		EndDate:      testutil.Date(2025, time.January, 31),
		Installments: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, p.Installments)
	assert.Equal(t, testutil.Date(2025, time.January, 31), p.DueDate)
}

func TestConfigService_CreatePeriod_InvalidRange(t *testing.T) {
	svc, m := newConfigService()
	c := mustCategory(t, "Iuran")
	m.categories.On("FindByID", mock.Anything, c.ID).Return(c, nil)

	_, err := svc.CreatePeriod(context.Background(), PeriodInput{
		CategoryID: c.ID,
		Name:       "Terbalik",
		StartDate:  testutil.Date(2025, time.February, 1),
		EndDate:    testutil.Date(2025, time.January, 1),
	})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INVALID_DATE_RANGE", de.Code)
	m.periods.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConfigService_UpdatePeriod_MovesCategory(t *testing.T) {
	svc, m := newConfigService()
	from := mustCategory(t, "Lama")
	to := mustCategory(t, "Baru")
	p, err := billing.NewPeriod(from.ID, billing.PeriodFields{
		Name:      "Q1",
		StartDate: testutil.Date(2025, time.January, 1),
		EndDate:   testutil.Date(2025, time.March, 31),
	})
	require.NoError(t, err)

	m.periods.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	m.categories.On("FindByID", mock.Anything, to.ID).Return(to, nil)
	m.periods.On("ExistsByName", mock.Anything, to.ID, "Q1", &p.ID).Return(false, nil)
	m.periods.On("Update", mock.Anything, p).Return(nil)

	got, err := svc.UpdatePeriod(context.Background(), p.ID, PeriodInput{
		CategoryID:   to.ID,
		Name:         "Q1",
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		Installments: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, to.ID, got.CategoryID)
	assert.Equal(t, 3, got.Installments)
}
