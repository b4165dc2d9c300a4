package orders_test

import (
	"context"
	"testing"

	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/catalog"
	"github.com/01moynul/storefront-golang/internal/logger"
	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/orders"
	"github.com/01moynul/storefront-golang/internal/store/memstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func ptr[T any](v T) *T { return &v }

func money(s string) *decimal.Decimal { return ptr(decimal.RequireFromString(s)) }

type fixture struct {
	ctx     context.Context
	store   *memstore.Store
	svc     *orders.Service
	product *models.Product
	owner   *models.User
	other   *models.User
	staff   *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := memstore.New()

	cat, err := catalog.NewTaxonomyService(st).CreateCategory(ctx, models.CategoryInput{Name: ptr("Kitchen")})
	require.NoError(t, err)
	p, err := catalog.NewProductService(st).CreateProduct(ctx, models.ProductInput{
		Name: ptr("Red Mug"), CategoryID: ptr(cat.ID), Price: money("5.00"),
	})
	require.NoError(t, err)

	owner := st.AddUser(models.User{Username: "alice", IsActive: true})
	other := st.AddUser(models.User{Username: "bob", IsActive: true})
	staff := st.AddUser(models.User{Username: "admin", IsActive: true, IsStaff: true})

	return &fixture{
		ctx: ctx, store: st, svc: orders.NewService(st), product: p,
		owner: &owner, other: &other, staff: &staff,
	}
}

func (f *fixture) checkout() models.OrderInput {
	return models.OrderInput{
		FirstName:       "Alice",
		LastName:        "Smith",
		Email:           "alice@example.com",
		Phone:           "07700900000",
		Address:         "1 High Street",
		City:            "London",
		PostalCode:      "N1 1AA",
		TotalAmount:     money("12.50"),
		DeliveryCharges: money("2.50"),
		PaymentMethod:   "card",
		Items: []models.OrderItemInput{
			{ProductID: ptr(f.product.ID), Quantity: 2, Price: money("5.00"), Size: "M"},
		},
	}
}

func TestCreateOrderScenario(t *testing.T) {
	f := newFixture(t)

	o, err := f.svc.CreateOrder(f.ctx, f.owner, f.checkout())
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, o.Status)
	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, o.DeliveryCharges.Equal(decimal.RequireFromString("2.50")))
	require.NotNil(t, o.UserID)
	assert.Equal(t, f.owner.ID, *o.UserID)

	require.Len(t, o.Items, 1)
	item := o.Items[0]
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "5.00", item.Price.StringFixed(2))
	assert.Equal(t, "M", item.Size)
	assert.Equal(t, o.ID, item.OrderID)
	require.NotNil(t, item.ProductName)
	assert.Equal(t, "Red Mug", *item.ProductName)
}

func TestCreateOrderAnonymous(t *testing.T) {
	f := newFixture(t)
	o, err := f.svc.CreateOrder(f.ctx, nil, f.checkout())
	require.NoError(t, err)
	assert.Nil(t, o.UserID)

	_, err = f.svc.GetOrder(f.ctx, nil, o.ID)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t)
	in := f.checkout()
	in.Email = ""
	in.TotalAmount = nil
	in.Items[0].Quantity = 0

	_, err := f.svc.CreateOrder(f.ctx, nil, in)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "email")
	assert.Contains(t, appErr.Fields, "total_amount")
	assert.Contains(t, appErr.Fields, "items[0].quantity")
}

func TestMarkCancelledAfterDelivered(t *testing.T) {
	f := newFixture(t)
	o, err := f.svc.CreateOrder(f.ctx, f.owner, f.checkout())
	require.NoError(t, err)

	o, err = f.svc.MarkDelivered(f.ctx, f.staff, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, o.Status)

	o, err = f.svc.MarkCancelled(f.ctx, f.staff, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, o.Status)
}

func TestStatusTransitionLogging(t *testing.T) {
	f := newFixture(t)
	core, logs := observer.New(zap.InfoLevel)
	ctx := logger.WithContext(f.ctx, zap.New(core))

	o, err := f.svc.CreateOrder(ctx, f.owner, f.checkout())
	require.NoError(t, err)

	steps := []struct {
		run     func(context.Context, *models.User, int64) (*models.Order, error)
		level   zapcore.Level
		message string
	}{
		{f.svc.MarkPaid, zap.InfoLevel, "Order status changed"},
		{f.svc.MarkDelivered, zap.WarnLevel, "Order status moved outside the lifecycle"},
		{f.svc.MarkCancelled, zap.WarnLevel, "Order reopened after its lifecycle ended"},
	}
	for _, step := range steps {
		logs.TakeAll()
		_, err := step.run(ctx, f.staff, o.ID)
		require.NoError(t, err)

		entries := logs.FilterMessage(step.message).AllUntimed()
		require.Len(t, entries, 1, step.message)
		assert.Equal(t, step.level, entries[0].Level)
		assert.Equal(t, o.ID, entries[0].ContextMap()["order_id"])
	}
}

func TestStatusActionsOverwrite(t *testing.T) {
	f := newFixture(t)
	o, err := f.svc.CreateOrder(f.ctx, f.owner, f.checkout())
	require.NoError(t, err)

	actions := []struct {
		name string
		run  func(context.Context, *models.User, int64) (*models.Order, error)
		want models.OrderStatus
	}{
		{"paid", f.svc.MarkPaid, models.StatusPaid},
		{"paid again", f.svc.MarkPaid, models.StatusPaid},
		{"shipped", f.svc.MarkShipped, models.StatusShipped},
		{"back to paid", f.svc.MarkPaid, models.StatusPaid},
		{"delivered", f.svc.MarkDelivered, models.StatusDelivered},
	}
	for _, a := range actions {
		got, err := a.run(f.ctx, f.owner, o.ID)
		require.NoError(t, err, a.name)
		assert.Equal(t, a.want, got.Status, a.name)
	}
}

func TestOrderVisibility(t *testing.T) {
	f := newFixture(t)
	mine, err := f.svc.CreateOrder(f.ctx, f.owner, f.checkout())
	require.NoError(t, err)
	_, err = f.svc.CreateOrder(f.ctx, f.other, f.checkout())
	require.NoError(t, err)
	_, err = f.svc.CreateOrder(f.ctx, nil, f.checkout())
	require.NoError(t, err)

	own, err := f.svc.ListOrders(f.ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, mine.ID, own[0].ID)

	all, err := f.svc.ListOrders(f.ctx, f.staff)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = f.svc.GetOrder(f.ctx, f.other, mine.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = f.svc.MarkPaid(f.ctx, f.other, mine.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = f.svc.ListOrders(f.ctx, nil)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestUpdateOrder(t *testing.T) {
	f := newFixture(t)
	o, err := f.svc.CreateOrder(f.ctx, f.owner, f.checkout())
	require.NoError(t, err)

	shipped := models.StatusShipped
	o, err = f.svc.UpdateOrder(f.ctx, f.owner, o.ID, models.OrderPatch{City: ptr("Leeds"), PaymentID: ptr("pi_123"), Status: &shipped})
	require.NoError(t, err)
	assert.Equal(t, "Leeds", o.City)
	assert.Equal(t, "pi_123", o.PaymentID)
	assert.Equal(t, models.StatusShipped, o.Status)
	assert.Equal(t, "Alice", o.FirstName)

	bogus := models.OrderStatus("lost")
	_, err = f.svc.UpdateOrder(f.ctx, f.owner, o.ID, models.OrderPatch{Status: &bogus})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestDeleteOrder(t *testing.T) {
	f := newFixture(t)
	o, err := f.svc.CreateOrder(f.ctx, f.owner, f.checkout())
	require.NoError(t, err)

	assert.True(t, apperr.Is(f.svc.DeleteOrder(f.ctx, f.other, o.ID), apperr.KindNotFound))
	require.NoError(t, f.svc.DeleteOrder(f.ctx, f.staff, o.ID))
	_, err = f.svc.GetOrder(f.ctx, f.staff, o.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestDeletedProductKeepsItemSnapshot(t *testing.T) {
	f := newFixture(t)
	o, err := f.svc.CreateOrder(f.ctx, f.owner, f.checkout())
	require.NoError(t, err)

	require.NoError(t, catalog.NewProductService(f.store).DeleteProduct(f.ctx, f.product.ID))

	got, err := f.svc.GetOrder(f.ctx, f.owner, o.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Nil(t, got.Items[0].ProductID)
	assert.Nil(t, got.Items[0].ProductName)
	assert.Equal(t, 2, got.Items[0].Quantity)
}
