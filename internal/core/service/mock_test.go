package service_test

import (
	"context"

	"github.com/niksmo/shopcart/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockCatalogStore struct {
	mock.Mock
}

func (m *MockCatalogStore) Products(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (m *MockCatalogStore) Product(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalogStore) SaveProduct(ctx context.Context, p domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockCartStore struct {
	mock.Mock
}

func (m *MockCartStore) Cart(ctx context.Context, id string) (domain.Cart, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *MockCartStore) SaveCart(ctx context.Context, c domain.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartStore) CartsWithCoupon(ctx context.Context, code string) ([]domain.Cart, error) {
	args := m.Called(ctx, code)
	cs, _ := args.Get(0).([]domain.Cart)
	return cs, args.Error(1)
}

type MockCouponStore struct {
	mock.Mock
}

func (m *MockCouponStore) Coupons(ctx context.Context) ([]domain.Coupon, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]domain.Coupon)
	return cs, args.Error(1)
}

func (m *MockCouponStore) AddCoupon(ctx context.Context, c domain.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCouponStore) RemoveCoupon(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Publish(ctx context.Context, n domain.Notification) {
	m.Called(ctx, n)
}

type MockEventsProducer struct {
	mock.Mock
}

func (m *MockEventsProducer) ProduceCatalogEvent(ctx context.Context, evt domain.CatalogEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventsProducer) ProduceCouponEvent(ctx context.Context, evt domain.CouponEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}
