package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/types"
)

var _ service.IGroceryService = (*MockGroceryService)(nil)

// MockGroceryService is a mock implementation of the grocery service
type MockGroceryService struct {
	mock.Mock
}

func (m *MockGroceryService) list(args mock.Arguments) (*models.GroceryList, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GroceryList), args.Error(1)
}

func (m *MockGroceryService) item(args mock.Arguments) (*models.GroceryItem, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GroceryItem), args.Error(1)
}

func (m *MockGroceryService) BuildFromPlan(ctx context.Context, planID uuid.UUID) (*models.GroceryList, error) {
	return m.list(m.Called(ctx, planID))
}

func (m *MockGroceryService) GetList(ctx context.Context, id uuid.UUID) (*models.GroceryList, error) {
	return m.list(m.Called(ctx, id))
}

func (m *MockGroceryService) ListForFamily(ctx context.Context, familyID uuid.UUID) ([]models.GroceryList, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GroceryList), args.Error(1)
}

func (m *MockGroceryService) DeleteList(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGroceryService) AddItem(ctx context.Context, listID uuid.UUID, req *types.GroceryItemRequest) (*models.GroceryItem, error) {
	return m.item(m.Called(ctx, listID, req))
}

func (m *MockGroceryService) UpdateItem(ctx context.Context, itemID uuid.UUID, req *types.UpdateGroceryItemRequest) (*models.GroceryItem, error) {
	return m.item(m.Called(ctx, itemID, req))
}

func (m *MockGroceryService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return m.Called(ctx, itemID).Error(0)
}

func (m *MockGroceryService) Share(ctx context.Context, listID uuid.UUID) (*service.ShareLink, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ShareLink), args.Error(1)
}

func (m *MockGroceryService) GetShared(ctx context.Context, token string) (*models.GroceryList, error) {
	return m.list(m.Called(ctx, token))
}
