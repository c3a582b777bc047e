// Package overridesmock holds GoMock mocks of github.com/KirkDiggler/bt-ship-roller/internal/repositories/overrides (Repository).
// They follow mockgen's output; `go generate` replaces this file with
// the output of:
//
//	mockgen -destination=mock/mock_repository.go -package=overridesmock github.com/KirkDiggler/bt-ship-roller/internal/repositories/overrides Repository
package overridesmock

import (
	context "context"
	reflect "reflect"

	vessel "github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	gomock "go.uber.org/mock/gomock"
)

// MockRepository is a mock of Repository interface.
type MockRepository struct {
	ctrl     *gomock.Controller
	recorder *MockRepositoryMockRecorder
	isgomock struct{}
}

// MockRepositoryMockRecorder is the mock recorder for MockRepository.
type MockRepositoryMockRecorder struct {
	mock *MockRepository
}

// NewMockRepository creates a new mock instance.
func NewMockRepository(ctrl *gomock.Controller) *MockRepository {
	mock := &MockRepository{ctrl: ctrl}
	mock.recorder = &MockRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRepository) EXPECT() *MockRepositoryMockRecorder {
	return m.recorder
}

// Load mocks base method.
func (m *MockRepository) Load(ctx context.Context) (*vessel.OverrideLayer, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Load", ctx)
	ret0, _ := ret[0].(*vessel.OverrideLayer)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Load indicates an expected call of Load.
func (mr *MockRepositoryMockRecorder) Load(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Load", reflect.TypeOf((*MockRepository)(nil).Load), ctx)
}

// Save mocks base method.
func (m *MockRepository) Save(ctx context.Context, layer *vessel.OverrideLayer) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Save", ctx, layer)
	ret0, _ := ret[0].(error)
	return ret0
}

// Save indicates an expected call of Save.
func (mr *MockRepositoryMockRecorder) Save(ctx, layer any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Save", reflect.TypeOf((*MockRepository)(nil).Save), ctx, layer)
}
