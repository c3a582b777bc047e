// Package rollermock holds GoMock mocks of github.com/KirkDiggler/bt-ship-roller/internal/orchestrators/roller (Service).
// They follow mockgen's output; `go generate` replaces this file with
// the output of:
//
//	mockgen -destination=mock/mock_service.go -package=rollermock github.com/KirkDiggler/bt-ship-roller/internal/orchestrators/roller Service
package rollermock

import (
	context "context"
	reflect "reflect"

	roller "github.com/KirkDiggler/bt-ship-roller/internal/orchestrators/roller"
	gomock "go.uber.org/mock/gomock"
)

// MockService is a mock of Service interface.
type MockService struct {
	ctrl     *gomock.Controller
	recorder *MockServiceMockRecorder
	isgomock struct{}
}

// MockServiceMockRecorder is the mock recorder for MockService.
type MockServiceMockRecorder struct {
	mock *MockService
}

// NewMockService creates a new mock instance.
func NewMockService(ctrl *gomock.Controller) *MockService {
	mock := &MockService{ctrl: ctrl}
	mock.recorder = &MockServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockService) EXPECT() *MockServiceMockRecorder {
	return m.recorder
}

// Audit mocks base method.
func (m *MockService) Audit(ctx context.Context, input *roller.AuditInput) (*roller.AuditOutput, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Audit", ctx, input)
	ret0, _ := ret[0].(*roller.AuditOutput)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Audit indicates an expected call of Audit.
func (mr *MockServiceMockRecorder) Audit(ctx, input any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Audit", reflect.TypeOf((*MockService)(nil).Audit), ctx, input)
}

// ClearRollSession mocks base method.
func (m *MockService) ClearRollSession(ctx context.Context, input *roller.ClearRollSessionInput) (*roller.ClearRollSessionOutput, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClearRollSession", ctx, input)
	ret0, _ := ret[0].(*roller.ClearRollSessionOutput)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ClearRollSession indicates an expected call of ClearRollSession.
func (mr *MockServiceMockRecorder) ClearRollSession(ctx, input any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClearRollSession", reflect.TypeOf((*MockService)(nil).ClearRollSession), ctx, input)
}

// GetRollSession mocks base method.
func (m *MockService) GetRollSession(ctx context.Context, input *roller.GetRollSessionInput) (*roller.GetRollSessionOutput, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetRollSession", ctx, input)
	ret0, _ := ret[0].(*roller.GetRollSessionOutput)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetRollSession indicates an expected call of GetRollSession.
func (mr *MockServiceMockRecorder) GetRollSession(ctx, input any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetRollSession", reflect.TypeOf((*MockService)(nil).GetRollSession), ctx, input)
}

// RollDropShips mocks base method.
func (m *MockService) RollDropShips(ctx context.Context, input *roller.RollInput) (*roller.RollOutput, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RollDropShips", ctx, input)
	ret0, _ := ret[0].(*roller.RollOutput)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RollDropShips indicates an expected call of RollDropShips.
func (mr *MockServiceMockRecorder) RollDropShips(ctx, input any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RollDropShips", reflect.TypeOf((*MockService)(nil).RollDropShips), ctx, input)
}

// RollJumpShips mocks base method.
func (m *MockService) RollJumpShips(ctx context.Context, input *roller.RollJumpShipsInput) (*roller.RollJumpShipsOutput, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RollJumpShips", ctx, input)
	ret0, _ := ret[0].(*roller.RollJumpShipsOutput)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RollJumpShips indicates an expected call of RollJumpShips.
func (mr *MockServiceMockRecorder) RollJumpShips(ctx, input any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RollJumpShips", reflect.TypeOf((*MockService)(nil).RollJumpShips), ctx, input)
}

// RollPrimitiveJumpShips mocks base method.
func (m *MockService) RollPrimitiveJumpShips(ctx context.Context, input *roller.RollInput) (*roller.RollOutput, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RollPrimitiveJumpShips", ctx, input)
	ret0, _ := ret[0].(*roller.RollOutput)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RollPrimitiveJumpShips indicates an expected call of RollPrimitiveJumpShips.
func (mr *MockServiceMockRecorder) RollPrimitiveJumpShips(ctx, input any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RollPrimitiveJumpShips", reflect.TypeOf((*MockService)(nil).RollPrimitiveJumpShips), ctx, input)
}
