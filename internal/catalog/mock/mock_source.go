// Package catalogmock holds GoMock mocks of github.com/KirkDiggler/bt-ship-roller/internal/catalog (LayerSource).
// They follow mockgen's output; `go generate` replaces this file with
// the output of:
//
//	mockgen -destination=mock/mock_source.go -package=catalogmock github.com/KirkDiggler/bt-ship-roller/internal/catalog LayerSource
package catalogmock

import (
	context "context"
	reflect "reflect"

	vessel "github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	gomock "go.uber.org/mock/gomock"
)

// MockLayerSource is a mock of LayerSource interface.
type MockLayerSource struct {
	ctrl     *gomock.Controller
	recorder *MockLayerSourceMockRecorder
	isgomock struct{}
}

// MockLayerSourceMockRecorder is the mock recorder for MockLayerSource.
type MockLayerSourceMockRecorder struct {
	mock *MockLayerSource
}

// NewMockLayerSource creates a new mock instance.
func NewMockLayerSource(ctrl *gomock.Controller) *MockLayerSource {
	mock := &MockLayerSource{ctrl: ctrl}
	mock.recorder = &MockLayerSourceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockLayerSource) EXPECT() *MockLayerSourceMockRecorder {
	return m.recorder
}

// Load mocks base method.
func (m *MockLayerSource) Load(ctx context.Context) (*vessel.OverrideLayer, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Load", ctx)
	ret0, _ := ret[0].(*vessel.OverrideLayer)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Load indicates an expected call of Load.
func (mr *MockLayerSourceMockRecorder) Load(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Load", reflect.TypeOf((*MockLayerSource)(nil).Load), ctx)
}
