package spectral

import (
	"context"

	"github.com/RMahshie/scanlist/internal/device"
	"github.com/stretchr/testify/mock"
)

// MockSession implements device.Session for testing
type MockSession struct {
	mock.Mock
}

func (m *MockSession) Call(ctx context.Context, path, command string, params map[string]string) ([]map[string]string, error) {
	args := m.Called(ctx, path, command, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]string), args.Error(1)
}

func (m *MockSession) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockOpener implements device.Opener for testing
type MockOpener struct {
	mock.Mock
}

func (m *MockOpener) Open(ctx context.Context) (device.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(device.Session), args.Error(1)
}

func rangeIs(r string) interface{} {
	return mock.MatchedBy(func(params map[string]string) bool {
		return params["range"] == r
	})
}
