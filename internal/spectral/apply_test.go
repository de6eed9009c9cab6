package spectral

import (
	"context"
	"fmt"
	"testing"

	"github.com/RMahshie/scanlist/internal/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		list     ScanList
		scanList string
	}{
		{"selected frequencies", ScanList{4930, 5025, 5130}, "4930,5025,5130"},
		{"empty list", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			session := new(MockSession)
			opener := new(MockOpener)
			opener.On("Open", ctx).Return(session, nil).Once()
			session.On("Call", ctx, WirelessPath, "set", map[string]string{
				"scan-list": tt.scanList,
				"numbers":   "0",
			}).Return([]map[string]string{}, nil).Once()
			session.On("Close").Return(nil).Once()

			reply, err := Apply(ctx, opener, DefaultOptions(), tt.list)
			require.NoError(t, err)
			assert.Empty(t, reply)
			session.AssertExpectations(t)
			opener.AssertExpectations(t)
		})
	}
}

func TestApplyFailureStillCloses(t *testing.T) {
	ctx := context.Background()
	session := new(MockSession)
	opener := new(MockOpener)
	opener.On("Open", ctx).Return(session, nil)
	session.On("Call", ctx, WirelessPath, "set", map[string]string{"scan-list": "4925", "numbers": "0"}).
		Return(nil, fmt.Errorf("%w: no such item", device.ErrCommunication))
	session.On("Close").Return(nil).Once()

	_, err := Apply(ctx, opener, Options{}, ScanList{4925})
	assert.ErrorIs(t, err, device.ErrCommunication)
	session.AssertExpectations(t)
}
