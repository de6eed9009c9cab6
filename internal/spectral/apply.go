package spectral

import (
	"context"
	"fmt"

	"github.com/RMahshie/scanlist/internal/device"
)

// Apply writes list to the interface's scan-list in a single set command and
// returns the raw reply. An empty list is sent as an empty value.
func Apply(ctx context.Context, opener device.Opener, opts Options, list ScanList) ([]map[string]string, error) {
	opts = opts.withDefaults()

	session, err := opener.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	reply, err := session.Call(ctx, WirelessPath, "set", map[string]string{
		"scan-list": list.String(),
		"numbers":   opts.Interface,
	})
	if err != nil {
		return nil, fmt.Errorf("apply scan-list: %w", err)
	}
	return reply, nil
}
