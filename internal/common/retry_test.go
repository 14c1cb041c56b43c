package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithRetry(t *testing.T) {
	errBusy := errors.New("file busy")
	opts := RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond}

	tests := []struct {
		wantErr   error
		failures  int
		name      string
		permanent bool
		wantCalls int
	}{
		{name: "first try", failures: 0, wantCalls: 1},
		{name: "recovers", failures: 2, wantCalls: 3},
		{name: "exhausted", failures: 5, wantCalls: 3, wantErr: ErrMaxRetries},
		{name: "permanent", failures: 5, permanent: true, wantCalls: 1, wantErr: errBusy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithRetry(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					if tt.permanent {
						return Permanent(errBusy)
					}
					return errBusy
				}
				return nil
			}, opts)

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWithRetry_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, func() error { return errors.New("busy") }, RetryOptions{InitialDelay: time.Hour})
	assert.ErrorIs(t, err, context.Canceled)
}
