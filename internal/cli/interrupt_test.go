package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestNewInterruptHandler(t *testing.T) {
	tests := []struct {
		writer io.Writer
		name   string
	}{
		{
			name:   "with custom writer",
			writer: &bytes.Buffer{},
		},
		{
			name:   "with nil writer",
			writer: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewInterruptHandler(tt.writer)
			assert.NotNil(t, handler)
			assert.NotNil(t, handler.writer)
			assert.False(t, handler.interrupted)
		})
	}
}

func TestInterrupt_CancelsOpenPromptOnly(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)

	root := handler.HandleInterrupts(context.Background())
	promptCtx, release := handler.PromptContext(root)
	defer release()

	handler.interrupt()

	select {
	case <-promptCtx.Done():
	default:
		t.Fatal("prompt context should be canceled")
	}
	assert.NoError(t, root.Err(), "session must survive a prompt interrupt")
	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}

func TestInterrupt_WithoutPromptEndsSession(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)

	root := handler.HandleInterrupts(context.Background())
	_, release := handler.PromptContext(root)
	release()

	handler.interrupt()
	handler.interrupt()

	assert.ErrorIs(t, root.Err(), context.Canceled)
	assert.True(t, handler.WasInterrupted())
	assert.Equal(t, 1, strings.Count(output.String(), "Calculator interrupted!"),
		"interrupt message should only be shown once")
	assert.Contains(t, output.String(), "Goodbye!")
}

func TestPrompter_InterruptReturnsToMenu(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	handler := NewInterruptHandler(&syncBuffer{})
	root := handler.HandleInterrupts(context.Background())
	p := NewPrompter(pr, &syncBuffer{}).WithInterrupts(handler)

	errCh := make(chan error, 1)
	go func() {
		_, err := p.Line(root, "Value")
		errCh <- err
	}()

	// Wait for the prompt to register before interrupting.
	require.Eventually(t, func() bool {
		handler.mu.Lock()
		defer handler.mu.Unlock()
		return handler.promptCancel != nil
	}, time.Second, 5*time.Millisecond)
	handler.interrupt()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrInputCancelled)
	case <-time.After(time.Second):
		t.Fatal("prompt was not canceled")
	}
	assert.NoError(t, root.Err())
}
