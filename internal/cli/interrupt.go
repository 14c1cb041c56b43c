package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler turns Ctrl+C into cancellation. While a prompt is open the
// interrupt cancels only that prompt, unwinding to the nearest menu; outside
// a prompt it cancels the whole session.
type InterruptHandler struct {
	writer       io.Writer
	cancelFunc   context.CancelFunc
	promptCancel context.CancelFunc
	interrupted  bool
	mu           sync.Mutex
}

// NewInterruptHandler creates a new interrupt handler.
func NewInterruptHandler(writer io.Writer) *InterruptHandler {
	if writer == nil {
		writer = os.Stdout
	}
	return &InterruptHandler{
		writer: writer,
	}
}

// HandleInterrupts sets up signal handling and returns a context that is
// canceled when the session is interrupted.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	h.mu.Lock()
	h.cancelFunc = cancel
	h.mu.Unlock()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		for {
			select {
			case <-sigChan:
				h.interrupt()
			case <-ctx.Done():
				return
			}
		}
	}()

	return ctx
}

// PromptContext derives a context for one prompt. The returned release
// function must be called once the prompt has been answered.
func (h *InterruptHandler) PromptContext(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	h.mu.Lock()
	h.promptCancel = cancel
	h.mu.Unlock()

	return ctx, func() {
		h.mu.Lock()
		h.promptCancel = nil
		h.mu.Unlock()
		cancel()
	}
}

func (h *InterruptHandler) interrupt() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.promptCancel != nil {
		h.promptCancel()
		h.promptCancel = nil
		return
	}

	if !h.interrupted {
		h.interrupted = true
		h.showInterruptMessage()
	}
	if h.cancelFunc != nil {
		h.cancelFunc()
	}
}

// showInterruptMessage displays a friendly interrupt message.
func (h *InterruptHandler) showInterruptMessage() {
	msg := "\n\n" + FormatWarning("Calculator interrupted!") +
		"\n" + FormatInfo("History and favorites are saved after every change.") +
		"\n" + FormatInfo("Goodbye! "+CalcIcon) + "\n"

	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		// Best effort - we're shutting down anyway
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}

// WasInterrupted returns true if the session was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
