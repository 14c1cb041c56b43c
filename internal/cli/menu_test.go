package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/calcmaster/internal/common"
)

func TestMenu_Run(t *testing.T) {
	var calls []string
	record := func(name string) Action {
		return func(context.Context) error {
			calls = append(calls, name)
			return nil
		}
	}

	menu := Menu{
		Title: "Basic Calculator",
		Items: []MenuItem{
			{Label: "Simple Calculation", Action: record("simple")},
			{Label: "Square", Action: record("square")},
		},
	}

	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("2\n1\n9\n2\n3\n"), &out)

	require.NoError(t, menu.Run(context.Background(), p))
	assert.Equal(t, []string{"square", "simple", "square"}, calls)

	s := out.String()
	assert.Contains(t, s, "Basic Calculator")
	assert.Contains(t, s, " 1. Simple Calculation")
	assert.Contains(t, s, " 3. Back")
	assert.Contains(t, s, "Please enter a number between 1 and 3.")
}

func TestMenu_ErrorsDoNotEndLoop(t *testing.T) {
	attempts := 0
	menu := Menu{
		Title:    "Main",
		BackText: "Exit",
		Items: []MenuItem{
			{Label: "Divide", Action: func(context.Context) error {
				attempts++
				switch attempts {
				case 1:
					return common.InvalidInput("cannot divide by zero")
				case 2:
					return errors.New("disk on fire")
				case 3:
					return ErrInputCancelled
				default:
					return fmt.Errorf("wrapped: %w", ErrBack)
				}
			}},
		},
	}

	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("1\n1\n1\n1\n2\n"), &out)

	require.NoError(t, menu.Run(context.Background(), p))
	assert.Equal(t, 4, attempts)

	s := out.String()
	assert.Contains(t, s, "cannot divide by zero")
	assert.Contains(t, s, "disk on fire")
	assert.Contains(t, s, "Operation cancelled.")
	assert.Contains(t, s, " 2. Exit")
}

func TestMenu_BackWordAndClosedInput(t *testing.T) {
	menu := Menu{Title: "Sub", Items: []MenuItem{{Label: "Noop", Action: func(context.Context) error { return nil }}}}

	p := NewPrompter(strings.NewReader("back\n"), &bytes.Buffer{})
	assert.NoError(t, menu.Run(context.Background(), p))

	p = NewPrompter(strings.NewReader("1\n"), &bytes.Buffer{})
	assert.ErrorIs(t, menu.Run(context.Background(), p), ErrInputClosed)
}

func TestMenu_ActionClosedInputStops(t *testing.T) {
	menu := Menu{Title: "Sub", Items: []MenuItem{{Label: "Read", Action: func(context.Context) error {
		return ErrInputClosed
	}}}}

	p := NewPrompter(strings.NewReader("1\n1\n"), &bytes.Buffer{})
	assert.ErrorIs(t, menu.Run(context.Background(), p), ErrInputClosed)
}

func TestMenu_CanceledSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	menu := Menu{Title: "Main"}
	p := NewPrompter(strings.NewReader("1\n"), &bytes.Buffer{})
	assert.ErrorIs(t, menu.Run(ctx, p), context.Canceled)
}

func TestMenu_Header(t *testing.T) {
	menu := Menu{Title: "Scientific", Header: func() string { return "Angle Mode: DEGREES" }}
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("1\n"), &out)

	require.NoError(t, menu.Run(context.Background(), p))
	assert.Contains(t, out.String(), "Angle Mode: DEGREES")
}
