package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/calcmaster/internal/common"
)

// Action runs one menu entry.
type Action func(ctx context.Context) error

// MenuItem binds a label to its action. The position in Menu.Items is the
// option number shown to the user.
type MenuItem struct {
	Action Action
	Label  string
}

// Menu is a dispatch table rendered as a numbered list with a trailing
// "Back" entry.
type Menu struct {
	// Header, when set, is rendered above the items on every pass.
	Header   func() string
	Title    string
	BackText string
	Items    []MenuItem
}

// Run shows the menu until the user goes back. Errors from actions are
// reported and the menu is shown again; only a closed input or a canceled
// session end the loop.
func (m Menu) Run(ctx context.Context, p *Prompter) error {
	backText := m.BackText
	if backText == "" {
		backText = "Back"
	}
	back := len(m.Items) + 1

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.Println(m.render(backText))

		choice, err := p.Choice(ctx, back)
		switch {
		case err == nil:
		case errors.Is(err, ErrBack), errors.Is(err, ErrInputCancelled):
			return ctx.Err()
		default:
			return err
		}

		if choice == back {
			return nil
		}

		item := m.Items[choice-1]
		if err := item.Action(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if stop := m.report(p, item.Label, err); stop != nil {
				return stop
			}
		}
	}
}

func (m Menu) render(backText string) string {
	var b strings.Builder
	if m.Header != nil {
		b.WriteString(m.Header())
		b.WriteString("\n\n")
	}
	for i, item := range m.Items {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, item.Label)
	}
	fmt.Fprintf(&b, "%2d. %s", len(m.Items)+1, backText)
	return RenderBox(FormatTitle(m.Title), b.String())
}

// report prints an action failure and decides whether the loop must stop.
func (m Menu) report(p *Prompter, label string, err error) error {
	switch {
	case errors.Is(err, ErrBack):
		return nil
	case errors.Is(err, ErrInputCancelled):
		p.Println(FormatWarning("Operation cancelled."))
		return nil
	case errors.Is(err, ErrInputClosed):
		return err
	case common.IsRecoverable(err):
		p.Error("%v", err)
		return nil
	default:
		common.LogError(err, "Menu action failed", common.Fields{"action": label})
		p.Error("%v", err)
		return nil
	}
}
