package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/calcmaster/internal/engine"
)

func TestPrompter_Line(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		input   string
		want    string
	}{
		{name: "plain answer", input: "  hello \n", want: "hello"},
		{name: "back", input: "back\n", wantErr: ErrBack},
		{name: "navigation words ignore case", input: "QUIT\n", wantErr: ErrBack},
		{name: "menu", input: "menu\n", wantErr: ErrBack},
		{name: "exit", input: "exit\n", wantErr: ErrBack},
		{name: "closed input", input: "", wantErr: ErrInputClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Line(context.Background(), "Value")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Value")
		})
	}
}

func TestPrompter_Number(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("abc\nNaN\n\n-12.5\n"), &out)

	got, err := p.Number(context.Background(), "Enter a number")
	require.NoError(t, err)
	assert.Equal(t, -12.5, got)
	assert.Equal(t, 3, strings.Count(out.String(), "Please enter a valid number"))
}

func TestPrompter_Choice(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("0\n7\ntwo\n3\n"), &out)

	got, err := p.Choice(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
	assert.Contains(t, out.String(), "Please enter a number between 1 and 5.")
}

func TestPrompter_Text(t *testing.T) {
	p := NewPrompter(strings.NewReader("\n"), &bytes.Buffer{})
	got, err := p.Text(context.Background(), "Category", "general")
	require.NoError(t, err)
	assert.Equal(t, "general", got)

	var out bytes.Buffer
	p = NewPrompter(strings.NewReader("\nTip\n"), &out)
	got, err = p.Text(context.Background(), "Name", "")
	require.NoError(t, err)
	assert.Equal(t, "Tip", got)
	assert.Contains(t, out.String(), "cannot be empty")
}

func TestPrompter_ConfirmAndSelect(t *testing.T) {
	p := NewPrompter(strings.NewReader("maybe\nY\n2\n"), &bytes.Buffer{})

	ok, err := p.Confirm(context.Background(), "Clear history?")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := p.Select(context.Background(), "Units", []string{"meter", "foot"})
	require.NoError(t, err)
	assert.Equal(t, "foot", got)

	_, err = p.Select(context.Background(), "Units", nil)
	assert.Error(t, err)
}

func TestPrompter_ShowResult(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out)

	p.ShowResult(engine.Result{
		Expression: "EMI: Loan=1000, Rate=5%, Time=1 years",
		Display:    "85.61",
		Details:    []engine.Detail{{Label: "Total Payment", Value: "1027.29"}},
	})

	s := out.String()
	assert.Contains(t, s, "EMI: Loan=1000, Rate=5%, Time=1 years = ")
	assert.Contains(t, s, "85.61")
	assert.Contains(t, s, "Total Payment:")
	assert.Contains(t, s, "1027.29")
}

func TestParseNumber(t *testing.T) {
	v, err := ParseNumber(" 1e3 ")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, v)

	for _, s := range []string{"", "1,000", "Inf", "nan", "x"} {
		_, err := ParseNumber(s)
		assert.Error(t, err, s)
	}
}
