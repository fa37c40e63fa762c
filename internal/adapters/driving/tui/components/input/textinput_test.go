package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/spsearch/internal/core/domain"
)

func TestNewSearchInput(t *testing.T) {
	in := NewSearchInput(styles.DefaultStyles(), "Find budget files")

	require.NotNil(t, in)
	assert.Equal(t, "", in.Value())
	assert.True(t, in.Focused())
	assert.Equal(t, "Find budget files", in.Placeholder())
}

func TestNewSearchInput_Defaults(t *testing.T) {
	in := NewSearchInput(nil, "")

	require.NotNil(t, in.styles)
	assert.Equal(t, domain.DefaultPlaceholder, in.Placeholder())
}

func TestSearchInput_Init(t *testing.T) {
	assert.NotNil(t, NewSearchInput(nil, "").Init())
}

func TestSearchInput_UpdateTypes(t *testing.T) {
	in := NewSearchInput(nil, "")

	updated, _ := in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("bu")})

	assert.Same(t, in, updated)
	assert.Equal(t, "bu", in.Value())
}

func TestSearchInput_CanSubmit(t *testing.T) {
	in := NewSearchInput(nil, "")
	assert.False(t, in.CanSubmit(), "blank query")

	in.SetValue("   ")
	assert.False(t, in.CanSubmit(), "whitespace query")

	in.SetValue("budget")
	assert.True(t, in.CanSubmit())

	in.SetLoading(true)
	assert.False(t, in.CanSubmit(), "loading")

	in.SetLoading(false)
	assert.True(t, in.CanSubmit())
}

func TestSearchInput_View(t *testing.T) {
	in := NewSearchInput(nil, "Type here")

	view := in.View()

	assert.Contains(t, view, "Search")
	assert.Contains(t, view, "Type here")
}

func TestSearchInput_SetPlaceholder(t *testing.T) {
	in := NewSearchInput(nil, "a")

	in.SetPlaceholder("b")
	assert.Equal(t, "b", in.Placeholder())

	in.SetPlaceholder("")
	assert.Equal(t, domain.DefaultPlaceholder, in.Placeholder())
}

func TestSearchInput_SetWidth(t *testing.T) {
	in := NewSearchInput(nil, "")

	in.SetWidth(100)
	assert.Equal(t, 100, in.Width())
	assert.Equal(t, 100-chromeWidth, in.textinput.Width)

	in.SetWidth(10)
	assert.Equal(t, minWidth, in.textinput.Width)
}

func TestSearchInput_FocusBlurReset(t *testing.T) {
	in := NewSearchInput(nil, "")
	in.SetValue("q")

	in.Blur()
	assert.False(t, in.Focused())

	in.Focus()
	assert.True(t, in.Focused())

	in.Reset()
	assert.Equal(t, "", in.Value())
}
