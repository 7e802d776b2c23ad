package dashboard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"seopilot/internal/domain"
)

func TestSelection_Toggle(t *testing.T) {
	sel := NewSelection()

	sel.Toggle("c1")
	assert.True(t, sel.Has("c1"))

	sel.Toggle("c1")
	assert.False(t, sel.Has("c1"))
	assert.Empty(t, sel.IDs())
}

func TestSelection_Clear(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("c1")
	sel.Toggle("c2")

	sel.Clear()
	assert.Empty(t, sel.IDs())
}

// Select-all is scoped to the filtered list: with 10 connections but a
// filter leaving 3 visible, select-all picks exactly those 3.
func TestSelection_SelectAllIsFilterScoped(t *testing.T) {
	snapshot := make([]domain.Connection, 10)
	for i := range snapshot {
		platform := domain.PlatformWordPress
		if i < 3 {
			platform = domain.PlatformShopify
		}
		snapshot[i] = named(fmt.Sprintf("c%d", i), "", fmt.Sprintf("site%d.example", i), platform)
	}

	visible := Apply(snapshot, Filters{Platform: string(domain.PlatformShopify)})
	assert.Len(t, visible, 3)

	sel := NewSelection()
	sel.SelectAll(visible)
	assert.Equal(t, []string{"c0", "c1", "c2"}, sel.IDs())
}

func TestSelection_SelectAllTwiceClears(t *testing.T) {
	visible := []domain.Connection{
		named("c1", "", "a.example", domain.PlatformShopify),
		named("c2", "", "b.example", domain.PlatformShopify),
	}

	sel := NewSelection()
	sel.SelectAll(visible)
	assert.Len(t, sel.IDs(), 2)

	sel.SelectAll(visible)
	assert.Empty(t, sel.IDs())
}

// A partial selection of the same size as the visible list still counts as
// "everything selected" for the toggle; select-all then clears.
func TestSelection_SelectAllReplacesPartialSelection(t *testing.T) {
	visible := []domain.Connection{
		named("c1", "", "a.example", domain.PlatformShopify),
		named("c2", "", "b.example", domain.PlatformShopify),
		named("c3", "", "c.example", domain.PlatformShopify),
	}

	sel := NewSelection()
	sel.Toggle("c1")
	sel.SelectAll(visible)
	assert.Equal(t, []string{"c1", "c2", "c3"}, sel.IDs())
}

func TestSelection_CloneIsIndependent(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("c1")

	clone := sel.Clone()
	clone.Toggle("c2")

	assert.False(t, sel.Has("c2"))
	assert.True(t, clone.Has("c1"))
}
