package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/require"
)

func TestCustomThemeFont(t *testing.T) {
	medium := fyne.NewStaticResource("medium.ttf", []byte{1})
	bold := fyne.NewStaticResource("bold.ttf", []byte{2})

	t.Run("uses custom resources", func(t *testing.T) {
		th := NewCustomTheme(medium, bold)
		require.Equal(t, medium, th.Font(fyne.TextStyle{}))
		require.Equal(t, bold, th.Font(fyne.TextStyle{Bold: true}))
	})

	t.Run("missing bold falls back to medium", func(t *testing.T) {
		th := NewCustomTheme(medium, nil)
		require.Equal(t, medium, th.Font(fyne.TextStyle{Bold: true}))
	})

	t.Run("no resources fall back to the base theme", func(t *testing.T) {
		th := NewCustomTheme(nil, nil)
		base := theme.DefaultTheme()
		require.Equal(t, base.Font(fyne.TextStyle{}), th.Font(fyne.TextStyle{}))
		require.Equal(t, base.Font(fyne.TextStyle{Bold: true}), th.Font(fyne.TextStyle{Bold: true}))
	})
}
