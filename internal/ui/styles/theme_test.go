// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThemeFor(t *testing.T) {
	assert.True(t, ThemeFor("dark").IsDark)
	assert.True(t, ThemeFor(" DARK ").IsDark)
	assert.False(t, ThemeFor("light").IsDark)
	assert.NotNil(t, ThemeFor("auto"))
	assert.NotNil(t, ThemeFor("bogus"))
}

func TestThemeStylesRender(t *testing.T) {
	theme := ThemeFor("dark")

	for name, style := range map[string]func(...string) string{
		"Header":          theme.Header.Render,
		"UserBubble":      theme.UserBubble.Render,
		"AssistantBubble": theme.AssistantBubble.Render,
		"PendingBubble":   theme.PendingBubble.Render,
		"NoticeBox":       theme.NoticeBox.Render,
		"DropZone":        theme.DropZone.Render,
		"DropZoneHover":   theme.DropZoneHover.Render,
		"StatusBar":       theme.StatusBar.Render,
	} {
		assert.Contains(t, style("test"), "test", name)
	}
}

func TestStatusStyle(t *testing.T) {
	theme := ThemeFor("dark")

	for _, s := range []Status{StatusIdle, StatusBusy, StatusReady, StatusError} {
		assert.Contains(t, theme.StatusStyle(s).Render("label"), "label")
	}
	assert.Equal(t, theme.StatusIdle.Render("x"), theme.StatusStyle(Status(99)).Render("x"))
}

func TestRenderHelpersCarryIndicators(t *testing.T) {
	assert.True(t, strings.Contains(RenderError("boom"), StatusIndicators.Error))
	assert.True(t, strings.Contains(RenderInfo("fyi"), StatusIndicators.Info))
}
