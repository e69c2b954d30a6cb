package theme

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Custom theme color names
const (
	ColorNameSurface        fyne.ThemeColorName = "surface"
	ColorNameSurfaceVariant fyne.ThemeColorName = "surfaceVariant"
	ColorNameToolbar        fyne.ThemeColorName = "toolbar"
	ColorNameDivider        fyne.ThemeColorName = "divider"

	// Timeline
	ColorNameTrackBand   fyne.ThemeColorName = "trackBand"
	ColorNameTrackLocked fyne.ThemeColorName = "trackLocked"
	ColorNameCollision   fyne.ThemeColorName = "collision"
	ColorNameOverflow    fyne.ThemeColorName = "overflow"
	ColorNamePlayhead    fyne.ThemeColorName = "playhead"
	ColorNameSnapGuide   fyne.ThemeColorName = "snapGuide"

	// Text variants
	ColorNameTextSecondary fyne.ThemeColorName = "textSecondary"
	ColorNameTextHint      fyne.ThemeColorName = "textHint"
)

// Custom size names
const (
	SizeNameTrackHeaderWidth fyne.ThemeSizeName = "trackHeaderWidth"
	SizeNameItemRadius       fyne.ThemeSizeName = "itemRadius"
	SizeNameItemText         fyne.ThemeSizeName = "itemText"
)

// EditorTheme is the dark theme of the timeline editor
type EditorTheme struct{}

var _ fyne.Theme = (*EditorTheme)(nil)

// Color returns the color for the specified name
func (t *EditorTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return ColorBackground
	case theme.ColorNameForeground:
		return ColorTextPrimary
	case theme.ColorNamePrimary, theme.ColorNameButton:
		return ColorPrimary

	case theme.ColorNameInputBackground:
		return ColorInputBg
	case theme.ColorNameInputBorder, theme.ColorNameSeparator:
		return ColorDivider
	case theme.ColorNamePlaceHolder:
		return ColorTextHint
	case theme.ColorNameFocus:
		return ColorFocusBorder

	case theme.ColorNameSelection:
		return WithAlpha(ColorPrimary, 80)
	case theme.ColorNameHover:
		return ColorHover
	case theme.ColorNamePressed:
		return ColorPressed

	case theme.ColorNameDisabled:
		return ColorTextDisabled
	case theme.ColorNameDisabledButton:
		return ColorDisabledBg
	case theme.ColorNameScrollBar:
		return ColorScrollbar

	case theme.ColorNameError:
		return ColorCollision
	case theme.ColorNameWarning:
		return ColorOverflow
	case theme.ColorNameSuccess:
		return ColorKindTranslation

	case theme.ColorNameShadow:
		return color.NRGBA{R: 0, G: 0, B: 0, A: 100}
	case theme.ColorNameOverlayBackground:
		return ColorOverlay
	case theme.ColorNameMenuBackground, theme.ColorNameHeaderBackground:
		return ColorSurface
	case theme.ColorNameHyperlink:
		return ColorSecondary

	case ColorNameSurface:
		return ColorSurface
	case ColorNameSurfaceVariant:
		return ColorSurfaceVariant
	case ColorNameToolbar:
		return ColorToolbar
	case ColorNameDivider:
		return ColorDivider
	case ColorNameTrackBand:
		return ColorTrackBand
	case ColorNameTrackLocked:
		return ColorTrackLocked
	case ColorNameCollision:
		return ColorCollision
	case ColorNameOverflow:
		return ColorOverflow
	case ColorNamePlayhead:
		return ColorPlayhead
	case ColorNameSnapGuide:
		return ColorSnapGuide
	case ColorNameTextSecondary:
		return ColorTextSecondary
	case ColorNameTextHint:
		return ColorTextHint

	default:
		// Fall back to the stock dark theme
		return theme.DefaultTheme().Color(name, theme.VariantDark)
	}
}

// Font returns the font for the specified style
func (t *EditorTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns the icon for the specified name
func (t *EditorTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns the size for the specified name
func (t *EditorTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 8
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameText:
		return 13
	case theme.SizeNameCaptionText:
		return 11
	case theme.SizeNameScrollBar:
		return 10
	case theme.SizeNameScrollBarSmall:
		return 4
	case theme.SizeNameSeparatorThickness, theme.SizeNameInputBorder:
		return 1
	case theme.SizeNameInputRadius:
		return 6

	case SizeNameTrackHeaderWidth:
		return 160
	case SizeNameItemRadius:
		return 4
	case SizeNameItemText:
		return 11

	default:
		return theme.DefaultTheme().Size(name)
	}
}
