package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/resilio/internal/ui/theme"
)

// MascotVariant selects which plant to draw.
type MascotVariant int

const (
	MascotSeed     MascotVariant = iota // nothing completed yet
	MascotSprout                        // some sections completed
	MascotBlooming                      // every section completed
)

const mascotSeed = `
      
   .  
 ─────`

const mascotSprout = `
  \|/ 
   |  
 ─────`

const mascotBlooming = `  ✿ ✿ 
  \|/ 
   |  
 ─────`

// VariantFor picks the plant for done out of total sections.
func VariantFor(done, total int) MascotVariant {
	switch {
	case total > 0 && done >= total:
		return MascotBlooming
	case done > 0:
		return MascotSprout
	}
	return MascotSeed
}

// RenderMascot returns the mascot art for the variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotSeed, theme.TextDim
	switch v {
	case MascotSprout:
		art, fg = mascotSprout, theme.Success
	case MascotBlooming:
		art, fg = mascotBlooming, theme.Highlight
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
