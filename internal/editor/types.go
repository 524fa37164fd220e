// Package editor holds the in-progress state of a cocktail recipe or garnish
// and everything that reads it: validation, pricing, catalog loading and
// submission to the bar manager API.
package editor

import "golang.org/x/exp/slices"

type IceType string

const (
	IceWithout IceType = "Without"
	IceCubed   IceType = "Cubed"
	IceCrushed IceType = "Crushed"
)

var IceTypes = []IceType{IceWithout, IceCubed, IceCrushed}

func (i IceType) Valid() bool {
	return slices.Contains(IceTypes, i)
}

// Tool is what a step does. Mixing steps use a mixing tool, every other
// step uses a finishing tool; the two sets are disjoint.
type Tool string

const (
	ToolShake    Tool = "SHAKE"
	ToolDryShake Tool = "DRY_SHAKE"
	ToolStir     Tool = "STIR"
	ToolBuild    Tool = "BUILD"
	ToolBlend    Tool = "BLEND"
	ToolMuddle   Tool = "MUDDLE"

	ToolSingleStrain Tool = "SINGLE_STRAIN"
	ToolDoubleStrain Tool = "DOUBLE_STRAIN"
	ToolFloat        Tool = "FLOAT"
	ToolTopUp        Tool = "TOP_UP"
	ToolRim          Tool = "RIM"
)

var (
	MixingTools    = []Tool{ToolShake, ToolDryShake, ToolStir, ToolBuild, ToolBlend, ToolMuddle}
	NonMixingTools = []Tool{ToolSingleStrain, ToolDoubleStrain, ToolFloat, ToolTopUp, ToolRim}
)

// DefaultTool is the tool a step gets when its mixing flag is set.
func DefaultTool(mixing bool) Tool {
	if mixing {
		return ToolShake
	}
	return ToolSingleStrain
}

// ToolsFor returns the tool set matching the mixing flag.
func ToolsFor(mixing bool) []Tool {
	if mixing {
		return MixingTools
	}
	return NonMixingTools
}

func (t Tool) AllowedFor(mixing bool) bool {
	return slices.Contains(ToolsFor(mixing), t)
}

type Unit string

const (
	UnitCL       Unit = "CL"
	UnitML       Unit = "ML"
	UnitDash     Unit = "DASH"
	UnitSplash   Unit = "SPLASH"
	UnitDrop     Unit = "DROP"
	UnitBarspoon Unit = "BARSPOON"
	UnitPiece    Unit = "PIECE"
)

var Units = []Unit{UnitCL, UnitML, UnitDash, UnitSplash, UnitDrop, UnitBarspoon, UnitPiece}

const DefaultUnit = UnitCL

func (u Unit) Valid() bool {
	return slices.Contains(Units, u)
}

// Paths of the listing views a successful submission navigates to.
const (
	CocktailListing = "/manage/cocktails"
	GarnishListing  = "/manage/garnishes"
)
