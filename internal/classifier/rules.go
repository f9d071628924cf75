package classifier

import (
	"strings"

	"github.com/jakoblorz/hyva-compat/internal/models"
)

const (
	// FrontendSegment marks customer-facing presentation assets.
	FrontendSegment = "view/frontend"

	// LayoutSegment marks frontend layout handles.
	LayoutSegment = "view/frontend/layout"

	TemplateExt = ".phtml"
	ScriptExt   = ".js"
	MarkupExt   = ".xml"

	// MarkerPrefix starts the name of layout files written for the
	// compatibility layer, e.g. hyva_default.xml.
	MarkerPrefix = "hyva_"

	// ThemingLibrary anywhere in a path means the module ships styles for
	// the compatibility layer's CSS framework.
	ThemingLibrary = "tailwind"
)

// Rule assigns files to a category. name is the base name, rel the slash
// separated path used for segment checks.
type Rule struct {
	Category models.Category
	Match    func(name, rel string) bool
}

// Rules are evaluated independently; a file may match several.
var Rules = []Rule{
	{
		Category: models.CategoryTemplate,
		Match: func(name, rel string) bool {
			return strings.HasSuffix(name, TemplateExt) && strings.Contains(rel, FrontendSegment+"/")
		},
	},
	{
		Category: models.CategoryScript,
		Match: func(name, rel string) bool {
			return strings.HasSuffix(name, ScriptExt) && strings.Contains(rel, FrontendSegment+"/")
		},
	},
	{
		Category: models.CategoryLayout,
		Match: func(name, rel string) bool {
			return strings.HasSuffix(name, MarkupExt) && strings.Contains(rel, LayoutSegment)
		},
	},
}

// IsCompatibilityMarker reports whether a file shows the module already
// supports the compatibility layer.
func IsCompatibilityMarker(name, rel string) bool {
	if strings.HasPrefix(name, MarkerPrefix) && strings.HasSuffix(name, MarkupExt) {
		return true
	}
	return strings.Contains(rel, ThemingLibrary)
}

// IsFrontend reports whether rel lies below a frontend view directory.
func IsFrontend(rel string) bool {
	return strings.Contains(rel, FrontendSegment)
}
