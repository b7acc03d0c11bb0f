package catalog

import "strings"

// Kinds accepted by StyleToken.
const (
	KindOccasion        = "occasion"
	KindVibe            = "vibe"
	KindPackaging       = "packaging"
	KindContentCategory = "content"
	KindProductCategory = "product"
)

const DefaultStyle = "from-primary-400 to-primary-600"

var styles = map[string]map[string]string{
	KindOccasion: {
		"wedding":      "from-pink-400 to-rose-600",
		"baby-shower":  "from-blue-400 to-cyan-600",
		"birthday":     "from-yellow-400 to-orange-600",
		"anniversary":  "from-red-400 to-pink-600",
		"corporate":    "from-blue-400 to-indigo-600",
		"housewarming": "from-green-400 to-emerald-600",
		"festivals":    "from-purple-400 to-purple-600",
	},
	KindVibe: {
		"earthy":     "from-green-400 to-emerald-600",
		"elegant":    "from-purple-400 to-violet-600",
		"minimalist": "from-gray-400 to-slate-600",
		"festive":    "from-red-400 to-rose-600",
		"rustic":     "from-amber-400 to-orange-600",
		"modern":     "from-blue-400 to-cyan-600",
	},
	KindPackaging: {
		"cloth-wrap":    "from-purple-400 to-violet-600",
		"jute-basket":   "from-amber-400 to-orange-600",
		"wooden-box":    "from-amber-600 to-brown-600",
		"gift-box":      "from-pink-400 to-rose-600",
		"wicker-basket": "from-yellow-400 to-amber-600",
		"metal-tin":     "from-gray-400 to-slate-600",
	},
	KindContentCategory: {
		"candles":     "from-orange-400 to-red-600",
		"snacks":      "from-yellow-400 to-orange-600",
		"skincare":    "from-green-400 to-emerald-600",
		"accessories": "from-purple-400 to-violet-600",
		"beverages":   "from-blue-400 to-cyan-600",
	},
	KindProductCategory: {
		"premium":       "from-amber-400 to-amber-600",
		"festive":       "from-red-400 to-red-600",
		"corporate":     "from-blue-400 to-blue-600",
		"wellness":      "from-green-400 to-green-600",
		"gourmet":       "from-purple-400 to-purple-600",
		"baby & family": "from-pink-400 to-pink-600",
	},
}

// StyleToken returns the presentation token for key within kind.
// Unknown kinds or keys get DefaultStyle.
func StyleToken(kind, key string) string {
	if t, ok := styles[kind][strings.ToLower(strings.TrimSpace(key))]; ok {
		return t
	}
	return DefaultStyle
}
