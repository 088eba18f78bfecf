// version.go — PHP language versions understood by the AST core.
//
// A Tree is built against exactly one PHPVersion. The version decides which
// node kinds exist at all (enums arrived in 8.1, match in 8.0) and which
// structural properties a kind carries (attribute groups were added to most
// declarations in 8.0). The registry in property.go consults the version on
// every lookup; everything else treats it as an opaque ordered tag.
package pdt

// PHPVersion identifies the grammar level a tree was produced for.
// Values are ordered: a larger value understands everything a smaller
// one does.
type PHPVersion int

const (
	PHP5 PHPVersion = iota
	PHP7
	PHP74
	PHP80
	PHP81
	PHP82
)

// Version is the library version reported by the CLI.
const Version = "0.3.0"

func (v PHPVersion) String() string {
	switch v {
	case PHP5:
		return "php5"
	case PHP7:
		return "php7"
	case PHP74:
		return "php7.4"
	case PHP80:
		return "php8.0"
	case PHP81:
		return "php8.1"
	case PHP82:
		return "php8.2"
	default:
		return "php?"
	}
}
