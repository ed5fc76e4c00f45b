package chess

// Well-known PGN tag names used by the codecs.
const (
	EventTag   = "Event"
	SiteTag    = "Site"
	DateTag    = "Date"
	RoundTag   = "Round"
	WhiteTag   = "White"
	BlackTag   = "Black"
	ResultTag  = "Result"
	FENTag     = "FEN"
	SetUpTag   = "SetUp"
	VariantTag = "Variant"
)

// SevenTagRoster contains the seven required PGN tags in order.
var SevenTagRoster = []string{
	EventTag,
	SiteTag,
	DateTag,
	RoundTag,
	WhiteTag,
	BlackTag,
	ResultTag,
}

// IsSevenTagRosterTag returns true if the tag is one of the seven required tags.
func IsSevenTagRosterTag(tag string) bool {
	for _, t := range SevenTagRoster {
		if t == tag {
			return true
		}
	}
	return false
}

// IsChess960Variant reports whether a Variant tag value names Chess960.
func IsChess960Variant(v string) bool {
	switch v {
	case "Chess960", "chess960", "Chess 960", "Fischerandom", "FischeRandom", "Fischer Random":
		return true
	}
	return false
}
