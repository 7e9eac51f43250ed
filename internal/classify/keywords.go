package classify

// Type is the closed set of incident categories.
type Type string

const (
	TypeBanditAttack   Type = "bandit_attack"
	TypeFulaniHerdsmen Type = "fulani_herdsmen"
	TypeBokoHaram      Type = "boko_haram"
	TypeISWAP          Type = "iswap"
	TypeCommunalClash  Type = "communal_clash"
	TypeKidnapping     Type = "kidnapping"
	TypeTerrorAttack   Type = "terror_attack"
	TypeUnknown        Type = "unknown"
)

type typeEntry struct {
	Type     Type
	Keywords []string
}

// incidentTypes is checked in order and the first type with any keyword
// present wins: a story matching both bandit and Boko Haram vocabulary
// classifies as the earlier entry. Reordering changes observable output.
var incidentTypes = []typeEntry{
	{TypeBanditAttack, []string{
		"bandit", "bandits", "banditry", "bandit attack", "armed bandits",
	}},
	{TypeFulaniHerdsmen, []string{
		"fulani", "fulani herdsmen", "herdsmen", "herdsman", "herder", "cattle herder",
	}},
	{TypeBokoHaram, []string{
		"boko haram", "bokoharam", "boko-haram",
	}},
	{TypeISWAP, []string{
		"iswap", "islamic state west africa", "islamic state west africa province",
	}},
	{TypeCommunalClash, []string{
		"communal clash", "communal violence", "ethnic clash", "tribal clash",
	}},
	{TypeKidnapping, []string{
		"kidnap", "kidnapping", "abduct", "abduction", "hostage",
	}},
	{TypeTerrorAttack, []string{
		"terror", "terrorist", "terrorism", "terror attack", "terrorist attack",
	}},
}

var christianKeywords = []string{
	"christian", "christians", "church", "churches", "pastor", "priest", "christianity",
}

var muslimKeywords = []string{
	"muslim", "muslims", "mosque", "mosques", "islam", "islamic", "imam",
}

var churchKeywords = []string{
	"church", "churches", "church building", "worship center", "cathedral", "chapel",
}

var mosqueKeywords = []string{
	"mosque", "mosques", "mosque building", "islamic center",
}

var destructionKeywords = []string{
	"burnt", "burned", "destroyed", "razed", "attacked", "damaged",
}
