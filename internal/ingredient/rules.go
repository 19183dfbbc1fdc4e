package ingredient

// ruleKind records why a rewrite exists. Every kind is applied the same
// way, as a global literal substring replacement; the kind only documents
// the table.
type ruleKind int

const (
	kindApostrophe ruleKind = iota
	kindPrefix
	kindSuffix
	kindSynonym
	kindAccent
)

type rule struct {
	kind        ruleKind
	pattern     string
	replacement string
}

// rules is the fixed rewrite table, applied in declared order to
// lowercased input. The order is load-bearing: synonym folding must see
// apostrophes already normalized and quantity prefixes already stripped,
// and accent folding runs last so folded output sorts as plain ASCII.
// Note the asymmetric whitespace in the patterns ("chips de " carries its
// trailing space, "morceaux de" does not); Normalize trims afterwards.
var rules = []rule{
	{kindApostrophe, "’", "'"},

	{kindPrefix, "chips de ", ""},
	{kindPrefix, "chips d'", ""},
	{kindSuffix, " grillé", ""},
	{kindSuffix, " râpée", ""},
	{kindPrefix, "écorce d'", ""},
	{kindPrefix, "écorce de", ""},
	{kindPrefix, "écorces d'", ""},
	{kindPrefix, "écorces de", ""},
	{kindPrefix, "tranches d'", ""},
	{kindPrefix, "tranches de", ""},
	{kindPrefix, "morceaux d'", ""},
	{kindPrefix, "morceaux de", ""},

	{kindSynonym, "menthe poivrée", "menthe"},
	{kindSynonym, "menthe verte", "menthe"},
	{kindSynonym, "poivre noir", "poivre"},
	{kindSynonym, "poivre blanc", "poivre"},
	{kindSynonym, "poivre rose", "poivre"},
	{kindSynonym, "citron caviar", "citron"},
	{kindSynonym, "citron vert", "citron"},
	{kindSynonym, "clous de girofle", "clou de girofle"},
	{kindSynonym, "figue de barbarie", "figue"},

	{kindAccent, "é", "e"},
	{kindAccent, "è", "e"},
	{kindAccent, "à", "a"},
	{kindAccent, "â", "a"},
	{kindAccent, "ê", "e"},
	{kindAccent, "î", "i"},
	{kindAccent, "ô", "o"},
	{kindAccent, "û", "u"},
	{kindAccent, "ç", "c"},
}
