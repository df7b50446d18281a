package recurring

import "strings"

// CardType describes a card brand by its Adyen variant.
type CardType struct {
	Code    string
	CodeAlt string
	Name    string
}

// cardTypes is keyed by the Adyen variant (the "alt" code).
var cardTypes = map[string]CardType{
	"amex":              {Code: "AE", CodeAlt: "amex", Name: "American Express"},
	"visa":              {Code: "VI", CodeAlt: "visa", Name: "Visa"},
	"mc":                {Code: "MC", CodeAlt: "mc", Name: "MasterCard"},
	"discover":          {Code: "DI", CodeAlt: "discover", Name: "Discover"},
	"diners":            {Code: "DN", CodeAlt: "diners", Name: "Diners Club"},
	"maestro":           {Code: "MI", CodeAlt: "maestro", Name: "Maestro International"},
	"jcb":               {Code: "JCB", CodeAlt: "jcb", Name: "JCB"},
	"cup":               {Code: "UN", CodeAlt: "cup", Name: "UnionPay"},
	"cartebancaire":     {Code: "CB", CodeAlt: "cartebancaire", Name: "Carte Bancaire"},
	"bcmc":              {Code: "BCMC", CodeAlt: "bcmc", Name: "Bancontact Card"},
	"elo":               {Code: "ELO", CodeAlt: "elo", Name: "Elo"},
	"hipercard":         {Code: "HIPERCARD", CodeAlt: "hipercard", Name: "Hipercard"},
	"troy":              {Code: "TROY", CodeAlt: "troy", Name: "Troy"},
	"dankort":           {Code: "DANKORT", CodeAlt: "dankort", Name: "Dankort"},
	"korean_local_card": {Code: "KCP", CodeAlt: "korean_local_card", Name: "Korean Local Card"},
	"girocard":          {Code: "GIROCARD", CodeAlt: "girocard", Name: "Girocard"},
}

// LookupCardType returns the card type registered for an Adyen variant.
func LookupCardType(variant string) (CardType, bool) {
	ct, ok := cardTypes[strings.TrimSpace(variant)]
	return ct, ok
}

// BrandName resolves the display name for a variant, falling back to the raw code.
func BrandName(variant string) string {
	if ct, ok := LookupCardType(variant); ok {
		return ct.Name
	}
	return variant
}
