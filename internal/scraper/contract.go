package scraper

import (
	"slices"
	"strings"
)

// Contract type labels
const (
	ContractCDI        = "CDI"
	ContractCDD        = "CDD"
	ContractAlternance = "Alternance"
	ContractStage      = "Stage"
	ContractFreelance  = "Freelance"
	ContractInterim    = "Intérim"
	ContractPartTime   = "Temps partiel"
	ContractFullTime   = "Temps plein"
)

// contractVocabulary maps each contract type to its keywords. Order
// matters: when several types match and the CDI/CDD tie-break does not
// apply, the first matching entry wins.
var contractVocabulary = []struct {
	Label    string
	Keywords []string
}{
	{ContractCDI, []string{"cdi", "contrat à durée indéterminée", "permanent", "indéterminée"}},
	{ContractCDD, []string{"cdd", "contrat à durée déterminée", "déterminée", "temporaire"}},
	{ContractAlternance, []string{"altern", "apprentissage", "apprenti", "contrat pro", "professionnalisation"}},
	{ContractStage, []string{"stage", "stagiaire", "internship", "intern"}},
	{ContractFreelance, []string{"freelance", "indépendant", "consultant externe", "auto-entrepreneur"}},
	{ContractInterim, []string{"intérim", "mission temporaire", "mission d'intérim"}},
	{ContractPartTime, []string{"temps partiel", "mi-temps", "part-time"}},
	{ContractFullTime, []string{"temps plein", "temps complet", "full-time"}},
}

// ContractMatch is the result of contract-type classification
type ContractMatch struct {
	ContractType string   `json:"contract_type"`
	IsAlternance bool     `json:"is_alternance"`
	IsCDI        bool     `json:"is_cdi"`
	IsCDD        bool     `json:"is_cdd"`
	IsStage      bool     `json:"is_stage"`
	IsFreelance  bool     `json:"is_freelance"`
	IsInterim    bool     `json:"is_interim"`
	IsPartTime   bool     `json:"is_part_time"`
	IsFullTime   bool     `json:"is_full_time"`
	Detected     []string `json:"all_detected_types"`
}

// IdentifyContractType classifies the contract type of an offer from
// its title and description. Matching is case- and accent-insensitive
// substring search over the fixed vocabulary.
//
// When both CDI and CDD keywords are present, the winner is the one
// whose literal keyword occurs first in the text. Otherwise the first
// vocabulary entry with any match wins; with no match at all the label
// is "Non spécifié".
func IdentifyContractType(title, description string) ContractMatch {
	text := Fold(title + " " + description)

	var detected []string
	for _, entry := range contractVocabulary {
		for _, keyword := range entry.Keywords {
			if strings.Contains(text, Fold(keyword)) {
				detected = append(detected, entry.Label)
				break
			}
		}
	}

	primary := ValueUnspecified
	switch {
	case slices.Contains(detected, ContractCDI) && slices.Contains(detected, ContractCDD):
		// Look at whichever of the two literals comes first
		before := text
		if idx := strings.Index(text, "cdd"); idx >= 0 {
			before = text[:idx]
		}
		if strings.Contains(before, "cdi") {
			primary = ContractCDI
		} else {
			primary = ContractCDD
		}
	case len(detected) > 0:
		primary = detected[0]
	}

	return ContractMatch{
		ContractType: primary,
		IsAlternance: slices.Contains(detected, ContractAlternance),
		IsCDI:        slices.Contains(detected, ContractCDI),
		IsCDD:        slices.Contains(detected, ContractCDD),
		IsStage:      slices.Contains(detected, ContractStage),
		IsFreelance:  slices.Contains(detected, ContractFreelance),
		IsInterim:    slices.Contains(detected, ContractInterim),
		IsPartTime:   slices.Contains(detected, ContractPartTime),
		IsFullTime:   slices.Contains(detected, ContractFullTime),
		Detected:     detected,
	}
}
