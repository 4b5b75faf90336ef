package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifyContractTypeBasic(t *testing.T) {
	cases := []struct {
		name        string
		title       string
		description string
		want        string
	}{
		{"cdi keyword", "Développeur Go", "Poste en CDI à pourvoir immédiatement.", ContractCDI},
		{"cdd keyword", "Chargé de mission", "CDD de 12 mois renouvelable.", ContractCDD},
		{"alternance", "Data Analyst", "Contrat en alternance de 24 mois.", ContractAlternance},
		{"apprentissage", "Comptable", "Poste ouvert à l'apprentissage.", ContractAlternance},
		{"stage", "Assistant marketing", "Stage de fin d'études de 6 mois.", ContractStage},
		{"freelance", "Consultant", "Mission freelance de longue durée.", ContractFreelance},
		{"interim with accents", "Manutentionnaire", "Mission d'intérim à la semaine.", ContractInterim},
		{"interim without accents", "Manutentionnaire", "mission d'interim a la semaine", ContractInterim},
		{"part time", "Vendeur", "Poste à temps partiel, 24h par semaine.", ContractPartTime},
		{"no match", "Poste divers", "Rejoignez notre équipe dynamique.", ValueUnspecified},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			match := IdentifyContractType(tc.title, tc.description)
			assert.Equal(t, tc.want, match.ContractType)
		})
	}
}

func TestIdentifyContractTypeCDITieBreak(t *testing.T) {
	// Both types mentioned: the one appearing first in the text wins
	match := IdentifyContractType("", "Poste en CDI, pas de CDD proposé.")
	assert.Equal(t, ContractCDI, match.ContractType)
	assert.True(t, match.IsCDI)
	assert.True(t, match.IsCDD)

	match = IdentifyContractType("", "CDD de 6 mois, évolution possible vers un CDI.")
	assert.Equal(t, ContractCDD, match.ContractType)
}

func TestIdentifyContractTypeDetectedFlags(t *testing.T) {
	match := IdentifyContractType("Alternance Data Engineer", "Contrat d'apprentissage en CDI possible à terme.")

	assert.True(t, match.IsAlternance)
	assert.True(t, match.IsCDI)
	assert.False(t, match.IsStage)
	assert.Contains(t, match.Detected, ContractAlternance)
	assert.Contains(t, match.Detected, ContractCDI)
	assert.Equal(t, ContractCDI, match.ContractType)
}

func TestIdentifyContractTypeCaseAndAccentInsensitive(t *testing.T) {
	match := IdentifyContractType("ALTERNANCE", "")
	assert.Equal(t, ContractAlternance, match.ContractType)

	match = IdentifyContractType("", "Contrat à Durée Indéterminée")
	assert.True(t, match.IsCDI)
}

func TestFold(t *testing.T) {
	assert.Equal(t, "interim", Fold("Intérim"))
	assert.Equal(t, "contrat a duree determinee", Fold("Contrat à Durée Déterminée"))
	assert.Equal(t, "deja la", Fold("Déjà Là"))
}
