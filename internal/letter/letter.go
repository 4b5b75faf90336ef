// Package letter builds personalized cover letters from a job listing,
// the candidate's CV and career files, and optional personal info.
package letter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"jmorel/hellohunt/internal/scraper"
	"jmorel/hellohunt/logger"
	"jmorel/hellohunt/pkg/errors"
)

// PersonalInfo customizes the generated letter. All fields are optional.
type PersonalInfo struct {
	TexteMotivation string `json:"texte_motivation"`
	Signature       string `json:"signature"`
	Nom             string `json:"nom"`
	Coordonnees     string `json:"coordonnees"`
}

const (
	salutation  = "Madame, Monsieur,\n\n"
	closing     = "Je vous prie d'agréer, Madame, Monsieur, l'expression de mes salutations distinguées.\n\n"
	placeholder = "[Votre nom]\n[Vos coordonnées]"
)

// excerptLimit bounds the CV and career excerpts when the file has no
// blank-line separated intro block.
const excerptLimit = 200

var filenameSanitizer = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)

// Generator assembles cover letters from the candidate's local files.
type Generator struct {
	CVPath         string
	ParcoursPath   string
	InfosPersoPath string
	LettersDir     string

	log *logger.Logger
}

func NewGenerator(cvPath, parcoursPath, infosPersoPath, lettersDir string) *Generator {
	return &Generator{
		CVPath:         cvPath,
		ParcoursPath:   parcoursPath,
		InfosPersoPath: infosPersoPath,
		LettersDir:     lettersDir,
		log:            logger.ForComponent("letter"),
	}
}

// Generate builds a cover letter for the given listing. description is
// the full job description text, used to match skills against the CV.
// Missing candidate files degrade to the generic template rather than
// failing the letter.
func (g *Generator) Generate(job scraper.JobListing, description string) string {
	infos := g.loadPersonalInfo()
	cvText := g.readOptional(g.CVPath, "CV")
	parcoursText := g.readOptional(g.ParcoursPath, "parcours")

	var b strings.Builder
	b.WriteString(salutation)

	if infos != nil && infos.TexteMotivation != "" {
		// The personal pitch was written for one company; swap in the
		// company actually being applied to.
		b.WriteString(strings.ReplaceAll(infos.TexteMotivation, "EDF", job.Company))
		b.WriteString("\n\n")
	} else {
		g.writeStandardBody(&b, job, description, cvText, parcoursText)
	}

	switch {
	case infos != nil && infos.Signature != "":
		b.WriteString(infos.Signature)
	case infos != nil && infos.Nom != "":
		coords := infos.Coordonnees
		if coords == "" {
			coords = "[Vos coordonnées]"
		}
		b.WriteString(infos.Nom + "\n" + coords)
	default:
		b.WriteString(placeholder)
	}

	return b.String()
}

func (g *Generator) writeStandardBody(b *strings.Builder, job scraper.JobListing, description, cvText, parcoursText string) {
	contractIntro := ""
	if job.IsAlternance || strings.Contains(strings.ToLower(job.ContractType), "alternance") {
		contractIntro = "en alternance "
	}
	locationText := ""
	if job.Location != scraper.ValueUnspecified {
		locationText = "à " + job.Location
	}
	fmt.Fprintf(b, "Suite à votre offre d'emploi pour le poste de %s %s%s, je vous présente ma candidature avec enthousiasme.\n\n",
		job.Title, contractIntro, locationText)

	common := scraper.SharedSkills(description, cvText)
	if len(common) > 0 {
		fmt.Fprintf(b, "Mon profil correspond aux qualifications que vous recherchez, notamment en ce qui concerne %s comme le montre mon CV ci-joint.\n\n",
			joinSkills(common))
	} else {
		b.WriteString("Mon profil correspond aux qualifications que vous recherchez comme le montre mon CV ci-joint.\n\n")
	}

	if cvText != "" {
		b.WriteString(excerpt(cvText) + "\n\n")
	}
	if parcoursText != "" {
		b.WriteString(excerpt(parcoursText) + "\n\n")
	}

	fmt.Fprintf(b, "Particulièrement intéressé(e) par %s, je souhaite mettre à profit mon expertise pour contribuer à vos projets. Votre recherche de %s correspond parfaitement à mon parcours professionnel et à mes aspirations.\n\n",
		job.Company, job.Title)
	b.WriteString("Je serais ravi(e) de vous rencontrer pour vous présenter ma motivation et mes compétences lors d'un entretien.\n\n")
	b.WriteString(closing)
}

// Save writes the letter under LettersDir, named from the date, company
// and title, and returns the file path.
func (g *Generator) Save(job scraper.JobListing, letterText string) (string, error) {
	if err := os.MkdirAll(g.LettersDir, 0o755); err != nil {
		return "", errors.NewLetter("failed to create letters directory", err)
	}

	company := sanitizeFilePart(job.Company)
	title := sanitizeFilePart(job.Title)
	filename := fmt.Sprintf("%s_%s_%s.txt", time.Now().Format("20060102"), company, title)
	path := filepath.Join(g.LettersDir, filename)

	if err := os.WriteFile(path, []byte(letterText), 0o644); err != nil {
		return "", errors.NewLetter("failed to write cover letter", err)
	}
	return path, nil
}

func (g *Generator) loadPersonalInfo() *PersonalInfo {
	if g.InfosPersoPath == "" {
		return nil
	}
	data, err := os.ReadFile(g.InfosPersoPath)
	if err != nil {
		if !os.IsNotExist(err) {
			g.log.WithError(err).Warn().Msg("Impossible de lire les informations personnelles")
		}
		return nil
	}
	var infos PersonalInfo
	if err := json.Unmarshal(data, &infos); err != nil {
		g.log.WithField("path", g.InfosPersoPath).Warn().Msg("Le fichier d'informations personnelles n'est pas un JSON valide")
		return nil
	}
	return &infos
}

func (g *Generator) readOptional(path, label string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			g.log.WithField("path", path).Warn().Msg("Fichier " + label + " introuvable")
		} else {
			g.log.WithError(err).Warn().Msg("Impossible de lire le fichier " + label)
		}
		return ""
	}
	return string(data)
}

// excerpt returns the first blank-line separated block of the text, or
// its first excerptLimit bytes when it has no blank line, cut back to a
// rune boundary so accented text stays valid UTF-8.
func excerpt(text string) string {
	if idx := strings.Index(text, "\n\n"); idx >= 0 {
		return text[:idx]
	}
	if len(text) <= excerptLimit {
		return text
	}
	cut := excerptLimit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// joinSkills formats skills as "a, b et c".
func joinSkills(skills []string) string {
	if len(skills) == 1 {
		return skills[0]
	}
	return strings.Join(skills[:len(skills)-1], ", ") + " et " + skills[len(skills)-1]
}

func sanitizeFilePart(s string) string {
	cleaned := strings.TrimSpace(filenameSanitizer.ReplaceAllString(s, ""))
	return strings.ReplaceAll(cleaned, " ", "_")
}
