package seed

import (
	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/lowrimor/cardtrain/engine"
	"github.com/lowrimor/cardtrain/logger"
)

//go:embed decks.yaml
var decksYAML []byte

type seedFile struct {
	Decks []seedDeck `yaml:"decks"`
}

type seedDeck struct {
	Name        string     `yaml:"name"`
	DisplayName string     `yaml:"displayName"`
	Cards       []seedCard `yaml:"cards"`
}

type seedCard struct {
	Side1 []string `yaml:"side1"`
	Side2 []string `yaml:"side2"`
}

// Ensure creates the sample decks on first run. A deck that already has
// cards is left alone.
func Ensure(eng *engine.Engine, log *logger.Logger) error {
	var f seedFile
	if err := yaml.Unmarshal(decksYAML, &f); err != nil {
		return err
	}

	for _, d := range f.Decks {
		if err := eng.OpenDeck(d.Name); err != nil {
			return err
		}
		if eng.DeckLength() > 0 {
			continue
		}
		if err := eng.SetDisplayName(d.DisplayName); err != nil {
			return err
		}
		for _, c := range d.Cards {
			if err := eng.AddCard(c.Side1, c.Side2, engine.DefaultDifficulty); err != nil {
				return err
			}
		}
		log.Info("seeded sample deck", "deck", d.Name, "cards", len(d.Cards))
	}
	return nil
}
