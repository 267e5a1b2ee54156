package cli

import (
	"fmt"

	"github.com/lacquerai/archetype/internal/catalog"
	"github.com/lacquerai/archetype/internal/parser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// loadCatalog parses the catalog named by the first argument, falling back
// to the --catalog flag and then to the built-in catalog.
func loadCatalog(args []string) (*catalog.Catalog, error) {
	path := viper.GetString("catalog")
	if len(args) > 0 && args[0] != "" {
		path = args[0]
	}

	p, err := parser.NewYAMLParser()
	if err != nil {
		return nil, fmt.Errorf("failed to create parser: %w", err)
	}

	if path == "" {
		c, err := p.ParseBuiltin()
		if err != nil {
			return nil, fmt.Errorf("failed to load built-in catalog: %w", err)
		}
		log.Debug().Str("catalog", c.Title()).Msg("Loaded built-in catalog")
		return c, nil
	}

	c, err := p.ParseFile(path)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("file", path).
		Int("categories", len(c.Categories)).
		Int("questions", len(c.Questions)).
		Msg("Loaded catalog")

	return c, nil
}
