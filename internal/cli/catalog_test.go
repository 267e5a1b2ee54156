package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogWarnings(t *testing.T) {
	unreachable, err := loadCatalog([]string{"testdata/validate/unreachable_category/catalog.arq.yaml"})
	require.NoError(t, err)
	assert.Equal(t, []string{`category "Planner" is never awarded points`}, catalogWarnings(unreachable))

	c, err := loadCatalog(nil)
	require.NoError(t, err)
	assert.Empty(t, catalogWarnings(c))
}

func TestLoadCatalog_Env(t *testing.T) {
	setEnv(t, "ARCHETYPE_CATALOG", "testdata/catalogs/team.arq.yaml")
	initConfig()

	c, err := loadCatalog(nil)
	require.NoError(t, err)
	assert.Equal(t, "team-roles", c.Metadata.Name)

	c, err = loadCatalog([]string{"testdata/validate/valid/catalog.arq.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "testdata/validate/valid/catalog.arq.yaml", c.SourceFile)
}
