package taxonomy_test

import (
	"os"
	"path/filepath"
	"testing"

	"resume-match-go/internal/taxonomy"
	"resume-match-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinProviderLoad(t *testing.T) {
	tax, err := taxonomy.NewProvider("").Load()
	require.NoError(t, err)
	require.NotNil(t, tax)
	assert.False(t, tax.Empty())

	entries := tax.Entries()
	assert.NotEmpty(t, entries)

	categories := make(map[types.SkillCategory]bool)
	for _, e := range entries {
		categories[e.Category] = true
	}
	assert.True(t, categories[types.CategoryTechnical])
	assert.True(t, categories[types.CategorySoft])
	assert.True(t, categories[types.CategoryBusiness])
}

func TestFileProviderLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	content := `technical:
  - Python
  - Go
soft:
  - Communication
business:
  - Agile
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	tax, err := taxonomy.NewProvider(path).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "Go"}, tax.Technical)
	assert.Equal(t, []string{"Communication"}, tax.Soft)
	assert.Equal(t, []string{"Agile"}, tax.Business)
}

// 词表文件缺失或为空都属于不可恢复的加载错误
func TestFileProviderErrors(t *testing.T) {
	_, err := taxonomy.NewProvider("/nonexistent/taxonomy.yaml").Load()
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("technical: []\n"), 0644))
	_, err = taxonomy.NewProvider(empty).Load()
	assert.Error(t, err)
}

func TestTaxonomyEmpty(t *testing.T) {
	var nilTax *taxonomy.Taxonomy
	assert.True(t, nilTax.Empty())
	assert.True(t, (&taxonomy.Taxonomy{}).Empty())
	assert.False(t, (&taxonomy.Taxonomy{Technical: []string{"Go"}}).Empty())
}
