package mapgen

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yokaiquest/internal/content"
)

func testCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	c, err := content.NewCatalog(nil,
		[]content.Enemy{{ID: "slime", Name: "Slime", MaxHP: 10}},
		nil, nil,
		content.Scenario{
			Entry: "start",
			Nodes: []content.ScenarioNode{
				{ID: "start", Type: content.NodeStory, Title: "The Gate", Next: "fight"},
				{ID: "fight", Type: content.NodeEnemy, Title: "Ambush", EnemyID: "slime", Next: "end"},
				{ID: "end", Type: content.NodeStory, Title: "Dawn"},
			},
		})
	require.NoError(t, err)
	return c
}

func TestGenerate_ProducesPDF(t *testing.T) {
	pdf, err := Generate(testCatalog(t), []string{"start", "fight", "end"}, "fight", "Journey")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestGenerate_EmptyVisitedFallsBackToCurrent(t *testing.T) {
	pdf, err := Generate(testCatalog(t), nil, "start", "Journey")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestGenerate_ManyStopsWrapAcrossRows(t *testing.T) {
	catalog := testCatalog(t)
	visited := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		visited = append(visited, "start")
	}
	pdf, err := Generate(catalog, visited, "start", "Journey")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}

func TestGenerate_RequiresCatalog(t *testing.T) {
	_, err := Generate(nil, nil, "start", "Journey")
	assert.Error(t, err)
}
