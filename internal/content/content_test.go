package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeContentDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	return dir
}

func minimalFiles() map[string]string {
	return map[string]string{
		"items.yaml": `
- id: potion
  name: Potion
  kind: heal
  value: 30
- id: sword
  name: Sword
  kind: equip
  slot: weapon
  value: 20
  effect: attack_boost
`,
		"enemies.yaml": `
- id: slime
  name: Slime
  maxHp: 40
  attack: 5
`,
		"cards.yaml": `
- id: card-a
  name: Card A
  rarity: 1
  effect:
    type: heal
    value: 5
`,
		"titles.yaml": `
- id: t-first
  name: First Blood
  condition: "enemiesDefeated >= 1"
`,
		"scenario.yaml": `
entry: start
nodes:
  - id: start
    type: story
    title: Start
    next: fight
  - id: fight
    type: enemy
    title: Fight
    enemy: slime
    itemGet: potion
`,
	}
}

func TestLoad_Minimal(t *testing.T) {
	dir := writeContentDir(t, minimalFiles())

	c, err := Load(dir)
	require.NoError(t, err)

	item, ok := c.Item("potion")
	require.True(t, ok)
	assert.Equal(t, ItemHeal, item.Kind)

	node, ok := c.Node("fight")
	require.True(t, ok)
	assert.Equal(t, NodeEnemy, node.Type)
	assert.Equal(t, "slime", node.EnemyID)
	assert.Empty(t, node.Next)

	assert.Equal(t, "start", c.Scenario.Entry)
}

func TestLoad_MissingFile(t *testing.T) {
	files := minimalFiles()
	delete(files, "cards.yaml")
	dir := writeContentDir(t, files)

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoad_LegacyInterferenceDefaults(t *testing.T) {
	files := minimalFiles()
	files["enemies.yaml"] = `
- id: slime
  name: Slime
  maxHp: 40
  attack: 5
- id: konnyaku-elder
  name: Elder
  maxHp: 40
  attack: 5
- id: haniwa-guard
  name: Guard
  maxHp: 40
  attack: 5
- id: pass-overlord
  name: Overlord
  maxHp: 90
  attack: 9
- id: daruma-red
  name: Red
  maxHp: 40
  attack: 5
  interference: none
`
	dir := writeContentDir(t, files)

	c, err := Load(dir)
	require.NoError(t, err)

	tests := []struct {
		id   string
		want Interference
	}{
		{"slime", InterfereNone},
		{"konnyaku-elder", InterfereSlippery},
		{"haniwa-guard", InterfereLock},
		{"pass-overlord", InterfereRandom},
		// An explicit tag always wins over the id convention.
		{"daruma-red", InterfereNone},
	}
	for _, tt := range tests {
		en, ok := c.Enemy(tt.id)
		require.True(t, ok, tt.id)
		assert.Equal(t, tt.want, en.Interference, tt.id)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{"dangling next", func(f map[string]string) {
			f["scenario.yaml"] = "entry: start\nnodes:\n  - id: start\n    type: story\n    next: nowhere\n"
		}},
		{"missing entry", func(f map[string]string) {
			f["scenario.yaml"] = "entry: ghost\nnodes:\n  - id: start\n    type: story\n"
		}},
		{"enemy node without enemy", func(f map[string]string) {
			f["scenario.yaml"] = "entry: start\nnodes:\n  - id: start\n    type: enemy\n"
		}},
		{"unknown itemGet", func(f map[string]string) {
			f["scenario.yaml"] = "entry: start\nnodes:\n  - id: start\n    type: story\n    itemGet: ghost\n"
		}},
		{"unknown cardGet", func(f map[string]string) {
			f["scenario.yaml"] = "entry: start\nnodes:\n  - id: start\n    type: story\n    cardGet: ghost\n"
		}},
		{"duplicate item id", func(f map[string]string) {
			f["items.yaml"] = "- id: potion\n  kind: heal\n  value: 1\n- id: potion\n  kind: heal\n  value: 2\n"
		}},
		{"equip without slot", func(f map[string]string) {
			f["items.yaml"] = "- id: sword\n  kind: equip\n  value: 1\n"
		}},
		{"enemy without hp", func(f map[string]string) {
			f["enemies.yaml"] = "- id: slime\n  name: Slime\n  attack: 5\n"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := minimalFiles()
			tt.mutate(files)
			dir := writeContentDir(t, files)
			_, err := Load(dir)
			assert.Error(t, err)
		})
	}
}
