package game

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"yokaiquest/internal/content"
)

// scriptedSource replays queued random results and falls back to fixed
// values once a queue is drained.
type scriptedSource struct {
	d6     []int
	chance []bool
	pick   []int
}

func (s *scriptedSource) D6() int {
	if len(s.d6) == 0 {
		return 1
	}
	v := s.d6[0]
	s.d6 = s.d6[1:]
	return v
}

func (s *scriptedSource) Chance(float64) bool {
	if len(s.chance) == 0 {
		return false
	}
	v := s.chance[0]
	s.chance = s.chance[1:]
	return v
}

func (s *scriptedSource) Pick(n int) int {
	if len(s.pick) == 0 {
		return 0
	}
	v := s.pick[0]
	s.pick = s.pick[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func testCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	c, err := content.NewCatalog(
		[]content.Item{
			{ID: "potion", Name: "Potion", Kind: content.ItemHeal, Value: 30},
			{ID: "tonic", Name: "Tonic", Kind: content.ItemHeal, Value: 20, Infinite: true, Cooldown: 3},
			{ID: "sword", Name: "Sword", Kind: content.ItemEquip, Slot: content.SlotWeapon, Value: 20, Effect: content.EffectAttackBoost},
			{ID: "axe", Name: "Axe", Kind: content.ItemEquip, Slot: content.SlotWeapon, Value: 50, Effect: content.EffectAttackBoost},
			{ID: "shield", Name: "Shield", Kind: content.ItemEquip, Slot: content.SlotArmor, Value: 10, Effect: content.EffectDefenseBoost},
			{ID: "relic", Name: "Relic", Kind: content.ItemKey},
		},
		[]content.Enemy{
			{ID: "slime", Name: "Slime", MaxHP: 40, Attack: 5, Interference: content.InterfereNone},
			{ID: "jammer", Name: "Jammer", MaxHP: 60, Attack: 8, Interference: content.InterfereLock},
			{ID: "greaser", Name: "Greaser", MaxHP: 60, Attack: 8, Interference: content.InterfereSlippery},
			{ID: "warlord", Name: "Warlord", MaxHP: 100, Attack: 12, Interference: content.InterfereRandom},
		},
		[]content.Card{
			{ID: "card-heal", Effect: content.CardEffect{Type: content.CardHeal, Value: 5}},
			{ID: "card-heal-2", Effect: content.CardEffect{Type: content.CardHeal, Value: 3}},
			{ID: "card-floor", Effect: content.CardEffect{Type: content.CardDiceMin, Value: 3}},
			{ID: "card-reward", Effect: content.CardEffect{Type: content.CardReward, Value: 1.5}},
		},
		[]content.Title{
			{ID: "t-first", Name: "First Blood", Condition: "enemiesDefeated >= 1"},
			{ID: "t-five", Name: "Slayer", Condition: "enemiesDefeated >= 5"},
			{ID: "t-death", Name: "Fallen", Condition: "deaths >= 1"},
			{ID: "t-bad", Name: "Broken", Condition: "nonsense"},
			{ID: "t-walker", Name: "Walker", Condition: "nodesVisited >= 2"},
			{ID: "t-collector", Name: "Collector", Condition: "cardsCollected >= 1"},
		},
		content.Scenario{
			Entry: "start",
			Nodes: []content.ScenarioNode{
				{ID: "start", Type: content.NodeStory, Title: "Start", Text: "It begins.", Next: "loot"},
				{ID: "loot", Type: content.NodeStory, Title: "Loot", ItemGet: "sword", Next: "fight"},
				{ID: "fight", Type: content.NodeEnemy, Title: "Fight", EnemyID: "slime", Next: "camp"},
				{ID: "camp", Type: content.NodeStory, Title: "Camp", Effects: map[string]string{"continue": "heal", "reject": "mystery"}, Next: "end"},
				{ID: "shrine", Type: content.NodeStory, Title: "Shrine", CardGet: "card-reward", Next: "end"},
				{ID: "end", Type: content.NodeStory, Title: "End", Text: "It ends."},
			},
		},
	)
	require.NoError(t, err)
	return c
}

func newTestEngine(t *testing.T) (*Engine, *scriptedSource) {
	t.Helper()
	src := &scriptedSource{}
	e := NewEngine(testCatalog(t), slog.New(slog.DiscardHandler))
	e.Rand = src
	return e, src
}
