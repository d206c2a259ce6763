package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCurrentScenario_FreshProfileEntersAtEntry(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewState()
	st.StartNewGame()

	node, err := e.LoadCurrentScenario(st)
	require.NoError(t, err)
	assert.Equal(t, "start", node.ID)
	assert.Equal(t, "start", st.CurrentNode)
	assert.Equal(t, "start", st.SavePoint)
	assert.Equal(t, []string{"start"}, st.VisitedNodes)
}

func TestLoadCurrentScenario_UnknownStoredNode(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewState()
	st.StartNewGame()
	st.CurrentNode = "deleted-node"

	_, err := e.LoadCurrentScenario(st)
	assert.ErrorIs(t, err, ErrUnknownID)
	// Recoverable: the stored pointer is untouched.
	assert.Equal(t, "deleted-node", st.CurrentNode)
}

func TestProcessCardAction_StoryAdvancesAndGrantsItem(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewState()
	st.StartNewGame()
	_, err := e.StartScenario(st, "loot")
	require.NoError(t, err)

	require.NoError(t, e.ProcessCardAction(st, "loot", DirectionContinue))

	assert.Equal(t, 1, st.CountItem("sword"))
	assert.Equal(t, "fight", st.CurrentNode)
	assert.Equal(t, "fight", st.SavePoint)
}

func TestProcessCardAction_EnemyNodeHoldsPointer(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewState()
	st.StartNewGame()
	_, err := e.StartScenario(st, "fight")
	require.NoError(t, err)

	require.NoError(t, e.ProcessCardAction(st, "fight", DirectionContinue))

	require.NotNil(t, st.Battle)
	assert.True(t, st.Battle.Active)
	assert.Equal(t, "slime", st.Battle.Enemy.ID)
	// The pointer waits for the battle to resolve.
	assert.Equal(t, "fight", st.CurrentNode)
}

func TestProcessCardAction_RejectedDuringBattle(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewState()
	st.StartNewGame()
	_, err := e.StartScenario(st, "fight")
	require.NoError(t, err)
	require.NoError(t, e.ProcessCardAction(st, "fight", DirectionContinue))

	err = e.ProcessCardAction(st, "fight", DirectionContinue)
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestProcessCardAction_LegacyEffects(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewState()
	st.StartNewGame()
	st.Player.HP = 50
	_, err := e.StartScenario(st, "camp")
	require.NoError(t, err)

	// "continue" is keyed to the heal effect; both directions advance.
	require.NoError(t, e.ProcessCardAction(st, "camp", DirectionContinue))
	assert.Equal(t, 70, st.Player.HP)
	assert.Equal(t, "end", st.CurrentNode)

	// Unrecognized effect id just advances.
	st2 := NewState()
	st2.StartNewGame()
	_, err = e.StartScenario(st2, "camp")
	require.NoError(t, err)
	require.NoError(t, e.ProcessCardAction(st2, "camp", DirectionReject))
	assert.Equal(t, "end", st2.CurrentNode)
}

func TestProcessCardAction_TerminalNodeIsNoOp(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewState()
	st.StartNewGame()
	_, err := e.StartScenario(st, "end")
	require.NoError(t, err)

	require.NoError(t, e.ProcessCardAction(st, "end", DirectionContinue))
	assert.Equal(t, "end", st.CurrentNode)

	// Still a no-op on repeat.
	require.NoError(t, e.ProcessCardAction(st, "end", DirectionContinue))
	assert.Equal(t, "end", st.CurrentNode)
}

func TestProcessCardAction_UnknownNode(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewState()
	st.StartNewGame()
	_, err := e.StartScenario(st, "start")
	require.NoError(t, err)

	err = e.ProcessCardAction(st, "nowhere", DirectionContinue)
	assert.ErrorIs(t, err, ErrUnknownID)
	assert.Equal(t, "start", st.CurrentNode)
}

func TestVisitedNodes_Monotone(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewState()
	st.StartNewGame()

	ids := []string{"start", "loot", "start", "camp", "loot", "end"}
	prev := 0
	for _, id := range ids {
		_, err := e.StartScenario(st, id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(st.VisitedNodes), prev)
		prev = len(st.VisitedNodes)
	}
	assert.Equal(t, []string{"start", "loot", "camp", "end"}, st.VisitedNodes)
	assert.Equal(t, 4, st.Stats.NodesVisited)
}

func TestStartScenario_UnlocksVisitTitleOnCrossing(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewState()
	st.StartNewGame()

	_, err := e.StartScenario(st, "start")
	require.NoError(t, err)
	assert.False(t, st.HasTitle("t-walker"))

	// The second distinct node crosses the threshold; no battle or item
	// use is needed for the unlock.
	_, err = e.StartScenario(st, "loot")
	require.NoError(t, err)
	assert.True(t, st.HasTitle("t-walker"))
}

func TestCollectCard_EvaluatesAchievements(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewState()
	st.StartNewGame()

	require.NoError(t, e.CollectCard(st, "card-heal"))
	assert.True(t, st.HasCard("card-heal"))
	assert.True(t, st.HasTitle("t-collector"))

	// Re-collecting is a no-op.
	require.NoError(t, e.CollectCard(st, "card-heal"))
	assert.Equal(t, 1, st.Stats.CardsCollected)

	assert.ErrorIs(t, e.CollectCard(st, "card-ghost"), ErrUnknownID)
}

func TestProcessCardAction_GrantsCard(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewState()
	st.StartNewGame()
	_, err := e.StartScenario(st, "shrine")
	require.NoError(t, err)

	require.NoError(t, e.ProcessCardAction(st, "shrine", DirectionContinue))
	assert.True(t, st.HasCard("card-reward"))
	assert.True(t, st.HasTitle("t-collector"))
	assert.Equal(t, "end", st.CurrentNode)
}

func TestOnBattleVictory_AdvancesPastBattleNode(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewState()
	st.StartNewGame()
	_, err := e.StartScenario(st, "fight")
	require.NoError(t, err)
	require.NoError(t, e.StartBattle(st, "slime"))
	st.Battle.Active = false

	e.OnBattleVictory(st, "slime")
	assert.Equal(t, "camp", st.CurrentNode)
}

func TestContinueFromSavePoint_RevivesAtSavePoint(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewState()
	st.StartNewGame()
	_, err := e.StartScenario(st, "fight")
	require.NoError(t, err)
	require.NoError(t, e.StartBattle(st, "warlord"))
	st.Player.HP = 0
	e.EndBattle(st, OutcomeDefeat)
	require.Equal(t, ModeGameOver, st.Mode)

	node, err := e.ContinueFromSavePoint(st)
	require.NoError(t, err)
	assert.Equal(t, "fight", node.ID)
	assert.Equal(t, ModeExploration, st.Mode)
	assert.Equal(t, DefaultMaxHP, st.Player.HP)
	assert.Nil(t, st.Battle)
	assert.Nil(t, st.Defeat)
}

func TestContinueFromSavePoint_FallsBackToEntry(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewState()
	st.StartNewGame()

	node, err := e.ContinueFromSavePoint(st)
	require.NoError(t, err)
	assert.Equal(t, "start", node.ID)
}
