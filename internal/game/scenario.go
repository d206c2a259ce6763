package game

import (
	"fmt"
	"slices"
	"strings"

	"yokaiquest/internal/content"
)

// Direction is the binary swipe choice on a story card.
type Direction string

const (
	DirectionContinue Direction = "continue"
	DirectionReject   Direction = "reject"
)

// campHealAmount is what a legacy "heal" card effect restores.
const campHealAmount = 20

// LoadCurrentScenario surfaces the node the player is on, entering the
// scenario at its entry node on a fresh profile.
func (e *Engine) LoadCurrentScenario(st *State) (*content.ScenarioNode, error) {
	if st.CurrentNode == "" {
		return e.StartScenario(st, e.Content.Scenario.Entry)
	}
	node, ok := e.Content.Node(st.CurrentNode)
	if !ok {
		st.appendEvent(EventError, fmt.Sprintf("Unknown scenario node: %s", st.CurrentNode))
		return nil, fmt.Errorf("%w: node %q", ErrUnknownID, st.CurrentNode)
	}
	return node, nil
}

// StartScenario moves the player onto a node, records it as the save
// point and emits its narrative text. Unknown ids mutate nothing.
func (e *Engine) StartScenario(st *State, id string) (*content.ScenarioNode, error) {
	node, ok := e.Content.Node(id)
	if !ok {
		st.appendEvent(EventError, fmt.Sprintf("Unknown scenario node: %s", id))
		return nil, fmt.Errorf("%w: node %q", ErrUnknownID, id)
	}

	st.CurrentNode = id
	st.SavePoint = id
	st.Player.Location = id
	e.visit(st, id)

	if node.Text != "" {
		st.appendEvent(EventStory, node.Text)
	}
	// nodesVisited may have just crossed a title threshold.
	e.EvaluateAchievements(st)
	return node, nil
}

// visit grows the monotone visited set.
func (e *Engine) visit(st *State, id string) {
	if slices.Contains(st.VisitedNodes, id) {
		return
	}
	st.VisitedNodes = append(st.VisitedNodes, id)
	st.Stats.NodesVisited = len(st.VisitedNodes)
}

// ProcessCardAction resolves a swipe on a node. Enemy nodes open a
// battle and hold the pointer until it resolves; story nodes grant
// their item and advance.
func (e *Engine) ProcessCardAction(st *State, nodeID string, direction Direction) error {
	node, ok := e.Content.Node(nodeID)
	if !ok {
		st.appendEvent(EventError, fmt.Sprintf("Unknown scenario node: %s", nodeID))
		return fmt.Errorf("%w: node %q", ErrUnknownID, nodeID)
	}
	if st.Battle != nil && st.Battle.Active {
		return fmt.Errorf("%w: a battle is in progress", ErrInvalidAction)
	}

	if node.Type == content.NodeEnemy && node.EnemyID != "" {
		// Scenario pointer stays put until the battle resolves.
		return e.StartBattle(st, node.EnemyID)
	}

	if effectID, keyed := node.Effects[string(direction)]; keyed {
		return e.applyCardEffect(st, node, effectID)
	}

	e.grantItem(st, node)
	if node.CardGet != "" {
		_ = e.CollectCard(st, node.CardGet)
	}
	return e.advance(st, node)
}

// CollectCard adds a legacy card to the collection and re-checks
// achievement conditions against the new collection count.
func (e *Engine) CollectCard(st *State, cardID string) error {
	card, ok := e.Content.Card(cardID)
	if !ok {
		st.appendEvent(EventError, fmt.Sprintf("Unknown card: %s", cardID))
		return fmt.Errorf("%w: card %q", ErrUnknownID, cardID)
	}
	if st.CollectCard(card.ID) {
		st.appendEvent(EventInfo, fmt.Sprintf("Collected the %s card!", card.Name))
		e.EvaluateAchievements(st)
	}
	return nil
}

// applyCardEffect handles the legacy effect-id pathway. Recognized ids
// escape, heal or open a battle; anything else just advances.
func (e *Engine) applyCardEffect(st *State, node *content.ScenarioNode, effectID string) error {
	switch {
	case strings.HasPrefix(effectID, "battle:"):
		return e.StartBattle(st, strings.TrimPrefix(effectID, "battle:"))
	case effectID == "escape":
		st.appendEvent(EventStory, "You slip away unnoticed.")
		return e.advance(st, node)
	case effectID == "heal":
		restored := e.healPlayer(st, campHealAmount)
		st.appendEvent(EventInfo, fmt.Sprintf("You rest and recover %d HP.", restored))
		return e.advance(st, node)
	default:
		return e.advance(st, node)
	}
}

func (e *Engine) grantItem(st *State, node *content.ScenarioNode) {
	if node.ItemGet == "" {
		return
	}
	item, ok := e.Content.Item(node.ItemGet)
	if !ok {
		st.appendEvent(EventError, fmt.Sprintf("Unknown item: %s", node.ItemGet))
		return
	}
	st.AddItem(item.ID)
	st.appendEvent(EventInfo, fmt.Sprintf("Obtained %s!", item.Name))
}

// advance follows the node's next pointer. A terminal node is a no-op
// beyond its completion notification.
func (e *Engine) advance(st *State, node *content.ScenarioNode) error {
	if node.Next == "" {
		st.appendEvent(EventStory, "The chapter draws to a close.")
		return nil
	}
	_, err := e.StartScenario(st, node.Next)
	return err
}

// OnBattleVictory advances past the node that opened the battle.
func (e *Engine) OnBattleVictory(st *State, enemyID string) {
	b := st.Battle
	if b == nil || b.NodeID == "" {
		return
	}
	node, ok := e.Content.Node(b.NodeID)
	if !ok || node.Next == "" {
		return
	}
	if _, err := e.StartScenario(st, node.Next); err != nil {
		e.Log.Error("advance after victory", "enemy", enemyID, "node", b.NodeID, "error", err)
	}
}

// ContinueFromSavePoint revives the player at the stored save point,
// or the entry node when none exists.
func (e *Engine) ContinueFromSavePoint(st *State) (*content.ScenarioNode, error) {
	target := st.SavePoint
	if target == "" {
		target = e.Content.Scenario.Entry
	}
	st.Player.HP = st.Player.MaxHP
	st.Battle = nil
	st.Defeat = nil
	st.Defending = false
	st.ClearDiceResults()
	st.ResetReels()
	st.SetMode(ModeExploration)
	return e.StartScenario(st, target)
}
