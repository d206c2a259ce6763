package game

import (
	"fmt"
	"math"

	"yokaiquest/internal/content"
)

// BattleOutcome is the terminal result of a battle, or empty while it
// is still running.
type BattleOutcome string

const (
	OutcomeNone    BattleOutcome = ""
	OutcomeVictory BattleOutcome = "victory"
	OutcomeDefeat  BattleOutcome = "defeat"
)

// Combo labels for recognized roll patterns.
const (
	ComboMax      = "max-combo"
	ComboFever    = "fever-combo"
	ComboStraight = "straight-combo"
)

// StartBattle clones the enemy template into a fresh battle with the
// player to act first. Collected battle-start heals land before the
// first turn. An unknown enemy id mutates nothing.
func (e *Engine) StartBattle(st *State, enemyID string) error {
	tmpl, ok := e.Content.Enemy(enemyID)
	if !ok {
		st.appendEvent(EventError, fmt.Sprintf("Unknown enemy: %s", enemyID))
		return fmt.Errorf("%w: enemy %q", ErrUnknownID, enemyID)
	}

	st.Battle = &BattleState{
		Active: true,
		Turn:   TurnPlayer,
		Enemy: BattleEnemy{
			ID:           tmpl.ID,
			Name:         tmpl.Name,
			HP:           tmpl.MaxHP,
			MaxHP:        tmpl.MaxHP,
			Attack:       tmpl.Attack,
			Defense:      tmpl.Defense,
			Interference: tmpl.Interference,
		},
		NodeID: st.CurrentNode,
	}
	st.SetMode(ModeBattle)
	st.Stats.BattlesFought++
	st.ResetReels()
	st.ClearDiceResults()
	st.Defending = false

	if heal := e.cardHealTotal(st); heal > 0 && st.Player.HP < st.Player.MaxHP {
		restored := e.healPlayer(st, heal)
		st.appendEvent(EventInfo, fmt.Sprintf("Your cards restore %d HP.", restored))
	}

	st.appendEvent(EventCombat, fmt.Sprintf("%s appears!", tmpl.Name))
	return nil
}

// ProcessPlayerAttack resolves the player's half of a round from the
// settled reel values and hands the turn to the enemy. When values is
// empty the roll staged via SetDiceResults is consumed instead. The
// returned damage is always at least 1.
func (e *Engine) ProcessPlayerAttack(st *State, values []int) (int, error) {
	b := st.Battle
	if b == nil || !b.Active || b.Turn != TurnPlayer {
		return 0, ErrWrongTurn
	}
	if len(values) == 0 {
		values = st.PendingRoll
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: no dice values", ErrInvalidAction)
	}

	clamped, raised := e.applyDiceFloor(st, values)
	if raised {
		st.appendEvent(EventInfo, "A legacy card steadies your weakest dice.")
	}

	sum := 0
	for _, v := range clamped {
		sum += v
	}

	mult, label := detectPattern(clamped)
	damage := int(math.Floor(float64(sum) * mult * e.attackMultiplier(st)))
	if damage < 1 {
		damage = 1
	}

	b.Enemy.HP -= damage
	if b.Enemy.HP < 0 {
		b.Enemy.HP = 0
	}
	b.LastPlayerDamage = damage
	if damage > st.Stats.MaxDamage {
		st.Stats.MaxDamage = damage
	}
	// The staged roll is spent, and reel sabotage only impairs the roll
	// it was applied before.
	st.ClearDiceResults()
	st.ResetReels()
	b.Turn = TurnEnemy

	if label != "" {
		st.appendEvent(EventCombo, fmt.Sprintf("%s! x%.1f", label, mult))
	}
	st.appendEvent(EventCombat, fmt.Sprintf("You hit %s for %d damage.", b.Enemy.Name, damage))
	return damage, nil
}

// applyDiceFloor raises every value to the best collected dice_min,
// reporting whether any die was raised.
func (e *Engine) applyDiceFloor(st *State, values []int) ([]int, bool) {
	floor := 1
	for _, c := range e.collectedCards(st) {
		if c.Effect.Type == content.CardDiceMin && int(c.Effect.Value) > floor {
			floor = int(c.Effect.Value)
		}
	}
	out := make([]int, len(values))
	raised := false
	for i, v := range values {
		if v < floor {
			v = floor
			raised = true
		}
		out[i] = v
	}
	return out, raised
}

// detectPattern recognizes a combo among the rolled values. Precedence
// is fixed: all-six before all-equal before straight.
func detectPattern(values []int) (float64, string) {
	if len(values) < 2 {
		return 1.0, ""
	}

	allSix, allEqual := true, true
	for _, v := range values {
		if v != 6 {
			allSix = false
		}
		if v != values[0] {
			allEqual = false
		}
	}
	if allSix {
		return 5.0, ComboMax
	}
	if allEqual {
		return 2.0, ComboFever
	}

	sorted := make([]int, len(values))
	copy(sorted, values)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j] < sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	straight := true
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			straight = false
			break
		}
	}
	if straight {
		return 1.5, ComboStraight
	}
	return 1.0, ""
}

// Defend spends the player's half of the round arming the one-shot
// guard that halves the next enemy hit.
func (e *Engine) Defend(st *State) error {
	b := st.Battle
	if b == nil || !b.Active || b.Turn != TurnPlayer {
		return ErrWrongTurn
	}
	st.SetDefending(true)
	b.Turn = TurnEnemy
	st.appendEvent(EventCombat, "You raise your guard.")
	return nil
}

// ProcessEnemyAttack resolves the enemy's half of a round: damage with
// defense and the one-shot defend stance applied, collected per-turn
// heals, at most one reel interference, then the turn returns to the
// player and item cooldowns tick down.
func (e *Engine) ProcessEnemyAttack(st *State) (int, error) {
	b := st.Battle
	if b == nil || !b.Active || b.Turn != TurnEnemy {
		return 0, ErrWrongTurn
	}

	roll := e.Rand.D6()
	damage := roll + b.Enemy.Attack - e.defenseReduction(st)
	if damage < 1 {
		damage = 1
	}
	if st.Defending {
		damage /= 2
		st.Defending = false
		st.appendEvent(EventCombat, "You brace behind your guard.")
	}

	st.Player.HP -= damage
	if st.Player.HP < 0 {
		st.Player.HP = 0
	}
	b.LastEnemyDamage = damage
	st.appendEvent(EventCombat, fmt.Sprintf("%s hits you for %d damage.", b.Enemy.Name, damage))

	if st.Player.HP < st.Player.MaxHP {
		if heal := e.cardHealTotal(st); heal > 0 {
			restored := e.healPlayer(st, heal)
			st.appendEvent(EventInfo, fmt.Sprintf("Your cards restore %d HP.", restored))
		}
	}

	e.applyInterference(st)

	b.Turn = TurnPlayer
	st.DecrementItemCooldowns()
	return damage, nil
}

// applyInterference lets the enemy sabotage at most one reel, with
// probability 0.7, according to its capability tag.
func (e *Engine) applyInterference(st *State) {
	b := st.Battle
	if b.Enemy.Interference == content.InterfereNone {
		return
	}
	if !e.Rand.Chance(0.7) {
		return
	}

	var available []int
	for i, r := range st.Reels {
		if r == ReelNormal {
			available = append(available, i)
		}
	}
	if len(available) == 0 {
		return
	}
	idx := available[e.Rand.Pick(len(available))]

	status := ReelSlippery
	switch b.Enemy.Interference {
	case content.InterfereLock:
		status = ReelLocked
	case content.InterfereRandom:
		if !e.Rand.Chance(0.5) {
			status = ReelLocked
		}
	}
	st.Reels[idx] = status

	verb := "greases"
	if status == ReelLocked {
		verb = "jams"
	}
	st.appendEvent(EventCombat, fmt.Sprintf("%s %s one of your reels!", b.Enemy.Name, verb))
}

// CheckBattleEnd reports the terminal outcome, if any. Victory is
// checked first; under correct sequencing both cannot hold at once.
func (e *Engine) CheckBattleEnd(st *State) BattleOutcome {
	b := st.Battle
	if b == nil || !b.Active {
		return OutcomeNone
	}
	if b.Enemy.HP <= 0 {
		return OutcomeVictory
	}
	if st.Player.HP <= 0 {
		return OutcomeDefeat
	}
	return OutcomeNone
}

// EndBattle tears the battle down. Victory returns to exploration and
// advances the scenario past the triggering node; defeat records a
// postmortem and enters game over. Both paths leave an inactive battle
// state behind for the result screen.
func (e *Engine) EndBattle(st *State, outcome BattleOutcome) {
	b := st.Battle
	if b == nil || !b.Active {
		return
	}
	b.Active = false
	st.ClearDiceResults()
	st.Defending = false

	switch outcome {
	case OutcomeVictory:
		if mult := e.bestRewardMultiplier(st); mult > 1 {
			e.Log.Info("victory reward multiplier", "enemy", b.Enemy.ID, "multiplier", mult)
		}
		if !st.TutorialSeen {
			st.MarkTutorialSeen()
		}
		st.Stats.EnemiesDefeated++
		st.appendEvent(EventVictory, fmt.Sprintf("%s is defeated!", b.Enemy.Name))
		st.SetMode(ModeExploration)
		e.OnBattleVictory(st, b.Enemy.ID)
	case OutcomeDefeat:
		st.Defeat = &DefeatRecord{
			EnemyName:  b.Enemy.Name,
			Location:   st.Player.Location,
			LastDamage: b.LastEnemyDamage,
		}
		st.Stats.Deaths++
		st.appendEvent(EventDefeat, fmt.Sprintf("You fall to %s...", b.Enemy.Name))
		st.SetMode(ModeGameOver)
	default:
		return
	}
	e.EvaluateAchievements(st)
}

// collectedCards filters the full catalog down to the collected set.
// Passive effects are derived here on every call, never cached.
func (e *Engine) collectedCards(st *State) []*content.Card {
	var out []*content.Card
	for i := range e.Content.Cards {
		c := &e.Content.Cards[i]
		if st.HasCard(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// cardHealTotal sums collected heal-card values.
func (e *Engine) cardHealTotal(st *State) int {
	total := 0
	for _, c := range e.collectedCards(st) {
		if c.Effect.Type == content.CardHeal {
			total += int(c.Effect.Value)
		}
	}
	return total
}

// bestRewardMultiplier is the max collected reward value, at least 1.
func (e *Engine) bestRewardMultiplier(st *State) float64 {
	best := 1.0
	for _, c := range e.collectedCards(st) {
		if c.Effect.Type == content.CardReward && c.Effect.Value > best {
			best = c.Effect.Value
		}
	}
	return best
}
