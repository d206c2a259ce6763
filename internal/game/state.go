// Package game is the rules core: the state ledger, the battle
// resolution engine, the scenario graph and the achievement evaluator.
// Presentation talks to it through discrete actions and reads back
// snapshots plus an ordered event log; nothing here renders anything.
package game

import (
	"encoding/json"
	"slices"
	"time"

	"yokaiquest/internal/content"
)

// Mode is the coarse game mode the whole UI branches on.
type Mode string

const (
	ModeTitle       Mode = "title"
	ModeExploration Mode = "exploration"
	ModeBattle      Mode = "battle"
	ModeGameOver    Mode = "gameover"
)

// Turn marks whose half of the battle loop is pending.
type Turn string

const (
	TurnPlayer Turn = "player"
	TurnEnemy  Turn = "enemy"
)

// ReelStatus is the condition of one dice reel. Enemies sabotage reels
// during their turn; the status only describes the reel, the roll
// values themselves always arrive resolved from the driver.
type ReelStatus string

const (
	ReelNormal   ReelStatus = "normal"
	ReelSlippery ReelStatus = "slippery"
	ReelLocked   ReelStatus = "locked"
)

const (
	// DefaultMaxHP is the player's starting health.
	DefaultMaxHP = 100
	// BaseReelCount is how many dice reels a fresh player rolls.
	BaseReelCount = 2
	// MaxReelCount caps reel upgrades.
	MaxReelCount = 4
)

// Player is the player combatant owned by the ledger.
type Player struct {
	HP       int    `json:"hp"`
	MaxHP    int    `json:"maxHp"`
	Location string `json:"location"`
}

// BattleEnemy is the live clone of an enemy template. It exists only
// inside an active BattleState.
type BattleEnemy struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	HP           int                  `json:"hp"`
	MaxHP        int                  `json:"maxHp"`
	Attack       int                  `json:"attack"`
	Defense      int                  `json:"defense"`
	Interference content.Interference `json:"-"`
}

// BattleState exists while a battle is active and is torn down by
// EndBattle. Turn alternates strictly player, enemy, player.
type BattleState struct {
	Active           bool        `json:"active"`
	Turn             Turn        `json:"turn"`
	Enemy            BattleEnemy `json:"enemy"`
	LastPlayerDamage int         `json:"lastPlayerDamage"`
	LastEnemyDamage  int         `json:"lastEnemyDamage"`
	NodeID           string      `json:"-"`
}

// Equipment holds at most one item id per named slot. An item id is in
// the inventory or in exactly one slot, never both.
type Equipment struct {
	Weapon    string `json:"weapon"`
	Armor     string `json:"armor"`
	Accessory string `json:"accessory"`
}

// Get returns the item id in the slot, or "".
func (e *Equipment) Get(s content.Slot) string {
	switch s {
	case content.SlotWeapon:
		return e.Weapon
	case content.SlotArmor:
		return e.Armor
	case content.SlotAccessory:
		return e.Accessory
	}
	return ""
}

func (e *Equipment) set(s content.Slot, id string) {
	switch s {
	case content.SlotWeapon:
		e.Weapon = id
	case content.SlotArmor:
		e.Armor = id
	case content.SlotAccessory:
		e.Accessory = id
	}
}

// Equipped returns every equipped item id.
func (e *Equipment) Equipped() []string {
	var out []string
	for _, s := range content.Slots {
		if id := e.Get(s); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// Settings are player preferences. Durable, never gameplay-relevant.
type Settings struct {
	Sound     bool `json:"sound"`
	Haptics   bool `json:"haptics"`
	TextSpeed int  `json:"textSpeed"`
}

// DefaultSettings returns the settings a fresh profile starts with.
func DefaultSettings() Settings {
	return Settings{Sound: true, Haptics: true, TextSpeed: 1}
}

// Stats are cumulative counters achievement conditions read.
type Stats struct {
	EnemiesDefeated int `json:"enemiesDefeated"`
	Deaths          int `json:"deaths"`
	BattlesFought   int `json:"battlesFought"`
	ItemsUsed       int `json:"itemsUsed"`
	NodesVisited    int `json:"nodesVisited"`
	MaxDamage       int `json:"maxDamage"`
	CardsCollected  int `json:"cardsCollected"`
}

// Value looks a counter up by the name achievement conditions use.
func (s Stats) Value(name string) (int, bool) {
	switch name {
	case "enemiesDefeated":
		return s.EnemiesDefeated, true
	case "deaths":
		return s.Deaths, true
	case "battlesFought":
		return s.BattlesFought, true
	case "itemsUsed":
		return s.ItemsUsed, true
	case "nodesVisited":
		return s.NodesVisited, true
	case "maxDamage":
		return s.MaxDamage, true
	case "cardsCollected":
		return s.CardsCollected, true
	}
	return 0, false
}

// DefeatRecord is the postmortem shown after a loss.
type DefeatRecord struct {
	EnemyName  string `json:"enemyName"`
	Location   string `json:"location"`
	LastDamage int    `json:"lastDamage"`
}

// State is the single authoritative ledger every subsystem reads and
// mutates. There is exactly one logical writer at a time; no locking.
type State struct {
	Mode      Mode      `json:"mode"`
	Player    Player    `json:"player"`
	Inventory []string  `json:"inventory"`
	Equipment Equipment `json:"equipment"`

	Battle      *BattleState   `json:"battle,omitempty"`
	Reels       []ReelStatus   `json:"reels"`
	PendingRoll []int          `json:"pendingRoll,omitempty"`
	Defending   bool           `json:"defending"`
	Cooldowns   map[string]int `json:"cooldowns,omitempty"`

	CollectedCards  []string `json:"collectedCards"`
	UnlockedTitles  []string `json:"unlockedTitles"`
	CurrentTitle    string   `json:"currentTitle"`
	Stats           Stats    `json:"stats"`
	CurrentNode     string   `json:"currentNode"`
	VisitedNodes    []string `json:"visitedNodes"`
	SavePoint       string   `json:"savePoint"`
	Settings        Settings `json:"settings"`
	TutorialSeen    bool     `json:"tutorialSeen"`
	DiscoveredItems []string `json:"discoveredItems"`
	DiceUpgrades    int      `json:"diceUpgrades"`
	LastLogin       string   `json:"lastLogin"`

	Defeat *DefeatRecord `json:"defeat,omitempty"`
	Log    []Event       `json:"-"`

	// EventSink, when set, observes every appended event. Used by the
	// web layer to stream the log; the core never reads it back.
	EventSink func(Event) `json:"-"`
}

// NewState returns a fresh ledger at the title screen with default
// durable fields.
func NewState() *State {
	st := &State{
		Mode:      ModeTitle,
		Player:    Player{HP: DefaultMaxHP, MaxHP: DefaultMaxHP},
		Cooldowns: map[string]int{},
		Settings:  DefaultSettings(),
	}
	st.syncReels()
	return st
}

// StartNewGame resets every session-only field and enters exploration.
// Durable progress (titles, stats, collection, upgrades, settings)
// survives; scenario position is restarted by the caller.
func (s *State) StartNewGame() {
	s.Mode = ModeExploration
	s.Player = Player{HP: DefaultMaxHP, MaxHP: DefaultMaxHP}
	s.Inventory = nil
	s.Equipment = Equipment{}
	s.Battle = nil
	s.PendingRoll = nil
	s.Defending = false
	s.Cooldowns = map[string]int{}
	s.Defeat = nil
	s.Log = nil
	s.syncReels()
	s.ResetReels()
}

// SetMode switches the coarse game mode.
func (s *State) SetMode(m Mode) { s.Mode = m }

// NumReels is how many dice reels the player currently rolls.
func (s *State) NumReels() int {
	n := BaseReelCount + s.DiceUpgrades
	if n > MaxReelCount {
		n = MaxReelCount
	}
	return n
}

func (s *State) syncReels() {
	n := s.NumReels()
	for len(s.Reels) < n {
		s.Reels = append(s.Reels, ReelNormal)
	}
	s.Reels = s.Reels[:n]
}

// ResetReels clears interference from every reel.
func (s *State) ResetReels() {
	for i := range s.Reels {
		s.Reels[i] = ReelNormal
	}
}

// AddDiceUpgrade records a permanent extra reel, capped at MaxReelCount.
func (s *State) AddDiceUpgrade() {
	if BaseReelCount+s.DiceUpgrades >= MaxReelCount {
		return
	}
	s.DiceUpgrades++
	s.syncReels()
}

// SetDiceResults stores an in-flight roll awaiting resolution.
func (s *State) SetDiceResults(values []int) {
	s.PendingRoll = slices.Clone(values)
}

// ClearDiceResults drops any in-flight roll.
func (s *State) ClearDiceResults() { s.PendingRoll = nil }

// SetDefending arms or clears the one-shot defend stance.
func (s *State) SetDefending(v bool) { s.Defending = v }

// AddItem appends an item to the inventory multiset and records it as
// discovered.
func (s *State) AddItem(id string) {
	s.Inventory = append(s.Inventory, id)
	s.DiscoverItem(id)
}

// RemoveItem removes one instance of the item from the inventory.
// Reports whether an instance was present.
func (s *State) RemoveItem(id string) bool {
	for i, v := range s.Inventory {
		if v == id {
			s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// CountItem counts inventory instances of the item.
func (s *State) CountItem(id string) int {
	n := 0
	for _, v := range s.Inventory {
		if v == id {
			n++
		}
	}
	return n
}

// DiscoverItem marks an item as seen for the collection screen.
func (s *State) DiscoverItem(id string) {
	if !slices.Contains(s.DiscoveredItems, id) {
		s.DiscoveredItems = append(s.DiscoveredItems, id)
	}
}

// CollectCard adds a legacy card to the collection. Reports whether it
// was newly collected.
func (s *State) CollectCard(id string) bool {
	if slices.Contains(s.CollectedCards, id) {
		return false
	}
	s.CollectedCards = append(s.CollectedCards, id)
	s.Stats.CardsCollected = len(s.CollectedCards)
	return true
}

// HasCard reports whether the card is collected.
func (s *State) HasCard(id string) bool {
	return slices.Contains(s.CollectedCards, id)
}

// SetItemCooldown blocks an item for the given number of resolved turns.
func (s *State) SetItemCooldown(id string, turns int) {
	if s.Cooldowns == nil {
		s.Cooldowns = map[string]int{}
	}
	s.Cooldowns[id] = turns
}

// ItemCooldown returns the remaining blocked turns for an item.
func (s *State) ItemCooldown(id string) int { return s.Cooldowns[id] }

// DecrementItemCooldowns ticks every cooldown down one resolved turn,
// never below zero.
func (s *State) DecrementItemCooldowns() {
	for id, n := range s.Cooldowns {
		if n <= 1 {
			delete(s.Cooldowns, id)
			continue
		}
		s.Cooldowns[id] = n - 1
	}
}

// UnlockTitle adds a title idempotently. Reports whether it was new.
func (s *State) UnlockTitle(id string) bool {
	if slices.Contains(s.UnlockedTitles, id) {
		return false
	}
	s.UnlockedTitles = append(s.UnlockedTitles, id)
	return true
}

// SetCurrentTitle selects a displayed title; it must be unlocked.
func (s *State) SetCurrentTitle(id string) bool {
	if id != "" && !slices.Contains(s.UnlockedTitles, id) {
		return false
	}
	s.CurrentTitle = id
	return true
}

// UpdateSettings replaces the player settings.
func (s *State) UpdateSettings(v Settings) { s.Settings = v }

// MarkTutorialSeen latches the tutorial flag.
func (s *State) MarkTutorialSeen() { s.TutorialSeen = true }

// TouchLogin stamps today as the last login date.
func (s *State) TouchLogin(now time.Time) {
	s.LastLogin = now.Format("2006-01-02")
}

// Durable snapshot keys. One flat namespace, JSON values.
const (
	keyScenarioCurrent   = "scenario.current"
	keyScenarioSavePoint = "scenario.save_point"
	keyScenarioVisited   = "scenario.visited"
	keySettings          = "settings"
	keyTutorialSeen      = "tutorial_seen"
	keyDiscoveredItems   = "items.discovered"
	keyDiceUpgrades      = "dice.upgrades"
	keyTitles            = "titles.unlocked"
	keyCurrentTitle      = "titles.current"
	keyStats             = "stats"
	keyCards             = "cards.collected"
	keyLastLogin         = "last_login"
)

// Snapshot serializes exactly the durable whitelist. Battle state,
// in-flight rolls and other session fields never appear here.
func (s *State) Snapshot() map[string]string {
	out := map[string]string{}
	put := func(key string, v any) {
		b, err := json.Marshal(v)
		if err != nil {
			return
		}
		out[key] = string(b)
	}
	put(keyScenarioCurrent, s.CurrentNode)
	put(keyScenarioSavePoint, s.SavePoint)
	put(keyScenarioVisited, s.VisitedNodes)
	put(keySettings, s.Settings)
	put(keyTutorialSeen, s.TutorialSeen)
	put(keyDiscoveredItems, s.DiscoveredItems)
	put(keyDiceUpgrades, s.DiceUpgrades)
	put(keyTitles, s.UnlockedTitles)
	put(keyCurrentTitle, s.CurrentTitle)
	put(keyStats, s.Stats)
	put(keyCards, s.CollectedCards)
	put(keyLastLogin, s.LastLogin)
	return out
}

// RestoreSnapshot rehydrates durable fields. Absent or malformed
// entries keep their defaults; restore never fails.
func (s *State) RestoreSnapshot(snap map[string]string) {
	get := func(key string, out any) {
		raw, ok := snap[key]
		if !ok {
			return
		}
		// Malformed values fall back to the zero default already set.
		_ = json.Unmarshal([]byte(raw), out)
	}
	get(keyScenarioCurrent, &s.CurrentNode)
	get(keyScenarioSavePoint, &s.SavePoint)
	get(keyScenarioVisited, &s.VisitedNodes)
	get(keySettings, &s.Settings)
	get(keyTutorialSeen, &s.TutorialSeen)
	get(keyDiscoveredItems, &s.DiscoveredItems)
	get(keyDiceUpgrades, &s.DiceUpgrades)
	get(keyTitles, &s.UnlockedTitles)
	get(keyCurrentTitle, &s.CurrentTitle)
	get(keyStats, &s.Stats)
	get(keyCards, &s.CollectedCards)
	get(keyLastLogin, &s.LastLogin)
	s.Stats.CardsCollected = len(s.CollectedCards)
	s.syncReels()
}
