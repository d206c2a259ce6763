// Package content loads the static game catalogs: items, enemies, legacy
// cards, achievement titles and the scenario graph. Catalogs are immutable
// after load; runtime state never lives here.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ItemKind classifies what using or holding an item does.
type ItemKind string

const (
	ItemHeal  ItemKind = "heal"
	ItemEquip ItemKind = "equip"
	ItemKey   ItemKind = "key"
)

// Slot names an equipment slot.
type Slot string

const (
	SlotWeapon    Slot = "weapon"
	SlotArmor     Slot = "armor"
	SlotAccessory Slot = "accessory"
)

// Slots lists every equipment slot in display order.
var Slots = []Slot{SlotWeapon, SlotArmor, SlotAccessory}

// EffectType is the passive bonus an equipped item contributes.
type EffectType string

const (
	EffectAttackBoost  EffectType = "attack_boost"
	EffectDefenseBoost EffectType = "defense_boost"
)

// Item is an immutable item record.
type Item struct {
	ID       string     `yaml:"id"`
	Name     string     `yaml:"name"`
	Icon     string     `yaml:"icon"`
	Kind     ItemKind   `yaml:"kind"`
	Slot     Slot       `yaml:"slot,omitempty"`
	Value    int        `yaml:"value"`
	Effect   EffectType `yaml:"effect,omitempty"`
	Cooldown int        `yaml:"cooldown,omitempty"`
	Infinite bool       `yaml:"infinite,omitempty"`
}

// Interference is the reel sabotage an enemy can apply on its turn.
type Interference string

const (
	InterfereNone     Interference = "none"
	InterfereSlippery Interference = "slippery"
	InterfereLock     Interference = "lock"
	InterfereRandom   Interference = "random"
)

// Enemy is a static encounter template. Battle state clones it; the
// template itself is never mutated.
type Enemy struct {
	ID           string       `yaml:"id"`
	Name         string       `yaml:"name"`
	MaxHP        int          `yaml:"maxHp"`
	Attack       int          `yaml:"attack"`
	Defense      int          `yaml:"defense"`
	Interference Interference `yaml:"interference,omitempty"`
}

// CardEffectType is what a collected legacy card passively does.
type CardEffectType string

const (
	CardHeal    CardEffectType = "heal"
	CardDiceMin CardEffectType = "dice_min"
	CardReward  CardEffectType = "reward"
)

// CardEffect is a legacy card's single passive effect.
type CardEffect struct {
	Type  CardEffectType `yaml:"type"`
	Value float64        `yaml:"value"`
}

// Card is a collectible legacy card.
type Card struct {
	ID     string     `yaml:"id"`
	Name   string     `yaml:"name"`
	Rarity int        `yaml:"rarity"`
	Effect CardEffect `yaml:"effect"`
}

// Title is an unlockable achievement title. Condition reads
// "<statName> <op> <integer>", e.g. "enemiesDefeated >= 10".
type Title struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Condition string `yaml:"condition"`
}

// NodeType distinguishes narrative nodes from encounter nodes.
type NodeType string

const (
	NodeStory NodeType = "story"
	NodeEnemy NodeType = "enemy"
)

// ScenarioNode is one card in the story graph. Next is empty on a
// terminal (chapter-ending) node.
type ScenarioNode struct {
	ID          string            `yaml:"id"`
	Type        NodeType          `yaml:"type"`
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Text        string            `yaml:"text"`
	Next        string            `yaml:"next,omitempty"`
	EnemyID     string            `yaml:"enemy,omitempty"`
	ItemGet     string            `yaml:"itemGet,omitempty"`
	CardGet     string            `yaml:"cardGet,omitempty"`
	Effects     map[string]string `yaml:"effects,omitempty"`
}

// Scenario is the story graph plus its entry node.
type Scenario struct {
	Entry string         `yaml:"entry"`
	Nodes []ScenarioNode `yaml:"nodes"`
}

// Catalog bundles every loaded catalog with id indexes.
type Catalog struct {
	Items    []Item
	Enemies  []Enemy
	Cards    []Card
	Titles   []Title
	Scenario Scenario

	items   map[string]*Item
	enemies map[string]*Enemy
	cards   map[string]*Card
	nodes   map[string]*ScenarioNode
}

// NewCatalog assembles a catalog from already-built slices and
// validates it like Load does.
func NewCatalog(items []Item, enemies []Enemy, cards []Card, titles []Title, scenario Scenario) (*Catalog, error) {
	c := &Catalog{Items: items, Enemies: enemies, Cards: cards, Titles: titles, Scenario: scenario}
	if err := c.index(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads every catalog file from dir and validates cross-references.
func Load(dir string) (*Catalog, error) {
	c := &Catalog{}

	if err := readYAML(dir, "items.yaml", &c.Items); err != nil {
		return nil, err
	}
	if err := readYAML(dir, "enemies.yaml", &c.Enemies); err != nil {
		return nil, err
	}
	if err := readYAML(dir, "cards.yaml", &c.Cards); err != nil {
		return nil, err
	}
	if err := readYAML(dir, "titles.yaml", &c.Titles); err != nil {
		return nil, err
	}
	if err := readYAML(dir, "scenario.yaml", &c.Scenario); err != nil {
		return nil, err
	}

	if err := c.index(); err != nil {
		return nil, err
	}
	return c, nil
}

func readYAML(dir, name string, out any) error {
	path := filepath.Clean(filepath.Join(dir, name))
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (c *Catalog) index() error {
	c.items = map[string]*Item{}
	for i := range c.Items {
		it := &c.Items[i]
		if it.ID == "" {
			return fmt.Errorf("item %d: missing id", i)
		}
		if _, dup := c.items[it.ID]; dup {
			return fmt.Errorf("duplicate item id %q", it.ID)
		}
		if it.Kind == ItemEquip && it.Slot == "" {
			return fmt.Errorf("equip item %q: missing slot", it.ID)
		}
		c.items[it.ID] = it
	}

	c.enemies = map[string]*Enemy{}
	for i := range c.Enemies {
		en := &c.Enemies[i]
		if en.ID == "" {
			return fmt.Errorf("enemy %d: missing id", i)
		}
		if _, dup := c.enemies[en.ID]; dup {
			return fmt.Errorf("duplicate enemy id %q", en.ID)
		}
		if en.MaxHP <= 0 {
			return fmt.Errorf("enemy %q: maxHp must be positive", en.ID)
		}
		if en.Interference == "" {
			en.Interference = legacyInterference(en.ID)
		}
		c.enemies[en.ID] = en
	}

	c.cards = map[string]*Card{}
	for i := range c.Cards {
		cd := &c.Cards[i]
		if cd.ID == "" {
			return fmt.Errorf("card %d: missing id", i)
		}
		if _, dup := c.cards[cd.ID]; dup {
			return fmt.Errorf("duplicate card id %q", cd.ID)
		}
		c.cards[cd.ID] = cd
	}

	c.nodes = map[string]*ScenarioNode{}
	for i := range c.Scenario.Nodes {
		n := &c.Scenario.Nodes[i]
		if n.ID == "" {
			return fmt.Errorf("scenario node %d: missing id", i)
		}
		if _, dup := c.nodes[n.ID]; dup {
			return fmt.Errorf("duplicate scenario node id %q", n.ID)
		}
		c.nodes[n.ID] = n
	}

	// Cross-references resolve only after every index is built.
	for _, n := range c.nodes {
		if n.Next != "" {
			if _, ok := c.nodes[n.Next]; !ok {
				return fmt.Errorf("node %q: next %q does not exist", n.ID, n.Next)
			}
		}
		if n.Type == NodeEnemy {
			if n.EnemyID == "" {
				return fmt.Errorf("enemy node %q: missing enemy id", n.ID)
			}
			if _, ok := c.enemies[n.EnemyID]; !ok {
				return fmt.Errorf("node %q: enemy %q does not exist", n.ID, n.EnemyID)
			}
		}
		if n.ItemGet != "" {
			if _, ok := c.items[n.ItemGet]; !ok {
				return fmt.Errorf("node %q: itemGet %q does not exist", n.ID, n.ItemGet)
			}
		}
		if n.CardGet != "" {
			if _, ok := c.cards[n.CardGet]; !ok {
				return fmt.Errorf("node %q: cardGet %q does not exist", n.ID, n.CardGet)
			}
		}
	}
	if c.Scenario.Entry == "" {
		return fmt.Errorf("scenario: missing entry node id")
	}
	if _, ok := c.nodes[c.Scenario.Entry]; !ok {
		return fmt.Errorf("scenario: entry node %q does not exist", c.Scenario.Entry)
	}
	return nil
}

// legacyInterference fills the capability tag for content that predates
// it, from the id conventions the old data used.
func legacyInterference(id string) Interference {
	switch {
	case strings.Contains(id, "konnyaku"):
		return InterfereSlippery
	case strings.Contains(id, "daruma"), strings.Contains(id, "haniwa"):
		return InterfereLock
	case strings.Contains(id, "boss"), strings.Contains(id, "overlord"):
		return InterfereRandom
	default:
		return InterfereNone
	}
}

// Item returns the item with the given id.
func (c *Catalog) Item(id string) (*Item, bool) {
	it, ok := c.items[id]
	return it, ok
}

// Enemy returns the enemy template with the given id.
func (c *Catalog) Enemy(id string) (*Enemy, bool) {
	en, ok := c.enemies[id]
	return en, ok
}

// Card returns the legacy card with the given id.
func (c *Catalog) Card(id string) (*Card, bool) {
	cd, ok := c.cards[id]
	return cd, ok
}

// Node returns the scenario node with the given id.
func (c *Catalog) Node(id string) (*ScenarioNode, bool) {
	n, ok := c.nodes[id]
	return n, ok
}
