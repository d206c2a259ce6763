package game

import (
	"fmt"

	"yokaiquest/internal/content"
)

// Equip moves an item from the inventory into its slot. An occupied
// slot hands its item back to the inventory first, so a given item id
// is always in the inventory or in exactly one slot.
func (e *Engine) Equip(st *State, itemID string) error {
	item, ok := e.Content.Item(itemID)
	if !ok {
		st.appendEvent(EventError, fmt.Sprintf("Unknown item: %s", itemID))
		return fmt.Errorf("%w: item %q", ErrUnknownID, itemID)
	}
	if item.Kind != content.ItemEquip {
		return fmt.Errorf("%w: %s cannot be equipped", ErrInvalidAction, item.Name)
	}
	if !st.RemoveItem(itemID) {
		return fmt.Errorf("%w: %s is not in the inventory", ErrInvalidAction, item.Name)
	}
	if prev := st.Equipment.Get(item.Slot); prev != "" {
		st.Inventory = append(st.Inventory, prev)
	}
	st.Equipment.set(item.Slot, itemID)
	st.appendEvent(EventInfo, fmt.Sprintf("Equipped %s.", item.Name))
	return nil
}

// Unequip clears a slot and returns its item to the inventory.
func (e *Engine) Unequip(st *State, slot content.Slot) error {
	id := st.Equipment.Get(slot)
	if id == "" {
		return fmt.Errorf("%w: %s slot is empty", ErrInvalidAction, slot)
	}
	st.Equipment.set(slot, "")
	st.Inventory = append(st.Inventory, id)
	if item, ok := e.Content.Item(id); ok {
		st.appendEvent(EventInfo, fmt.Sprintf("Unequipped %s.", item.Name))
	}
	return nil
}

// UseItem consumes (or, for infinite items, cools down) one usable
// item. Key items and equipment are not usable this way.
func (e *Engine) UseItem(st *State, itemID string) error {
	item, ok := e.Content.Item(itemID)
	if !ok {
		st.appendEvent(EventError, fmt.Sprintf("Unknown item: %s", itemID))
		return fmt.Errorf("%w: item %q", ErrUnknownID, itemID)
	}
	if item.Kind != content.ItemHeal {
		return fmt.Errorf("%w: %s cannot be used", ErrInvalidAction, item.Name)
	}
	if st.CountItem(itemID) == 0 {
		return fmt.Errorf("%w: %s is not in the inventory", ErrInvalidAction, item.Name)
	}
	if item.Infinite && st.ItemCooldown(itemID) > 0 {
		return fmt.Errorf("%w: %s is recharging (%d turns)", ErrInvalidAction, item.Name, st.ItemCooldown(itemID))
	}

	healed := e.healPlayer(st, item.Value)
	st.appendEvent(EventInfo, fmt.Sprintf("Used %s and recovered %d HP.", item.Name, healed))

	if item.Infinite {
		if item.Cooldown > 0 {
			st.SetItemCooldown(itemID, item.Cooldown)
		}
	} else {
		st.RemoveItem(itemID)
	}
	st.Stats.ItemsUsed++
	e.EvaluateAchievements(st)
	return nil
}

// healPlayer raises hp clamped to max and returns the amount restored.
func (e *Engine) healPlayer(st *State, amount int) int {
	if amount <= 0 {
		return 0
	}
	before := st.Player.HP
	st.Player.HP += amount
	if st.Player.HP > st.Player.MaxHP {
		st.Player.HP = st.Player.MaxHP
	}
	return st.Player.HP - before
}

// attackMultiplier sums attack_boost percentages over equipped items.
func (e *Engine) attackMultiplier(st *State) float64 {
	m := 1.0
	for _, id := range st.Equipment.Equipped() {
		item, ok := e.Content.Item(id)
		if !ok || item.Effect != content.EffectAttackBoost {
			continue
		}
		m += float64(item.Value) / 100
	}
	return m
}

// defenseReduction sums defense_boost values over equipped items.
func (e *Engine) defenseReduction(st *State) int {
	total := 0
	for _, id := range st.Equipment.Equipped() {
		item, ok := e.Content.Item(id)
		if !ok || item.Effect != content.EffectDefenseBoost {
			continue
		}
		total += item.Value
	}
	return total
}
