package item

import (
	"fmt"
	"strings"
)

// DefaultDurability is given to weapons and armor created with the constructors.
const DefaultDurability = 100

// Weapon deals Damage to the target's "hp" resource and wears down by one
// durability per use.
type Weapon struct {
	Base
	Damage     int
	DamageType string
}

// NewWeapon creates a main-hand weapon at full durability with no proficiency requirement.
func NewWeapon(name string, damage int) *Weapon {
	return &Weapon{
		Base:   Base{Name: name, Durability: DefaultDurability, Slot: SlotMainHand},
		Damage: damage,
	}
}

// Kind returns KindWeapon.
func (w *Weapon) Kind() Kind { return KindWeapon }

// Use strikes target. A nil target is a harmless swing.
func (w *Weapon) Use(target Target) (string, error) {
	if target == nil {
		return fmt.Sprintf("You swing the %s at nothing.", w.Name), nil
	}
	if w.Durability <= 0 {
		return "", fmt.Errorf("%s: %w", w.Name, ErrBroken)
	}
	w.Durability--
	hp := target.ModifyResource("hp", -w.Damage)
	return fmt.Sprintf("The %s hits for %d %s damage (hp %d).",
		w.Name, w.Damage, damageLabel(w.DamageType), hp), nil
}

// Details adds damage to the common summary.
func (w *Weapon) Details() string {
	return w.details(KindWeapon, fmt.Sprintf("Damage %d %s.", w.Damage, damageLabel(w.DamageType)))
}

// CheckProficiency matches ability against Proficiency, case-insensitively.
func (w *Weapon) CheckProficiency(ability string) bool {
	return w.proficient(ability)
}

func damageLabel(t string) string {
	if t == "" {
		return "physical"
	}
	return t
}

// Armor is worn. Using it only reports that it was put on.
type Armor struct {
	Base
	ArmorClass int
}

// NewArmor creates body armor at full durability.
func NewArmor(name string, armorClass int) *Armor {
	return &Armor{
		Base:       Base{Name: name, Durability: DefaultDurability, Slot: SlotBody},
		ArmorClass: armorClass,
	}
}

// Kind returns KindArmor.
func (a *Armor) Kind() Kind { return KindArmor }

// Use reports the armor being put on. Broken armor fails with ErrBroken.
func (a *Armor) Use(Target) (string, error) {
	if a.Durability <= 0 {
		return "", fmt.Errorf("%s: %w", a.Name, ErrBroken)
	}
	return fmt.Sprintf("You don the %s (AC %d).", a.Name, a.ArmorClass), nil
}

// Details adds the armor class to the common summary.
func (a *Armor) Details() string {
	return a.details(KindArmor, fmt.Sprintf("Armor class %d.", a.ArmorClass))
}

// CheckProficiency follows the same rule as weapons.
func (a *Armor) CheckProficiency(ability string) bool {
	return a.proficient(ability)
}

// Potion restores Heal to the target's "hp" resource, spending one charge.
type Potion struct {
	Base
	Heal    int
	Charges int
}

// NewPotion creates a single-charge potion.
func NewPotion(name string, heal int) *Potion {
	return &Potion{Base: Base{Name: name}, Heal: heal, Charges: 1}
}

// Kind returns KindPotion.
func (p *Potion) Kind() Kind { return KindPotion }

// Use heals target. It needs a target and a charge left.
func (p *Potion) Use(target Target) (string, error) {
	if target == nil {
		return "", fmt.Errorf("%s: %w", p.Name, ErrNoTarget)
	}
	if p.Charges <= 0 {
		return "", fmt.Errorf("%s: %w", p.Name, ErrDepleted)
	}
	p.Charges--
	hp := target.ModifyResource("hp", p.Heal)
	return fmt.Sprintf("The %s restores %d hp (hp %d).", p.Name, p.Heal, hp), nil
}

func (p *Potion) Details() string {
	return p.details(KindPotion, fmt.Sprintf("Heals %d, %d charge(s) left.", p.Heal, p.Charges))
}

// Anyone can drink a potion.
func (p *Potion) CheckProficiency(string) bool { return true }

// Container is a bag, chest or quiver. Using it lists what is inside.
type Container struct {
	Base
}

// NewContainer creates a container holding at most limit items (0 for no limit).
func NewContainer(name string, limit int) *Container {
	return &Container{Base: Base{Name: name, SubinventoryLimit: limit, Slot: SlotBack}}
}

// Kind returns KindContainer.
func (c *Container) Kind() Kind { return KindContainer }

func (c *Container) Use(Target) (string, error) {
	if len(c.Subinventory) == 0 {
		return fmt.Sprintf("The %s is empty.", c.Name), nil
	}
	names := make([]string, len(c.Subinventory))
	for i, it := range c.Subinventory {
		names[i] = it.Core().Name
	}
	return fmt.Sprintf("The %s holds: %s.", c.Name, strings.Join(names, ", ")), nil
}

// Details adds the fill level when the container has a limit.
func (c *Container) Details() string {
	if c.SubinventoryLimit > 0 {
		return c.details(KindContainer, fmt.Sprintf("Capacity %d/%d.", len(c.Subinventory), c.SubinventoryLimit))
	}
	return c.details(KindContainer)
}

// CheckProficiency always succeeds.
func (c *Container) CheckProficiency(string) bool { return true }

// Trinket is the minimal variant: always usable, does nothing.
type Trinket struct {
	Base
}

// NewTrinket creates a trinket with only a name set.
func NewTrinket(name string) *Trinket {
	return &Trinket{Base: Base{Name: name}}
}

// Kind returns KindTrinket.
func (t *Trinket) Kind() Kind { return KindTrinket }

func (t *Trinket) Use(Target) (string, error) {
	return fmt.Sprintf("Nothing happens with the %s.", t.Name), nil
}

func (t *Trinket) Details() string {
	return t.details(KindTrinket)
}

func (t *Trinket) CheckProficiency(string) bool { return true }
