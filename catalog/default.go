package catalog

import (
	"github.com/nathoo/rpgkit/model/class"
	"github.com/nathoo/rpgkit/model/entity"
	"github.com/nathoo/rpgkit/model/item"
	"github.com/nathoo/rpgkit/model/species"
	"github.com/nathoo/rpgkit/model/stat"
	"github.com/nathoo/rpgkit/types"
)

// Default returns the built-in starter content used when no content
// directory is configured.
func Default() *Catalog {
	c := New()
	c.Meta = Meta{Title: "Starter Set", Author: "rpgkit", Version: "1.0", Start: "hero"}

	c.Classes["fighter"] = class.Record{
		Name: "Fighter", Classtype: types.ClasstypeMartial, Progression: class.Fighter.ID(),
	}
	c.Classes["wizard"] = class.Record{
		Name: "Wizard", Classtype: types.ClasstypeCaster, Progression: class.Wizard.ID(),
	}

	c.Species["human"] = species.Species{
		Name: "Human", Description: "Adaptable and ambitious", Lifespan: 80,
		Habitat: "Everywhere", Abilities: []string{"Versatile"},
	}
	c.Species["elf"] = species.Species{
		Name: "Elf", Description: "Graceful and long-lived", Lifespan: 750,
		Habitat: "Forests", Abilities: []string{"Darkvision", "Trance"},
	}

	c.Items["longsword"] = item.Record{
		Kind: item.KindWeapon, Name: "Longsword", Weight: 3, Value: 15,
		Durability: item.DefaultDurability, Slot: item.SlotMainHand,
		Proficiency: "martial", Damage: 8, DamageType: "slashing",
	}
	c.Items["dagger"] = item.Record{
		Kind: item.KindWeapon, Name: "Dagger", Weight: 1, Value: 2,
		Durability: item.DefaultDurability, Slot: item.SlotOffHand,
		Damage: 4, DamageType: "piercing",
	}
	c.Items["chain_mail"] = item.Record{
		Kind: item.KindArmor, Name: "Chain Mail", Weight: 55, Value: 75,
		Durability: item.DefaultDurability, Slot: item.SlotBody,
		Proficiency: "heavy", ArmorClass: 16,
	}
	c.Items["healing_potion"] = item.Record{
		Kind: item.KindPotion, Name: "Healing Potion", Weight: 0.5, Value: 50,
		Heal: 7, Charges: 1,
	}
	c.Items["backpack"] = item.Record{
		Kind: item.KindContainer, Name: "Backpack", Weight: 5, Value: 2,
		Slot: item.SlotBack, SubinventoryLimit: 10,
	}
	c.Items["rope"] = item.Record{
		Kind: item.KindTrinket, Name: "Rope", Description: "Fifty feet of hempen rope.",
		Weight: 10, Value: 1,
	}

	c.Entities["hero"] = entity.Record{
		Name:        "Hero",
		Description: "A hero.",
		Tags:        []string{"player"},
		Stats:       abilityStats(15, 12, 14, 10, 13, 8),
		Class:       ptr(c.Classes["fighter"]),
		Species:     ptr(c.Species["human"]),
		Actions: []types.Action{
			{Name: "Attack", Description: "Strike with the wielded weapon."},
			{Name: "Dodge", Description: "Focus entirely on avoiding attacks."},
		},
		Inventory: []item.Record{
			c.Items["longsword"],
			c.Items["chain_mail"],
			withContents(c.Items["backpack"], c.Items["rope"], c.Items["healing_potion"]),
		},
		Resources: []types.Resource{{Name: "hp", Amount: 12}, {Name: "gold", Amount: 10}},
	}
	return c
}

// AbilityNames are the six classic ability scores, in sheet order.
var AbilityNames = []string{"Strength", "Dexterity", "Constitution", "Intelligence", "Wisdom", "Charisma"}

func abilityStats(values ...int) []stat.Stat {
	stats := make([]stat.Stat, len(values))
	for i, v := range values {
		stats[i] = stat.Stat{Name: AbilityNames[i], Value: v, Rule: stat.RuleAbility}
	}
	return stats
}

func withContents(container item.Record, contents ...item.Record) item.Record {
	container.Subinventory = append([]item.Record(nil), contents...)
	return container
}

func ptr[T any](v T) *T { return &v }
