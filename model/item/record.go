package item

import "fmt"

// Record is the serializable form of an item tree. Kind selects the variant;
// variant-specific fields are zero when they do not apply.
type Record struct {
	Kind              Kind     `json:"kind" yaml:"kind"`
	Name              string   `json:"name" yaml:"name"`
	Description       string   `json:"description,omitempty" yaml:"description,omitempty"`
	Weight            float64  `json:"weight,omitempty" yaml:"weight,omitempty"`
	Value             int      `json:"value,omitempty" yaml:"value,omitempty"`
	Durability        int      `json:"durability,omitempty" yaml:"durability,omitempty"`
	Resources         []string `json:"resources,omitempty" yaml:"resources,omitempty"`
	Slot              Slot     `json:"slot,omitempty" yaml:"slot,omitempty"`
	Proficiency       string   `json:"proficiency,omitempty" yaml:"proficiency,omitempty"`
	SubinventoryLimit int      `json:"subinventory_limit,omitempty" yaml:"subinventory_limit,omitempty"`
	Subinventory      []Record `json:"subinventory,omitempty" yaml:"subinventory,omitempty"`

	Damage     int    `json:"damage,omitempty" yaml:"damage,omitempty"`
	DamageType string `json:"damage_type,omitempty" yaml:"damage_type,omitempty"`
	ArmorClass int    `json:"armor_class,omitempty" yaml:"armor_class,omitempty"`
	Heal       int    `json:"heal,omitempty" yaml:"heal,omitempty"`
	Charges    int    `json:"charges,omitempty" yaml:"charges,omitempty"`
}

// ToRecord converts an item tree into its serializable form.
func ToRecord(it Item) Record {
	b := it.Core()
	r := Record{
		Kind:              it.Kind(),
		Name:              b.Name,
		Description:       b.Description,
		Weight:            b.Weight,
		Value:             b.Value,
		Durability:        b.Durability,
		Resources:         append([]string(nil), b.Resources...),
		Slot:              b.Slot,
		Proficiency:       b.Proficiency,
		SubinventoryLimit: b.SubinventoryLimit,
	}
	for _, sub := range b.Subinventory {
		r.Subinventory = append(r.Subinventory, ToRecord(sub))
	}

	switch v := it.(type) {
	case *Weapon:
		r.Damage = v.Damage
		r.DamageType = v.DamageType
	case *Armor:
		r.ArmorClass = v.ArmorClass
	case *Potion:
		r.Heal = v.Heal
		r.Charges = v.Charges
	}
	return r
}

// FromRecord builds a fresh item tree. Sub-items are added through
// AddToSubinventory, so a record exceeding its own limit is rejected.
func FromRecord(r Record) (Item, error) {
	base := Base{
		Name:              r.Name,
		Description:       r.Description,
		Durability:        r.Durability,
		Resources:         append([]string(nil), r.Resources...),
		Value:             r.Value,
		Slot:              r.Slot,
		Proficiency:       r.Proficiency,
		SubinventoryLimit: r.SubinventoryLimit,
	}
	if err := base.SetWeight(r.Weight); err != nil {
		return nil, err
	}

	var it Item
	switch r.Kind {
	case KindWeapon:
		it = &Weapon{Base: base, Damage: r.Damage, DamageType: r.DamageType}
	case KindArmor:
		it = &Armor{Base: base, ArmorClass: r.ArmorClass}
	case KindPotion:
		it = &Potion{Base: base, Heal: r.Heal, Charges: r.Charges}
	case KindContainer:
		it = &Container{Base: base}
	case KindTrinket:
		it = &Trinket{Base: base}
	default:
		return nil, fmt.Errorf("%s: %w %q", r.Name, ErrUnknownKind, r.Kind)
	}

	for _, subRec := range r.Subinventory {
		sub, err := FromRecord(subRec)
		if err != nil {
			return nil, err
		}
		if err := it.Core().AddToSubinventory(sub); err != nil {
			return nil, err
		}
	}
	return it, nil
}
