package quote

import "fmt"

// ItemKind identifies a line-item variant. Values match the path segment used
// by the item endpoints ("item-<kind>").
type ItemKind string

const (
	ItemService  ItemKind = "servicio"
	ItemMaterial ItemKind = "material"
	ItemLabor    ItemKind = "mano-obra"
)

// ItemKinds lists every line-item kind in display order.
func ItemKinds() []ItemKind {
	return []ItemKind{ItemService, ItemMaterial, ItemLabor}
}

// Noun is the word used in user-facing messages about the item kind.
func (k ItemKind) Noun() string {
	switch k {
	case ItemLabor:
		return "trabajo"
	default:
		return string(k)
	}
}

// Valid reports whether k is a known item kind.
func (k ItemKind) Valid() bool {
	switch k {
	case ItemService, ItemMaterial, ItemLabor:
		return true
	}
	return false
}

// ParseItemKind converts a raw token into an ItemKind.
func ParseItemKind(raw string) (ItemKind, error) {
	kind := ItemKind(raw)
	if !kind.Valid() {
		return "", fmt.Errorf("quote: unknown item kind %q", raw)
	}
	return kind, nil
}

// EntityKind identifies a master-data list managed from the admin pages.
type EntityKind string

const (
	EntityClient   EntityKind = "cliente"
	EntityService  EntityKind = "servicio"
	EntityMaterial EntityKind = "material"
)

// EntityKinds lists every master-data kind.
func EntityKinds() []EntityKind {
	return []EntityKind{EntityClient, EntityService, EntityMaterial}
}

// Noun is the word used in user-facing messages about the entity kind.
func (k EntityKind) Noun() string {
	return string(k)
}

// Valid reports whether k is a known entity kind.
func (k EntityKind) Valid() bool {
	switch k {
	case EntityClient, EntityService, EntityMaterial:
		return true
	}
	return false
}

// ParseEntityKind converts a raw token into an EntityKind.
func ParseEntityKind(raw string) (EntityKind, error) {
	kind := EntityKind(raw)
	if !kind.Valid() {
		return "", fmt.Errorf("quote: unknown entity kind %q", raw)
	}
	return kind, nil
}
