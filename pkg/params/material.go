package params

import (
	"github.com/goliatone/go-cotizador/pkg/form"
)

// SelectMaterial makes materialID the selection of sel and copies the price
// carried by the chosen option into price.
func SelectMaterial(sel *form.Control, materialID string, price *form.Control) bool {
	if !sel.Select(materialID) {
		return false
	}
	opt, _ := sel.Selected()
	if p, ok := opt.Attrs[AttrPrice]; ok && price != nil {
		price.Value = p
	}
	return true
}
