package validation

import "fmt"

// bulkKey agrupa movimientos por (item, origen, destino) para detectar conflictos cruzados.
type bulkKey struct {
	itemID string
	from   string
	to     string
}

// ValidateBulk valida cada movimiento de forma independiente y luego ejecuta una pasada
// de conflictos cruzados: varios movimientos sobre la misma tupla (item, origen, destino)
// generan una advertencia con la suma de sus cantidades.
//
// Con atomic=true cualquier movimiento inválido marca el lote completo como inválido;
// con atomic=false el resultado global solo acumula errores y advertencias sin
// necesariamente invalidar el lote. Los resultados individuales se devuelven siempre.
func (v *Validator) ValidateBulk(movements []ProposedMovement, atomic bool) (*Result, []*Result) {
	overall := newResult()
	individual := make([]*Result, 0, len(movements))

	groups := make(map[bulkKey][]int)
	quantities := make(map[bulkKey]int64)

	for i, p := range movements {
		res := v.ValidateMovement(p, false)
		individual = append(individual, res)

		if !res.IsValid {
			prefix := fmt.Sprintf("movimiento %d: ", i+1)
			for _, e := range res.Errors {
				overall.Errors = append(overall.Errors, prefix+e)
			}
			if atomic {
				overall.IsValid = false
			}
		}
		for _, w := range res.Warnings {
			overall.Warnings = append(overall.Warnings, fmt.Sprintf("movimiento %d: %s", i+1, w))
		}

		key := bulkKey{itemID: p.ItemID}
		if p.FromLocationID != nil {
			key.from = *p.FromLocationID
		}
		if p.ToLocationID != nil {
			key.to = *p.ToLocationID
		}
		groups[key] = append(groups[key], i+1)
		quantities[key] += p.Quantity
	}

	for key, indexes := range groups {
		if len(indexes) > 1 {
			overall.addWarning(
				"conflicto en lote: %d movimientos del artículo %s sobre la misma tupla origen/destino (cantidad total %d)",
				len(indexes), key.itemID, quantities[key])
		}
	}

	return overall, individual
}
