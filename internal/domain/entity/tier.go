package entity

// Tier identifica la etapa de inventario entre el almacén y la aplicación en campo.
type Tier string

const (
	TierPrimary    Tier = "PRIMARY"    // almacén principal (lotes de nota fiscal)
	TierTechnical  Tier = "TECHNICAL"  // stock técnico / buffer SmartCalda
	TierFractional Tier = "FRACTIONAL" // stock fraccionado de bancada (envases abiertos)
)

// Valid indica si t es uno de los tiers conocidos.
func (t Tier) Valid() bool {
	switch t {
	case TierPrimary, TierTechnical, TierFractional:
		return true
	}
	return false
}

// ReplenishmentSource devuelve el tier del que se repone un registro que vive en t.
// Técnico se repone desde el principal; fraccionado se repone desde el propio fraccionado.
func (t Tier) ReplenishmentSource() Tier {
	if t == TierFractional {
		return TierFractional
	}
	return TierPrimary
}
