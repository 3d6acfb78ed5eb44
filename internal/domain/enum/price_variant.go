package enum

// PriceVariant is one of the two independent price tiers a product may
// offer: an individual portion or a shared/family portion.
type PriceVariant string

const (
	VariantPersonal PriceVariant = "personal"
	VariantFuente   PriceVariant = "fuente"
)

// Valid reports whether v is one of the known variants.
func (v PriceVariant) Valid() bool {
	return v == VariantPersonal || v == VariantFuente
}

// Suffix returns the display suffix appended to product names that price
// both variants, e.g. " (Personal)".
func (v PriceVariant) Suffix() string {
	switch v {
	case VariantPersonal:
		return " (Personal)"
	case VariantFuente:
		return " (Fuente)"
	}
	return ""
}
