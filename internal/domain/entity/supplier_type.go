package entity

// SupplierType categorizes what a supplier provides.
type SupplierType string

const (
	SupplierTypeRawMaterials  SupplierType = "raw_materials"
	SupplierTypeFinishedGoods SupplierType = "finished_goods"
	SupplierTypeServices      SupplierType = "services"
	SupplierTypeEquipment     SupplierType = "equipment"
	SupplierTypeOther         SupplierType = "other"
)

// String returns the string representation of the SupplierType.
func (t SupplierType) String() string {
	return string(t)
}

// IsValid checks if the SupplierType is a valid value.
func (t SupplierType) IsValid() bool {
	switch t {
	case SupplierTypeRawMaterials, SupplierTypeFinishedGoods, SupplierTypeServices, SupplierTypeEquipment, SupplierTypeOther:
		return true
	default:
		return false
	}
}

// SupplierTypeOrDefault parses s into a SupplierType, falling back to "other"
// for empty or unknown values.
func SupplierTypeOrDefault(s string) SupplierType {
	t := SupplierType(s)
	if t.IsValid() {
		return t
	}

	return SupplierTypeOther
}
