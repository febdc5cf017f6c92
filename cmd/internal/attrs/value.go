package attrs

// Kind — итоговый тип значения атрибута после разбора.
type Kind string

const (
	KindNumeric  Kind = "numeric"
	KindString   Kind = "string"
	KindBoolean  Kind = "boolean"
	KindRange    Kind = "range"
	KindMultiple Kind = "multiple"
	KindUnknown  Kind = "unknown"
)

// BoundKind — вид границы диапазона.
type BoundKind int

const (
	BoundFinite BoundKind = iota
	BoundNegInf
	BoundPosInf
)

// Bound — граница диапазона: конечное число либо бесконечность.
type Bound struct {
	Kind  BoundKind
	Value float64
}

func FiniteBound(v float64) Bound { return Bound{Kind: BoundFinite, Value: v} }
func NegInfBound() Bound          { return Bound{Kind: BoundNegInf} }
func PosInfBound() Bound          { return Bound{Kind: BoundPosInf} }

// LTE сообщает, что граница b не превосходит x (для -inf всегда true,
// для +inf всегда false).
func (b Bound) LTE(x float64) bool {
	switch b.Kind {
	case BoundNegInf:
		return true
	case BoundPosInf:
		return false
	default:
		return b.Value <= x
	}
}

// GTE сообщает, что граница b не меньше x.
func (b Bound) GTE(x float64) bool {
	switch b.Kind {
	case BoundNegInf:
		return false
	case BoundPosInf:
		return true
	default:
		return b.Value >= x
	}
}

// LTEBound сравнивает две границы: b <= other.
func (b Bound) LTEBound(other Bound) bool {
	switch {
	case b.Kind == BoundNegInf || other.Kind == BoundPosInf:
		return true
	case b.Kind == BoundPosInf:
		return other.Kind == BoundPosInf
	case other.Kind == BoundNegInf:
		return false
	default:
		return b.Value <= other.Value
	}
}

// TypedValue — размеченное объединение значений атрибута. Поле Kind
// определяет, какие из остальных полей заполнены:
//
//	numeric  — Number, Unit
//	string   — Text
//	boolean  — Bool
//	range    — Lower, Upper, Unit
//	multiple — Items (каждый элемент простой)
//
// Значения неизменяемы после разбора.
type TypedValue struct {
	Kind   Kind
	Number float64
	Text   string
	Bool   bool
	Unit   string
	Lower  Bound
	Upper  Bound
	Items  []TypedValue
}

func NumericValue(v float64, unit string) TypedValue {
	return TypedValue{Kind: KindNumeric, Number: v, Unit: unit}
}

func StringValue(s string) TypedValue {
	return TypedValue{Kind: KindString, Text: s}
}

func BooleanValue(b bool) TypedValue {
	return TypedValue{Kind: KindBoolean, Bool: b}
}

func RangeValue(lower, upper Bound, unit string) TypedValue {
	return TypedValue{Kind: KindRange, Lower: lower, Upper: upper, Unit: unit}
}

func MultipleValue(items []TypedValue) TypedValue {
	return TypedValue{Kind: KindMultiple, Items: items}
}

// ParsedAttribute — атрибут позиции или кандидата после разбора и
// нормализации. PositionAttrID равен нулю для атрибутов кандидата.
type ParsedAttribute struct {
	PositionAttrID int64
	OriginalName   string
	OriginalValue  string
	OriginalUnit   string
	Name           string
	Value          TypedValue
	ValueLemma     string
}

// Kind — итоговый тип значения.
func (a ParsedAttribute) Kind() Kind {
	return a.Value.Kind
}
