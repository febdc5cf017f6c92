package attrs

// Grouped — атрибуты кандидата, разложенные по итоговому типу значения.
// Порядок внутри каждой группы — порядок появления в документе.
type Grouped struct {
	Boolean  []ParsedAttribute
	Numeric  []ParsedAttribute
	String   []ParsedAttribute
	Range    []ParsedAttribute
	Multiple []ParsedAttribute
	Unknown  []ParsedAttribute
}

// Add раскладывает атрибут в группу по его типу.
func (g *Grouped) Add(a ParsedAttribute) {
	switch a.Kind() {
	case KindBoolean:
		g.Boolean = append(g.Boolean, a)
	case KindNumeric:
		g.Numeric = append(g.Numeric, a)
	case KindString:
		g.String = append(g.String, a)
	case KindRange:
		g.Range = append(g.Range, a)
	case KindMultiple:
		g.Multiple = append(g.Multiple, a)
	default:
		g.Unknown = append(g.Unknown, a)
	}
}

// Group возвращает группу по типу значения.
func (g *Grouped) Group(k Kind) []ParsedAttribute {
	switch k {
	case KindBoolean:
		return g.Boolean
	case KindNumeric:
		return g.Numeric
	case KindString:
		return g.String
	case KindRange:
		return g.Range
	case KindMultiple:
		return g.Multiple
	default:
		return g.Unknown
	}
}

// All собирает все атрибуты в один список (метаданные для логов).
func (g *Grouped) All() []ParsedAttribute {
	all := make([]ParsedAttribute, 0,
		len(g.Boolean)+len(g.Numeric)+len(g.String)+len(g.Range)+len(g.Multiple)+len(g.Unknown))
	all = append(all, g.Boolean...)
	all = append(all, g.Numeric...)
	all = append(all, g.String...)
	all = append(all, g.Range...)
	all = append(all, g.Multiple...)
	all = append(all, g.Unknown...)
	return all
}

// Total — общее количество разобранных атрибутов.
func (g *Grouped) Total() int {
	return len(g.Boolean) + len(g.Numeric) + len(g.String) +
		len(g.Range) + len(g.Multiple) + len(g.Unknown)
}
