package api_models

import "encoding/json"

// TenderReadyMessage — сообщение из очереди matching_queue о тендере,
// готовом к мэтчингу.
type TenderReadyMessage struct {
	TenderID     int64   `json:"tender_id"`
	TenderNumber *string `json:"tender_number,omitempty"`
	CustomerName *string `json:"customer_name,omitempty"`
}

// StandardizedAttribute — один разобранный атрибут из ответа сервиса
// стандартизации характеристик. Поле value полиморфно:
//   - simple:   {"value": <скаляр>, "unit": <строка|null>}
//   - range:    [{"value": <число|"_inf-"|"_inf+">, "unit": ...}, {...}]
//   - multiple: [{"value": <скаляр>, "unit": ...}, ...]
type StandardizedAttribute struct {
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// ValueItem — элемент полиморфного поля value.
type ValueItem struct {
	Value any     `json:"value"`
	Unit  *string `json:"unit"`
}

// UnitNormalization — ответ сервиса стандартизации единиц измерения.
// При success=false вызывающая сторона оставляет исходные значение и юнит.
type UnitNormalization struct {
	Success         bool     `json:"success"`
	BaseValue       *float64 `json:"base_value,omitempty"`
	BaseUnit        *string  `json:"base_unit,omitempty"`
	NormalizedValue *float64 `json:"normalized_value,omitempty"`
	NormalizedUnit  *string  `json:"normalized_unit,omitempty"`
}

// SemanticScore — ответ семантического сервиса на сравнение пары строк.
type SemanticScore struct {
	Score float64 `json:"score"`
}

// ProductAttribute — атрибут товара из поискового индекса. Товары проходят
// стандартизацию выше по конвейеру, поэтому предпочтительны standardized_*
// поля с откатом на original_*.
type ProductAttribute struct {
	OriginalName      string          `json:"original_name"`
	OriginalValue     any             `json:"original_value"`
	StandardizedName  string          `json:"standardized_name"`
	StandardizedValue json.RawMessage `json:"standardized_value"`
	StandardizedUnit  string          `json:"standardized_unit"`
	AttributeType     string          `json:"attribute_type"`
	ValueLemma        string          `json:"value_lemma"`
}

// ProductSource — документ товара (_source) из индекса.
type ProductSource struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Category       string             `json:"category"`
	YandexCategory string             `json:"yandex_category"`
	Description    string             `json:"description"`
	Attributes     []ProductAttribute `json:"attributes"`
}

// ProductHit — один кандидат из выдачи поиска.
type ProductHit struct {
	Index  string        `json:"_index"`
	DocID  string        `json:"_id"`
	Score  float64       `json:"_score"`
	Source ProductSource `json:"_source"`
}

// CandidatesResponse — форма выдачи поискового индекса.
type CandidatesResponse struct {
	Hits struct {
		Hits []ProductHit `json:"hits"`
	} `json:"hits"`
}

// CompareStringsRequest — тело локального отладочного эндпоинта сравнения строк.
type CompareStringsRequest struct {
	String1 string `json:"string1" binding:"required"`
	String2 string `json:"string2" binding:"required"`
}

// ESCandidatesRequest — тело отладочного эндпоинта выборки кандидатов.
type ESCandidatesRequest struct {
	IndexName              string `json:"index_name" binding:"required"`
	PositionTitle          string `json:"position_title" binding:"required"`
	PositionYandexCategory string `json:"position_yandex_category"`
	Size                   int    `json:"size"`
}
