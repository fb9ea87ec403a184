package i18n

// Translator retrieves localized messages for diagnostic codes.
// data provides optional metadata to embed in the message (for example,
// "directive").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "unsupported_location":
			return "サポートされていないマーカー表示位置です"
		case "expected_location":
			return "'display' の引数にはマーカー表示位置が必要です"
		case "unsupported_format":
			return "サポートされていないフォーマット指定子です"
		case "expected_format":
			return "'format' の引数にはマーカーフォーマット指定子が必要です"
		case "too_many_formats":
			return "フォーマット引数が多すぎます"
		case "unexpected_argument":
			return "'" + data["directive"] + "' に予期しない引数があります"
		case "expected_static":
			return "'static' の引数には引用符付きのラベルと値が必要です"
		case "unsupported_type":
			return "サポートされていないマーカーフィールド型です"
		case "embedded_field":
			return "マーカーでは埋め込みフィールドはサポートされていません"
		case "unknown_type":
			return "マーカー型が見つかりません"
		case "duplicate_key":
			return "フィールドキー '" + data["key"] + "' が重複しています"
		}
	default: // "en"
		switch code {
		case "unsupported_location":
			return "Unsupported marker display location"
		case "expected_location":
			return "Expected a marker display location as argument to 'display'"
		case "unsupported_format":
			return "Unsupported format specifier"
		case "expected_format":
			return "Expected a marker format specifier as argument to 'format'"
		case "too_many_formats":
			return "Too many format arguments"
		case "unexpected_argument":
			return "Unexpected argument to '" + data["directive"] + "'"
		case "expected_static":
			return "Expected a quoted label and value as arguments to 'static'"
		case "unsupported_type":
			return "Unsupported marker field type"
		case "embedded_field":
			return "Embedded fields are not supported in markers"
		case "unknown_type":
			return "Marker type not found"
		case "duplicate_key":
			return "Duplicate marker field key '" + data["key"] + "'"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
