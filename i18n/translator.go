package i18n

// Translator retrieves message templates for error codes. data provides
// optional metadata; the built-in dictionary ignores it and returns templates
// containing %{name} placeholders that the error model substitutes.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "required":
			return "必須フィールドが不足しています"
		case "invalid_type":
			return "%{expected} が必要です"
		case "invalid_enum":
			return "次のいずれかである必要があります: %{allowed}"
		case "not_equal":
			return "%{expected} と等しい必要があります"
		case "equal":
			return "%{expected} と等しくない必要があります"
		case "arity_mismatch":
			return "%{expected} 要素のタプルが必要です (実際: %{actual})"
		case "no_match":
			return "どの形にも一致しません: %{expected}"
		case "too_small":
			return "%{limit} 以上である必要があります"
		case "too_big":
			return "%{limit} 以下である必要があります"
		case "not_greater":
			return "%{limit} より大きい必要があります"
		case "not_less":
			return "%{limit} より小さい必要があります"
		case "too_short":
			return "長さは %{limit} 以上である必要があります"
		case "too_long":
			return "長さは %{limit} 以下である必要があります"
		case "wrong_length":
			return "長さはちょうど %{limit} である必要があります"
		case "pattern":
			return "パターン %{pattern} に一致する必要があります"
		case "invalid_schema":
			return "スキーマが不正です"
		}
	default: // "en"
		switch code {
		case "required":
			return "is required"
		case "invalid_type":
			return "expected %{expected}"
		case "invalid_enum":
			return "must be one of: %{allowed}"
		case "not_equal":
			return "must equal %{expected}"
		case "equal":
			return "must not equal %{expected}"
		case "arity_mismatch":
			return "expected tuple of %{expected} elements, got %{actual}"
		case "no_match":
			return "does not match any of: %{expected}"
		case "too_small":
			return "must be at least %{limit}"
		case "too_big":
			return "must be at most %{limit}"
		case "not_greater":
			return "must be greater than %{limit}"
		case "not_less":
			return "must be less than %{limit}"
		case "too_short":
			return "length must be at least %{limit}"
		case "too_long":
			return "length must be at most %{limit}"
		case "wrong_length":
			return "length must be exactly %{limit}"
		case "pattern":
			return "must match pattern %{pattern}"
		case "invalid_schema":
			return "invalid schema"
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

// T fetches a message template for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
