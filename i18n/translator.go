package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "path" or "schema").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "duplicate_key":
			return "キーが重複しています"
		case "unknown_key":
			return "未知のキーです"
		case "schema_cycle":
			return "スキーマが循環参照しています"
		case "invalid_tag":
			return "不正なフィールドタグです"
		case "invalid_path":
			return "不正なフィールドパスです"
		case "overlap":
			return "include と exclude の両方に含まれています"
		case "unknown_schema":
			return "未定義のスキーマです"
		case "unknown_profile":
			return "未定義のプロファイルです"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "duplicate_key":
			return "duplicate key"
		case "unknown_key":
			return "unknown key"
		case "schema_cycle":
			return "schemas reference each other in a cycle"
		case "invalid_tag":
			return "invalid field tag"
		case "invalid_path":
			return "invalid field path"
		case "overlap":
			return "path is both included and excluded"
		case "unknown_schema":
			return "unknown schema"
		case "unknown_profile":
			return "unknown profile"
		case "parse_error":
			return "parse error"
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
