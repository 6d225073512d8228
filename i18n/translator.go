package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data carries optional values to embed in the message (for example
// "expected", "got" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_selector":
			return "セレクタはトップレベルのフィールドを指していません"
		case "unexpected_shape":
			return "オブジェクトが必要です" + suffix(data, "（実際: ", "got", "）")
		case "invalid_type":
			return "型が不正です"
		case "parse_error":
			return "解析エラー"
		case "duplicate_key":
			return "キーが重複しています" + suffix(data, ": ", "key", "")
		case "construction":
			return "モデルを構築できません"
		}
	default: // "en"
		switch code {
		case "invalid_selector":
			return "selector does not address a top-level field"
		case "unexpected_shape":
			return "expected object" + suffix(data, ", got ", "got", "")
		case "invalid_type":
			return "invalid type"
		case "parse_error":
			return "parse error"
		case "duplicate_key":
			return "duplicate key" + suffix(data, " ", "key", "")
		case "construction":
			return "model cannot be constructed"
		}
	}
	return code
}

func suffix(data map[string]string, before, key, after string) string {
	v, ok := data[key]
	if !ok || v == "" {
		return ""
	}
	return before + v + after
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation. nil restores the
// English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
