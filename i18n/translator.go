package i18n

import (
	"strings"
	"sync/atomic"
)

// Translator retrieves localized messages for failure codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "actual").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Templates
// reference data keys as {key}; unknown keys are left as written.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"type_mismatch": "expected {expected}, got {actual}",
		"out_of_range":  "{value} is out of range for {expected}",
		"parse_error":   "parse error",
		"duplicate_key": "duplicate key {key}",
		"max_depth":     "maximum nesting depth exceeded",
		"trailing_data": "unexpected data after the top-level value",
	},
	"ja": {
		"type_mismatch": "型が不正です ({expected} を期待しましたが {actual} でした)",
		"out_of_range":  "{value} は {expected} の範囲外です",
		"parse_error":   "解析エラー",
		"duplicate_key": "キー {key} が重複しています",
		"max_depth":     "ネストの深さが上限を超えました",
		"trailing_data": "トップレベルの値の後に余分なデータがあります",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

type holder struct{ tr Translator }

var current atomic.Value

func init() { current.Store(holder{dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	current.Store(holder{dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	current.Store(holder{tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	return current.Load().(holder).tr.Message(code, data)
}
