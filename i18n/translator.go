package i18n

import "strings"

// Translator retrieves localized messages for packing error codes and the
// labels used when rendering them. data provides optional values substituted
// into "{name}" placeholders (for example, "count").
type Translator interface {
	Message(code string, data map[string]string) string
}

// Message keys for the labels of a rendered packing error.
const (
	LabelHeader           = "label.header"
	LabelExpectedSequence = "label.expected_sequence"
	LabelFoundSequence    = "label.found_sequence"
	LabelExpectedAny      = "label.expected_any"
	LabelFoundRule        = "label.found_rule"
	LabelPresent          = "label.present"
	LabelExpected         = "label.expected"
	LabelNoRules          = "label.no_rules"
	LabelContext          = "label.context"
)

var dictionaries = map[string]map[string]string{
	"en": {
		"wrong_sequence":        "encountered unexpected sequence of rules",
		"wrong_alternative":     "encountered unexpected rule",
		"too_few":               "found fewer than {count} rules",
		"too_many":              "found more than {count} rules",
		"no_children_found":     "found no children for node",
		"leaf_transform_failed": "failed to interpret matched text",
		LabelHeader:             "PACKING ERROR",
		LabelExpectedSequence:   "Expected a sequence of the following rules",
		LabelFoundSequence:      "Instead found the following sequence of rules",
		LabelExpectedAny:        "Expected any one of the following rules",
		LabelFoundRule:          "Instead found the following rule",
		LabelPresent:            "Matching rules",
		LabelExpected:           "Expected rules",
		LabelNoRules:            "[No rules]",
		LabelContext:            "Context",
	},
	"ja": {
		"wrong_sequence":        "予期しない規則の並びです",
		"wrong_alternative":     "予期しない規則です",
		"too_few":               "規則が{count}個未満です",
		"too_many":              "規則が{count}個を超えています",
		"no_children_found":     "子ノードがありません",
		"leaf_transform_failed": "一致したテキストを解釈できません",
		LabelHeader:             "パッキングエラー",
		LabelExpectedSequence:   "期待した規則の並び",
		LabelFoundSequence:      "実際の規則の並び",
		LabelExpectedAny:        "期待した規則のいずれか",
		LabelFoundRule:          "実際の規則",
		LabelPresent:            "一致した規則",
		LabelExpected:           "期待した規則",
		LabelNoRules:            "[規則なし]",
		LabelContext:            "コンテキスト",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		msg, ok = dictionaries["en"][code]
	}
	if !ok {
		return code
	}
	return expand(msg, data)
}

func expand(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// built-in dictionary). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }

// Supported reports whether the built-in dictionary covers lang.
func Supported(lang string) bool {
	_, ok := dictionaries[lang]
	return ok
}
