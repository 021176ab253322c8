package greeting

// DefaultLanguage is used when no language is requested.
const DefaultLanguage = "en"

var salutations = map[string]string{
	"en": "Hello",
	"zh": "你好",
	"es": "Hola",
	"fr": "Bonjour",
	"de": "Hallo",
	"ja": "こんにちは",
	"ko": "안녕하세요",
	"ru": "Привет",
	"ar": "مرحبا",
	"it": "Ciao",
}

// languageOrder keeps Languages stable for help output.
var languageOrder = []string{"en", "zh", "es", "fr", "de", "ja", "ko", "ru", "ar", "it"}

// Salutation returns the word used to greet in lang, falling back to English.
func Salutation(lang string) string {
	if s, ok := salutations[lang]; ok {
		return s
	}
	return salutations[DefaultLanguage]
}

// Languages lists the supported language codes.
func Languages() []string {
	out := make([]string, len(languageOrder))
	copy(out, languageOrder)
	return out
}

// IsLanguage reports whether code is supported.
func IsLanguage(code string) bool {
	_, ok := salutations[code]
	return ok
}
