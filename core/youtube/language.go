// ABOUTME: Language code to display name resolution
// ABOUTME: Built-in table of common provider i18n codes; unknown codes fall back to the uppercased code

package youtube

import "strings"

// languageNames maps provider language codes to display names. Regional
// variants not listed here resolve through their base code.
var languageNames = map[string]string{
	"af":     "Afrikaans",
	"am":     "Amharic",
	"ar":     "Arabic",
	"az":     "Azerbaijani",
	"be":     "Belarusian",
	"bg":     "Bulgarian",
	"bn":     "Bengali",
	"bs":     "Bosnian",
	"ca":     "Catalan",
	"cs":     "Czech",
	"da":     "Danish",
	"de":     "German",
	"el":     "Greek",
	"en":     "English",
	"en-GB":  "English (United Kingdom)",
	"en-IN":  "English (India)",
	"en-US":  "English (United States)",
	"es":     "Spanish",
	"es-419": "Spanish (Latin America)",
	"es-US":  "Spanish (United States)",
	"et":     "Estonian",
	"eu":     "Basque",
	"fa":     "Persian",
	"fi":     "Finnish",
	"fil":    "Filipino",
	"fr":     "French",
	"fr-CA":  "French (Canada)",
	"gl":     "Galician",
	"gu":     "Gujarati",
	"he":     "Hebrew",
	"hi":     "Hindi",
	"hr":     "Croatian",
	"hu":     "Hungarian",
	"hy":     "Armenian",
	"id":     "Indonesian",
	"is":     "Icelandic",
	"it":     "Italian",
	"ja":     "Japanese",
	"ka":     "Georgian",
	"kk":     "Kazakh",
	"km":     "Khmer",
	"kn":     "Kannada",
	"ko":     "Korean",
	"ky":     "Kyrgyz",
	"lo":     "Lao",
	"lt":     "Lithuanian",
	"lv":     "Latvian",
	"mk":     "Macedonian",
	"ml":     "Malayalam",
	"mn":     "Mongolian",
	"mr":     "Marathi",
	"ms":     "Malay",
	"my":     "Burmese",
	"ne":     "Nepali",
	"nl":     "Dutch",
	"no":     "Norwegian",
	"pa":     "Punjabi",
	"pl":     "Polish",
	"pt":     "Portuguese",
	"pt-BR":  "Portuguese (Brazil)",
	"pt-PT":  "Portuguese (Portugal)",
	"ro":     "Romanian",
	"ru":     "Russian",
	"si":     "Sinhala",
	"sk":     "Slovak",
	"sl":     "Slovenian",
	"sq":     "Albanian",
	"sr":     "Serbian",
	"sv":     "Swedish",
	"sw":     "Swahili",
	"ta":     "Tamil",
	"te":     "Telugu",
	"th":     "Thai",
	"tr":     "Turkish",
	"uk":     "Ukrainian",
	"ur":     "Urdu",
	"uz":     "Uzbek",
	"vi":     "Vietnamese",
	"zh":     "Chinese",
	"zh-CN":  "Chinese (China)",
	"zh-HK":  "Chinese (Hong Kong)",
	"zh-TW":  "Chinese (Taiwan)",
	"zu":     "Zulu",
}

// LanguageName resolves a provider language code to its display name.
// Lookup order: exact code, lowercased code, then the base code before any
// region subtag. Unknown codes come back uppercased so the caller still has
// something presentable.
func LanguageName(code string) string {
	if code == "" {
		return "Unknown"
	}

	if name, ok := languageNames[code]; ok {
		return name
	}

	lower := strings.ToLower(code)
	if name, ok := languageNames[lower]; ok {
		return name
	}

	base := strings.SplitN(lower, "-", 2)[0]
	if name, ok := languageNames[base]; ok {
		return name
	}

	return strings.ToUpper(code)
}

// languageOrNil builds a Language pair, or nil when the code is absent.
func languageOrNil(code string) *Language {
	if code == "" {
		return nil
	}
	return &Language{Code: code, Name: LanguageName(code)}
}
