package i18n

// Language represents a supported language.
type Language string

const (
	// English is the English language.
	English Language = "en"
	// Spanish is the Spanish language.
	Spanish Language = "es"
)

// DefaultLanguage is the fallback language.
const DefaultLanguage = Language(Spanish)

// translations maps language codes to translation keys and their values.
var translations = map[Language]map[string]string{
	English: {
		"error.internal":            "Something went wrong. Please try again later.",
		"error.not_found":           "The requested resource was not found.",
		"error.bad_request":         "The request could not be understood.",
		"error.unauthorized":        "Sign in to continue.",
		"error.insufficient_data":   "Not enough workout history to analyze. Keep training and try again.",
		"error.invalid_credentials": "Invalid API key.",
		"deload.immediate":          "Inmediato",
		"deload.next_week":          "Próxima semana",
		"deload.in_2_3_weeks":       "En 2-3 semanas",
	},
	Spanish: {
		"error.internal":            "Algo salió mal. Inténtalo de nuevo más tarde.",
		"error.not_found":           "No se encontró el recurso solicitado.",
		"error.bad_request":         "No se pudo entender la solicitud.",
		"error.unauthorized":        "Inicia sesión para continuar.",
		"error.insufficient_data":   "No hay suficiente historial de entrenamiento para analizar. Sigue entrenando e inténtalo de nuevo.",
		"error.invalid_credentials": "Clave de API inválida.",
		"deload.immediate":          "Inmediato",
		"deload.next_week":          "Próxima semana",
		"deload.in_2_3_weeks":       "En 2-3 semanas",
	},
}

// SupportedLanguages returns a list of all supported languages.
func SupportedLanguages() []Language {
	return []Language{English, Spanish}
}

// IsSupported checks if a language is supported.
func IsSupported(lang Language) bool {
	_, ok := translations[lang]
	return ok
}

// Translate returns the translation for the given key in the specified language.
// If the key is not found, it falls back to the default language.
// If still not found, it returns the key itself.
func Translate(lang Language, key string) string {
	// Try the requested language.
	if langTranslations, ok := translations[lang]; ok {
		if translation, ok := langTranslations[key]; ok {
			return translation
		}
	}

	// Fallback to default language.
	if lang != DefaultLanguage {
		if langTranslations, ok := translations[DefaultLanguage]; ok {
			if translation, ok := langTranslations[key]; ok {
				return translation
			}
		}
	}

	// Return the key itself if no translation found.
	return key
}
