package i18n

import (
	"log"
	"os"
	"strings"

	"github.com/jeandeaual/go-locale"
)

var lang string

var translations = map[string]map[string]string{
	"Break": {
		"pt": "Pausa",
		"es": "Descanso",
		"ru": "Перерыв",
	},
	"Reset": {
		"pt": "Resetar",
		"es": "Reiniciar",
		"ru": "Сброс",
	},
	"Paused": {
		"pt": "Pausado",
		"es": "Pausado",
		"ru": "Пауза",
	},
	"Studying": {
		"pt": "Estudando",
		"es": "Estudiando",
		"ru": "Занятие",
	},
	"On break": {
		"pt": "Em pausa",
		"es": "En descanso",
		"ru": "Перерыв",
	},
	"Done": {
		"pt": "Concluído",
		"es": "Hecho",
		"ru": "Готово",
	},
	"About StudyLight": {
		"pt": "Sobre o StudyLight",
		"es": "Acerca de StudyLight",
		"ru": "О StudyLight",
	},
	"Close": {
		"pt": "Fechar",
		"es": "Cerrar",
		"ru": "Закрыть",
	},
}

func init() {
	// Check for override environment variable
	if forcedLang := strings.TrimSpace(os.Getenv("STUDYLIGHT_LANG")); forcedLang != "" {
		log.Printf("STUDYLIGHT_LANG is set to: '%s'", forcedLang)
		lang = forcedLang
		return
	}

	userLocales, err := locale.GetLocales()
	if err != nil {
		log.Println("Could not get user locale, defaulting to english")
		lang = "en"
		return
	}

	if len(userLocales) > 0 {
		locale := userLocales[0]
		log.Printf("Detected user locale: %s", locale)
		if strings.HasPrefix(locale, "pt") {
			lang = "pt"
		} else if strings.HasPrefix(locale, "es") {
			lang = "es"
		} else if strings.HasPrefix(locale, "ru") {
			lang = "ru"
		} else {
			lang = "en"
		}
	} else {
		log.Println("No user locale detected, defaulting to english")
		lang = "en"
	}
	log.Printf("Language set to: %s", lang)
}

func T(key string) string {
	if translated, ok := translations[key][lang]; ok {
		return translated
	}
	return key
}
