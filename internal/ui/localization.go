package ui

import (
	"os"
	"strings"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyURLLabel          = "url_label"
	KeyEnterURL          = "enter_url"
	KeyDestinationLabel  = "destination_label"
	KeyChange            = "change"
	KeyFormatLabel       = "format_label"
	KeyFormatMuxed       = "format_muxed"
	KeyFormatAudio       = "format_audio"
	KeyFormatVideo       = "format_video"
	KeyDownload          = "download"
	KeyCancel            = "cancel"
	KeyFile              = "file"
	KeyOpenFolder        = "open_folder"
	KeyLanguage          = "language"
	KeyWarningTitle      = "warning_title"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyCompletedTitle    = "completed_title"
	KeyErrorTitle        = "error_title"
	KeyProblemOccurred   = "problem_occurred"
	KeyErrorOpeningDir   = "error_opening_dir"
	KeyStatusIdle        = "status_idle"
	KeyStatusStarting    = "status_starting"
	KeyStatusDownloading = "status_downloading"
	KeyStatusCompleted   = "status_completed"
	KeyStatusCancelled   = "status_cancelled"
	KeyStatusError       = "status_error"
)

// Language codes
const (
	LangSystem  = "system"
	LangEnglish = "en"
	LangSpanish = "es"
	LangRussian = "ru"
	LangPortug  = "pt"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: LangEnglish,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language; unknown codes are ignored
func (l *Localization) SetLanguage(lang string) {
	if lang == LangSystem || lang == "" {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts[LangEnglish]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		LangEnglish: "English",
		LangSpanish: "Español",
		LangRussian: "Русский",
		LangPortug:  "Português",
	}
}

// systemLanguage derives a language code from LC_ALL / LANG, e.g. "es_ES.UTF-8" -> "es"
func systemLanguage() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(key)
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		code := strings.ToLower(value)
		if i := strings.IndexAny(code, "_.-@"); i > 0 {
			code = code[:i]
		}
		return code
	}
	return LangEnglish
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts[LangEnglish] = map[string]string{
		KeyAppTitle:          "QuickDL",
		KeyURLLabel:          "Video URL:",
		KeyEnterURL:          "https://www.youtube.com/watch?v=...",
		KeyDestinationLabel:  "Save to:",
		KeyChange:            "Change...",
		KeyFormatLabel:       "Output format:",
		KeyFormatMuxed:       "Video + Audio (best quality)",
		KeyFormatAudio:       "Audio only (MP3)",
		KeyFormatVideo:       "Video only (no audio)",
		KeyDownload:          "DOWNLOAD NOW",
		KeyCancel:            "Cancel",
		KeyFile:              "File",
		KeyOpenFolder:        "Open destination folder",
		KeyLanguage:          "Language",
		KeyWarningTitle:      "Warning",
		KeyPleaseEnterURL:    "Paste a link first",
		KeyCompletedTitle:    "Completed",
		KeyErrorTitle:        "Error",
		KeyProblemOccurred:   "A problem occurred",
		KeyErrorOpeningDir:   "Could not open folder",
		KeyStatusIdle:        "Ready",
		KeyStatusStarting:    "Starting...",
		KeyStatusDownloading: "Downloading",
		KeyStatusCompleted:   "Completed",
		KeyStatusCancelled:   "Cancelled",
		KeyStatusError:       "Failed",
	}

	l.texts[LangSpanish] = map[string]string{
		KeyAppTitle:          "QuickDL",
		KeyURLLabel:          "URL del video:",
		KeyEnterURL:          "https://www.youtube.com/watch?v=...",
		KeyDestinationLabel:  "Guardar en:",
		KeyChange:            "Cambiar...",
		KeyFormatLabel:       "Formato de salida:",
		KeyFormatMuxed:       "Video + Audio (mejor calidad)",
		KeyFormatAudio:       "Solo audio (MP3)",
		KeyFormatVideo:       "Solo video (sin audio)",
		KeyDownload:          "DESCARGAR AHORA",
		KeyCancel:            "Cancelar",
		KeyFile:              "Archivo",
		KeyOpenFolder:        "Abrir carpeta de destino",
		KeyLanguage:          "Idioma",
		KeyWarningTitle:      "Aviso",
		KeyPleaseEnterURL:    "Pega un enlace primero",
		KeyCompletedTitle:    "Completado",
		KeyErrorTitle:        "Error",
		KeyProblemOccurred:   "Ocurrió un problema",
		KeyErrorOpeningDir:   "No se pudo abrir la carpeta",
		KeyStatusIdle:        "Listo",
		KeyStatusStarting:    "Iniciando...",
		KeyStatusDownloading: "Descargando",
		KeyStatusCompleted:   "Completado",
		KeyStatusCancelled:   "Cancelado",
		KeyStatusError:       "Fallido",
	}

	l.texts[LangRussian] = map[string]string{
		KeyAppTitle:          "QuickDL",
		KeyURLLabel:          "URL видео:",
		KeyEnterURL:          "https://www.youtube.com/watch?v=...",
		KeyDestinationLabel:  "Сохранить в:",
		KeyChange:            "Изменить...",
		KeyFormatLabel:       "Формат:",
		KeyFormatMuxed:       "Видео + аудио (лучшее качество)",
		KeyFormatAudio:       "Только аудио (MP3)",
		KeyFormatVideo:       "Только видео (без звука)",
		KeyDownload:          "СКАЧАТЬ",
		KeyCancel:            "Отмена",
		KeyFile:              "Файл",
		KeyOpenFolder:        "Открыть папку назначения",
		KeyLanguage:          "Язык",
		KeyWarningTitle:      "Внимание",
		KeyPleaseEnterURL:    "Сначала вставьте ссылку",
		KeyCompletedTitle:    "Готово",
		KeyErrorTitle:        "Ошибка",
		KeyProblemOccurred:   "Произошла ошибка",
		KeyErrorOpeningDir:   "Не удалось открыть папку",
		KeyStatusIdle:        "Готово к загрузке",
		KeyStatusStarting:    "Запуск...",
		KeyStatusDownloading: "Загрузка",
		KeyStatusCompleted:   "Завершено",
		KeyStatusCancelled:   "Отменено",
		KeyStatusError:       "Ошибка",
	}

	l.texts[LangPortug] = map[string]string{
		KeyAppTitle:          "QuickDL",
		KeyURLLabel:          "URL do vídeo:",
		KeyEnterURL:          "https://www.youtube.com/watch?v=...",
		KeyDestinationLabel:  "Salvar em:",
		KeyChange:            "Alterar...",
		KeyFormatLabel:       "Formato de saída:",
		KeyFormatMuxed:       "Vídeo + Áudio (melhor qualidade)",
		KeyFormatAudio:       "Somente áudio (MP3)",
		KeyFormatVideo:       "Somente vídeo (sem áudio)",
		KeyDownload:          "BAIXAR AGORA",
		KeyCancel:            "Cancelar",
		KeyFile:              "Arquivo",
		KeyOpenFolder:        "Abrir pasta de destino",
		KeyLanguage:          "Idioma",
		KeyWarningTitle:      "Aviso",
		KeyPleaseEnterURL:    "Cole um link primeiro",
		KeyCompletedTitle:    "Concluído",
		KeyErrorTitle:        "Erro",
		KeyProblemOccurred:   "Ocorreu um problema",
		KeyErrorOpeningDir:   "Não foi possível abrir a pasta",
		KeyStatusIdle:        "Pronto",
		KeyStatusStarting:    "Iniciando...",
		KeyStatusDownloading: "Baixando",
		KeyStatusCompleted:   "Concluído",
		KeyStatusCancelled:   "Cancelado",
		KeyStatusError:       "Falhou",
	}
}
