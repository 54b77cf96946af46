package i18n

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/jeandeaual/go-locale"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Message IDs.
const (
	Title        = "Title"
	StartSmall   = "StartSmall"
	StartLarge   = "StartLarge"
	Reset        = "Reset"
	Pause        = "Pause"
	Resume       = "Resume"
	Time         = "Time"
	Find         = "Find"
	Congrats     = "Congrats"
	FinishedIn   = "FinishedIn"
	PlayAgain    = "PlayAgain"
	EnableDark   = "EnableDark"
	DisableDark  = "DisableDark"
	PausedBanner = "PausedBanner"
)

var english = []*goi18n.Message{
	{ID: Title, Other: "Schulte Table"},
	{ID: StartSmall, Other: "Start 3×3"},
	{ID: StartLarge, Other: "Start 5×5"},
	{ID: Reset, Other: "Reset"},
	{ID: Pause, Other: "Pause"},
	{ID: Resume, Other: "Resume"},
	{ID: Time, Other: "Time: {{.Seconds}}s"},
	{ID: Find, Other: "Find"},
	{ID: Congrats, Other: "Congratulations!"},
	{ID: FinishedIn, One: "You finished in {{.Seconds}} second!", Other: "You finished in {{.Seconds}} seconds!"},
	{ID: PlayAgain, Other: "Play again"},
	{ID: EnableDark, Other: "Enable Dark Mode"},
	{ID: DisableDark, Other: "Disable Dark Mode"},
	{ID: PausedBanner, Other: "Paused"},
}

var translations = map[language.Tag][]*goi18n.Message{
	language.Portuguese: {
		{ID: Title, Other: "Tabela de Schulte"},
		{ID: StartSmall, Other: "Iniciar 3×3"},
		{ID: StartLarge, Other: "Iniciar 5×5"},
		{ID: Reset, Other: "Resetar"},
		{ID: Pause, Other: "Pausar"},
		{ID: Resume, Other: "Continuar"},
		{ID: Time, Other: "Tempo: {{.Seconds}}s"},
		{ID: Find, Other: "Encontre"},
		{ID: Congrats, Other: "Parabéns!"},
		{ID: FinishedIn, One: "Você terminou em {{.Seconds}} segundo!", Other: "Você terminou em {{.Seconds}} segundos!"},
		{ID: PlayAgain, Other: "Jogar de novo"},
		{ID: EnableDark, Other: "Ativar modo escuro"},
		{ID: DisableDark, Other: "Desativar modo escuro"},
		{ID: PausedBanner, Other: "Pausado"},
	},
	language.Spanish: {
		{ID: Title, Other: "Tabla de Schulte"},
		{ID: StartSmall, Other: "Iniciar 3×3"},
		{ID: StartLarge, Other: "Iniciar 5×5"},
		{ID: Reset, Other: "Reiniciar"},
		{ID: Pause, Other: "Pausar"},
		{ID: Resume, Other: "Reanudar"},
		{ID: Time, Other: "Tiempo: {{.Seconds}}s"},
		{ID: Find, Other: "Busca"},
		{ID: Congrats, Other: "¡Felicidades!"},
		{ID: FinishedIn, One: "¡Terminaste en {{.Seconds}} segundo!", Other: "¡Terminaste en {{.Seconds}} segundos!"},
		{ID: PlayAgain, Other: "Jugar de nuevo"},
		{ID: EnableDark, Other: "Activar modo oscuro"},
		{ID: DisableDark, Other: "Desactivar modo oscuro"},
		{ID: PausedBanner, Other: "En pausa"},
	},
	language.Russian: {
		{ID: Title, Other: "Таблица Шульте"},
		{ID: StartSmall, Other: "Старт 3×3"},
		{ID: StartLarge, Other: "Старт 5×5"},
		{ID: Reset, Other: "Сброс"},
		{ID: Pause, Other: "Пауза"},
		{ID: Resume, Other: "Продолжить"},
		{ID: Time, Other: "Время: {{.Seconds}}с"},
		{ID: Find, Other: "Найдите"},
		{ID: Congrats, Other: "Поздравляем!"},
		{ID: FinishedIn, One: "Вы справились за {{.Seconds}} секунду!", Few: "Вы справились за {{.Seconds}} секунды!", Many: "Вы справились за {{.Seconds}} секунд!", Other: "Вы справились за {{.Seconds}} секунды!"},
		{ID: PlayAgain, Other: "Играть снова"},
		{ID: EnableDark, Other: "Включить тёмную тему"},
		{ID: DisableDark, Other: "Выключить тёмную тему"},
		{ID: PausedBanner, Other: "Пауза"},
	},
}

var (
	mu        sync.RWMutex
	lang      = "en"
	localizer *goi18n.Localizer
	bundle    = newBundle()
)

func newBundle() *goi18n.Bundle {
	b := goi18n.NewBundle(language.English)
	if err := b.AddMessages(language.English, english...); err != nil {
		panic(err)
	}
	for tag, msgs := range translations {
		if err := b.AddMessages(tag, msgs...); err != nil {
			panic(err)
		}
	}
	return b
}

// Init selects the UI language. A non-empty forced value wins; otherwise
// the system locale decides, falling back to english.
func Init(forced string) {
	chosen := strings.TrimSpace(forced)
	if chosen != "" {
		slog.Info("language forced", "lang", chosen)
	} else {
		chosen = detect()
	}
	SetLang(chosen)
}

func detect() string {
	userLocales, err := locale.GetLocales()
	if err != nil {
		slog.Warn("could not get user locale, defaulting to english", "error", err)
		return "en"
	}
	if len(userLocales) == 0 {
		slog.Info("no user locale detected, defaulting to english")
		return "en"
	}
	slog.Info("detected user locale", "locale", userLocales[0])
	return userLocales[0]
}

// SetLang switches the language. Unsupported languages fall back to english.
func SetLang(l string) {
	l = strings.ToLower(l)
	switch {
	case strings.HasPrefix(l, "pt"):
		l = "pt"
	case strings.HasPrefix(l, "es"):
		l = "es"
	case strings.HasPrefix(l, "ru"):
		l = "ru"
	default:
		l = "en"
	}

	mu.Lock()
	lang = l
	localizer = goi18n.NewLocalizer(bundle, l)
	mu.Unlock()
	slog.Info("language set", "lang", l)
}

// T returns the translation of the message id.
func T(id string) string {
	return Tf(id, nil)
}

// Tf returns the translation of id rendered with data.
func Tf(id string, data map[string]any) string {
	return localize(&goi18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

// Plural returns the translation of id in the plural form for count, with
// count available to the template as .Seconds.
func Plural(id string, count int) string {
	return localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: map[string]any{"Seconds": count},
		PluralCount:  count,
	})
}

func localize(cfg *goi18n.LocalizeConfig) string {
	mu.RLock()
	loc := localizer
	mu.RUnlock()
	if loc == nil {
		loc = goi18n.NewLocalizer(bundle, "en")
	}

	out, err := loc.Localize(cfg)
	if err != nil {
		slog.Debug("translation failed", "id", cfg.MessageID, "lang", GetLang(), "error", err)
		if out != "" {
			return out
		}
		return cfg.MessageID
	}
	return out
}

func GetLang() string {
	mu.RLock()
	defer mu.RUnlock()
	return lang
}
