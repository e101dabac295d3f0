package notifier

import (
	"bytes"
	"fmt"
	"log"
	gotexttemplate "text/template"
	"time"

	"github.com/mattmezza/airalert/internal/config"
)

const (
	StateFired    = "FIRED"
	StateResolved = "RESOLVED"
)

// Severity selects how loudly a dialog is shown.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

// NotificationData is the data passed to templates and notifiers.
type NotificationData struct {
	Region   string
	Status   string // raw status that caused the transition, e.g. "full"
	State    string // "FIRED" or "RESOLVED"
	Severity Severity
	Time     time.Time
	Title    string // rendered from templates
	Message  string // rendered from templates
}

type NotificationTemplates struct {
	FiredTitle      string
	FiredMessage    string
	ResolvedTitle   string
	ResolvedMessage string
}

// Notifier is the interface for all notification channel types.
type Notifier interface {
	Send(data NotificationData) error
	Name() string // Returns the configured channel name
}

func TemplatesFromConfig(tc config.TemplateConfig) NotificationTemplates {
	return NotificationTemplates{
		FiredTitle:      tc.FiredTitle,
		FiredMessage:    tc.FiredMessage,
		ResolvedTitle:   tc.ResolvedTitle,
		ResolvedMessage: tc.ResolvedMessage,
	}
}

// Render fills Title and Message of data from the templates matching data.State.
func Render(templates NotificationTemplates, data NotificationData) (NotificationData, error) {
	titleTmpl, messageTmpl := templates.FiredTitle, templates.FiredMessage
	if data.State == StateResolved {
		titleTmpl, messageTmpl = templates.ResolvedTitle, templates.ResolvedMessage
	}

	title, err := renderTemplate("title", titleTmpl, data)
	if err != nil {
		return data, err
	}
	message, err := renderTemplate("message", messageTmpl, data)
	if err != nil {
		return data, err
	}
	data.Title = title
	data.Message = message
	return data, nil
}

func renderTemplate(templateName string, templateStr string, data NotificationData) (string, error) {
	tmpl, err := gotexttemplate.New(templateName).Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse notification template '%s': %w", templateName, err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute notification template '%s': %w", templateName, err)
	}
	return buf.String(), nil
}

// InitializeNotifiers builds the sound and dialog notifiers every monitor has,
// plus whatever extra channels the config lists.
func InitializeNotifiers(cfg *config.Config) (map[string]Notifier, error) {
	notifiers := map[string]Notifier{
		SoundChannelName:  NewSoundNotifier(cfg.Player, cfg.PlayerArgs, cfg.AlertOnSound, cfg.AlertOffSound),
		DialogChannelName: NewDialogNotifier(),
	}

	for _, ncCfg := range cfg.NotificationChannels {
		var instance Notifier
		var err error
		switch ncCfg.Type {
		case "telegram":
			telegramCfg, convErr := config.GetTelegramChannelConfig(ncCfg)
			if convErr != nil {
				log.Printf("Skipping telegram channel '%s' due to config error: %v", ncCfg.Name, convErr)
				continue
			}
			instance, err = NewTelegramNotifier(ncCfg.Name, *telegramCfg)
		case "stdout":
			instance, err = NewStdoutNotifier(ncCfg.Name)
		default:
			log.Printf("Unsupported notification channel type '%s' for channel '%s'. Skipping.", ncCfg.Type, ncCfg.Name)
			continue
		}

		if err != nil {
			log.Printf("Failed to initialize notifier for channel '%s' (%s): %v. Skipping.", ncCfg.Name, ncCfg.Type, err)
			continue
		}
		if _, exists := notifiers[ncCfg.Name]; exists {
			return nil, fmt.Errorf("duplicate notification channel name defined: %s", ncCfg.Name)
		}
		notifiers[ncCfg.Name] = instance
		log.Printf("Initialized notifier for channel: %s (type: %s)", ncCfg.Name, ncCfg.Type)
	}
	return notifiers, nil
}
