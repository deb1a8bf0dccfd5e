package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rs/zerolog/log"

	"github.com/sellerops/allegro-sentinel/internal/biz/usecase"
)

// TemplatesConfig contains message templates loaded from YAML
type TemplatesConfig struct {
	Reply         ReplyTemplates         `yaml:"reply"`
	Notifications NotificationsTemplates `yaml:"notifications"`
}

// ReplyTemplates contains auto-responder texts
type ReplyTemplates struct {
	// CannedText is the fixed reply sent to fresh buyer messages
	CannedText string `yaml:"canned_text"`
}

// NotificationsTemplates contains embed texts per notification class
type NotificationsTemplates struct {
	OrderTitle        string `yaml:"order_title"`         // printf format, order id
	MessageTitle      string `yaml:"message_title"`       // printf format, interlocutor login
	PreviewTitle      string `yaml:"preview_title"`       // printf format, interlocutor login
	FooterText        string `yaml:"footer_text"`
	OrderMentionAll   bool   `yaml:"order_mention_all"`
	MessageMentionAll bool   `yaml:"message_mention_all"`
}

// LoadTemplatesConfig loads message templates from a YAML file.
// Missing file is not an error; defaults are used.
func LoadTemplatesConfig(configPath string) (*TemplatesConfig, error) {
	paths := []string{configPath}
	if configPath == "" {
		paths = []string{
			"configs/templates.yaml",
			"./configs/templates.yaml",
			"/etc/allegro-sentinel/templates.yaml",
		}
		if execPath, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Join(filepath.Dir(execPath), "configs", "templates.yaml"))
		}
	}

	var data []byte
	var loadedPath string
	for _, p := range paths {
		if p == "" {
			continue
		}
		if b, err := os.ReadFile(p); err == nil {
			data = b
			loadedPath = p
			break
		}
	}

	if data == nil {
		log.Debug().Msg("no templates.yaml found, using defaults")
		return DefaultTemplatesConfig(), nil
	}

	log.Info().Str("path", loadedPath).Msg("loading message templates")

	var config TemplatesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse templates.yaml: %w", err)
	}
	config.fillDefaults()
	return &config, nil
}

// DefaultTemplatesConfig returns the built-in templates.
func DefaultTemplatesConfig() *TemplatesConfig {
	return &TemplatesConfig{
		Reply: ReplyTemplates{
			CannedText: "Dziękujemy za wiadomość! Odpowiemy najszybciej jak to możliwe.",
		},
		Notifications: NotificationsTemplates{
			OrderTitle:        "Nowe zamówienie #%s",
			MessageTitle:      "Nowa wiadomość od %s",
			PreviewTitle:      "[TEST] Odpowiedź dla %s",
			FooterText:        "Allegro Sentinel",
			OrderMentionAll:   false,
			MessageMentionAll: false,
		},
	}
}

// ToRenderConfig converts to notification render configuration
func (c *TemplatesConfig) ToRenderConfig() usecase.RenderConfig {
	return usecase.RenderConfig{
		OrderTitle:        c.Notifications.OrderTitle,
		MessageTitle:      c.Notifications.MessageTitle,
		PreviewTitle:      c.Notifications.PreviewTitle,
		FooterText:        c.Notifications.FooterText,
		OrderMentionAll:   c.Notifications.OrderMentionAll,
		MessageMentionAll: c.Notifications.MessageMentionAll,
		CannedReply:       c.Reply.CannedText,
	}
}

func (c *TemplatesConfig) fillDefaults() {
	defaults := DefaultTemplatesConfig()

	if c.Reply.CannedText == "" {
		c.Reply.CannedText = defaults.Reply.CannedText
	}
	if c.Notifications.OrderTitle == "" {
		c.Notifications.OrderTitle = defaults.Notifications.OrderTitle
	}
	if c.Notifications.MessageTitle == "" {
		c.Notifications.MessageTitle = defaults.Notifications.MessageTitle
	}
	if c.Notifications.PreviewTitle == "" {
		c.Notifications.PreviewTitle = defaults.Notifications.PreviewTitle
	}
	if c.Notifications.FooterText == "" {
		c.Notifications.FooterText = defaults.Notifications.FooterText
	}
}
