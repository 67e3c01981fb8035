package config

// NotificationsConfig groups the notification channels and the routing rule
type NotificationsConfig struct {
	Telegram    *TelegramConfig   `json:"telegram" yaml:"telegram"`
	Email       *EmailConfig      `json:"email" yaml:"email"`
	SpecialCase *SpecialCaseRoute `json:"special_case" yaml:"special_case"`
}

// TelegramConfig configures the group notification channel
type TelegramConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	BotToken string `json:"bot_token" yaml:"bot_token"`
	ChatID   string `json:"chat_id" yaml:"chat_id"`
	Timeout  int    `json:"timeout" yaml:"timeout"` // seconds
}

// EmailConfig configures the individual notification channel (SMTP over TLS)
type EmailConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	SMTPHost string `json:"smtp_host" yaml:"smtp_host"`
	SMTPPort int    `json:"smtp_port" yaml:"smtp_port"`
	Sender   string `json:"sender" yaml:"sender"`
	Receiver string `json:"receiver" yaml:"receiver"`
	Password string `json:"password" yaml:"password"`
}

// SpecialCaseRoute diverts one (part number, store name) pair from the group
// channel to the individual channel. The individual message body is fixed and
// does not describe the triggering item; that mismatch is deliberate.
type SpecialCaseRoute struct {
	PartNumber string `json:"part_number" yaml:"part_number"`
	StoreName  string `json:"store_name" yaml:"store_name"`
}

// Matches reports whether the given part and store hit the special-case route
func (r *SpecialCaseRoute) Matches(partNumber, storeName string) bool {
	if r == nil || r.PartNumber == "" || r.StoreName == "" {
		return false
	}
	return r.PartNumber == partNumber && r.StoreName == storeName
}

// NewNotificationsConfig creates notification configuration with environment defaults
func NewNotificationsConfig() *NotificationsConfig {
	return &NotificationsConfig{
		Telegram:    NewTelegramConfig(),
		Email:       NewEmailConfig(),
		SpecialCase: NewSpecialCaseRoute(),
	}
}

// NewTelegramConfig creates Telegram configuration with environment defaults
func NewTelegramConfig() *TelegramConfig {
	return &TelegramConfig{
		Enabled:  getEnvBool("TELEGRAM_ENABLED", false),
		BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		ChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		Timeout:  getEnvInt("TELEGRAM_TIMEOUT", 30),
	}
}

// NewEmailConfig creates email configuration with environment defaults
func NewEmailConfig() *EmailConfig {
	return &EmailConfig{
		Enabled:  getEnvBool("EMAIL_ENABLED", false),
		SMTPHost: getEnv("EMAIL_SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: getEnvInt("EMAIL_SMTP_PORT", 465),
		Sender:   getEnv("EMAIL_SENDER", ""),
		Receiver: getEnv("EMAIL_RECEIVER", ""),
		Password: getEnv("EMAIL_PASSWORD", ""),
	}
}

// NewSpecialCaseRoute creates the special-case route with environment defaults
func NewSpecialCaseRoute() *SpecialCaseRoute {
	return &SpecialCaseRoute{
		PartNumber: getEnv("SPECIAL_CASE_PART", ""),
		StoreName:  getEnv("SPECIAL_CASE_STORE", ""),
	}
}

// Validate checks the Telegram channel configuration
func (tc *TelegramConfig) Validate() error {
	if !tc.Enabled {
		return nil
	}
	if tc.BotToken == "" || tc.ChatID == "" {
		return ErrMissingRequired
	}
	if tc.Timeout <= 0 {
		tc.Timeout = 30
	}
	return nil
}

// Validate checks the email channel configuration
func (ec *EmailConfig) Validate() error {
	if !ec.Enabled {
		return nil
	}
	if ec.SMTPHost == "" || ec.Sender == "" || ec.Receiver == "" {
		return ErrMissingRequired
	}
	if ec.SMTPPort <= 0 || ec.SMTPPort > 65535 {
		return ErrInvalidValue
	}
	return nil
}
