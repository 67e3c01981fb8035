package handlers

import "time"

// sanitizeConfig removes sensitive information from config before returning
func (h *HandlerService) sanitizeConfig() map[string]interface{} {
	cfg := h.config
	sanitized := map[string]interface{}{
		"retailer": map[string]interface{}{
			"country_code":       cfg.Retailer.CountryCode,
			"device_family":      cfg.Retailer.DeviceFamily,
			"zip_code":           cfg.Retailer.ZipCode,
			"device_models":      cfg.Retailer.DeviceModels,
			"carriers":           cfg.Retailer.Carriers,
			"stores":             cfg.Retailer.Stores,
			"appointment_stores": cfg.Retailer.AppointmentStores,
			"pause_seconds":      cfg.Retailer.PauseSeconds,
		},
		"sku_map": map[string]interface{}{
			"labels":          len(cfg.SKUMap.Labels),
			"remote_gist_url": cfg.SKUMap.RemoteGistURL,
		},
		"notifications": map[string]interface{}{
			"telegram": map[string]interface{}{
				"enabled":    cfg.Notifications.Telegram.Enabled,
				"configured": cfg.Notifications.Telegram.BotToken != "",
			},
			"email": map[string]interface{}{
				"enabled":    cfg.Notifications.Email.Enabled,
				"smtp_host":  cfg.Notifications.Email.SMTPHost,
				"configured": cfg.Notifications.Email.Sender != "",
			},
		},
		"app": cfg.App,
	}

	return sanitized
}

// getCurrentTimestamp returns the current UTC time
func getCurrentTimestamp() time.Time {
	return time.Now().UTC()
}
