package config

import "github.com/spf13/viper"

// Task names used as scheduler registry keys.
const (
	TaskBirthdayReminder = "birthday_reminder"
	TaskPriceAlert       = "price_alert"
)

// DefaultHelpMessage lists the available commands.
const DefaultHelpMessage = `Available commands:

/start or /hello - Get a welcome message
/birthdays - List all birthdays
/missing - Show names without birthdays
/add Name DD-MM-YYYY - Add a birthday
/delete Full Name - Remove a birthday (authorized users only)
/bitcoin - Current Bitcoin price and suggested fee
/soon - Birthdays in the next 30 days
/help - Show this help message

Note: for /delete, use the person's full name exactly as it appears in the birthday list.`

// setDefaults registers every configuration key with viper so environment
// overrides bind even without a config file. Required keys default to their
// zero value and fail validation when left unset.
func setDefaults(v *viper.Viper) {
	v.SetDefault("timezone", "Europe/Amsterdam")
	v.SetDefault("default_group", "Others")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", true)

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.admin_user_id", 0)
	v.SetDefault("telegram.group_chat_id", 0)
	v.SetDefault("telegram.personal_chat_id", 0)

	v.SetDefault("store.path", "birthdays.json")

	v.SetDefault("bitcoin.coingecko_api_key", "")
	v.SetDefault("bitcoin.threshold_step", 1000)
	v.SetDefault("bitcoin.change_alert_percent", 5)

	v.SetDefault("scheduler.tasks", map[string]any{
		TaskBirthdayReminder: map[string]any{
			"enabled":      true,
			"schedule":     "0 8 * * *",
			"destinations": []string{DestinationGroup, DestinationPersonal},
		},
		TaskPriceAlert: map[string]any{
			"enabled":      true,
			"schedule":     "0 * * * *",
			"destinations": []string{DestinationGroup, DestinationPersonal},
		},
	})

	v.SetDefault("messages.welcome", "Hello! I'm your birthday and Bitcoin bot. Use /help to see available commands.")
	v.SetDefault("messages.help", DefaultHelpMessage)
	v.SetDefault("messages.not_authorized", "You are not authorized to do that.")
	v.SetDefault("messages.unknown_command", "I don't know that command. Use /help to see what I can do.")
	v.SetDefault("messages.general_error", "Something went wrong. Please try again later.")
	v.SetDefault("messages.price_unavailable", "Sorry, I couldn't fetch the Bitcoin price at the moment. Please try again later.")
	v.SetDefault("messages.none_upcoming", "No birthdays in the next 30 days.")
	v.SetDefault("messages.all_birthdays_set", "All birthdays have been added.")
	v.SetDefault("messages.startup", "Bot restarted successfully. Use /help to see available commands.")
}
