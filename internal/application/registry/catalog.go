package registry

import "github.com/doeshing/assist-core/internal/domain"

type params = map[string]domain.ServiceParameters

func req(names ...string) domain.ServiceParameters {
	return domain.ServiceParameters{Required: names}
}

func opt(names ...string) domain.ServiceParameters {
	return domain.ServiceParameters{Optional: names}
}

func reqOpt(required []string, optional ...string) domain.ServiceParameters {
	return domain.ServiceParameters{Required: required, Optional: optional}
}

func names(n ...string) []string { return n }

// catalog is the static domain table. Order is significant: it is the order
// of ListDomains and of "did you mean" suggestions.
var catalog = []domain.DomainDescriptor{
	// Essential
	{
		Name:     "light",
		Kind:     domain.KindControllable,
		Priority: domain.PriorityEssential,
		Services: names("turn_on", "turn_off", "toggle"),
		Parameters: params{
			"turn_on": opt("transition", "brightness", "brightness_pct", "brightness_step", "brightness_step_pct",
				"rgb_color", "rgbw_color", "rgbww_color", "color_name", "hs_color", "xy_color",
				"color_temp", "color_temp_kelvin", "white", "profile", "flash", "effect"),
			"turn_off": opt("transition", "flash"),
			"toggle":   opt("transition", "brightness", "brightness_pct", "rgb_color", "color_temp", "effect"),
		},
		Description: "Control lights with brightness, color, and effects",
	},
	{
		Name:        "switch",
		Kind:        domain.KindControllable,
		Priority:    domain.PriorityEssential,
		Services:    names("turn_on", "turn_off", "toggle"),
		Description: "Control binary switches",
	},
	{
		Name:     "cover",
		Kind:     domain.KindControllable,
		Priority: domain.PriorityEssential,
		Services: names("open_cover", "close_cover", "stop_cover", "toggle", "set_cover_position",
			"open_cover_tilt", "close_cover_tilt", "stop_cover_tilt", "set_cover_tilt_position"),
		Parameters: params{
			"set_cover_position":      req("position"),
			"set_cover_tilt_position": req("tilt_position"),
		},
		Description: "Control covers, blinds, and garage doors",
	},
	{
		Name:     "climate",
		Kind:     domain.KindControllable,
		Priority: domain.PriorityEssential,
		Services: names("set_temperature", "set_hvac_mode", "set_preset_mode", "set_fan_mode",
			"set_humidity", "set_swing_mode", "set_swing_horizontal_mode", "turn_on", "turn_off", "toggle"),
		Parameters: params{
			"set_temperature":           opt("temperature", "target_temp_high", "target_temp_low", "hvac_mode"),
			"set_hvac_mode":             req("hvac_mode"),
			"set_preset_mode":           req("preset_mode"),
			"set_fan_mode":              req("fan_mode"),
			"set_humidity":              req("humidity"),
			"set_swing_mode":            req("swing_mode"),
			"set_swing_horizontal_mode": req("swing_horizontal_mode"),
		},
		Description: "Control thermostats and HVAC systems",
	},
	{
		Name:     "lock",
		Kind:     domain.KindControllable,
		Priority: domain.PriorityEssential,
		Services: names("lock", "unlock", "open"),
		Parameters: params{
			"lock":   opt("code"),
			"unlock": opt("code"),
			"open":   opt("code"),
		},
		Description: "Control door locks",
	},
	{
		Name:     "scene",
		Kind:     domain.KindControllable,
		Priority: domain.PriorityEssential,
		Services: names("turn_on", "reload", "apply", "create", "delete"),
		Parameters: params{
			"turn_on": opt("transition"),
			"apply":   reqOpt(names("entities"), "transition"),
			"create":  reqOpt(names("scene_id"), "entities", "snapshot_entities"),
		},
		Description: "Activate and manage scenes",
	},
	{
		Name:        "script",
		Kind:        domain.KindControllable,
		Priority:    domain.PriorityEssential,
		Services:    names("turn_on", "turn_off", "toggle", "reload"),
		Description: "Execute and manage scripts",
	},
	{
		Name:     "automation",
		Kind:     domain.KindControllable,
		Priority: domain.PriorityEssential,
		Services: names("trigger", "turn_on", "turn_off", "toggle", "reload"),
		Parameters: params{
			"trigger":  opt("skip_condition"),
			"turn_off": opt("stop_actions"),
		},
		Description: "Control and trigger automations",
	},

	// Common
	{
		Name:     "fan",
		Kind:     domain.KindControllable,
		Priority: domain.PriorityCommon,
		Services: names("turn_on", "turn_off", "toggle", "set_percentage", "set_preset_mode",
			"oscillate", "set_direction", "increase_speed", "decrease_speed"),
		Parameters: params{
			"turn_on":         opt("percentage", "preset_mode"),
			"set_percentage":  req("percentage"),
			"set_preset_mode": req("preset_mode"),
			"oscillate":       req("oscillating"),
			"set_direction":   req("direction"),
			"increase_speed":  opt("percentage_step"),
			"decrease_speed":  opt("percentage_step"),
		},
		Description: "Control fans with speed and oscillation",
	},
	{
		Name:     "media_player",
		Kind:     domain.KindControllable,
		Priority: domain.PriorityCommon,
		Services: names("turn_on", "turn_off", "toggle", "volume_up", "volume_down", "volume_set", "volume_mute",
			"media_play", "media_pause", "media_stop", "media_play_pause",
			"media_next_track", "media_previous_track", "media_seek",
			"play_media", "select_source", "select_sound_mode",
			"clear_playlist", "shuffle_set", "repeat_set", "join", "unjoin",
			"browse_media", "search_media"),
		Parameters: params{
			"volume_set":        req("volume_level"),
			"volume_mute":       req("is_volume_muted"),
			"media_seek":        req("seek_position"),
			"play_media":        reqOpt(names("media"), "enqueue", "announce"),
			"select_source":     req("source"),
			"select_sound_mode": opt("sound_mode"),
			"shuffle_set":       req("shuffle"),
			"repeat_set":        req("repeat"),
			"join":              req("group_members"),
			"browse_media":      opt("media_content_type", "media_content_id"),
			"search_media":      reqOpt(names("search_query"), "media_content_type", "media_content_id", "media_filter_classes"),
		},
		Description: "Control media players and streaming devices",
	},
	{
		Name:     "vacuum",
		Kind:     domain.KindControllable,
		Priority: domain.PriorityCommon,
		Services: names("turn_on", "turn_off", "toggle", "start", "stop", "pause", "start_pause",
			"return_to_base", "clean_spot", "locate", "send_command", "set_fan_speed"),
		Parameters: params{
			"send_command":  reqOpt(names("command"), "params"),
			"set_fan_speed": req("fan_speed"),
		},
		Description: "Control robot vacuums",
	},
	{
		Name:     "alarm_control_panel",
		Kind:     domain.KindControllable,
		Priority: domain.PriorityCommon,
		Services: names("alarm_disarm", "alarm_arm_home", "alarm_arm_away", "alarm_arm_night",
			"alarm_arm_vacation", "alarm_arm_custom_bypass", "alarm_trigger"),
		Parameters: params{
			"alarm_disarm":            opt("code"),
			"alarm_arm_home":          opt("code"),
			"alarm_arm_away":          opt("code"),
			"alarm_arm_night":         opt("code"),
			"alarm_arm_vacation":      opt("code"),
			"alarm_arm_custom_bypass": opt("code"),
			"alarm_trigger":           opt("code"),
		},
		Description: "Control security alarm systems",
	},
	{
		Name:     "camera",
		Kind:     domain.KindControllable,
		Priority: domain.PriorityCommon,
		Services: names("turn_on", "turn_off", "enable_motion_detection", "disable_motion_detection",
			"snapshot", "record", "play_stream"),
		Parameters: params{
			"snapshot":    req("filename"),
			"record":      reqOpt(names("filename"), "duration", "lookback"),
			"play_stream": reqOpt(names("media_player"), "format"),
		},
		Description: "Control cameras and capture media",
	},
	{
		Name:        "sensor",
		Kind:        domain.KindReadOnly,
		Priority:    domain.PriorityCommon,
		ReadOnlyMsg: "Sensors are read-only. Use 'get_entity_details' to read sensor values.",
		Description: "Read-only numeric and string sensors",
	},
	{
		Name:        "binary_sensor",
		Kind:        domain.KindReadOnly,
		Priority:    domain.PriorityCommon,
		ReadOnlyMsg: "Binary sensors are read-only. Use 'get_entity_details' to read sensor state.",
		Description: "Read-only on/off state sensors",
	},
	{
		Name:     "device_tracker",
		Kind:     domain.KindControllable,
		Priority: domain.PriorityCommon,
		Services: names("see"),
		Parameters: params{
			"see": opt("mac", "dev_id", "host_name", "location_name", "gps", "gps_accuracy", "battery"),
		},
		Description: "Track device locations",
	},

	// Standard helpers
	{
		Name:        "input_boolean",
		Kind:        domain.KindControllable,
		Priority:    domain.PriorityStandard,
		Services:    names("turn_on", "turn_off", "toggle", "reload"),
		Description: "Boolean input helpers",
	},
	{
		Name:        "input_number",
		Kind:        domain.KindControllable,
		Priority:    domain.PriorityStandard,
		Services:    names("set_value", "increment", "decrement", "reload"),
		Parameters:  params{"set_value": req("value")},
		Description: "Numeric input helpers",
	},
	{
		Name:        "input_text",
		Kind:        domain.KindControllable,
		Priority:    domain.PriorityStandard,
		Services:    names("set_value", "reload"),
		Parameters:  params{"set_value": req("value")},
		Description: "Text input helpers",
	},
	{
		Name:     "input_select",
		Kind:     domain.KindControllable,
		Priority: domain.PriorityStandard,
		Services: names("select_option", "select_next", "select_previous", "select_first", "select_last",
			"set_options", "reload"),
		Parameters: params{
			"select_option":   req("option"),
			"select_next":     opt("cycle"),
			"select_previous": opt("cycle"),
			"set_options":     req("options"),
		},
		Description: "Dropdown selection helpers",
	},
	{
		Name:     "input_datetime",
		Kind:     domain.KindControllable,
		Priority: domain.PriorityStandard,
		Services: names("set_datetime", "reload"),
		Parameters: params{
			"set_datetime": opt("date", "time", "datetime", "timestamp"),
		},
		Description: "Date and time input helpers",
	},
	{
		Name:        "input_button",
		Kind:        domain.KindControllable,
		Priority:    domain.PriorityStandard,
		Services:    names("press", "reload"),
		Description: "Button input helpers",
	},
	{
		Name:     "timer",
		Kind:     domain.KindControllable,
		Priority: domain.PriorityStandard,
		Services: names("start", "pause", "cancel", "finish", "change", "reload"),
		Parameters: params{
			"start":  opt("duration"),
			"change": req("duration"),
		},
		Description: "Timer helpers",
	},
	{
		Name:        "counter",
		Kind:        domain.KindControllable,
		Priority:    domain.PriorityStandard,
		Services:    names("increment", "decrement", "reset", "set_value"),
		Parameters:  params{"set_value": req("value")},
		Description: "Counter helpers",
	},
	{
		Name:        "person",
		Kind:        domain.KindControllable,
		Priority:    domain.PriorityStandard,
		Services:    names("reload"),
		Description: "Person entities",
	},
	{
		Name:        "zone",
		Kind:        domain.KindControllable,
		Priority:    domain.PriorityStandard,
		Services:    names("reload"),
		Description: "Geographic zones",
	},
	{
		Name:     "group",
		Kind:     domain.KindControllable,
		Priority: domain.PriorityStandard,
		Services: names("reload", "set", "remove"),
		Parameters: params{
			"set":    reqOpt(names("object_id"), "name", "icon", "entities", "add_entities", "remove_entities", "all"),
			"remove": req("object_id"),
		},
		Description: "Entity groups",
	},

	// Modern platform entities
	{
		Name:     "select",
		Kind:     domain.KindControllable,
		Priority: domain.PriorityExtended,
		Services: names("select_option", "select_first", "select_last", "select_next", "select_previous"),
		Parameters: params{
			"select_option":   req("option"),
			"select_next":     opt("cycle"),
			"select_previous": opt("cycle"),
		},
		Description: "Selection entities",
	},
	{
		Name:        "number",
		Kind:        domain.KindControllable,
		Priority:    domain.PriorityExtended,
		Services:    names("set_value"),
		Parameters:  params{"set_value": req("value")},
		Description: "Numeric control entities",
	},
	{
		Name:        "button",
		Kind:        domain.KindControllable,
		Priority:    domain.PriorityExtended,
		Services:    names("press"),
		Description: "Button entities",
	},
	{
		Name:        "update",
		Kind:        domain.KindControllable,
		Priority:    domain.PriorityExtended,
		Services:    names("install", "skip", "clear_skipped"),
		Parameters:  params{"install": opt("version", "backup")},
		Description: "Update entities for firmware and software",
	},
	{
		Name:        "text",
		Kind:        domain.KindControllable,
		Priority:    domain.PriorityExtended,
		Services:    names("set_value"),
		Parameters:  params{"set_value": req("value")},
		Description: "Text control entities",
	},
	{
		Name:        "date",
		Kind:        domain.KindControllable,
		Priority:    domain.PriorityExtended,
		Services:    names("set_value"),
		Parameters:  params{"set_value": req("date")},
		Description: "Date control entities",
	},
	{
		Name:        "time",
		Kind:        domain.KindControllable,
		Priority:    domain.PriorityExtended,
		Services:    names("set_value"),
		Parameters:  params{"set_value": req("time")},
		Description: "Time control entities",
	},
	{
		Name:        "datetime",
		Kind:        domain.KindControllable,
		Priority:    domain.PriorityExtended,
		Services:    names("set_value"),
		Parameters:  params{"set_value": req("datetime")},
		Description: "Date and time control entities",
	},

	// Specialized
	{
		Name:     "water_heater",
		Kind:     domain.KindControllable,
		Priority: domain.PrioritySpecialized,
		Services: names("set_temperature", "set_operation_mode", "set_away_mode", "turn_on", "turn_off"),
		Parameters: params{
			"set_temperature":    reqOpt(names("temperature"), "operation_mode"),
			"set_operation_mode": req("operation_mode"),
			"set_away_mode":      req("away_mode"),
		},
		Description: "Control water heaters",
	},
	{
		Name:     "humidifier",
		Kind:     domain.KindControllable,
		Priority: domain.PrioritySpecialized,
		Services: names("turn_on", "turn_off", "toggle", "set_mode", "set_humidity"),
		Parameters: params{
			"set_mode":     req("mode"),
			"set_humidity": req("humidity"),
		},
		Description: "Control humidifiers and dehumidifiers",
	},
	{
		Name:        "siren",
		Kind:        domain.KindControllable,
		Priority:    domain.PrioritySpecialized,
		Services:    names("turn_on", "turn_off", "toggle"),
		Parameters:  params{"turn_on": opt("tone", "duration", "volume_level")},
		Description: "Control alarm sirens",
	},
	{
		Name:        "valve",
		Kind:        domain.KindControllable,
		Priority:    domain.PrioritySpecialized,
		Services:    names("open_valve", "close_valve", "set_valve_position", "stop_valve", "toggle"),
		Parameters:  params{"set_valve_position": req("position")},
		Description: "Control water and gas valves",
	},
	{
		Name:        "lawn_mower",
		Kind:        domain.KindControllable,
		Priority:    domain.PrioritySpecialized,
		Services:    names("start_mowing", "pause", "dock"),
		Description: "Control robotic lawn mowers",
	},
	{
		Name:     "weather",
		Kind:     domain.KindReadOnly,
		Priority: domain.PrioritySpecialized,
		Services: names("get_forecast", "get_forecasts"),
		Parameters: params{
			"get_forecast":  req("type"),
			"get_forecasts": req("type"),
		},
		Description: "Weather information and forecasts",
	},
	{
		Name:        "sun",
		Kind:        domain.KindReadOnly,
		Priority:    domain.PrioritySpecialized,
		ReadOnlyMsg: "Sun is a system entity providing sunrise/sunset times. Use 'get_entity_details' to read values.",
		Description: "Solar position and sunrise/sunset times",
	},

	// Service-only
	{
		Name:     "notify",
		Kind:     domain.KindServiceOnly,
		Priority: domain.PrioritySpecialized,
		Services: names("notify", "send_message", "persistent_notification"),
		Parameters: params{
			"notify":                  reqOpt(names("message"), "title", "target", "data"),
			"send_message":            reqOpt(names("message"), "title"),
			"persistent_notification": reqOpt(names("message"), "title", "data"),
		},
		Description: "Send notifications to devices and services",
	},
	{
		Name:     "tts",
		Kind:     domain.KindServiceOnly,
		Priority: domain.PrioritySpecialized,
		Services: names("speak", "say", "clear_cache"),
		Parameters: params{
			"speak": reqOpt(names("media_player_entity_id", "message"), "cache", "language", "options"),
			"say":   reqOpt(names("entity_id", "message"), "cache", "language", "options"),
		},
		Description: "Text-to-speech services",
	},
	{
		Name:     "persistent_notification",
		Kind:     domain.KindServiceOnly,
		Priority: domain.PrioritySpecialized,
		Services: names("create", "dismiss", "mark_read"),
		Parameters: params{
			"create":    reqOpt(names("message"), "title", "notification_id"),
			"dismiss":   req("notification_id"),
			"mark_read": req("notification_id"),
		},
		Description: "Create persistent UI notifications",
	},
}

// Catalog returns a copy of the static domain table.
func Catalog() []domain.DomainDescriptor {
	out := make([]domain.DomainDescriptor, len(catalog))
	copy(out, catalog)
	return out
}
