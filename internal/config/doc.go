// Package config provides configuration management for mdslides.
//
// Configuration is loaded from several YAML sources and merged in order, with
// later sources overriding earlier ones:
//
//  1. Default configuration (compiled in)
//  2. User configuration (~/.config/mdslides/config.yaml)
//  3. Project configuration (./.mdslides/config.yaml)
//  4. An explicit file passed with --config
//
// Only fields set in an overlay replace the value below it. Durations use Go
// duration strings; a negative hint_duration hides the navigation hint.
//
//	navigation:
//	  transition_window: 800ms
//	  wheel_cooldown: 1s
//	  autoplay_interval: 8s
//	  hint_duration: 5s
//	  min_swipe_distance: 3
//	  max_swipe_duration: 500ms
//	display:
//	  theme: dark
//	  autoplay: false
//	log:
//	  level: info
//	  file: /tmp/mdslides.log
package config
