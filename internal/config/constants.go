package config

// Base application details
const AppName = "tidepad"
const Version = "0.1.0"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "tidepad.log"

// UI Layout
const StatusBarHeight = 1

// Defaults applied by NewDefaultConfig
const DefaultLogLevel = "info"
const ShowStatusBar = true
