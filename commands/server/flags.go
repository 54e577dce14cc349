package server

// Flags shared by the node commands. They are bound to viper, so every
// value can also be set with an environment variable.
const (
	FlagHome     = "home"
	FlagDebug    = "debug"
	FlagLogLevel = "log_level"

	flagBind  = "bind"
	flagForce = "force"
)
