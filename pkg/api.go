package dupdigest

// ConfigureLogging applies a verbose configuration to the package logger
func ConfigureLogging(vc *VerboseConfig) {
	if vc == nil {
		return
	}
	SetVerboseLevel(vc.Level)
	SetDebugFlags(vc.Debug)
	if vc.Debug != "" {
		VerboseLog(1, "Debug flags initialised: %s", vc.Debug)
	}
}

// GetDebugEnabled returns whether a debug flag is enabled - public alternative to IsDebugEnabled
func GetDebugEnabled(flag string) bool {
	return IsDebugEnabled(flag)
}
