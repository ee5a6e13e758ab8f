// Package permission exposes the system permission checks the dictation
// pipeline depends on: microphone access for capture, and input monitoring
// (accessibility) for the global event tap and keystroke synthesis.
package permission

// Provider answers permission checks and can trigger the system's
// permission prompt. Request methods are one-shot side effects; the OS
// decides whether a prompt is actually shown.
type Provider interface {
	// MicrophoneGranted reports whether microphone capture is authorized.
	MicrophoneGranted() bool

	// RequestMicrophone asks the OS to prompt for microphone access.
	RequestMicrophone()

	// InputMonitoringGranted reports whether the process may observe and
	// synthesize global input events.
	InputMonitoringGranted() bool

	// RequestInputMonitoring asks the OS to prompt for input monitoring
	// access.
	RequestInputMonitoring()
}

// System returns the platform permission provider.
func System() Provider {
	return systemProvider{}
}
