//go:build !darwin

package permission

// Other platforms have no TCC-style permission model for the microphone or
// event taps, so the system provider reports everything as granted.

type systemProvider struct{}

func (systemProvider) MicrophoneGranted() bool { return true }

func (systemProvider) RequestMicrophone() {}

func (systemProvider) InputMonitoringGranted() bool { return true }

func (systemProvider) RequestInputMonitoring() {}
