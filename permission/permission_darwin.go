//go:build darwin

package permission

/*
#cgo CFLAGS: -x objective-c -fobjc-arc -mmacosx-version-min=13.0
#cgo LDFLAGS: -framework AVFoundation -framework ApplicationServices -framework Foundation

#include <stdbool.h>

extern bool micAuthorized(void);
extern void micRequest(void);
extern bool inputMonitoringAuthorized(bool prompt);
*/
import "C"

type systemProvider struct{}

func (systemProvider) MicrophoneGranted() bool {
	return bool(C.micAuthorized())
}

func (systemProvider) RequestMicrophone() {
	C.micRequest()
}

func (systemProvider) InputMonitoringGranted() bool {
	return bool(C.inputMonitoringAuthorized(C.bool(false)))
}

func (systemProvider) RequestInputMonitoring() {
	// AXIsProcessTrustedWithOptions with the prompt option both checks and
	// asks; the OS shows the dialog at most once per process.
	C.inputMonitoringAuthorized(C.bool(true))
}
