package model

// UnknownDeviceName is the placeholder used when the device registry
// cannot be reached; enrichment failure never fails an alert.
const UnknownDeviceName = "Unknown Device"

// Device is the registry view of a sensor device.
// The registry itself is owned by an external collaborator.
type Device struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location *string `json:"location,omitempty"`
}
