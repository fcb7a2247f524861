package load

import (
	"fmt"

	"meddrop/internal/pkg/errs"
)

// ServiceType is the courier service level requested for a load. It is part
// of the duplicate-detection fingerprint: two requests are only exact
// duplicates when they ask for the same service level.
type ServiceType int

const (
	// ServiceUnknown is the invalid zero value.
	ServiceUnknown ServiceType = iota

	// ServiceRoutine is a next-scheduled-run delivery.
	ServiceRoutine

	// ServiceSameDay is a same-business-day delivery.
	ServiceSameDay

	// ServiceStat is an immediate, direct-drive delivery.
	ServiceStat
)

func serviceTypeStrings() map[ServiceType]string {
	return map[ServiceType]string{
		ServiceUnknown: "UNKNOWN",
		ServiceRoutine: "ROUTINE",
		ServiceSameDay: "SAME_DAY",
		ServiceStat:    "STAT",
	}
}

// ServiceTypeFromString parses the wire representation of a service type.
func ServiceTypeFromString(s string) (ServiceType, error) {
	for serviceType, str := range serviceTypeStrings() {
		if str == s && serviceType != ServiceUnknown {
			return serviceType, nil
		}
	}
	return ServiceUnknown, errs.NewValueIsInvalidErrorWithCause(
		"serviceType", fmt.Errorf("%q is not a known service type", s))
}

// String returns the wire representation of the service type.
func (t ServiceType) String() string {
	if str, ok := serviceTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate reports whether the service type is one of the defined values.
func (t ServiceType) Validate() error {
	switch t {
	case ServiceRoutine, ServiceSameDay, ServiceStat:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"serviceType", fmt.Errorf("%d is not a valid service type", t))
	}
}
