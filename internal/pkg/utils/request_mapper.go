package utils

import (
	"math"
	"strconv"
	"strings"
	"tracybot-service/internal/pkg/constvars"
	"tracybot-service/internal/pkg/dto/requests"
)

func MapCreateAppointmentParameters(params map[string]interface{}) *requests.CreateAppointment {
	return &requests.CreateAppointment{
		Person:      personName(params[constvars.ParamPerson]),
		Date:        stringParam(params[constvars.ParamDate]),
		Number:      intParam(params[constvars.ParamNumber]),
		PhoneNumber: stringParam(params[constvars.ParamPhoneNumber]),
	}
}

func MapLeaveMessageParameters(params map[string]interface{}) *requests.LeaveMessage {
	return &requests.LeaveMessage{
		Person:  personName(params[constvars.ParamPerson]),
		Email:   stringParam(params[constvars.ParamEmail]),
		Message: stringParam(params[constvars.ParamMessage]),
	}
}

// personName accepts the sys.person shape ({"name": "..."}) as well as a
// plain string parameter.
func personName(value interface{}) string {
	switch v := value.(type) {
	case map[string]interface{}:
		return stringParam(v[constvars.ParamPersonName])
	default:
		return stringParam(v)
	}
}

func stringParam(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []interface{}:
		if len(v) > 0 {
			return stringParam(v[0])
		}
	}
	return ""
}

// intParam returns 0 for anything that is not a whole number; 0 is never a
// valid slot so the hour validator rejects it with its own message.
func intParam(value interface{}) int {
	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0
		}
		return int(v)
	case int:
		return v
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	case []interface{}:
		if len(v) > 0 {
			return intParam(v[0])
		}
	}
	return 0
}
