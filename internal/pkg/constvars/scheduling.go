package constvars

// Intent display names sent by the conversational agent. The Spanish names are
// the ones configured on the original agent and are still accepted.
const (
	IntentCreateAppointment      = "CreateAppointment"
	IntentLeaveMessage           = "LeaveMessage"
	IntentCreateAppointmentAlias = "CrearCita"
	IntentLeaveMessageAlias      = "Dejarmensaje"
)

// Dialogflow parameter names.
const (
	ParamPerson      = "person"
	ParamPersonName  = "name"
	ParamDate        = "date"
	ParamNumber      = "number"
	ParamPhoneNumber = "phone-number"
	ParamEmail       = "email"
	ParamMessage     = "message"
)

const (
	MorningFirstHour   = 9
	MorningLastHour    = 12
	AfternoonFirstHour = 15
	AfternoonLastHour  = 17

	AfternoonSlotMin = 1
	AfternoonSlotMax = 5
	HoursToAfternoon = 12
)

const (
	DefaultInboxLabel = "Mensajes Recibidos"
	DefaultTimezone   = "America/Lima"
)

const (
	LockKeySlotFormat  = "lock:slot:%s:%s"
	LockKeyInboxFormat = "lock:inbox:%s:%s"
)

const (
	AppointmentSummaryFormat     = "Cita con %s - Teléfono: %s"
	AppointmentDescriptionFormat = "Cita con %s. Teléfono: %s"
	InboxEntryFormat             = "Mensaje de %s, %s enviado el %s: %s"
	InboxEntrySeparator          = "\n\n"
)

const (
	ReplyAppointmentBooked = "%s, tu cita ha sido creada con éxito! Para el %s a las %s. Número de teléfono para gestión de cita: %s. ¡Te esperamos!"
	ReplyMessageRelayed    = "Gracias, %s. Tu mensaje ha sido enviado al supervisor. Te contactaremos a través de %s."

	ReplyOutOfHours           = "La hora ingresada está fuera del horario permitido. Solo se permiten citas entre 9 AM - 12 PM y 3 PM - 5 PM."
	ReplyOutsideBusinessHours = "La hora ingresada está fuera del horario de atención. Solo se permiten citas entre 9 AM - 12 PM y 3 PM - 5 PM."
	ReplyWeekdaysOnly         = "Lo siento, las citas sólo se pueden agendar de lunes a viernes."
	ReplyInvalidDate          = "Lo siento, no pude entender la fecha de la cita. Por favor indícala nuevamente."
	ReplySlotAlreadyBooked    = "Lo siento, ya existe una cita en ese horario. Por favor elige otro horario."
	ReplyAvailabilityFailed   = "Hubo un error al verificar los horarios disponibles."
	ReplyAppointmentFailed    = "Hubo un error al crear el evento."
	ReplyInboxSearchFailed    = "Hubo un error al buscar eventos en Google Calendar."
	ReplyInboxUpdateFailed    = "Hubo un error al actualizar el evento en Google Calendar."
	ReplyInboxCreateFailed    = "Hubo un error al crear el evento en Google Calendar."
	ReplyProcessingFailed     = "Lo siento, hubo un error procesando tu solicitud."
	ReplyMissingParameters    = "Lo siento, faltan datos para completar tu solicitud. Por favor inténtalo nuevamente."
	ReplyUnsupportedIntent    = "Lo siento, no puedo ayudarte con esa solicitud."
)
