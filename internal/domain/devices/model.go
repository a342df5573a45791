package devices

import "time"

// Device es la unidad de rastreo del collar, identificada por serial único.
type Device struct {
	ID            string
	Serial        string
	Estado        string
	FechaRegistro time.Time
}
