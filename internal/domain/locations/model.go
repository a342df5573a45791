package locations

import "time"

// LocationRecord es un punto del histórico de posiciones de un dispositivo.
type LocationRecord struct {
	ID            string
	DispositivoID string
	Fecha         time.Time
	Latitud       float64
	Longitud      float64
}
