package measurements

import "time"

// Measurement es una lectura puntual de los sensores del collar.
type Measurement struct {
	ID            string
	DispositivoID string
	Fecha         time.Time
	Movimiento    bool
	UbicacionLat  float64
	UbicacionLng  float64
	EstadoCollar  bool
	EstadoBroche  bool
	Bateria       float64
}
