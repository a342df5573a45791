package events

import "time"

// EstadoReportado es el estado con el que queda todo evento
// que reporta el propio collar.
const EstadoReportado = "reportado"

// Event es un suceso discreto asociado a un dispositivo
// (collar abierto, batería baja, etc.), opcionalmente ligado a un usuario.
type Event struct {
	ID            string
	UsuarioID     string
	DispositivoID string
	Fecha         time.Time
	Hora          int
	TipoEvento    string
	Descripcion   string
	Estado        string
}
