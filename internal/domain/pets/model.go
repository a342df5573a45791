package pets

// Pet es una mascota registrada, identificada por el serial del collar.
type Pet struct {
	ID            string
	Serial        string
	NombreMascota string
	RazaPerro     string
	EdadPerro     int
}
