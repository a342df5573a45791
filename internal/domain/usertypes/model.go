package usertypes

// UserType clasifica a los usuarios (nombre único).
type UserType struct {
	ID          string
	Nombre      string
	Descripcion string
}
