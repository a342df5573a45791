package roles

// Role es un nivel de acceso asignable a un usuario.
// El nombre es único en la colección.
type Role struct {
	ID          string
	Nombre      string
	Descripcion string
	Nivel       int
}
