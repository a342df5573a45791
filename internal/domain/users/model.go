package users

import "time"

// User es una cuenta de la plataforma.
// Contrasena guarda el hash bcrypt, nunca el texto plano.
type User struct {
	ID             string
	RolID          string
	Nombre         string
	NumeroContacto string
	Contrasena     string
	Correo         string
	FechaRegistro  time.Time
}
