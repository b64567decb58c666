package entity

// Session es el contexto de autenticación que el llamador obtiene al iniciar sesión
// y pasa explícitamente a las operaciones que lo necesitan (no hay estado global).
type Session struct {
	ID       string
	Username string
	IsAdmin  bool
}

// Anonymous es una sesión sin privilegios.
var Anonymous = Session{}
