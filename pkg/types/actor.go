package types

// Actor - аутентифицированный пользователь, от имени которого выполняется операция.
type Actor struct {
	ID       string
	Username string
	Role     string
}

func (a Actor) IsAdmin() bool {
	return a.Role == "admin"
}
