package usecase

import "dni-registry/internal/repository"

// Users groups the user use cases built over a single repository.
type Users struct {
	Create *CreateUser
	Find   *FindUser
	List   *ListUsers
	Update *UpdateUser
	Delete *DeleteUser
}

func New(users repository.UserRepository) *Users {
	return &Users{
		Create: NewCreateUser(users),
		Find:   NewFindUser(users),
		List:   NewListUsers(users),
		Update: NewUpdateUser(users),
		Delete: NewDeleteUser(users),
	}
}
