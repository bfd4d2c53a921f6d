// Package store defines the persistence contracts the handlers work
// against. Implementations rewrite whole documents on save; there is no
// partial update.
package store

import "oneclip/clip-api/model"

// Users persists the username -> record map.
type Users interface {
	Load() (map[string]*model.User, error)
	Save(map[string]*model.User) error
}

// Videos persists the ordered video list.
type Videos interface {
	Load() ([]*model.Video, error)
	Save([]*model.Video) error
}

// Roles persists the privileged-username lists.
type Roles interface {
	Load() (*model.Roles, error)
	Save(*model.Roles) error
}
