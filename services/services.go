package services

import (
	"gorm.io/gorm"

	"weddingplanner-backend/logger"
	"weddingplanner-backend/repository"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Store       *repository.Store
	Guard       *OwnershipGuard
	Links       *LinkValidator
	Composer    *Composer
	Tasks       *TaskService
	Bundles     *BundleWriter
	Loader      *Loader
	Broadcaster *Broadcaster
	Sweeper     *TaskSweeper
}

// New wires the services over db. messenger may be nil when no messaging
// provider is configured.
func New(db *gorm.DB, messenger Messenger, log *logger.Logger) *Services {
	store := repository.NewStore(db)
	links := NewLinkValidator(store)
	return &Services{
		Store:       store,
		Guard:       NewOwnershipGuard(store),
		Links:       links,
		Composer:    NewComposer(store),
		Tasks:       NewTaskService(store, links),
		Bundles:     NewBundleWriter(store, links),
		Loader:      NewLoader(store),
		Broadcaster: NewBroadcaster(store, messenger, log),
		Sweeper:     NewTaskSweeper(db, log),
	}
}
