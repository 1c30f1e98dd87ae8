package repository

import (
	"context"

	"gorm.io/gorm"

	"weddingplanner-backend/models"
)

// Store holds one repository per entity kind.
type Store struct {
	db *gorm.DB

	Weddings       *Repository[models.Wedding]
	Events         *Repository[models.WeddingEvent]
	GuestGroups    *Repository[models.GuestGroup]
	Guests         *Repository[models.Guest]
	Travel         *Repository[models.GuestTravelDetail]
	Vendors        *Repository[models.Vendor]
	Contracts      *Repository[models.VendorContract]
	Categories     *Repository[models.BudgetCategory]
	BudgetItems    *Repository[models.BudgetItem]
	Expenses       *Repository[models.Expense]
	Tasks          *Repository[models.Task]
	Checklist      *Repository[models.ChecklistItem]
	Dependencies   *Repository[models.TaskDependency]
	Menus          *Repository[models.Menu]
	MenuItems      *Repository[models.MenuItem]
	Dances         *Repository[models.DancePerformance]
	Participants   *Repository[models.DanceParticipant]
	Accommodations *Repository[models.AccommodationBooking]
	Transportation *Repository[models.TransportationArrangement]
	Files          *Repository[models.MediaFile]
	Notes          *Repository[models.Note]
	Communications *Repository[models.CommunicationLogEntry]
}

var (
	weddingKind = Kind{Name: "wedding", ParentColumn: "id"}
	eventKind   = Kind{
		Name: "event", ParentColumn: "wedding_id",
		OrderBy: "date ASC, created_at ASC",
		Filters: map[string]string{"eventType": "event_type"},
		Search:  []string{"name", "venue"},
	}
	guestGroupKind = Kind{Name: "guest group", ParentColumn: "wedding_id", Search: []string{"name"}}
	guestKind      = Kind{
		Name: "guest", ParentColumn: "wedding_id",
		Filters: map[string]string{"rsvpStatus": "rsvp_status", "groupId": "group_id", "side": "side"},
		Search:  []string{"first_name", "last_name", "email", "phone"},
	}
	travelKind = Kind{
		Name: "travel detail", ParentColumn: "wedding_id",
		OrderBy: "arrival_at ASC, created_at ASC",
		Filters: map[string]string{"guestId": "guest_id", "tripType": "trip_type", "mode": "mode"},
		// Travel belongs to its guest and disappears with it.
		Live: "guest_id IN (SELECT id FROM guests WHERE deleted_at IS NULL)",
	}
	vendorKind = Kind{
		Name: "vendor", ParentColumn: "wedding_id",
		Filters: map[string]string{"category": "category", "status": "status"},
		Search:  []string{"name", "contact_person", "category"},
	}
	contractKind = Kind{Name: "contract", ParentColumn: "vendor_id", OrderBy: "due_date ASC, created_at ASC"}
	categoryKind = Kind{Name: "budget category", ParentColumn: "wedding_id", Search: []string{"name"}}
	itemKind     = Kind{Name: "budget item", ParentColumn: "category_id"}
	expenseKind  = Kind{
		Name: "expense", ParentColumn: "wedding_id",
		Filters: map[string]string{"categoryId": "category_id", "vendorId": "vendor_id"},
		Search:  []string{"description", "paid_by"},
	}
	taskKind = Kind{
		Name: "task", ParentColumn: "wedding_id",
		Filters: map[string]string{"eventId": "event_id", "status": "status", "priority": "priority", "assignedTo": "assigned_to"},
		Search:  []string{"title", "description"},
	}
	checklistKind  = Kind{Name: "checklist item", ParentColumn: "task_id", OrderBy: "position ASC, created_at ASC"}
	dependencyKind = Kind{Name: "task dependency", ParentColumn: "task_id"}
	menuKind       = Kind{
		Name: "menu", ParentColumn: "wedding_id",
		Filters: map[string]string{"eventId": "event_id", "mealType": "meal_type"},
		Search:  []string{"name", "caterer"},
	}
	menuItemKind = Kind{Name: "menu item", ParentColumn: "menu_id"}
	danceKind    = Kind{
		Name: "dance performance", ParentColumn: "wedding_id",
		OrderBy: "sequence ASC, created_at ASC",
		Filters: map[string]string{"eventId": "event_id"},
		Search:  []string{"title", "song", "artist"},
	}
	participantKind   = Kind{Name: "participant", ParentColumn: "performance_id"}
	accommodationKind = Kind{Name: "accommodation", ParentColumn: "wedding_id", Search: []string{"hotel_name", "address"}}
	transportKind     = Kind{
		Name: "transportation", ParentColumn: "wedding_id",
		Filters: map[string]string{"eventId": "event_id", "vehicleType": "vehicle_type"},
	}
	linkFilters = map[string]string{"entityType": "entity_type", "entityId": "entity_id"}
	fileKind    = Kind{Name: "file", ParentColumn: "wedding_id", Filters: linkFilters, Search: []string{"name"}}
	noteKind    = Kind{
		Name: "note", ParentColumn: "wedding_id",
		OrderBy: "pinned DESC, created_at ASC",
		Filters: linkFilters, Search: []string{"title", "content"},
	}
	communicationKind = Kind{
		Name: "communication", ParentColumn: "wedding_id",
		OrderBy: "occurred_at DESC, created_at DESC",
		Filters: map[string]string{"entityType": "entity_type", "entityId": "entity_id", "channel": "channel", "direction": "direction"},
		Search:  []string{"recipient", "subject", "body"},
	}
)

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:             db,
		Weddings:       New[models.Wedding](db, weddingKind),
		Events:         New[models.WeddingEvent](db, eventKind),
		GuestGroups:    New[models.GuestGroup](db, guestGroupKind),
		Guests:         New[models.Guest](db, guestKind),
		Travel:         New[models.GuestTravelDetail](db, travelKind),
		Vendors:        New[models.Vendor](db, vendorKind),
		Contracts:      New[models.VendorContract](db, contractKind),
		Categories:     New[models.BudgetCategory](db, categoryKind),
		BudgetItems:    New[models.BudgetItem](db, itemKind),
		Expenses:       New[models.Expense](db, expenseKind),
		Tasks:          New[models.Task](db, taskKind),
		Checklist:      New[models.ChecklistItem](db, checklistKind),
		Dependencies:   New[models.TaskDependency](db, dependencyKind),
		Menus:          New[models.Menu](db, menuKind),
		MenuItems:      New[models.MenuItem](db, menuItemKind),
		Dances:         New[models.DancePerformance](db, danceKind),
		Participants:   New[models.DanceParticipant](db, participantKind),
		Accommodations: New[models.AccommodationBooking](db, accommodationKind),
		Transportation: New[models.TransportationArrangement](db, transportKind),
		Files:          New[models.MediaFile](db, fileKind),
		Notes:          New[models.Note](db, noteKind),
		Communications: New[models.CommunicationLogEntry](db, communicationKind),
	}
}

// DB returns the handle the store was built on.
func (s *Store) DB() *gorm.DB { return s.db }

// WithTx returns a store whose repositories all run on tx.
func (s *Store) WithTx(tx *gorm.DB) *Store {
	return NewStore(tx)
}

// Transaction runs fn against a store bound to one database transaction.
// Returning an error from fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(s.WithTx(tx))
	})
}
