package models

// All lists every table for auto-migration.
func All() []any {
	return []any{
		&Wedding{},
		&WeddingEvent{},
		&GuestGroup{},
		&Guest{},
		&GuestTravelDetail{},
		&Vendor{},
		&VendorContract{},
		&BudgetCategory{},
		&BudgetItem{},
		&Expense{},
		&Task{},
		&ChecklistItem{},
		&TaskDependency{},
		&Menu{},
		&MenuItem{},
		&DancePerformance{},
		&DanceParticipant{},
		&AccommodationBooking{},
		&TransportationArrangement{},
		&MediaFile{},
		&Note{},
		&CommunicationLogEntry{},
	}
}
