package reports

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"weddingplanner-backend/models"
)

// Dataset is everything an export may need, fetched up front.
type Dataset struct {
	Wedding      models.Wedding
	Events       []models.WeddingEvent
	Groups       []models.GuestGroup
	Guests       []models.Guest
	Travel       []models.GuestTravelDetail
	Vendors      []models.Vendor
	Contracts    []models.VendorContract
	Categories   []models.BudgetCategory
	BudgetItems  []models.BudgetItem
	Expenses     []models.Expense
	Tasks        []models.Task
	Checklist    []models.ChecklistItem
	Dependencies []models.TaskDependency
	Menus        []models.Menu
	MenuItems    []models.MenuItem
	Dances       []models.DancePerformance
	Participants []models.DanceParticipant
}

var ErrUnknownExportType = errors.New("unknown export type")

const (
	SectionGuests   = "guests"
	SectionVendors  = "vendors"
	SectionBudget   = "budget"
	SectionExpenses = "expenses"
	SectionTasks    = "tasks"
	SectionEvents   = "events"
	SectionMenus    = "menus"
	SectionDances   = "dances"
	SectionTravel   = "travel"
)

var exportTypes = map[string][]string{
	SectionGuests:  {SectionGuests},
	SectionVendors: {SectionVendors},
	SectionBudget:  {SectionBudget, SectionExpenses},
	SectionTasks:   {SectionTasks},
	SectionEvents:  {SectionEvents},
	SectionMenus:   {SectionMenus},
	SectionDances:  {SectionDances},
	SectionTravel:  {SectionTravel},
	"all": {
		SectionGuests, SectionVendors, SectionBudget, SectionExpenses, SectionTasks,
		SectionEvents, SectionMenus, SectionDances, SectionTravel,
	},
}

// SectionsFor lists the sections an export type produces.
func SectionsFor(exportType string) ([]string, error) {
	sections, ok := exportTypes[strings.ToLower(strings.TrimSpace(exportType))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExportType, exportType)
	}
	return sections, nil
}

// Export maps each requested section to column-labeled rows.
func Export(exportType string, d Dataset) (map[string][]*Row, error) {
	sections, err := SectionsFor(exportType)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]*Row, len(sections))
	for _, s := range sections {
		switch s {
		case SectionGuests:
			out[s] = GuestRows(d.Guests, d.Groups)
		case SectionVendors:
			out[s] = VendorRows(d.Vendors, d.Contracts)
		case SectionBudget:
			out[s] = BudgetRows(SummarizeBudget(d.Categories, d.BudgetItems, d.Expenses))
		case SectionExpenses:
			out[s] = ExpenseRows(d.Expenses, d.Categories, d.Vendors)
		case SectionTasks:
			out[s] = TaskRows(d.Tasks, d.Checklist, d.Dependencies, d.Events)
		case SectionEvents:
			out[s] = EventRows(d.Events)
		case SectionMenus:
			out[s] = MenuRows(d.Menus, d.MenuItems, d.Events)
		case SectionDances:
			out[s] = DanceRows(d.Dances, d.Participants, d.Guests, d.Events)
		case SectionTravel:
			out[s] = TravelRows(d.Travel, d.Guests)
		}
	}
	return out, nil
}

func GuestRows(guests []models.Guest, groups []models.GuestGroup) []*Row {
	groupNames := make(map[uuid.UUID]string, len(groups))
	for _, g := range groups {
		groupNames[g.ID] = g.Name
	}
	rows := make([]*Row, 0, len(guests))
	for _, g := range guests {
		rows = append(rows, NewRow().
			Set("First Name", g.FirstName).
			Set("Last Name", g.LastName).
			Set("Email", g.Email).
			Set("Phone", g.Phone).
			Set("Side", g.Side).
			Set("Group", lookup(groupNames, g.GroupID)).
			Set("RSVP Status", g.RSVPStatus).
			Set("Plus One", yesNo(g.PlusOne)).
			Set("Plus One Name", g.PlusOneName).
			Set("Dietary Preferences", strings.Join(g.DietaryPreferences, ", ")).
			Set("Notes", g.Notes))
	}
	return rows
}

func VendorRows(vendors []models.Vendor, contracts []models.VendorContract) []*Row {
	contracted := map[uuid.UUID]float64{}
	paid := map[uuid.UUID]float64{}
	for _, c := range contracts {
		contracted[c.VendorID] += c.Amount
		if c.Paid {
			paid[c.VendorID] += c.Amount
		}
	}
	rows := make([]*Row, 0, len(vendors))
	for _, v := range vendors {
		rows = append(rows, NewRow().
			Set("Name", v.Name).
			Set("Category", v.Category).
			Set("Contact Person", v.ContactPerson).
			Set("Phone", v.Phone).
			Set("Email", v.Email).
			Set("Status", v.Status).
			Set("Quoted Amount", amount(v.QuotedAmount)).
			Set("Contracted Amount", amount(contracted[v.ID])).
			Set("Paid Amount", amount(paid[v.ID])).
			Set("Rating", optInt(v.Rating)))
	}
	return rows
}

func BudgetRows(summary BudgetSummary) []*Row {
	rows := make([]*Row, 0, len(summary.Categories))
	for _, c := range summary.Categories {
		rows = append(rows, NewRow().
			Set("Category", c.Name).
			Set("Allocated", amount(c.Allocated)).
			Set("Estimated", amount(c.Estimated)).
			Set("Spent", amount(c.Spent)).
			Set("Remaining", amount(c.Remaining)).
			Set("Spent %", amount(c.SpentPercentage)))
	}
	return rows
}

func ExpenseRows(expenses []models.Expense, categories []models.BudgetCategory, vendors []models.Vendor) []*Row {
	categoryNames := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}
	vendorNames := make(map[uuid.UUID]string, len(vendors))
	for _, v := range vendors {
		vendorNames[v.ID] = v.Name
	}
	rows := make([]*Row, 0, len(expenses))
	for _, e := range expenses {
		if e.DeletedAt.Valid {
			continue
		}
		rows = append(rows, NewRow().
			Set("Date", date(e.Date)).
			Set("Description", e.Description).
			Set("Category", lookup(categoryNames, e.CategoryID)).
			Set("Vendor", lookup(vendorNames, e.VendorID)).
			Set("Amount", amount(e.Amount)).
			Set("Paid By", e.PaidBy).
			Set("Payment Method", e.PaymentMethod))
	}
	return rows
}

func TaskRows(tasks []models.Task, checklist []models.ChecklistItem, deps []models.TaskDependency, events []models.WeddingEvent) []*Row {
	itemsByTask := map[uuid.UUID][]models.ChecklistItem{}
	for _, it := range checklist {
		itemsByTask[it.TaskID] = append(itemsByTask[it.TaskID], it)
	}
	titles := make(map[uuid.UUID]string, len(tasks))
	for _, t := range tasks {
		titles[t.ID] = t.Title
	}
	dependsOn := map[uuid.UUID][]string{}
	for _, d := range deps {
		if title, ok := titles[d.DependsOnTaskID]; ok {
			dependsOn[d.TaskID] = append(dependsOn[d.TaskID], title)
		}
	}
	eventNames := eventNameIndex(events)

	rows := make([]*Row, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, NewRow().
			Set("Title", t.Title).
			Set("Status", t.Status).
			Set("Priority", t.Priority).
			Set("Due Date", date(t.DueDate)).
			Set("Assigned To", t.AssignedTo).
			Set("Event", lookup(eventNames, t.EventID)).
			Set("Checklist Progress", amount(ChecklistProgress(itemsByTask[t.ID]))+"%").
			Set("Depends On", strings.Join(dependsOn[t.ID], ", ")))
	}
	return rows
}

func EventRows(events []models.WeddingEvent) []*Row {
	rows := make([]*Row, 0, len(events))
	for _, e := range events {
		rows = append(rows, NewRow().
			Set("Name", e.Name).
			Set("Type", e.EventType).
			Set("Date", date(&e.Date)).
			Set("Start Time", e.StartTime).
			Set("End Time", e.EndTime).
			Set("Venue", e.Venue).
			Set("Address", e.Address))
	}
	return rows
}

func MenuRows(menus []models.Menu, items []models.MenuItem, events []models.WeddingEvent) []*Row {
	itemsByMenu := map[uuid.UUID][]models.MenuItem{}
	for _, it := range items {
		itemsByMenu[it.MenuID] = append(itemsByMenu[it.MenuID], it)
	}
	eventNames := eventNameIndex(events)

	var rows []*Row
	for _, m := range menus {
		for _, it := range itemsByMenu[m.ID] {
			rows = append(rows, NewRow().
				Set("Menu", m.Name).
				Set("Event", lookup(eventNames, m.EventID)).
				Set("Meal Type", m.MealType).
				Set("Item", it.Name).
				Set("Course", it.Course).
				Set("Dietary", strings.Join(dietaryFlags(it), ", ")).
				Set("Serving Size", it.ServingSize).
				Set("Quantity", optInt(it.Quantity)).
				Set("Approved", yesNo(m.Approved)))
		}
	}
	if rows == nil {
		rows = []*Row{}
	}
	return rows
}

func DanceRows(dances []models.DancePerformance, participants []models.DanceParticipant, guests []models.Guest, events []models.WeddingEvent) []*Row {
	guestNames := make(map[uuid.UUID]string, len(guests))
	for _, g := range guests {
		guestNames[g.ID] = g.FullName()
	}
	names := map[uuid.UUID][]string{}
	for _, p := range participants {
		names[p.PerformanceID] = append(names[p.PerformanceID], ParticipantName(p, guestNames))
	}
	eventNames := eventNameIndex(events)

	rows := make([]*Row, 0, len(dances))
	for _, d := range dances {
		rows = append(rows, NewRow().
			Set("Performance", d.Title).
			Set("Event", lookup(eventNames, d.EventID)).
			Set("Song", d.Song).
			Set("Artist", d.Artist).
			Set("Choreographer", d.Choreographer).
			Set("Duration (min)", nonZero(d.DurationMinutes)).
			Set("Participants", strings.Join(names[d.ID], ", ")))
	}
	return rows
}

func TravelRows(travel []models.GuestTravelDetail, guests []models.Guest) []*Row {
	guestNames := make(map[uuid.UUID]string, len(guests))
	for _, g := range guests {
		guestNames[g.ID] = g.FullName()
	}
	rows := make([]*Row, 0, len(travel))
	for _, t := range travel {
		rows = append(rows, NewRow().
			Set("Guest", guestNames[t.GuestID]).
			Set("Trip Type", t.TripType).
			Set("Mode", t.Mode).
			Set("From", t.ArrivalFrom).
			Set("Arrival", dateTime(t.ArrivalAt)).
			Set("Arrival Carrier", t.ArrivalCarrier).
			Set("Arrival Number", t.ArrivalNumber).
			Set("Departure", dateTime(t.DepartureAt)).
			Set("Departure Number", t.DepartureNumber).
			Set("Pickup Required", yesNo(t.PickupRequired)))
	}
	return rows
}

// ParticipantName prefers the linked guest's name over the free-text one.
func ParticipantName(p models.DanceParticipant, guestNames map[uuid.UUID]string) string {
	if p.GuestID != nil {
		if name, ok := guestNames[*p.GuestID]; ok && name != "" {
			return name
		}
	}
	return p.Name
}

func dietaryFlags(it models.MenuItem) []string {
	var flags []string
	if it.Vegetarian {
		flags = append(flags, "Vegetarian")
	}
	if it.Vegan {
		flags = append(flags, "Vegan")
	}
	if it.Jain {
		flags = append(flags, "Jain")
	}
	if it.GlutenFree {
		flags = append(flags, "Gluten Free")
	}
	return flags
}

func eventNameIndex(events []models.WeddingEvent) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(events))
	for _, e := range events {
		names[e.ID] = e.Name
	}
	return names
}

func lookup(names map[uuid.UUID]string, id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return names[*id]
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func amount(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func nonZero(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func dateTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
