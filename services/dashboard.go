package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"weddingplanner-backend/models"
	"weddingplanner-backend/reports"
	"weddingplanner-backend/repository"
	"weddingplanner-backend/utils"
)

const (
	fanOutLimit       = 4
	upcomingEventsMax = 5
	overdueTasksMax   = 10
)

type Dashboard struct {
	Wedding          models.Wedding        `json:"wedding"`
	DaysUntilWedding *int                  `json:"daysUntilWedding"`
	RSVP             reports.RSVPCounts    `json:"rsvp"`
	Dietary          map[string]int        `json:"dietary"`
	Budget           reports.BudgetSummary `json:"budget"`
	Tasks            reports.TaskCounts    `json:"tasks"`
	OverdueTasks     []models.Task         `json:"overdueTasks"`
	UpcomingEvents   []models.WeddingEvent `json:"upcomingEvents"`
	Vendors          map[string]int        `json:"vendorsByStatus"`
	Counts           map[string]int        `json:"counts"`
}

// Loader fetches independent collections of one wedding concurrently.
type Loader struct {
	store *repository.Store
	now   func() time.Time
}

func NewLoader(store *repository.Store) *Loader {
	return &Loader{store: store, now: func() time.Time { return time.Now().UTC() }}
}

func list[E any](ctx context.Context, repo *repository.Repository[E], weddingID uuid.UUID, dst *[]E) func() error {
	return func() error {
		rows, err := repo.ListByParent(ctx, weddingID, repository.Filter{})
		if err != nil {
			return err
		}
		*dst = rows
		return nil
	}
}

func children[E any](ctx context.Context, repo *repository.Repository[E], parentIDs []uuid.UUID, dst *[]E) func() error {
	return func() error {
		rows, err := repo.ListByParents(ctx, parentIDs)
		if err != nil {
			return err
		}
		*dst = rows
		return nil
	}
}

func (l *Loader) Dashboard(ctx context.Context, w *models.Wedding) (*Dashboard, error) {
	var d reports.Dataset
	d.Wedding = *w

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)
	g.Go(list(gctx, l.store.Events, w.ID, &d.Events))
	g.Go(list(gctx, l.store.Guests, w.ID, &d.Guests))
	g.Go(list(gctx, l.store.Categories, w.ID, &d.Categories))
	g.Go(list(gctx, l.store.Expenses, w.ID, &d.Expenses))
	g.Go(list(gctx, l.store.Tasks, w.ID, &d.Tasks))
	g.Go(list(gctx, l.store.Vendors, w.ID, &d.Vendors))
	if err := g.Wait(); err != nil {
		return nil, err
	}
	items, err := l.store.BudgetItems.ListByParents(ctx, categoryIDs(d.Categories))
	if err != nil {
		return nil, err
	}
	d.BudgetItems = items

	now := l.now()
	currency := w.Currency
	out := &Dashboard{
		Wedding:        *w,
		RSVP:           reports.CountRSVP(d.Guests),
		Dietary:        reports.DietaryCounts(d.Guests),
		Budget:         reports.SummarizeBudget(d.Categories, d.BudgetItems, d.Expenses).WithCurrency(currency),
		Tasks:          reports.CountTasks(d.Tasks, now),
		OverdueTasks:   []models.Task{},
		UpcomingEvents: []models.WeddingEvent{},
		Vendors:        map[string]int{},
		Counts: map[string]int{
			"events":   len(d.Events),
			"guests":   len(d.Guests),
			"vendors":  len(d.Vendors),
			"tasks":    len(d.Tasks),
			"expenses": len(d.Expenses),
		},
	}
	if w.StartDate != nil {
		days := utils.DaysBetween(now, *w.StartDate)
		out.DaysUntilWedding = &days
	}

	for _, t := range d.Tasks {
		if reports.IsOverdue(t, now) {
			out.OverdueTasks = append(out.OverdueTasks, t)
		}
	}
	sort.SliceStable(out.OverdueTasks, func(i, j int) bool {
		return out.OverdueTasks[i].DueDate.Before(*out.OverdueTasks[j].DueDate)
	})
	if len(out.OverdueTasks) > overdueTasksMax {
		out.OverdueTasks = out.OverdueTasks[:overdueTasksMax]
	}

	today := utils.UTCDay(now)
	for _, e := range d.Events {
		if !e.Date.Before(today) && len(out.UpcomingEvents) < upcomingEventsMax {
			out.UpcomingEvents = append(out.UpcomingEvents, e)
		}
	}
	for _, s := range models.VendorStatuses {
		out.Vendors[s] = 0
	}
	for _, v := range d.Vendors {
		out.Vendors[v.Status]++
	}
	return out, nil
}

// BudgetSummary loads the three collections the summary is derived from.
func (l *Loader) BudgetSummary(ctx context.Context, w *models.Wedding) (reports.BudgetSummary, error) {
	var d reports.Dataset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(list(gctx, l.store.Categories, w.ID, &d.Categories))
	g.Go(list(gctx, l.store.Expenses, w.ID, &d.Expenses))
	if err := g.Wait(); err != nil {
		return reports.BudgetSummary{}, err
	}
	items, err := l.store.BudgetItems.ListByParents(ctx, categoryIDs(d.Categories))
	if err != nil {
		return reports.BudgetSummary{}, err
	}
	return reports.SummarizeBudget(d.Categories, items, d.Expenses).WithCurrency(w.Currency), nil
}

// ConfirmedHeadcount is the number of confirmed individuals, plus-ones
// included.
func (l *Loader) ConfirmedHeadcount(ctx context.Context, weddingID uuid.UUID) (int, error) {
	guests, err := l.store.Guests.ListByParent(ctx, weddingID, repository.Filter{
		Equals: map[string]string{"rsvpStatus": models.RSVPConfirmed},
	})
	if err != nil {
		return 0, err
	}
	return reports.CountRSVP(guests).ConfirmedIndividuals, nil
}

// Dataset fetches what the given export sections need. Parents are loaded
// in a first fan-out, their children in a second.
func (l *Loader) Dataset(ctx context.Context, w *models.Wedding, sections []string) (reports.Dataset, error) {
	need := map[string]bool{}
	for _, s := range sections {
		need[s] = true
	}
	d := reports.Dataset{Wedding: *w}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)
	if need[reports.SectionGuests] || need[reports.SectionDances] || need[reports.SectionTravel] {
		g.Go(list(gctx, l.store.Guests, w.ID, &d.Guests))
	}
	if need[reports.SectionGuests] {
		g.Go(list(gctx, l.store.GuestGroups, w.ID, &d.Groups))
	}
	if need[reports.SectionTravel] {
		g.Go(list(gctx, l.store.Travel, w.ID, &d.Travel))
	}
	if need[reports.SectionVendors] || need[reports.SectionExpenses] {
		g.Go(list(gctx, l.store.Vendors, w.ID, &d.Vendors))
	}
	if need[reports.SectionBudget] || need[reports.SectionExpenses] {
		g.Go(list(gctx, l.store.Categories, w.ID, &d.Categories))
		g.Go(list(gctx, l.store.Expenses, w.ID, &d.Expenses))
	}
	if need[reports.SectionTasks] {
		g.Go(list(gctx, l.store.Tasks, w.ID, &d.Tasks))
	}
	if need[reports.SectionEvents] || need[reports.SectionTasks] || need[reports.SectionMenus] || need[reports.SectionDances] {
		g.Go(list(gctx, l.store.Events, w.ID, &d.Events))
	}
	if need[reports.SectionMenus] {
		g.Go(list(gctx, l.store.Menus, w.ID, &d.Menus))
	}
	if need[reports.SectionDances] {
		g.Go(list(gctx, l.store.Dances, w.ID, &d.Dances))
	}
	if err := g.Wait(); err != nil {
		return reports.Dataset{}, err
	}

	taskIDs := make([]uuid.UUID, len(d.Tasks))
	for i, t := range d.Tasks {
		taskIDs[i] = t.ID
	}
	vendorIDs := make([]uuid.UUID, len(d.Vendors))
	for i, v := range d.Vendors {
		vendorIDs[i] = v.ID
	}
	menuIDs := make([]uuid.UUID, len(d.Menus))
	for i, m := range d.Menus {
		menuIDs[i] = m.ID
	}
	danceIDs := make([]uuid.UUID, len(d.Dances))
	for i, p := range d.Dances {
		danceIDs[i] = p.ID
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)
	g.Go(children(gctx, l.store.Contracts, vendorIDs, &d.Contracts))
	g.Go(children(gctx, l.store.BudgetItems, categoryIDs(d.Categories), &d.BudgetItems))
	g.Go(children(gctx, l.store.Checklist, taskIDs, &d.Checklist))
	g.Go(children(gctx, l.store.Dependencies, taskIDs, &d.Dependencies))
	g.Go(children(gctx, l.store.MenuItems, menuIDs, &d.MenuItems))
	g.Go(children(gctx, l.store.Participants, danceIDs, &d.Participants))
	if err := g.Wait(); err != nil {
		return reports.Dataset{}, err
	}
	return d, nil
}

func categoryIDs(categories []models.BudgetCategory) []uuid.UUID {
	ids := make([]uuid.UUID, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}
	return ids
}
