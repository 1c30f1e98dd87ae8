package services

import (
	"context"

	"github.com/google/uuid"

	"weddingplanner-backend/models"
	"weddingplanner-backend/reports"
	"weddingplanner-backend/repository"
)

// Attach loads the children of every parent id with one call to load and
// groups them by key. Each parent gets a non-nil slice; children keep the
// order load returned them in.
func Attach[C any](ctx context.Context, parentIDs []uuid.UUID, load func(context.Context, []uuid.UUID) ([]C, error), key func(C) uuid.UUID) (map[uuid.UUID][]C, error) {
	grouped := make(map[uuid.UUID][]C, len(parentIDs))
	for _, id := range parentIDs {
		grouped[id] = []C{}
	}
	if len(parentIDs) == 0 {
		return grouped, nil
	}
	children, err := load(ctx, parentIDs)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		k := key(c)
		if _, ok := grouped[k]; ok {
			grouped[k] = append(grouped[k], c)
		}
	}
	return grouped, nil
}

func idsOf[E any](rows []E, id func(E) uuid.UUID) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]bool, len(rows))
	for _, r := range rows {
		k := id(r)
		if !seen[k] {
			seen[k] = true
			ids = append(ids, k)
		}
	}
	return ids
}

type GuestRef struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

type ParticipantView struct {
	models.DanceParticipant
	DisplayName string    `json:"displayName"`
	Guest       *GuestRef `json:"guest"`
}

type PerformanceView struct {
	models.DancePerformance
	Participants []ParticipantView `json:"participants"`
}

type DependencyView struct {
	models.TaskDependency
	DependsOnTitle  string `json:"dependsOnTitle"`
	DependsOnStatus string `json:"dependsOnStatus"`
}

type TaskView struct {
	models.Task
	Checklist    []models.ChecklistItem `json:"checklist"`
	Dependencies []DependencyView       `json:"dependencies"`
	Progress     float64                `json:"progress"`
}

type MenuItemView struct {
	models.MenuItem
	SuggestedQuantity int `json:"suggestedQuantity"`
	EffectiveQuantity int `json:"effectiveQuantity"`
}

type MenuView struct {
	models.Menu
	GuestCount int            `json:"guestCount"`
	Items      []MenuItemView `json:"items"`
}

type GuestView struct {
	models.Guest
	Travel []models.GuestTravelDetail `json:"travel"`
}

type VendorView struct {
	models.Vendor
	Contracts         []models.VendorContract `json:"contracts"`
	ContractedAmount  float64                 `json:"contractedAmount"`
	PaidAmount        float64                 `json:"paidAmount"`
	OutstandingAmount float64                 `json:"outstandingAmount"`
}

type CategoryView struct {
	models.BudgetCategory
	Items           []models.BudgetItem `json:"items"`
	Spent           float64             `json:"spent"`
	Remaining       float64             `json:"remaining"`
	SpentPercentage float64             `json:"spentPercentage"`
}

// Composer joins parent rows with their children using one batched query
// per child kind.
type Composer struct {
	store *repository.Store
}

func NewComposer(store *repository.Store) *Composer {
	return &Composer{store: store}
}

// Performances attaches participants and resolves linked guests to their
// names. A participant whose guest is gone, or lives in another wedding,
// falls back to its free-text name.
func (c *Composer) Performances(ctx context.Context, weddingID uuid.UUID, perfs []models.DancePerformance) ([]PerformanceView, error) {
	byPerf, err := Attach(ctx,
		idsOf(perfs, func(p models.DancePerformance) uuid.UUID { return p.ID }),
		c.store.Participants.ListByParents,
		func(p models.DanceParticipant) uuid.UUID { return p.PerformanceID })
	if err != nil {
		return nil, err
	}

	var guestIDs []uuid.UUID
	for _, parts := range byPerf {
		for _, p := range parts {
			if p.GuestID != nil {
				guestIDs = append(guestIDs, *p.GuestID)
			}
		}
	}
	guests := map[uuid.UUID]GuestRef{}
	if len(guestIDs) > 0 {
		rows, err := c.store.Guests.ListByIDs(ctx, guestIDs)
		if err != nil {
			return nil, err
		}
		for _, g := range rows {
			if g.WeddingID == weddingID {
				guests[g.ID] = GuestRef{ID: g.ID, FirstName: g.FirstName, LastName: g.LastName}
			}
		}
	}

	views := make([]PerformanceView, 0, len(perfs))
	for _, perf := range perfs {
		parts := byPerf[perf.ID]
		pv := PerformanceView{DancePerformance: perf, Participants: make([]ParticipantView, 0, len(parts))}
		for _, p := range parts {
			v := ParticipantView{DanceParticipant: p, DisplayName: p.Name}
			if p.GuestID != nil {
				if ref, ok := guests[*p.GuestID]; ok {
					v.Guest = &ref
					v.DisplayName = (&models.Guest{FirstName: ref.FirstName, LastName: ref.LastName}).FullName()
				}
			}
			pv.Participants = append(pv.Participants, v)
		}
		views = append(views, pv)
	}
	return views, nil
}

// Tasks attaches ordered checklists and dependencies, resolving each
// dependency's title. Edges to tasks that are gone are left out.
func (c *Composer) Tasks(ctx context.Context, weddingID uuid.UUID, tasks []models.Task) ([]TaskView, error) {
	ids := idsOf(tasks, func(t models.Task) uuid.UUID { return t.ID })
	checklists, err := Attach(ctx, ids, c.store.Checklist.ListByParents,
		func(it models.ChecklistItem) uuid.UUID { return it.TaskID })
	if err != nil {
		return nil, err
	}
	deps, err := Attach(ctx, ids, c.store.Dependencies.ListByParents,
		func(d models.TaskDependency) uuid.UUID { return d.TaskID })
	if err != nil {
		return nil, err
	}

	var targetIDs []uuid.UUID
	for _, edges := range deps {
		for _, d := range edges {
			targetIDs = append(targetIDs, d.DependsOnTaskID)
		}
	}
	targets := map[uuid.UUID]models.Task{}
	if len(targetIDs) > 0 {
		rows, err := c.store.Tasks.ListByIDs(ctx, targetIDs)
		if err != nil {
			return nil, err
		}
		for _, t := range rows {
			if t.WeddingID == weddingID {
				targets[t.ID] = t
			}
		}
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		items := checklists[t.ID]
		tv := TaskView{
			Task:         t,
			Checklist:    items,
			Dependencies: []DependencyView{},
			Progress:     reports.ChecklistProgress(items),
		}
		for _, d := range deps[t.ID] {
			target, ok := targets[d.DependsOnTaskID]
			if !ok {
				continue
			}
			tv.Dependencies = append(tv.Dependencies, DependencyView{
				TaskDependency:  d,
				DependsOnTitle:  target.Title,
				DependsOnStatus: target.Status,
			})
		}
		views = append(views, tv)
	}
	return views, nil
}

// Menus attaches items with quantities suggested for guestCount.
func (c *Composer) Menus(ctx context.Context, menus []models.Menu, guestCount int) ([]MenuView, error) {
	byMenu, err := Attach(ctx,
		idsOf(menus, func(m models.Menu) uuid.UUID { return m.ID }),
		c.store.MenuItems.ListByParents,
		func(it models.MenuItem) uuid.UUID { return it.MenuID })
	if err != nil {
		return nil, err
	}
	views := make([]MenuView, 0, len(menus))
	for _, m := range menus {
		items := byMenu[m.ID]
		mv := MenuView{Menu: m, GuestCount: guestCount, Items: make([]MenuItemView, 0, len(items))}
		for _, it := range items {
			mv.Items = append(mv.Items, MenuItemView{
				MenuItem:          it,
				SuggestedQuantity: reports.SuggestQuantity(it.ServingSize, guestCount),
				EffectiveQuantity: reports.EffectiveQuantity(it, guestCount),
			})
		}
		views = append(views, mv)
	}
	return views, nil
}

func (c *Composer) Guests(ctx context.Context, guests []models.Guest) ([]GuestView, error) {
	byGuest, err := Attach(ctx,
		idsOf(guests, func(g models.Guest) uuid.UUID { return g.ID }),
		func(ctx context.Context, ids []uuid.UUID) ([]models.GuestTravelDetail, error) {
			return c.store.Travel.ListIn(ctx, "guest_id", ids)
		},
		func(t models.GuestTravelDetail) uuid.UUID { return t.GuestID })
	if err != nil {
		return nil, err
	}
	views := make([]GuestView, 0, len(guests))
	for _, g := range guests {
		views = append(views, GuestView{Guest: g, Travel: byGuest[g.ID]})
	}
	return views, nil
}

func (c *Composer) Vendors(ctx context.Context, vendors []models.Vendor) ([]VendorView, error) {
	byVendor, err := Attach(ctx,
		idsOf(vendors, func(v models.Vendor) uuid.UUID { return v.ID }),
		c.store.Contracts.ListByParents,
		func(ct models.VendorContract) uuid.UUID { return ct.VendorID })
	if err != nil {
		return nil, err
	}
	views := make([]VendorView, 0, len(vendors))
	for _, v := range vendors {
		vv := VendorView{Vendor: v, Contracts: byVendor[v.ID]}
		for _, ct := range vv.Contracts {
			vv.ContractedAmount += ct.Amount
			if ct.Paid {
				vv.PaidAmount += ct.Amount
			}
		}
		vv.OutstandingAmount = vv.ContractedAmount - vv.PaidAmount
		views = append(views, vv)
	}
	return views, nil
}

// Categories attaches items and derives spend from the wedding's expenses.
func (c *Composer) Categories(ctx context.Context, categories []models.BudgetCategory) ([]CategoryView, error) {
	ids := idsOf(categories, func(b models.BudgetCategory) uuid.UUID { return b.ID })
	byCategory, err := Attach(ctx, ids, c.store.BudgetItems.ListByParents,
		func(it models.BudgetItem) uuid.UUID { return it.CategoryID })
	if err != nil {
		return nil, err
	}
	expenses, err := c.store.Expenses.ListIn(ctx, "category_id", ids)
	if err != nil {
		return nil, err
	}
	spent := map[uuid.UUID]float64{}
	for _, e := range expenses {
		if e.CategoryID != nil {
			spent[*e.CategoryID] += e.Amount
		}
	}
	views := make([]CategoryView, 0, len(categories))
	for _, cat := range categories {
		s := spent[cat.ID]
		views = append(views, CategoryView{
			BudgetCategory:  cat,
			Items:           byCategory[cat.ID],
			Spent:           s,
			Remaining:       cat.AllocatedAmount - s,
			SpentPercentage: reports.SpentPercentage(cat.AllocatedAmount, s),
		})
	}
	return views, nil
}
