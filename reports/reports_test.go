package reports

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"weddingplanner-backend/models"
)

func TestSpentPercentage(t *testing.T) {
	cases := []struct {
		name             string
		allocated, spent float64
		want             float64
	}{
		{"nothing allocated", 0, 500, 0},
		{"half", 1000, 500, 50},
		{"over", 100, 150, 150},
		{"rounding", 3, 1, 33.33},
		{"nan", math.NaN(), 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SpentPercentage(tc.allocated, tc.spent))
		})
	}
}

func TestSummarizeBudget(t *testing.T) {
	catering := models.BudgetCategory{Name: "Catering", AllocatedAmount: 1000}
	catering.ID = uuid.New()
	decor := models.BudgetCategory{Name: "Decor", AllocatedAmount: 0}
	decor.ID = uuid.New()
	removed := models.BudgetCategory{Name: "Old", AllocatedAmount: 999}
	removed.ID = uuid.New()
	removed.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}

	unknown := uuid.New()
	expenses := []models.Expense{
		{CategoryID: &catering.ID, Amount: 250},
		{CategoryID: &catering.ID, Amount: 250},
		{CategoryID: &decor.ID, Amount: 80},
		{CategoryID: &unknown, Amount: 20},
		{Amount: 10},
	}
	gone := models.Expense{CategoryID: &catering.ID, Amount: 10000}
	gone.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	expenses = append(expenses, gone)
	items := []models.BudgetItem{{CategoryID: catering.ID, EstimatedAmount: 900}}

	s := SummarizeBudget([]models.BudgetCategory{catering, decor, removed}, items, expenses)

	assert.Equal(t, 1000.0, s.TotalBudget)
	assert.Equal(t, 610.0, s.TotalSpent)
	assert.Equal(t, 390.0, s.Remaining)
	assert.Equal(t, 61.0, s.SpentPercentage)
	assert.Equal(t, 30.0, s.UncategorizedSpent)
	require.Len(t, s.Categories, 2)

	assert.Equal(t, "Catering", s.Categories[0].Name)
	assert.Equal(t, 500.0, s.Categories[0].Spent)
	assert.Equal(t, 50.0, s.Categories[0].SpentPercentage)
	assert.Equal(t, 900.0, s.Categories[0].Estimated)
	assert.False(t, s.Categories[0].OverBudget)

	assert.Equal(t, 0.0, s.Categories[1].SpentPercentage)
	assert.True(t, s.Categories[1].OverBudget)

	again := SummarizeBudget([]models.BudgetCategory{catering, decor, removed}, items, expenses)
	assert.Equal(t, s, again)
}

func TestSummarizeBudgetEmpty(t *testing.T) {
	s := SummarizeBudget(nil, nil, nil)
	assert.Equal(t, 0.0, s.SpentPercentage)
	assert.NotNil(t, s.Categories)
	assert.Empty(t, s.Categories)
}

func TestWithCurrency(t *testing.T) {
	s := BudgetSummary{TotalBudget: 150000, TotalSpent: 1234.5, Remaining: 148765.5}.WithCurrency("INR")
	assert.Equal(t, "INR", s.Currency)
	assert.Equal(t, "₹150,000.00", s.Formatted["totalBudget"])
	assert.Equal(t, "₹1,234.50", s.Formatted["totalSpent"])
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,000.00", FormatCurrency(1000, "usd"))
	assert.Equal(t, "-€12.00", FormatCurrency(-12, "EUR"))
	assert.Equal(t, "JPY 5.00", FormatCurrency(5, "JPY"))
	assert.Equal(t, "0.00", FormatCurrency(0, ""))
}

func TestCountRSVPHeadcount(t *testing.T) {
	guests := []models.Guest{
		{FirstName: "A", RSVPStatus: models.RSVPConfirmed, PlusOne: true},
		{FirstName: "B", RSVPStatus: models.RSVPConfirmed},
		{FirstName: "C", RSVPStatus: models.RSVPDeclined, PlusOne: true},
		{FirstName: "D", RSVPStatus: models.RSVPPending},
	}
	c := CountRSVP(guests)
	assert.Equal(t, 4, c.Total)
	assert.Equal(t, 2, c.ConfirmedEntries)
	assert.Equal(t, 3, c.ConfirmedIndividuals)
	assert.Equal(t, 1, c.PlusOnes)
	assert.Equal(t, 1, c.Declined)
	assert.Equal(t, 1, c.Pending)
	assert.Equal(t, 75.0, c.ResponseRate)
}

func TestDietaryCountsOnlyConfirmed(t *testing.T) {
	guests := []models.Guest{
		{RSVPStatus: models.RSVPConfirmed, DietaryPreferences: []string{"vegetarian", "jain"}},
		{RSVPStatus: models.RSVPConfirmed, DietaryPreferences: []string{"vegetarian"}},
		{RSVPStatus: models.RSVPDeclined, DietaryPreferences: []string{"vegan"}},
	}
	assert.Equal(t, map[string]int{"vegetarian": 2, "jain": 1}, DietaryCounts(guests))
}

func TestSuggestQuantity(t *testing.T) {
	cases := []struct {
		serving string
		guests  int
		want    int
	}{
		{"per 2", 100, 50},
		{"1 plate per 3", 100, 34},
		{"2 pieces per 1", 100, 200},
		{"per person", 100, 100},
		{"", 40, 40},
		{"per 0", 40, 40},
		{"per 2", 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.serving, func(t *testing.T) {
			assert.Equal(t, tc.want, SuggestQuantity(tc.serving, tc.guests))
		})
	}
}

func TestEffectiveQuantityPrefersExplicit(t *testing.T) {
	q := 12
	assert.Equal(t, 12, EffectiveQuantity(models.MenuItem{ServingSize: "per 2", Quantity: &q}, 100))
	assert.Equal(t, 50, EffectiveQuantity(models.MenuItem{ServingSize: "per 2"}, 100))
}

func TestChecklistProgress(t *testing.T) {
	items := []models.ChecklistItem{{Completed: true}, {Completed: true}, {Completed: true}, {}}
	assert.Equal(t, 75.0, ChecklistProgress(items))
	assert.Equal(t, 0.0, ChecklistProgress(nil))
}

func TestCountTasks(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)
	tasks := []models.Task{
		{Status: models.TaskNotStarted, Priority: models.PriorityHigh, DueDate: &past},
		{Status: models.TaskCompleted, Priority: models.PriorityMedium, DueDate: &past},
		{Status: models.TaskInProgress, Priority: models.PriorityMedium, DueDate: &future},
		{Status: models.TaskCancelled, Priority: models.PriorityLow, DueDate: &past},
	}
	c := CountTasks(tasks, now)
	assert.Equal(t, 4, c.Total)
	assert.Equal(t, 1, c.Overdue)
	assert.Equal(t, 2, c.ByPriority[models.PriorityMedium])
	assert.Equal(t, 0, c.ByStatus[models.TaskDelayed])
	assert.Equal(t, 25.0, c.Completion)
}

func TestRowMarshalKeepsColumnOrder(t *testing.T) {
	row := NewRow().Set("Zeta", "1").Set("Alpha", "").Set("Mid", "x\"y")
	b, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"Zeta":"1","Alpha":"","Mid":"x\"y"}`, string(b))

	row.Set("Zeta", "2")
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, row.Columns())
	assert.Equal(t, "2", row.Get("Zeta"))
}

func TestExportEmitsEmptyStringsForMissingValues(t *testing.T) {
	guest := models.Guest{FirstName: "Asha", RSVPStatus: models.RSVPPending}
	guest.ID = uuid.New()
	task := models.Task{Title: "Book pandit", Status: models.TaskNotStarted, Priority: models.PriorityHigh}
	task.ID = uuid.New()
	vendor := models.Vendor{Name: "Florist", Category: "decor", Status: models.VendorPendingQuote}
	vendor.ID = uuid.New()

	out, err := Export("all", Dataset{
		Guests:  []models.Guest{guest},
		Tasks:   []models.Task{task},
		Vendors: []models.Vendor{vendor},
	})
	require.NoError(t, err)
	sections := make([]string, 0, len(out))
	for name := range out {
		sections = append(sections, name)
	}
	assert.ElementsMatch(t,
		[]string{"guests", "vendors", "budget", "expenses", "tasks", "events", "menus", "dances", "travel"},
		sections)

	g := out[SectionGuests][0]
	assert.Equal(t, "Asha", g.Get("First Name"))
	assert.Equal(t, "", g.Get("Group"))
	assert.Equal(t, "", g.Get("Dietary Preferences"))
	assert.Equal(t, "No", g.Get("Plus One"))

	tk := out[SectionTasks][0]
	assert.Equal(t, "", tk.Get("Due Date"))
	assert.Equal(t, "", tk.Get("Event"))
	assert.Equal(t, "0.00%", tk.Get("Checklist Progress"))

	assert.Equal(t, "", out[SectionVendors][0].Get("Rating"))
	assert.NotNil(t, out[SectionMenus])
	assert.Empty(t, out[SectionMenus])
}

func TestExportTaskDependenciesAndDanceParticipants(t *testing.T) {
	a := models.Task{Title: "Order cake"}
	a.ID = uuid.New()
	b := models.Task{Title: "Pick flavour"}
	b.ID = uuid.New()
	guest := models.Guest{FirstName: "Ravi", LastName: "K"}
	guest.ID = uuid.New()
	dance := models.DancePerformance{Title: "Opening"}
	dance.ID = uuid.New()

	out, err := Export("tasks", Dataset{
		Tasks:        []models.Task{a, b},
		Dependencies: []models.TaskDependency{{TaskID: a.ID, DependsOnTaskID: b.ID}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Pick flavour", out[SectionTasks][0].Get("Depends On"))

	out, err = Export("dances", Dataset{
		Guests: []models.Guest{guest},
		Dances: []models.DancePerformance{dance},
		Participants: []models.DanceParticipant{
			{PerformanceID: dance.ID, GuestID: &guest.ID},
			{PerformanceID: dance.ID, Name: "Cousin Meera"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ravi K, Cousin Meera", out[SectionDances][0].Get("Participants"))
	assert.Equal(t, "", out[SectionDances][0].Get("Duration (min)"))
}

func TestExportUnknownType(t *testing.T) {
	_, err := Export("photos", Dataset{})
	assert.ErrorIs(t, err, ErrUnknownExportType)

	sections, err := SectionsFor(" Budget ")
	require.NoError(t, err)
	assert.Equal(t, []string{SectionBudget, SectionExpenses}, sections)
}
