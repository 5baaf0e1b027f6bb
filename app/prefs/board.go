// Package prefs stores per-user dashboard card layouts.
package prefs

// Board is one customizable card grid of the super-admin dashboard.
type Board struct {
	Name      string
	OrderKey  string
	HiddenKey string
	Cards     []string
}

var (
	Monthly = Board{
		Name:      "monthly",
		OrderKey:  "super_admin_monthly_order_v1",
		HiddenKey: "super_admin_hidden_monthly_v1",
		Cards: []string{
			"revenue",
			"expected_revenue",
			"debt",
			"discounts",
			"expenses",
			"teacher_salaries",
			"net_profit",
			"new_students",
			"active_students",
			"stopped_students",
		},
	}
	Overall = Board{
		Name:      "overall",
		OrderKey:  "super_admin_overall_order_v1",
		HiddenKey: "super_admin_hidden_overall_v1",
		Cards: []string{
			"total_students",
			"total_groups",
			"total_teachers",
			"total_revenue",
			"total_expenses",
			"total_profit",
		},
	}
)

func BoardByName(name string) (Board, bool) {
	switch name {
	case Monthly.Name:
		return Monthly, true
	case Overall.Name:
		return Overall, true
	}
	return Board{}, false
}

func (b Board) Allowed(card string) bool {
	for _, c := range b.Cards {
		if c == card {
			return true
		}
	}
	return false
}
