package analysis

import "finsight/internal/models"

// Rule directions restrict a rule to one side of the ledger. Income keywords
// only make sense on inflows; most spending rules apply to outflows.
const (
	DirectionAny     = "any"
	DirectionInflow  = "inflow"
	DirectionOutflow = "outflow"
)

// Rule maps a keyword set onto a category. Rules are evaluated in table
// order and the first match wins, so more specific rules belong earlier.
type Rule struct {
	Keywords  []string
	Category  string
	Direction string
}

// DefaultRules returns the stock categorization table. Callers wanting
// deterministic custom behavior construct the categorizer with their own
// table; nothing reads this implicitly.
func DefaultRules() []Rule {
	return []Rule{
		{Keywords: []string{"payroll", "direct dep", "salary", "paycheck"}, Category: "income", Direction: DirectionInflow},
		{Keywords: []string{"interest paid", "dividend"}, Category: "income", Direction: DirectionInflow},
		{Keywords: []string{"rent", "mortgage"}, Category: "housing", Direction: DirectionOutflow},
		{Keywords: []string{"electric", "gas co", "water", "utility", "internet", "comcast", "verizon", "t-mobile", "at&t"}, Category: "utilities", Direction: DirectionOutflow},
		{Keywords: []string{"whole foods", "trader joe", "safeway", "kroger", "grocery", "aldi", "costco"}, Category: "groceries", Direction: DirectionOutflow},
		{Keywords: []string{"restaurant", "pizza", "sushi", "chipotle", "mcdonald", "starbucks", "doordash", "grubhub", "uber eats"}, Category: "dining", Direction: DirectionOutflow},
		{Keywords: []string{"uber", "lyft", "metro", "transit", "parking", "shell", "chevron", "exxon", "fuel"}, Category: "transportation", Direction: DirectionOutflow},
		{Keywords: []string{"netflix", "spotify", "hulu", "disney", "hbo", "cinema", "steam", "playstation"}, Category: "entertainment", Direction: DirectionOutflow},
		{Keywords: []string{"amazon", "target", "walmart", "best buy", "ebay", "etsy"}, Category: "shopping", Direction: DirectionOutflow},
		{Keywords: []string{"pharmacy", "cvs", "walgreens", "clinic", "dental", "hospital", "doctor"}, Category: "healthcare", Direction: DirectionOutflow},
		{Keywords: []string{"airline", "delta", "united", "hotel", "airbnb", "marriott"}, Category: "travel", Direction: DirectionOutflow},
		{Keywords: []string{"tuition", "udemy", "coursera", "university"}, Category: "education", Direction: DirectionOutflow},
		{Keywords: []string{"atm", "cash withdrawal"}, Category: "cash", Direction: DirectionOutflow},
		{Keywords: []string{"fee", "service charge", "overdraft"}, Category: "fees", Direction: DirectionOutflow},
		{Keywords: []string{"transfer", "zelle", "venmo", "paypal"}, Category: "transfers"},
		{Keywords: []string{"insurance", "geico", "allstate", "premium"}, Category: "insurance", Direction: DirectionOutflow},
	}
}

// appliesTo reports whether the rule's direction admits the transaction.
func (r Rule) appliesTo(t models.Transaction) bool {
	switch r.Direction {
	case DirectionInflow:
		return t.IsInflow()
	case DirectionOutflow:
		return t.IsOutflow()
	default:
		return true
	}
}
