package models

import "github.com/shopspring/decimal"

// SavingsProjectionMonth is one month of a savings plan projection.
type SavingsProjectionMonth struct {
	Month          int             `json:"month"`
	Balance        decimal.Decimal `json:"balance"`
	InterestEarned decimal.Decimal `json:"interest_earned"`
	PercentOfGoal  decimal.Decimal `json:"percent_of_goal"`
}

// SavingsPlan is the outcome of planning toward a savings goal.
// MonthsToGoal is 0 when current savings already cover the goal.
type SavingsPlan struct {
	GoalAmount          decimal.Decimal          `json:"goal_amount"`
	CurrentSavings      decimal.Decimal          `json:"current_savings"`
	MonthlyContribution decimal.Decimal          `json:"monthly_contribution"`
	AnnualInterestRate  decimal.Decimal          `json:"annual_interest_rate"`
	MonthsToGoal        int                      `json:"months_to_goal"`
	Projection          []SavingsProjectionMonth `json:"projection"`
	Recommendations     []string                 `json:"recommendations"`
}
