package payroll

import (
	"fmt"

	"github.com/halcyon-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/halcyon-hr/payroll-backend-go/internal/pkg/formula"
	"github.com/shopspring/decimal"
)

// baseSalaryVar is the implicit binding formula components may reference in
// addition to resolved component names.
const baseSalaryVar = "BaseSalary"

var oneHundred = decimal.NewFromInt(100)

// ResolvedStructure holds one employee's salary structure with every
// component resolved to a concrete amount, partitioned by direction.
type ResolvedStructure struct {
	Amounts    map[string]decimal.Decimal
	Earnings   []payroll.Item
	Deductions []payroll.Item
}

// Resolver turns an employee's assigned salary components into concrete
// amounts: fixed values as-is, percentage components against their resolved
// base in dependency order, formula components last through the injected
// evaluator.
type Resolver struct {
	evaluator formula.Evaluator
}

func NewResolver(evaluator formula.Evaluator) *Resolver {
	return &Resolver{evaluator: evaluator}
}

// Resolve resolves every component or fails with a *payroll.ResolutionError
// naming the offending component. Cyclic percentage_of chains are detected
// rather than recursed into.
func (r *Resolver) Resolve(components []payroll.SalaryComponent, baseSalary decimal.Decimal) (ResolvedStructure, error) {
	byName := make(map[string]payroll.SalaryComponent, len(components))
	for _, c := range components {
		byName[c.Name] = c
	}

	amounts := make(map[string]decimal.Decimal, len(components))
	inProgress := make(map[string]bool)

	var resolve func(c payroll.SalaryComponent) error
	resolve = func(c payroll.SalaryComponent) error {
		if _, done := amounts[c.Name]; done {
			return nil
		}
		if inProgress[c.Name] {
			return &payroll.ResolutionError{Component: c.Name, Reason: "cycle detected in percentage_of references"}
		}
		inProgress[c.Name] = true
		defer delete(inProgress, c.Name)

		switch c.CalcType {
		case payroll.CalculationFixed:
			amounts[c.Name] = c.Value

		case payroll.CalculationPercentage:
			if c.PercentageOf == nil {
				return &payroll.ResolutionError{Component: c.Name, Reason: "percentage component has no percentage_of reference"}
			}
			base, ok := byName[*c.PercentageOf]
			if !ok {
				return &payroll.ResolutionError{Component: c.Name, Reason: fmt.Sprintf("percentage base %q not found in structure", *c.PercentageOf)}
			}
			if err := resolve(base); err != nil {
				return err
			}
			amounts[c.Name] = amounts[base.Name].Mul(c.Value).Div(oneHundred)

		case payroll.CalculationFormula:
			if c.Formula == nil {
				return &payroll.ResolutionError{Component: c.Name, Reason: "formula component has no expression"}
			}
			vars := make(map[string]float64, len(amounts)+1)
			vars[baseSalaryVar], _ = baseSalary.Float64()
			for name, amount := range amounts {
				vars[name], _ = amount.Float64()
			}
			result, err := r.evaluator.Evaluate(*c.Formula, vars)
			if err != nil {
				return &payroll.ResolutionError{Component: c.Name, Reason: err.Error()}
			}
			amounts[c.Name] = decimal.NewFromFloat(result).Round(2)

		default:
			return &payroll.ResolutionError{Component: c.Name, Reason: fmt.Sprintf("unknown calculation type %q", c.CalcType)}
		}

		return nil
	}

	// Fixed and percentage components first; formulas last so their variable
	// bindings cover the whole structure.
	for _, pass := range []payroll.CalculationType{payroll.CalculationFixed, payroll.CalculationPercentage, payroll.CalculationFormula} {
		for _, c := range components {
			if c.CalcType != pass {
				continue
			}
			if err := resolve(c); err != nil {
				return ResolvedStructure{}, err
			}
		}
	}

	resolved := ResolvedStructure{Amounts: amounts}
	for _, c := range components {
		item := payroll.Item{
			Component: c.Name,
			Amount:    amounts[c.Name],
			IsTaxable: c.IsTaxable,
		}
		if c.Direction == payroll.DirectionEarning {
			resolved.Earnings = append(resolved.Earnings, item)
		} else {
			resolved.Deductions = append(resolved.Deductions, item)
		}
	}

	return resolved, nil
}
