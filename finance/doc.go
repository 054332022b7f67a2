// Package finance holds the formula snippets shared by the calculators:
// loan payments, amortization, present and future value, the APR solver,
// money rounding and locale-aware currency text.
//
// Rates are annual percentages (6.5 means 6.5%) unless a name says otherwise.
package finance
