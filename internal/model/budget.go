package model

import "github.com/shopspring/decimal"

// Budget is a monthly spending limit for one expense category.
type Budget struct {
	Category string
	Limit    decimal.Decimal
	Icon     string // display only
}

// Currency describes how amounts are labelled. It never changes during a session.
type Currency struct {
	Symbol string `yaml:"symbol"`
	Code   string `yaml:"code"`
	Name   string `yaml:"name"`
}

// Rupee is the default currency descriptor.
var Rupee = Currency{Symbol: "₹", Code: "INR", Name: "Indian Rupee"}
