package sim

import "github.com/shopspring/decimal"

// position is the cash and share holdings of an episode. Only whole shares
// are bought and a sell always liquidates.
type position struct {
	balance decimal.Decimal
	shares  decimal.Decimal
}

// buy spends as much of the balance as whole shares at price allow. A
// balance below price buys nothing.
func (p *position) buy(price decimal.Decimal) {
	shares := p.balance.Div(price).Floor()
	cost := shares.Mul(price)
	// Div rounds to a fixed precision and may land one share high.
	if cost.GreaterThan(p.balance) {
		shares = shares.Sub(decimal.NewFromInt(1))
		cost = shares.Mul(price)
	}
	if !shares.IsPositive() {
		return
	}
	p.balance = p.balance.Sub(cost)
	p.shares = p.shares.Add(shares)
}

// sell liquidates every share at price.
func (p *position) sell(price decimal.Decimal) {
	if p.shares.IsZero() {
		return
	}
	p.balance = p.balance.Add(p.shares.Mul(price))
	p.shares = decimal.Zero
}

// value is balance plus shares marked at price.
func (p position) value(price decimal.Decimal) decimal.Decimal {
	return p.balance.Add(p.shares.Mul(price))
}

// totalProfit is the mark-to-market gain over the initial balance.
func (p position) totalProfit(price, initial decimal.Decimal) decimal.Decimal {
	return p.value(price).Sub(initial)
}
