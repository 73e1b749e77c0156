package portfolio

import "github.com/wyfcoding/quantpricing/money"

// Account 客户账户：现金余额加一个可选的投资组合。
type Account struct {
	id        string
	cash      money.Money
	portfolio *Portfolio
}

// NewAccount 创建账户。
func NewAccount(id string, cash money.Money) *Account {
	return &Account{id: id, cash: cash}
}

// ID 账户标识，如 IBAN。
func (a *Account) ID() string { return a.id }

// Cash 现金余额。
func (a *Account) Cash() money.Money { return a.cash }

// Portfolio 关联的组合，未分配时为 nil。
func (a *Account) Portfolio() *Portfolio { return a.portfolio }

// AssignPortfolio 关联组合。
func (a *Account) AssignPortfolio(p *Portfolio) {
	a.portfolio = p
}

// Inactive 未关联任何组合的账户视为非活跃账户。
func (a *Account) Inactive() bool { return a.portfolio == nil }

// NetWorth 净资产 = 现金 + 组合估值。
func (a *Account) NetWorth() money.Money {
	if a.portfolio == nil {
		return a.cash
	}
	return a.cash.AddFloat(a.portfolio.TotalValue())
}
