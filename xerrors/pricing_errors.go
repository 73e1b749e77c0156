package xerrors

var (
	// ErrInvalidInput 定价参数违反定义域约束（非正的现价/行权价、负的波动率或期限）。
	ErrInvalidInput = New(ErrInvalidArg, 400002, "invalid input", "check pricing parameters", nil)
	// ErrInvalidOptionType 无效的期权类型。
	ErrInvalidOptionType = New(ErrInvalidArg, 400004, "invalid option type", "supported types: CALL, PUT", nil)
	// ErrInvalidPosition 持仓结构非法（零数量、非正乘数或行权价等）。
	ErrInvalidPosition = New(ErrInvalidArg, 400020, "invalid position", "check position fields", nil)
	// ErrInvalidExpression 持仓筛选表达式无法编译或结果不是布尔值。
	ErrInvalidExpression = New(ErrInvalidArg, 400021, "invalid expression", "expression must evaluate to bool", nil)
	// ErrMissingQuote 重新定价时缺少标的行情。
	ErrMissingQuote = New(ErrNotFound, 404001, "missing quote", "no market quote for ticker", nil)
)
