package account

type CreationRequest struct {
	Number         int     `json:"number"`
	InitialBalance float64 `json:"balance"`
}

type TxRequest struct {
	Method string  `json:"method"`
	Number int     `json:"number"`
	Amount float64 `json:"amount"`
}
