package domain

// Balance is the holding of an owner for a given symbol.
// Claimed is true when the storage of the record is paid by the owner itself
// rather than by a third party that funded an unsolicited credit.
type Balance struct {
	Owner   Name
	Balance Asset
	Claimed bool
	Payer   Name
}

func (b Balance) Key() string {
	return OwnerKey(b.Owner, b.Balance.Symbol.Code)
}

func (b Balance) IsEmpty() bool {
	return b.Balance.Amount == 0
}
