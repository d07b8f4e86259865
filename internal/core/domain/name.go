package domain

import "strings"

const (
	maxNameLen   = 12
	nameCharset  = ".12345abcdefghijklmnopqrstuvwxyz"
	nameSplitter = "/"
)

// Name is a ledger account name: 1 to 12 characters among a-z, 1-5 and '.',
// not ending with a dot.
type Name string

func (n Name) IsValid() bool {
	if len(n) == 0 || len(n) > maxNameLen {
		return false
	}
	if strings.HasSuffix(string(n), ".") {
		return false
	}
	for _, r := range n {
		if !strings.ContainsRune(nameCharset, r) {
			return false
		}
	}
	return true
}

func (n Name) String() string {
	return string(n)
}

// OwnerKey is the primary key of records scoped by owner and symbol code.
func OwnerKey(owner Name, code SymbolCode) string {
	return string(owner) + nameSplitter + string(code)
}
