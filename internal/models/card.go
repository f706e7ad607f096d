package models

import "fmt"

// CardIdentity identifies the card a statement belongs to.
type CardIdentity struct {
	Bank  string `json:"bank"`
	Last4 string `json:"last4Digits"`
}

func (c CardIdentity) String() string {
	return fmt.Sprintf("%s-%s", c.Bank, c.Last4)
}
